package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/dcx/internal/shared"
)

// Session identifies one full grab against a remote node.
//
// It is created once before any content is fetched and never mutated afterwards.
type Session struct {
	id            string
	node          string
	remoteVersion string
	toolVersion   string
	startedAt     time.Time
}

// SessionRecord is the metadata persisted into the tracking directory for a [Session].
type SessionRecord struct {
	Node          string `json:"node"`
	RemoteVersion string `json:"remoteVersion"`
	ToolVersion   string `json:"toolVersion"`
}

// NewSession creates a [Session] with a generated ID and the current time.
func NewSession(node, remoteVersion, toolVersion string) Session {
	return Session{
		id:            shared.GenerateID(),
		node:          node,
		remoteVersion: remoteVersion,
		toolVersion:   toolVersion,
		startedAt:     time.Now().UTC(),
	}
}

func (s Session) ID() string            { return s.id }
func (s Session) Node() string          { return s.node }
func (s Session) RemoteVersion() string { return s.remoteVersion }
func (s Session) ToolVersion() string   { return s.toolVersion }
func (s Session) StartedAt() time.Time  { return s.startedAt }

// Record returns the tracking-store form of the session.
func (s Session) Record() SessionRecord {
	return SessionRecord{Node: s.node, RemoteVersion: s.remoteVersion, ToolVersion: s.toolVersion}
}

// Validate checks that the session names a node and carries an ID.
func (s Session) Validate() error {
	if s.id == "" {
		return fmt.Errorf("%w: session id is required", shared.ErrInvalidInput)
	}
	if s.node == "" {
		return fmt.Errorf("%w: session node is required", shared.ErrInvalidInput)
	}
	return nil
}

// SessionStatus is the outcome of a journaled session.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionSucceeded SessionStatus = "succeeded"
	SessionFailed    SessionStatus = "failed"
)

// SessionEntry is a [Session] as stored in the session journal.
//
// Implements [Model].
type SessionEntry struct {
	session    Session
	sequence   int
	clean      bool
	status     SessionStatus
	errMessage string
	updatedAt  time.Time
	finishedAt *time.Time
}

// NewSessionEntry wraps a session in a running journal entry.
func NewSessionEntry(s Session, clean bool) *SessionEntry {
	return &SessionEntry{
		session:   s,
		clean:     clean,
		status:    SessionRunning,
		updatedAt: s.startedAt,
	}
}

// RestoreSessionEntry rebuilds an entry from stored columns.
func RestoreSessionEntry(
	id, node, remoteVersion, toolVersion string,
	sequence int, clean bool, status SessionStatus, errMessage string,
	startedAt, updatedAt time.Time, finishedAt *time.Time,
) *SessionEntry {
	return &SessionEntry{
		session: Session{
			id:            id,
			node:          node,
			remoteVersion: remoteVersion,
			toolVersion:   toolVersion,
			startedAt:     startedAt,
		},
		sequence:   sequence,
		clean:      clean,
		status:     status,
		errMessage: errMessage,
		updatedAt:  updatedAt,
		finishedAt: finishedAt,
	}
}

func (e *SessionEntry) ID() string             { return e.session.id }
func (e *SessionEntry) Session() Session       { return e.session }
func (e *SessionEntry) Sequence() int          { return e.sequence }
func (e *SessionEntry) Clean() bool            { return e.clean }
func (e *SessionEntry) Status() SessionStatus  { return e.status }
func (e *SessionEntry) ErrorMessage() string   { return e.errMessage }
func (e *SessionEntry) CreatedAt() time.Time   { return e.session.startedAt }
func (e *SessionEntry) UpdatedAt() time.Time   { return e.updatedAt }
func (e *SessionEntry) FinishedAt() *time.Time { return e.finishedAt }

func (e *SessionEntry) SetSequence(seq int)      { e.sequence = seq }
func (e *SessionEntry) SetUpdatedAt(t time.Time) { e.updatedAt = t }

// Finish marks the entry as done. A nil err means success.
func (e *SessionEntry) Finish(at time.Time, err error) {
	e.finishedAt = &at
	e.updatedAt = at
	if err != nil {
		e.status = SessionFailed
		e.errMessage = err.Error()
		return
	}
	e.status = SessionSucceeded
	e.errMessage = ""
}

// Duration reports how long a finished session ran, or zero while running.
func (e *SessionEntry) Duration() time.Duration {
	if e.finishedAt == nil {
		return 0
	}
	return e.finishedAt.Sub(e.session.startedAt)
}

// Validate checks the wrapped session and the status value.
func (e *SessionEntry) Validate() error {
	if err := e.session.Validate(); err != nil {
		return err
	}
	switch e.status {
	case SessionRunning, SessionSucceeded, SessionFailed:
		return nil
	default:
		return fmt.Errorf("%w: unknown session status %q", shared.ErrInvalidInput, e.status)
	}
}

// SessionStep is the journaled outcome of one grab step.
type SessionStep struct {
	Position   int
	Phase      string
	Status     SessionStatus
	Error      string
	FinishedAt time.Time
}

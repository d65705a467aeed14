package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/desertthunder/dcx/internal/models"
)

// Journal records grab sessions through a [SessionRepository].
//
// Implements tasks.Journal.
type Journal struct {
	repo *SessionRepository
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*models.SessionEntry
}

// NewJournal creates a Journal over repo.
func NewJournal(repo *SessionRepository) *Journal {
	return &Journal{
		repo:    repo,
		now:     func() time.Time { return time.Now().UTC() },
		entries: make(map[string]*models.SessionEntry),
	}
}

// Begin stores a running entry for s.
func (j *Journal) Begin(_ context.Context, s models.Session, clean bool) error {
	entry := models.NewSessionEntry(s, clean)
	if err := j.repo.Create(entry); err != nil {
		return err
	}

	j.mu.Lock()
	j.entries[s.ID()] = entry
	j.mu.Unlock()
	return nil
}

// Step stores the outcome of one step.
func (j *Journal) Step(_ context.Context, sessionID string, position int, phase string, stepErr error) error {
	step := models.SessionStep{
		Position:   position,
		Phase:      phase,
		Status:     models.SessionSucceeded,
		FinishedAt: j.now(),
	}
	if stepErr != nil {
		step.Status = models.SessionFailed
		step.Error = stepErr.Error()
	}
	return j.repo.RecordStep(sessionID, step)
}

// End marks the session finished; a nil runErr means it succeeded.
func (j *Journal) End(_ context.Context, sessionID string, runErr error) error {
	j.mu.Lock()
	entry, ok := j.entries[sessionID]
	delete(j.entries, sessionID)
	j.mu.Unlock()

	if !ok {
		var err error
		if entry, err = j.repo.Get(sessionID); err != nil {
			return err
		}
	}

	entry.Finish(j.now(), runErr)
	return j.repo.Update(entry)
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
)

const sessionColumns = `id, sequence, node, remote_version, tool_version, clean, status, error, started_at, updated_at, finished_at`

// SessionRepository implements models.Repository[*models.SessionEntry] for the grab journal.
//
// Handles session CRUD operations with soft delete support, plus the per-step outcomes of each session.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session into the database with a generated sequence
func (r *SessionRepository) Create(entry *models.SessionEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	entry.SetSequence(sequence)

	s := entry.Session()
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		s.ID(),
		sequence,
		s.Node(),
		s.RemoteVersion(),
		s.ToolVersion(),
		entry.Clean(),
		string(entry.Status()),
		entry.ErrorMessage(),
		s.StartedAt(),
		entry.UpdatedAt(),
		nullTime(entry.FinishedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.SessionEntry, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ? AND deleted_at IS NULL`

	entry, err := scanSession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return entry, err
}

// Latest retrieves the most recently started session
func (r *SessionRepository) Latest() (*models.SessionEntry, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE deleted_at IS NULL ORDER BY sequence DESC LIMIT 1`

	entry, err := scanSession(r.db.QueryRow(query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no sessions recorded", shared.ErrSessionNotFound)
	}
	return entry, err
}

// Update writes the status, error and finish time of an existing session
func (r *SessionRepository) Update(entry *models.SessionEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE sessions
		SET status = ?, error = ?, updated_at = ?, finished_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		string(entry.Status()),
		entry.ErrorMessage(),
		now,
		nullTime(entry.FinishedAt()),
		entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return expectOne(result, entry.ID())
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	query := `
		UPDATE sessions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return expectOne(result, id)
}

// List retrieves sessions matching the given criteria, newest first, excluding soft-deleted sessions.
//
// Supported criteria: "node" (string), "status" ([models.SessionStatus]) and "limit" (int).
func (r *SessionRepository) List(criteria map[string]any) ([]*models.SessionEntry, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE deleted_at IS NULL`
	args := []any{}

	if node, ok := criteria["node"].(string); ok && node != "" {
		query += " AND node = ?"
		args = append(args, node)
	}

	if status, ok := criteria["status"].(models.SessionStatus); ok && status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var entries []*models.SessionEntry
	for rows.Next() {
		entry, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// RecordStep stores the outcome of one step of a session
func (r *SessionRepository) RecordStep(sessionID string, step models.SessionStep) error {
	query := `
		INSERT INTO session_steps (session_id, position, phase, status, error, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, sessionID, step.Position, step.Phase, string(step.Status), step.Error, step.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session step: %w", err)
	}
	return nil
}

// Steps retrieves the recorded steps of a session in execution order
func (r *SessionRepository) Steps(sessionID string) ([]models.SessionStep, error) {
	query := `
		SELECT position, phase, status, error, finished_at
		FROM session_steps
		WHERE session_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session steps: %w", err)
	}
	defer rows.Close()

	var steps []models.SessionStep
	for rows.Next() {
		var (
			step   models.SessionStep
			status string
		)
		if err := rows.Scan(&step.Position, &step.Phase, &status, &step.Error, &step.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session step: %w", err)
		}
		step.Status = models.SessionStatus(status)
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return steps, nil
}

// scanner is satisfied by [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// scanSession scans one row into a [models.SessionEntry]
func scanSession(row scanner) (*models.SessionEntry, error) {
	var (
		id            string
		sequence      int
		node          string
		remoteVersion string
		toolVersion   string
		clean         bool
		status        string
		errMessage    string
		startedAt     time.Time
		updatedAt     time.Time
		finishedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &node, &remoteVersion, &toolVersion, &clean, &status, &errMessage, &startedAt, &updatedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	var finished *time.Time
	if finishedAt.Valid {
		finished = &finishedAt.Time
	}

	return models.RestoreSessionEntry(
		id, node, remoteVersion, toolVersion,
		sequence, clean, models.SessionStatus(status), errMessage,
		startedAt, updatedAt, finished,
	), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func expectOne(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s not found or already deleted", shared.ErrSessionNotFound, id)
	}
	return nil
}

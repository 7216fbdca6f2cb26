// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/camrec/internal/ports/secondary"
)

const sessionColumns = "id, camera_id, location_path, stream_url, duration_seconds, output_dir, state, error, segment_count, started_at, ended_at"

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	startedAt := time.Now()
	if session.StartedAt != "" {
		t, err := time.Parse(time.RFC3339, session.StartedAt)
		if err != nil {
			return fmt.Errorf("invalid started_at %q: %w", session.StartedAt, err)
		}
		startedAt = t
	}

	state := "recording"
	if session.State != "" {
		state = session.State
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO recording_sessions (id, camera_id, location_path, stream_url, duration_seconds, output_dir, state, started_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		session.ID, session.CameraID, session.LocationPath, session.StreamURL, session.DurationSeconds, session.OutputDir, state, startedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Finish stores the terminal state of a session.
func (r *SessionRepository) Finish(ctx context.Context, id string, result secondary.SessionResult) error {
	var errText sql.NullString
	if result.Error != "" {
		errText = sql.NullString{String: result.Error, Valid: true}
	}
	endedAt := result.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE recording_sessions SET state = ?, error = ?, segment_count = ?, ended_at = ? WHERE id = ?",
		result.State, errText, result.SegmentCount, endedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session %s not found", id)
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM recording_sessions WHERE id = ?", id)

	record, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return record, nil
}

// List retrieves sessions matching the given filters, newest first.
func (r *SessionRepository) List(ctx context.Context, filters secondary.SessionFilters) ([]*secondary.SessionRecord, error) {
	query := "SELECT " + sessionColumns + " FROM recording_sessions WHERE 1=1"
	args := []any{}

	if filters.CameraID != "" {
		query += " AND camera_id = ?"
		args = append(args, filters.CameraID)
	}

	query += " ORDER BY started_at DESC, id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, record)
	}

	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*secondary.SessionRecord, error) {
	var (
		errText   sql.NullString
		startedAt time.Time
		endedAt   sql.NullTime
	)

	record := &secondary.SessionRecord{}
	err := row.Scan(&record.ID, &record.CameraID, &record.LocationPath, &record.StreamURL,
		&record.DurationSeconds, &record.OutputDir, &record.State, &errText,
		&record.SegmentCount, &startedAt, &endedAt)
	if err != nil {
		return nil, err
	}

	record.Error = errText.String
	record.StartedAt = startedAt.Format(time.RFC3339)
	if endedAt.Valid {
		record.EndedAt = endedAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// Ensure SessionRepository implements the interface
var _ secondary.SessionRepository = (*SessionRepository)(nil)

// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// SessionRepository defines the secondary port for the recording session ledger.
type SessionRepository interface {
	// Create persists a new session at the start of a recording.
	Create(ctx context.Context, session *SessionRecord) error

	// Finish stores the terminal state of a session.
	Finish(ctx context.Context, id string, result SessionResult) error

	// GetByID retrieves a session by its ID.
	GetByID(ctx context.Context, id string) (*SessionRecord, error)

	// List retrieves sessions matching the given filters, newest first.
	List(ctx context.Context, filters SessionFilters) ([]*SessionRecord, error)
}

// SessionRecord represents a recording session as stored in persistence.
type SessionRecord struct {
	ID              string
	CameraID        string
	LocationPath    string
	StreamURL       string // credentials redacted
	DurationSeconds int
	OutputDir       string
	State           string
	Error           string // Empty string means null
	SegmentCount    int
	StartedAt       string // RFC3339
	EndedAt         string // Empty string means null
}

// SessionResult is the terminal outcome written by Finish.
type SessionResult struct {
	State        string
	Error        string
	SegmentCount int
	EndedAt      time.Time
}

// SessionFilters contains filter options for querying sessions.
type SessionFilters struct {
	CameraID string
	Limit    int
}

// ArchiveRepository defines the secondary port for the stitched archive ledger.
type ArchiveRepository interface {
	// Create persists the outcome of stitching one camera for one date.
	Create(ctx context.Context, archive *ArchiveRecord) error

	// GetByID retrieves an archive entry by its ID.
	GetByID(ctx context.Context, id string) (*ArchiveRecord, error)

	// List retrieves archive entries matching the given filters, newest first.
	List(ctx context.Context, filters ArchiveFilters) ([]*ArchiveRecord, error)

	// GetNextID returns the next available archive ID.
	GetNextID(ctx context.Context) (string, error)
}

// ArchiveRecord represents one stitch outcome as stored in persistence.
type ArchiveRecord struct {
	ID            string
	CameraID      string
	Date          string
	OutputPath    string
	SegmentCount  int
	SourceDeleted bool
	Status        string // "stitched", "failed"
	Error         string // Empty string means null
	CreatedAt     string
}

// ArchiveFilters contains filter options for querying archives.
type ArchiveFilters struct {
	CameraID string
	Date     string
	Status   string
	Limit    int
}

package primary

import "context"

// HistoryService defines the primary port for reading the recording ledger.
type HistoryService interface {
	// ListSessions lists recording sessions, newest first.
	ListSessions(ctx context.Context, filters HistoryFilters) ([]*Session, error)

	// ListArchives lists stitch outcomes, newest first.
	ListArchives(ctx context.Context, filters HistoryFilters) ([]*Archive, error)
}

// HistoryFilters contains filter options for ledger queries.
type HistoryFilters struct {
	CameraID string
	Limit    int
}

// Session is the public view of a recorded session.
type Session struct {
	ID              string
	CameraID        string
	DurationSeconds int
	OutputDir       string
	State           string
	Error           string
	SegmentCount    int
	StartedAt       string
	EndedAt         string
}

// Archive is the public view of a stitch outcome.
type Archive struct {
	ID            string
	CameraID      string
	Date          string
	OutputPath    string
	SegmentCount  int
	SourceDeleted bool
	Status        string
	Error         string
	CreatedAt     string
}

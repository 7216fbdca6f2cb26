// Package primary defines the primary ports (driving side) of the application.
// The CLI talks to the application only through these interfaces.
package primary

import (
	"context"

	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/secondary"
)

// RecordService defines the primary port for recording operations.
type RecordService interface {
	// Record runs one bounded recording session and blocks until the capture
	// process exits or ctx is cancelled.
	Record(ctx context.Context, req RecordRequest) (*RecordResponse, error)

	// Detach launches the record command in a detached terminal session.
	Detach(ctx context.Context, req DetachRequest) (*DetachResponse, error)
}

// RecordRequest contains parameters for a recording.
type RecordRequest struct {
	CameraID string
	Duration string // shorthand: "90", "1m", "24h", "1.5d"
}

// RecordResponse contains the result of a recording session.
// It is returned alongside a ProcessError when the capture failed.
type RecordResponse struct {
	Session   *models.RecordingSession
	Segments  []models.VideoSegment
	Normalize secondary.NormalizeResult
}

// DetachRequest contains parameters for a detached recording.
type DetachRequest struct {
	CameraID string
	Duration string
	// Command is the full command line the detached session should run.
	Command string
}

// DetachResponse contains the result of launching a detached recording.
type DetachResponse struct {
	SessionName string
	Attach      string // how to reach the session, one instruction per line
}

package primary

import (
	"context"

	"github.com/example/camrec/internal/models"
)

// StitchService defines the primary port for archive consolidation.
type StitchService interface {
	// Stitch consolidates each camera directory under the target date
	// directory. Per-camera failures are reported in the response, not as an
	// error; the error return is reserved for a missing target.
	Stitch(ctx context.Context, req StitchRequest) (*StitchResponse, error)
}

// StitchRequest contains parameters for stitching a date directory.
type StitchRequest struct {
	Target     string // a date (YYYY-MM-DD) or a path whose base name is the date
	KeepSource bool
	Overwrite  bool
}

// CameraStatus is the per-camera stitch outcome.
type CameraStatus string

const (
	CameraStitched      CameraStatus = "stitched"
	CameraSkippedEmpty  CameraStatus = "skipped_empty"
	CameraSkippedExists CameraStatus = "skipped_exists"
	CameraFailed        CameraStatus = "failed"
)

// CameraResult reports what happened to one camera directory.
type CameraResult struct {
	CameraID      string
	Status        CameraStatus
	Archive       *models.DailyArchive
	SegmentCount  int
	SourceDeleted bool
	Err           error // set when Status is failed, or when source removal failed
	Warnings      []models.PermissionWarning
}

// StitchResponse contains the outcome for every camera under the date directory.
type StitchResponse struct {
	DateDir      string
	Date         string
	DeleteSource bool
	Cameras      []CameraResult
}

// Failed returns the number of cameras whose stitch failed.
func (r *StitchResponse) Failed() int {
	n := 0
	for _, c := range r.Cameras {
		if c.Status == CameraFailed {
			n++
		}
	}
	return n
}

// Stitched returns the number of archives produced.
func (r *StitchResponse) Stitched() int {
	n := 0
	for _, c := range r.Cameras {
		if c.Status == CameraStitched {
			n++
		}
	}
	return n
}

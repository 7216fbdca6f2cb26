package secondary

import (
	"context"
	"os"

	"github.com/example/camrec/internal/models"
)

// CameraLocator resolves a camera id to the location directory that owns it.
type CameraLocator interface {
	// Locate returns the first location containing a directory named cameraID.
	// Returns a *models.NotFoundError when no location matches.
	Locate(ctx context.Context, cameraID string) (*models.CameraLocation, error)
}

// SegmentStore covers the filesystem operations of the recorder and stitcher.
type SegmentStore interface {
	// EnsureDir creates a directory and its parents; existing is not an error.
	EnsureDir(ctx context.Context, path string) error

	// DirectoryExists checks if a directory exists.
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// FileExists checks if a regular file exists.
	FileExists(ctx context.Context, path string) (bool, error)

	// ListSubdirectories returns the names of the immediate subdirectories of dir, sorted.
	ListSubdirectories(ctx context.Context, dir string) ([]string, error)

	// ListFiles returns the names of the regular files directly inside dir, sorted.
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// WriteFile writes content to path.
	WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error

	// RemoveFile removes a single file; a missing file is not an error.
	RemoveFile(ctx context.Context, path string) error

	// Rename moves src to dst on the same filesystem.
	Rename(ctx context.Context, src, dst string) error

	// RemoveTree removes a directory and everything beneath it.
	RemoveTree(ctx context.Context, path string) error

	// MakeScratchDir creates a new temporary directory.
	MakeScratchDir(ctx context.Context, pattern string) (string, error)
}

// NormalizeOutcome is the two-valued result of a normalization pass.
type NormalizeOutcome string

const (
	NormalizeOK      NormalizeOutcome = "ok"
	NormalizeWarning NormalizeOutcome = "warning"
)

// NormalizeResult reports what a normalization pass did.
type NormalizeResult struct {
	Path     string
	Strategy string
	Applied  int // entries successfully changed
	Warnings []models.PermissionWarning
}

// Outcome is NormalizeWarning when any entry failed.
func (r NormalizeResult) Outcome() NormalizeOutcome {
	if len(r.Warnings) > 0 {
		return NormalizeWarning
	}
	return NormalizeOK
}

// Normalizer repairs ownership or permissions on a subtree so files written
// inside the container stay usable by the host owner. Normalize never fails;
// problems are reported as warnings in the result.
type Normalizer interface {
	Normalize(ctx context.Context, path string) NormalizeResult
	Strategy() string
}

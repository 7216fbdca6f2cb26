package primary

import (
	"context"

	"github.com/example/camrec/internal/models"
)

// LocateService defines the primary port for camera lookup.
type LocateService interface {
	// Locate resolves a camera id to its location directory.
	Locate(ctx context.Context, cameraID string) (*models.CameraLocation, error)
}

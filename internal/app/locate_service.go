package app

import (
	"context"

	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/ports/secondary"
)

// LocateServiceImpl implements the LocateService interface.
type LocateServiceImpl struct {
	locator secondary.CameraLocator
}

// NewLocateService creates a new LocateService with injected dependencies.
func NewLocateService(locator secondary.CameraLocator) *LocateServiceImpl {
	return &LocateServiceImpl{locator: locator}
}

// Locate resolves a camera id to its location directory.
func (s *LocateServiceImpl) Locate(ctx context.Context, cameraID string) (*models.CameraLocation, error) {
	return s.locator.Locate(ctx, cameraID)
}

// Ensure LocateServiceImpl implements the interface
var _ primary.LocateService = (*LocateServiceImpl)(nil)

package secondary

import "context"

// StreamConfigLoader returns the connection URL of a camera given its
// location directory and id.
type StreamConfigLoader interface {
	LoadStreamURL(ctx context.Context, locationPath, cameraID string) (string, error)
}

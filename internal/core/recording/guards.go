package recording

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// StreamContext is the input to CanStartCapture.
type StreamContext struct {
	CameraID  string
	StreamURL string
}

// CanStartCapture evaluates whether the resolved stream URL is usable.
// Rule: the URL must carry an rtsp:// scheme marker.
func CanStartCapture(ctx StreamContext) GuardResult {
	if strings.TrimSpace(ctx.StreamURL) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "could not construct a stream URL (missing config?)",
		}
	}
	if !strings.Contains(ctx.StreamURL, "rtsp://") {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("stream URL for %s is not an rtsp:// URL", ctx.CameraID),
		}
	}
	return GuardResult{Allowed: true}
}

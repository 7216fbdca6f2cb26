// Package models holds the data types shared across the capture and archive pipeline.
package models

import "time"

// CameraLocation is the result of resolving a camera id against the
// locations tree. It is valid only for the invocation that produced it.
type CameraLocation struct {
	CameraID     string
	LocationPath string
}

// SessionState is a RecordingSession lifecycle state.
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StateLocated        SessionState = "located"
	StateConfigResolved SessionState = "config_resolved"
	StateRecording      SessionState = "recording"
	StateCompleted      SessionState = "completed"
	StateInterrupted    SessionState = "interrupted"
	StateFailed         SessionState = "failed"
	StateNormalized     SessionState = "normalized"
)

// RecordingSession is one bounded capture run for a single camera.
type RecordingSession struct {
	ID              string
	CameraID        string
	LocationPath    string
	StreamURL       string
	DurationSeconds int
	OutputDir       string
	SegmentTemplate string
	State           SessionState
	// Outcome is the terminal capture state (completed, interrupted or failed);
	// State moves on to normalized afterwards.
	Outcome   SessionState
	StartedAt time.Time
	EndedAt   time.Time
}

// VideoSegment is one closed segment file written by the capture process.
type VideoSegment struct {
	Path             string
	CameraID         string
	CaptureTimestamp time.Time
}

// DailyArchive is the concatenation of one camera's segments for one date.
type DailyArchive struct {
	CameraID   string
	Date       string
	Segments   []VideoSegment
	OutputPath string
}

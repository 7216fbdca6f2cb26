// Package recording contains the pure rules of a recording session: which
// state transitions are legal, how a process exit maps to an outcome, and
// how segment files are named. No I/O happens here.
package recording

import (
	"fmt"

	"github.com/example/camrec/internal/models"
)

// allowed lists the legal successors of each state.
var allowed = map[models.SessionState][]models.SessionState{
	models.StateIdle:           {models.StateLocated},
	models.StateLocated:        {models.StateConfigResolved},
	models.StateConfigResolved: {models.StateRecording},
	models.StateRecording:      {models.StateCompleted, models.StateInterrupted, models.StateFailed},
	models.StateCompleted:      {models.StateNormalized},
	models.StateInterrupted:    {models.StateNormalized},
	models.StateFailed:         {models.StateNormalized},
}

// CanTransition evaluates whether a session may move from one state to another.
func CanTransition(from, to models.SessionState) GuardResult {
	for _, next := range allowed[from] {
		if next == to {
			return GuardResult{Allowed: true}
		}
	}
	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("illegal session transition %s -> %s", from, to),
	}
}

// Advance moves the session to the next state if the transition is legal.
func Advance(s *models.RecordingSession, to models.SessionState) error {
	if result := CanTransition(s.State, to); !result.Allowed {
		return result.Error()
	}
	s.State = to
	if IsTerminalOutcome(to) {
		s.Outcome = to
	}
	return nil
}

// IsTerminalOutcome reports whether state ends the capture phase.
func IsTerminalOutcome(state models.SessionState) bool {
	switch state {
	case models.StateCompleted, models.StateInterrupted, models.StateFailed:
		return true
	}
	return false
}

// ExitContext describes how the capture process ended.
type ExitContext struct {
	ExitCode    int
	Cancelled   bool // the caller cancelled (signal) before the process exited
	StartFailed bool // the process could not be spawned at all
}

// OutcomeForExit maps a process exit to the session outcome.
// Rule: a caller-initiated stop is a clean stop regardless of the exit status
// the capture tool reports when signalled.
func OutcomeForExit(ctx ExitContext) models.SessionState {
	if ctx.StartFailed {
		return models.StateFailed
	}
	if ctx.Cancelled {
		return models.StateInterrupted
	}
	if ctx.ExitCode == 0 {
		return models.StateCompleted
	}
	return models.StateFailed
}

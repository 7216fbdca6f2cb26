package secondary

import (
	"context"
	"io"
)

// ProcessSpec describes one invocation of an external tool.
type ProcessSpec struct {
	Name   string   // binary name or path
	Args   []string // arguments, not including Name
	Dir    string   // working directory; empty means current
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessResult is the exit status of a finished process.
type ProcessResult struct {
	ExitCode int
	// Interrupted is true when ctx was cancelled before the process exited.
	Interrupted bool
}

// ProcessRunner spawns an external process, waits for it and reports its
// exit status. A nonzero exit is reported through ProcessResult, not as an
// error; the error return is reserved for processes that could not start.
type ProcessRunner interface {
	Run(ctx context.Context, spec ProcessSpec) (ProcessResult, error)
}

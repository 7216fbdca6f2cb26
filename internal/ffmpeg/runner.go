package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/example/camrec/internal/ports/secondary"
)

// Runner implements secondary.ProcessRunner with os/exec.
//
// Cancelling ctx sends SIGINT rather than SIGKILL so ffmpeg can finalize
// the segment it is writing. If the process is still alive after grace it
// is killed.
type Runner struct {
	grace time.Duration
}

// NewRunner creates a runner with the given interrupt grace period.
func NewRunner(grace time.Duration) *Runner {
	return &Runner{grace: grace}
}

// Run starts spec and waits for it to exit.
func (r *Runner) Run(ctx context.Context, spec secondary.ProcessSpec) (secondary.ProcessResult, error) {
	if spec.Name == "" {
		return secondary.ProcessResult{ExitCode: -1}, errors.New("process name is empty")
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.grace

	if err := cmd.Start(); err != nil {
		return secondary.ProcessResult{ExitCode: -1}, fmt.Errorf("failed to start %s: %w", spec.Name, err)
	}

	err := cmd.Wait()
	res := secondary.ProcessResult{Interrupted: ctx.Err() != nil}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil, res.Interrupted, errors.As(err, &exitErr), errors.Is(err, exec.ErrWaitDelay):
		return res, nil
	default:
		return res, fmt.Errorf("failed waiting for %s: %w", spec.Name, err)
	}
}

// Ensure Runner implements the interface
var _ secondary.ProcessRunner = (*Runner)(nil)

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/primary"
)

// RecordAdapter is a thin adapter that translates CLI operations to RecordService calls.
type RecordAdapter struct {
	service primary.RecordService
	out     io.Writer
}

// NewRecordAdapter creates a new RecordAdapter with the given service.
func NewRecordAdapter(service primary.RecordService, out io.Writer) *RecordAdapter {
	return &RecordAdapter{
		service: service,
		out:     out,
	}
}

// Record runs a recording session in the foreground and reports its outcome.
// A failed capture still prints what was kept before returning the error.
func (a *RecordAdapter) Record(ctx context.Context, cameraID, duration string) (*primary.RecordResponse, error) {
	resp, err := a.service.Record(ctx, primary.RecordRequest{
		CameraID: cameraID,
		Duration: duration,
	})
	if resp == nil {
		return nil, err
	}

	s := resp.Session
	switch s.Outcome {
	case models.StateCompleted:
		fmt.Fprintf(a.out, "%s Recording of %s completed\n", color.GreenString("✓"), s.CameraID)
	case models.StateInterrupted:
		fmt.Fprintf(a.out, "%s Recording of %s stopped early\n", color.YellowString("■"), s.CameraID)
	default:
		fmt.Fprintf(a.out, "%s Recording of %s failed\n", color.RedString("✗"), s.CameraID)
	}
	fmt.Fprintf(a.out, "  Location: %s\n", s.LocationPath)
	fmt.Fprintf(a.out, "  Output:   %s\n", s.OutputDir)
	fmt.Fprintf(a.out, "  Segments: %d\n", len(resp.Segments))
	if n := len(resp.Normalize.Warnings); n > 0 {
		fmt.Fprintf(a.out, "  %s %d path(s) could not be normalized (%s)\n",
			color.YellowString("!"), n, resp.Normalize.Strategy)
	}

	return resp, err
}

// Detach launches the recording in a detached tmux session.
func (a *RecordAdapter) Detach(ctx context.Context, cameraID, duration, command string) (*primary.DetachResponse, error) {
	resp, err := a.service.Detach(ctx, primary.DetachRequest{
		CameraID: cameraID,
		Duration: duration,
		Command:  command,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Recording %s for %s in tmux session %s\n",
		color.GreenString("✓"), cameraID, duration, resp.SessionName)
	fmt.Fprint(a.out, resp.Attach)
	return resp, nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/camrec/internal/ports/primary"
)

// StitchAdapter is a thin adapter that translates CLI operations to StitchService calls.
type StitchAdapter struct {
	service primary.StitchService
	out     io.Writer
}

// NewStitchAdapter creates a new StitchAdapter with the given service.
func NewStitchAdapter(service primary.StitchService, out io.Writer) *StitchAdapter {
	return &StitchAdapter{
		service: service,
		out:     out,
	}
}

// Stitch consolidates a date directory and prints one row per camera.
// Only a missing target is returned as an error.
func (a *StitchAdapter) Stitch(ctx context.Context, req primary.StitchRequest) (*primary.StitchResponse, error) {
	resp, err := a.service.Stitch(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Cameras) == 0 {
		fmt.Fprintf(a.out, "Nothing to stitch in %s\n", resp.DateDir)
		return resp, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CAMERA\tSTATUS\tSEGMENTS\tARCHIVE\tSOURCE")
	fmt.Fprintln(w, "------\t------\t--------\t-------\t------")
	for _, c := range resp.Cameras {
		archive := "-"
		if c.Archive != nil {
			archive = filepath.Base(c.Archive.OutputPath)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			c.CameraID,
			statusText(c.Status),
			c.SegmentCount,
			archive,
			sourceText(c, resp.DeleteSource),
		)
	}
	w.Flush()

	for _, c := range resp.Cameras {
		if c.Err != nil {
			fmt.Fprintf(a.out, "%s %s: %v\n", color.RedString("✗"), c.CameraID, c.Err)
		}
		if len(c.Warnings) > 0 {
			fmt.Fprintf(a.out, "%s %s: %d path(s) could not be normalized\n", color.YellowString("!"), c.CameraID, len(c.Warnings))
		}
	}

	fmt.Fprintf(a.out, "\n%d stitched, %d failed in %s\n", resp.Stitched(), resp.Failed(), resp.DateDir)
	return resp, nil
}

func statusText(s primary.CameraStatus) string {
	switch s {
	case primary.CameraStitched:
		return color.GreenString(string(s))
	case primary.CameraFailed:
		return color.RedString(string(s))
	case primary.CameraSkippedExists:
		return color.YellowString(string(s))
	default:
		return string(s)
	}
}

func sourceText(c primary.CameraResult, deleteSource bool) string {
	switch {
	case c.SourceDeleted:
		return "deleted"
	case c.Status == primary.CameraStitched && deleteSource:
		return "kept (removal failed)"
	default:
		return "kept"
	}
}

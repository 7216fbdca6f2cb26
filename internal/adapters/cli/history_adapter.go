package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/camrec/internal/ports/primary"
)

// HistoryAdapter prints the recording ledger.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// Sessions lists recording sessions.
func (a *HistoryAdapter) Sessions(ctx context.Context, filters primary.HistoryFilters) ([]*primary.Session, error) {
	sessions, err := a.service.ListSessions(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No recording sessions found.")
		return sessions, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STARTED\tCAMERA\tDURATION\tSTATE\tSEGMENTS\tOUTPUT")
	fmt.Fprintln(w, "-------\t------\t--------\t-----\t--------\t------")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%ds\t%s\t%d\t%s\n",
			s.StartedAt,
			s.CameraID,
			s.DurationSeconds,
			s.State,
			s.SegmentCount,
			s.OutputDir,
		)
	}
	w.Flush()
	return sessions, nil
}

// Archives lists stitch outcomes.
func (a *HistoryAdapter) Archives(ctx context.Context, filters primary.HistoryFilters) ([]*primary.Archive, error) {
	archives, err := a.service.ListArchives(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(archives) == 0 {
		fmt.Fprintln(a.out, "No archives found.")
		return archives, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCAMERA\tSTATUS\tSEGMENTS\tSOURCE\tOUTPUT")
	fmt.Fprintln(w, "--\t----\t------\t------\t--------\t------\t------")
	for _, ar := range archives {
		source := "kept"
		if ar.SourceDeleted {
			source = "deleted"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			ar.ID,
			ar.Date,
			ar.CameraID,
			ar.Status,
			ar.SegmentCount,
			source,
			ar.OutputPath,
		)
	}
	w.Flush()
	return archives, nil
}

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/wire"
)

// StitchCmd returns the stitch command
func StitchCmd() *cobra.Command {
	var keepSource, overwrite bool

	cmd := &cobra.Command{
		Use:   "stitch <date-or-path>",
		Short: "Concatenate a day's segments into one archive per camera",
		Long: `Concatenate each camera's segments for a date into
<output_root>/<date>/<camera-id>-<date>.mp4 without re-encoding.

Each camera directory is removed only after its archive was written
successfully. A camera that fails keeps its segments untouched and the
remaining cameras are still processed; such failures do not change the
exit status. A missing date directory exits 1.

Examples:
  camrec stitch 2025-01-01
  camrec stitch /output_videos/2025-01-01 --keep-source`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err := wire.StitchAdapter().Stitch(ctx, primary.StitchRequest{
				Target:     args[0],
				KeepSource: keepSource,
				Overwrite:  overwrite,
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Keep camera segment directories after stitching")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace archives that already exist")

	return cmd
}

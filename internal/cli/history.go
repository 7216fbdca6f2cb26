package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded sessions and archives from the ledger",
	}

	cmd.AddCommand(historySessionsCmd())
	cmd.AddCommand(historyArchivesCmd())

	return cmd
}

func historySessionsCmd() *cobra.Command {
	var filters primary.HistoryFilters

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recording sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.HistoryAdapterWithOutput(cmd.OutOrStdout()).Sessions(cmd.Context(), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&filters.CameraID, "camera", "", "Only this camera")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Maximum rows (default 50)")

	return cmd
}

func historyArchivesCmd() *cobra.Command {
	var filters primary.HistoryFilters

	cmd := &cobra.Command{
		Use:   "archives",
		Short: "List stitch outcomes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.HistoryAdapterWithOutput(cmd.OutOrStdout()).Archives(cmd.Context(), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&filters.CameraID, "camera", "", "Only this camera")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Maximum rows (default 50)")

	return cmd
}

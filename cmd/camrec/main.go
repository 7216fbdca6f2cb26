package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/cli"
	"github.com/example/camrec/internal/version"
	"github.com/example/camrec/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "camrec",
		Short:   "camrec - segmented camera recording and daily archival",
		Version: version.String(),
		Long: `camrec records RTSP cameras into fixed-length segment files and later
stitches each camera's segments for a day into a single archive.

Cameras are found by name under the locations root; output lives under
<output_root>/<date>/<camera-id>/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.RecordCmd())
	rootCmd.AddCommand(cli.StitchCmd())
	rootCmd.AddCommand(cli.LocateCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	err := rootCmd.ExecuteContext(context.Background())
	if cerr := wire.Shutdown(); cerr != nil {
		fmt.Fprintln(os.Stderr, "warning: closing ledger:", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

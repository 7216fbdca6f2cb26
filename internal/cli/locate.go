package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/wire"
)

// LocateCmd returns the locate command
func LocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <camera-id>",
		Short: "Show which location directory owns a camera",
		Long: `Search the locations tree for a directory named after the camera and
print the location that contains it.

When several locations contain the same camera id, whichever is visited
first wins; the order is not guaranteed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := wire.LocateService().Locate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", loc.CameraID, loc.LocationPath)
			return nil
		},
	}
}

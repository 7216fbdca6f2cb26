// Package cli contains the cobra commands of camrec.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/config"
	"github.com/example/camrec/internal/logging"
	"github.com/example/camrec/internal/wire"
)

var globalFlags config.Overrides

// BindGlobalFlags registers the persistent flags shared by every command and
// loads the configuration before any command runs.
func BindGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&globalFlags.ConfigPath, "config", "", "config file (default ~/.camrec/config.yaml)")
	pf.StringVar(&globalFlags.LocationsRoot, "locations-root", "", "root of the camera location tree")
	pf.StringVar(&globalFlags.OutputRoot, "output-root", "", "root of the recorded segments and archives")
	pf.StringVar(&globalFlags.Normalize, "normalize", "", "normalization strategy: ownership, permissions or none")
	pf.StringVar(&globalFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(globalFlags)
		if err != nil {
			return err
		}
		logging.Init(cfg.LogLevel)
		wire.Configure(cfg)
		return nil
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/config"
	"github.com/example/camrec/internal/db"
	"github.com/example/camrec/internal/ffmpeg"
	"github.com/example/camrec/internal/version"
	"github.com/example/camrec/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the camrec environment",
		Long: `Environment health check for camrec.

Validates:
- ffmpeg is installed and runnable
- The locations and output roots exist and the output root is writable
- The ledger database opens
- tmux is available for detached recordings

Examples:
  camrec doctor              # Run full health check
  camrec doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runChecks(cmd.Context(), wire.Config())

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printResults(cmd.OutOrStdout(), results, hasErrors)
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func runChecks(ctx context.Context, cfg *config.Config) []CheckResult {
	return []CheckResult{
		checkFFmpeg(ctx, cfg.FFmpegPath),
		checkLocationsRoot(cfg.LocationsRoot),
		checkOutputRoot(cfg.OutputRoot),
		checkLedger(cfg.Ledger),
		checkTmux(),
	}
}

func printResults(out io.Writer, results []CheckResult, hasErrors bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(out, "\n⚠ Issues found.")
	} else {
		fmt.Fprintf(out, "All checks passed. (camrec %s)\n", version.String())
	}
}

func checkFFmpeg(ctx context.Context, bin string) CheckResult {
	path, err := ffmpeg.Ensure(bin)
	if err != nil {
		return CheckResult{Name: "ffmpeg", Status: "✗", Details: "  " + err.Error()}
	}
	v, err := ffmpeg.Version(ctx, path)
	if err != nil {
		return CheckResult{Name: "ffmpeg", Status: "✗", Details: fmt.Sprintf("  %s is not runnable: %v", path, err)}
	}
	return CheckResult{Name: "ffmpeg", Status: "✓", Details: "  " + v}
}

func checkLocationsRoot(root string) CheckResult {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return CheckResult{Name: "Locations root", Status: "✗", Details: fmt.Sprintf("  %s is not a directory", root)}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return CheckResult{Name: "Locations root", Status: "✗", Details: fmt.Sprintf("  %s: %v", root, err)}
	}
	if len(entries) == 0 {
		return CheckResult{Name: "Locations root", Status: "⚠", Details: fmt.Sprintf("  %s has no locations", root)}
	}
	return CheckResult{Name: "Locations root", Status: "✓"}
}

// checkOutputRoot verifies the output root accepts new files. A missing root
// is only a warning because recording creates it.
func checkOutputRoot(root string) CheckResult {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return CheckResult{Name: "Output root", Status: "⚠", Details: fmt.Sprintf("  %s does not exist yet; record will create it", root)}
	}
	if err != nil || !info.IsDir() {
		return CheckResult{Name: "Output root", Status: "✗", Details: fmt.Sprintf("  %s is not a directory", root)}
	}
	probe, err := os.CreateTemp(root, ".camrec-doctor-*")
	if err != nil {
		return CheckResult{Name: "Output root", Status: "✗", Details: fmt.Sprintf("  %s is not writable: %v", root, err)}
	}
	probe.Close()
	os.Remove(probe.Name())
	return CheckResult{Name: "Output root", Status: "✓"}
}

func checkLedger(cfg config.LedgerConfig) CheckResult {
	if !cfg.Enabled {
		return CheckResult{Name: "Ledger", Status: "✓", Details: "  disabled"}
	}
	conn, err := db.Open(cfg.Path)
	if err != nil {
		return CheckResult{Name: "Ledger", Status: "⚠", Details: fmt.Sprintf("  %s: %v\n  Recording and stitching still work without it.", filepath.Clean(cfg.Path), err)}
	}
	conn.Close()
	return CheckResult{Name: "Ledger", Status: "✓"}
}

func checkTmux() CheckResult {
	if _, err := exec.LookPath("tmux"); err != nil {
		return CheckResult{Name: "tmux", Status: "⚠", Details: "  tmux not found; record --detach is unavailable"}
	}
	return CheckResult{Name: "tmux", Status: "✓"}
}

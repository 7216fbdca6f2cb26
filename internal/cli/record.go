package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/wire"
)

// RecordCmd returns the record command
func RecordCmd() *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "record <camera-id> <duration>",
		Short: "Record a camera into timestamped segments",
		Long: `Record a camera's RTSP stream into fixed-length segment files under
<output_root>/<date>/<camera-id>/.

Duration is plain seconds or a number with a unit: s, m, h or d.
Ctrl-C stops the recording cleanly; segments already written are kept.

Examples:
  camrec record cam1 1m
  camrec record cam1 1.5d
  camrec record cam1 24h --detach   # run in tmux session camrec-cam1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cameraID, duration := args[0], args[1]

			if detach {
				exe, err := os.Executable()
				if err != nil {
					exe = os.Args[0]
				}
				command := shellJoin(append([]string{exe}, withoutDetach(os.Args[1:])...))
				_, err = wire.RecordAdapter().Detach(cmd.Context(), cameraID, duration, command)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err := wire.RecordAdapter().Record(ctx, cameraID, duration)
			return err
		},
	}

	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "Run the recording in a detached tmux session")

	return cmd
}

// withoutDetach drops the --detach flag so the detached session records in
// the foreground.
func withoutDetach(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch a {
		case "--detach", "-d", "--detach=true":
			continue
		}
		out = append(out, a)
	}
	return out
}

// shellJoin quotes args for a POSIX shell.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a != "" && !strings.ContainsAny(a, " \t\n'\"\\$`;&|<>()*?[]#~!{}") {
			quoted[i] = a
			continue
		}
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}

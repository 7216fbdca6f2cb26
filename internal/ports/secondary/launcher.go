package secondary

import "context"

// SessionLauncher runs a command in a detached terminal session that
// outlives the invoking shell.
type SessionLauncher interface {
	// SessionExists checks if a session with this name is running.
	SessionExists(ctx context.Context, name string) bool

	// LaunchDetached starts command in a new detached session.
	LaunchDetached(ctx context.Context, name, workDir, command string) error

	// AttachInstructions tells the user how to reach a launched session.
	AttachInstructions(name string) string
}

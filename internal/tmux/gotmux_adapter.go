// Package tmux wraps gotmux for the detached recording sessions.
package tmux

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// GotmuxAdapter wraps gotmux library for session lifecycle management
type GotmuxAdapter struct {
	tmux *gotmux.Tmux
}

// NewGotmuxAdapter creates a new gotmux adapter
func NewGotmuxAdapter() (*GotmuxAdapter, error) {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux client: %w", err)
	}
	return &GotmuxAdapter{
		tmux: tmux,
	}, nil
}

// respawnArgs builds the respawn-pane invocation that makes command the root
// process of pane. tmux hands command to the shell as a single argument, so
// quoting already applied by the caller reaches the shell intact.
func respawnArgs(paneID, workDir, command string) []string {
	return []string{"respawn-pane", "-k", "-t", paneID, "-c", workDir, command}
}

// NewDetachedSession starts a session whose only pane runs command.
// The session ends when command exits.
//
// gotmux wraps ShellCommand in one pair of single quotes, which breaks any
// command that carries its own quoting, so the session starts with a plain
// shell and the pane is respawned with command.
func (g *GotmuxAdapter) NewDetachedSession(name, workDir, command string) error {
	session, err := g.tmux.NewSession(&gotmux.SessionOptions{
		Name:           name,
		StartDirectory: workDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create session %s: %w", name, err)
	}

	windows, err := session.ListWindows()
	if err != nil || len(windows) == 0 {
		_ = session.Kill()
		return fmt.Errorf("failed to get window of session %s: %w", name, err)
	}
	panes, err := windows[0].ListPanes()
	if err != nil || len(panes) == 0 {
		_ = session.Kill()
		return fmt.Errorf("failed to get pane of session %s: %w", name, err)
	}

	out, err := exec.Command("tmux", respawnArgs(panes[0].Id, workDir, command)...).CombinedOutput()
	if err != nil {
		_ = session.Kill()
		return fmt.Errorf("failed to start command in session %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// GetSession returns a gotmux Session by name, or nil if not found.
func (g *GotmuxAdapter) GetSession(name string) (*gotmux.Session, error) {
	sessions, err := g.tmux.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

// SessionExists checks if a tmux session exists
func (g *GotmuxAdapter) SessionExists(name string) bool {
	s, err := g.GetSession(name)
	return err == nil && s != nil
}

// AttachInstructions returns instructions for attaching to a recording session
func AttachInstructions(sessionName string) string {
	return fmt.Sprintf("  Attach:  tmux attach -t %s\n"+
		"  Stop:    Ctrl+c inside the session\n"+
		"  Detach:  Ctrl+b then d\n",
		sessionName)
}

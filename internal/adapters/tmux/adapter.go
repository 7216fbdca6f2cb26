// Package tmux contains TMux adapter implementations.
package tmux

import (
	"context"
	"fmt"

	"github.com/example/camrec/internal/ports/secondary"
	tmuxpkg "github.com/example/camrec/internal/tmux"
)

// Adapter implements secondary.SessionLauncher by wrapping the internal/tmux package.
type Adapter struct {
	client *tmuxpkg.GotmuxAdapter
}

// NewAdapter creates a new TMux adapter. The tmux client is created lazily
// so commands that never detach work on hosts without tmux.
func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) gotmux() (*tmuxpkg.GotmuxAdapter, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := tmuxpkg.NewGotmuxAdapter()
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// SessionExists checks if a TMux session exists.
func (a *Adapter) SessionExists(ctx context.Context, name string) bool {
	client, err := a.gotmux()
	if err != nil {
		return false
	}
	return client.SessionExists(name)
}

// LaunchDetached starts command in a new detached TMux session.
func (a *Adapter) LaunchDetached(ctx context.Context, name, workDir, command string) error {
	client, err := a.gotmux()
	if err != nil {
		return fmt.Errorf("tmux unavailable: %w", err)
	}
	return client.NewDetachedSession(name, workDir, command)
}

// AttachInstructions returns how to reattach to a launched session.
func (a *Adapter) AttachInstructions(name string) string {
	return tmuxpkg.AttachInstructions(name)
}

// Ensure Adapter implements the interface
var _ secondary.SessionLauncher = (*Adapter)(nil)

package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Ensure resolves the ffmpeg binary, either a bare name looked up in PATH
// or an explicit path.
func Ensure(bin string) (string, error) {
	if bin == "" {
		bin = "ffmpeg"
	}
	p, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found (%s): %w", bin, err)
	}
	return p, nil
}

// Version returns the first line of `ffmpeg -version`.
func Version(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg -version failed: %w", err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

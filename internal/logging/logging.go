// Package logging builds the zerolog loggers used for diagnostics.
// User-facing status output goes through the cli adapters instead.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = zerolog.Nop()
)

// New returns a console logger writing to w at the given level.
// An unknown level falls back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Init installs the process-wide logger on stderr.
func Init(level string) {
	SetRoot(New(os.Stderr, level))
}

// SetRoot replaces the process-wide logger.
func SetRoot(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = l
}

// GetLogger returns the process-wide logger tagged with a module name.
// Before Init it discards everything.
func GetLogger(module string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("module", module).Logger()
}

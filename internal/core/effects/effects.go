// Package effects defines effect types as data structures representing I/O operations.
// Planners in internal/core return effects; internal/app interprets them.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// File operations understood by the executor.
const (
	FileWrite      = "write"
	FileRemove     = "remove"      // single file, missing is not an error
	FileRename     = "rename"      // Path -> Target
	FileRemoveTree = "remove_tree" // directory and everything beneath it
)

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string
	Path      string
	Target    string // For rename
	Content   []byte // For write operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// NormalizeEffect asks for ownership/permission normalization of a subtree.
// Its failures are warnings, never errors.
type NormalizeEffect struct {
	Path string
}

func (e NormalizeEffect) EffectType() string { return "normalize" }

package models

import (
	"errors"
	"fmt"
)

// Error kinds. Typed errors below unwrap to one of these so callers can
// branch with errors.Is without caring about the concrete type.
var (
	ErrNotFound        = errors.New("not found")
	ErrConfig          = errors.New("configuration error")
	ErrInvalidDuration = errors.New("invalid duration format")
	ErrProcess         = errors.New("external process failed")
)

// NotFoundError reports a camera or target directory that does not exist.
type NotFoundError struct {
	Kind string // "camera" or "directory"
	Name string
	Root string
}

func (e *NotFoundError) Error() string {
	if e.Root == "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %q not found in %s", e.Kind, e.Name, e.Root)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConfigError reports a stream configuration that could not be loaded or
// does not yield a usable stream URL.
type ConfigError struct {
	CameraID string
	Reason   string
	Err      error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("camera %s: %s", e.CameraID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func (e *ConfigError) Unwrap() error { return e.Err }

// DurationFormatError carries the input that could not be parsed.
type DurationFormatError struct {
	Input string
}

func (e *DurationFormatError) Error() string {
	return fmt.Sprintf("invalid duration format: %q", e.Input)
}

func (e *DurationFormatError) Unwrap() error { return ErrInvalidDuration }

// ProcessError reports an external capture or concat process that exited
// with a nonzero status or could not be started.
type ProcessError struct {
	Name     string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed (exit %d): %v", e.Name, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s failed (exit %d)", e.Name, e.ExitCode)
}

func (e *ProcessError) Is(target error) bool { return target == ErrProcess }

func (e *ProcessError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConfig reports whether err is a ConfigError.
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// IsInvalidDuration reports whether err is a DurationFormatError.
func IsInvalidDuration(err error) bool { return errors.Is(err, ErrInvalidDuration) }

// IsProcess reports whether err is a ProcessError.
func IsProcess(err error) bool { return errors.Is(err, ErrProcess) }

// PermissionWarning is a non-fatal failure while normalizing ownership or
// permissions on a single path. It is never returned as an error.
type PermissionWarning struct {
	Path string
	Op   string // "chown", "chmod", "stat", "walk"
	Err  error
}

func (w PermissionWarning) String() string {
	return fmt.Sprintf("%s %s: %v", w.Op, w.Path, w.Err)
}

// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/example/camrec/internal/ports/secondary"
)

// Replaceable in tests to simulate failures midway through a stitch.
var (
	renameFunc    = os.Rename
	removeAllFunc = os.RemoveAll
)

// SegmentStore implements secondary.SegmentStore on the local filesystem.
type SegmentStore struct {
	scratchBase string
}

// NewSegmentStore creates a store. Scratch directories are created under
// scratchBase, or os.TempDir() when empty.
func NewSegmentStore(scratchBase string) *SegmentStore {
	return &SegmentStore{scratchBase: scratchBase}
}

// EnsureDir creates a directory with all parent directories.
func (s *SegmentStore) EnsureDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// DirectoryExists checks if a directory exists.
func (s *SegmentStore) DirectoryExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	return info.IsDir(), nil
}

// FileExists checks if a regular file exists.
func (s *SegmentStore) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// ListSubdirectories returns the sorted names of the directories directly inside dir.
func (s *SegmentStore) ListSubdirectories(ctx context.Context, dir string) ([]string, error) {
	return s.list(dir, func(e fs.DirEntry) bool { return e.IsDir() })
}

// ListFiles returns the sorted names of the regular files directly inside dir.
func (s *SegmentStore) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return s.list(dir, func(e fs.DirEntry) bool { return e.Type().IsRegular() })
}

func (s *SegmentStore) list(dir string, keep func(fs.DirEntry) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if keep(e) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// WriteFile writes content to path, replacing any existing file.
func (s *SegmentStore) WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RemoveFile removes a single file. A missing file is not an error.
func (s *SegmentStore) RemoveFile(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// Rename moves src to dst.
func (s *SegmentStore) Rename(ctx context.Context, src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", src, dst, err)
	}
	return nil
}

// RemoveTree removes a directory and all contents.
func (s *SegmentStore) RemoveTree(ctx context.Context, path string) error {
	if err := removeAllFunc(path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}
	return nil
}

// MakeScratchDir creates a new temporary directory.
func (s *SegmentStore) MakeScratchDir(ctx context.Context, pattern string) (string, error) {
	dir, err := os.MkdirTemp(s.scratchBase, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

// Ensure SegmentStore implements the interface
var _ secondary.SegmentStore = (*SegmentStore)(nil)

package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/secondary"
)

// errFound stops the walk once a location matches.
var errFound = errors.New("found")

// CameraLocator finds the location directory owning a camera by walking the
// locations tree top-down. A location is any directory with an immediate
// subdirectory named after the camera.
type CameraLocator struct {
	fsys     fs.FS
	root     string
	maxDepth int
}

// NewCameraLocator searches the tree rooted at root. maxDepth bounds how
// many levels below root a location may sit; 0 means unbounded.
func NewCameraLocator(root string, maxDepth int) *CameraLocator {
	return NewCameraLocatorFS(os.DirFS(root), root, maxDepth)
}

// NewCameraLocatorFS searches fsys, reporting locations joined onto root.
func NewCameraLocatorFS(fsys fs.FS, root string, maxDepth int) *CameraLocator {
	return &CameraLocator{fsys: fsys, root: root, maxDepth: maxDepth}
}

// Locate returns the first location whose immediate subdirectories include
// cameraID. Unreadable subtrees are skipped.
func (l *CameraLocator) Locate(ctx context.Context, cameraID string) (*models.CameraLocation, error) {
	if cameraID == "" || strings.ContainsAny(cameraID, `/\`) || cameraID == "." || cameraID == ".." {
		return nil, fmt.Errorf("invalid camera id %q", cameraID)
	}

	if _, err := fs.Stat(l.fsys, "."); err != nil {
		return nil, &models.NotFoundError{Kind: "directory", Name: l.root}
	}

	var found string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			if p == "." {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if l.maxDepth > 0 && depth(p) > l.maxDepth {
			return fs.SkipDir
		}
		info, statErr := fs.Stat(l.fsys, path.Join(p, cameraID))
		if statErr == nil && info.IsDir() {
			found = p
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, fmt.Errorf("failed to search %s: %w", l.root, err)
	}
	if found == "" {
		return nil, &models.NotFoundError{Kind: "camera", Name: cameraID, Root: l.root}
	}

	return &models.CameraLocation{
		CameraID:     cameraID,
		LocationPath: filepath.Join(l.root, filepath.FromSlash(found)),
	}, nil
}

// depth is the number of path elements below the walk root.
func depth(p string) int {
	if p == "." {
		return 0
	}
	return strings.Count(p, "/") + 1
}

// Ensure CameraLocator implements the interface
var _ secondary.CameraLocator = (*CameraLocator)(nil)

package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/camrec/internal/config"
	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/secondary"
)

// Replaceable in tests; chown to another owner needs privileges.
var (
	chownFunc = os.Chown
	chmodFunc = os.Chmod
)

// Modes applied by the permissions strategy.
const (
	relaxedDirMode  os.FileMode = 0o777
	relaxedFileMode os.FileMode = 0o666
)

// NewNormalizer returns the normalizer for a configured strategy.
func NewNormalizer(strategy string) (secondary.Normalizer, error) {
	switch strategy {
	case config.StrategyOwnership:
		return &OwnershipNormalizer{}, nil
	case config.StrategyPermissions:
		return &PermissionNormalizer{}, nil
	case config.StrategyNone:
		return NoopNormalizer{}, nil
	default:
		return nil, fmt.Errorf("unknown normalize strategy %q", strategy)
	}
}

// OwnershipNormalizer gives a path and everything beneath it the uid/gid of
// the path's parent directory.
type OwnershipNormalizer struct{}

func (n *OwnershipNormalizer) Strategy() string { return config.StrategyOwnership }

// Normalize chowns path recursively. Failures become warnings.
func (n *OwnershipNormalizer) Normalize(ctx context.Context, path string) secondary.NormalizeResult {
	res := secondary.NormalizeResult{Path: path, Strategy: n.Strategy()}

	parent := filepath.Dir(filepath.Clean(path))
	info, err := os.Stat(parent)
	if err != nil {
		res.Warnings = append(res.Warnings, models.PermissionWarning{Path: parent, Op: "stat", Err: err})
		return res
	}
	uid, gid, ok := ownerOf(info)
	if !ok {
		res.Warnings = append(res.Warnings, models.PermissionWarning{
			Path: parent, Op: "stat", Err: fmt.Errorf("ownership not available on this platform"),
		})
		return res
	}

	walk(ctx, path, &res, func(p string, _ fs.DirEntry) (string, error) {
		return "chown", chownFunc(p, uid, gid)
	})
	return res
}

// PermissionNormalizer makes a path and everything beneath it readable and
// writable by everyone: 0777 for directories, 0666 for files.
type PermissionNormalizer struct{}

func (n *PermissionNormalizer) Strategy() string { return config.StrategyPermissions }

// Normalize chmods path recursively. Failures become warnings.
func (n *PermissionNormalizer) Normalize(ctx context.Context, path string) secondary.NormalizeResult {
	res := secondary.NormalizeResult{Path: path, Strategy: n.Strategy()}
	walk(ctx, path, &res, func(p string, d fs.DirEntry) (string, error) {
		mode := relaxedFileMode
		if d.IsDir() {
			mode = relaxedDirMode
		}
		return "chmod", chmodFunc(p, mode)
	})
	return res
}

// NoopNormalizer leaves ownership and permissions alone.
type NoopNormalizer struct{}

func (NoopNormalizer) Strategy() string { return config.StrategyNone }

func (NoopNormalizer) Normalize(ctx context.Context, path string) secondary.NormalizeResult {
	return secondary.NormalizeResult{Path: path, Strategy: config.StrategyNone}
}

// walk applies fn to root and every entry below it, recording one warning
// per failed entry and continuing with the rest.
func walk(ctx context.Context, root string, res *secondary.NormalizeResult, fn func(string, fs.DirEntry) (string, error)) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			res.Warnings = append(res.Warnings, models.PermissionWarning{Path: p, Op: "walk", Err: err})
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if op, err := fn(p, d); err != nil {
			res.Warnings = append(res.Warnings, models.PermissionWarning{Path: p, Op: op, Err: err})
			return nil
		}
		res.Applied++
		return nil
	})
	if err != nil {
		res.Warnings = append(res.Warnings, models.PermissionWarning{Path: root, Op: "walk", Err: err})
	}
}

// Ensure normalizers implement the interface
var (
	_ secondary.Normalizer = (*OwnershipNormalizer)(nil)
	_ secondary.Normalizer = (*PermissionNormalizer)(nil)
	_ secondary.Normalizer = NoopNormalizer{}
)

// Package stitch contains the pure planning logic for consolidating one
// day's segments per camera into a single archive.
// This is part of the Functional Core - no I/O, only pure functions.
package stitch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/camrec/internal/core/effects"
)

// Decision is what the stitcher will do with one camera directory.
type Decision string

const (
	DecisionStitch       Decision = "stitch"
	DecisionSkipEmpty    Decision = "skip_empty"
	DecisionSkipArchived Decision = "skip_archived"
)

// CameraInput is everything the planner needs to know about one camera
// directory. The caller gathers it from the filesystem.
type CameraInput struct {
	DateDir       string
	Date          string
	CameraID      string
	Files         []string // file names directly inside the camera directory
	Extensions    []string // recognized segment extensions, with leading dot
	ArchiveFormat string   // "mp4"
	ArchiveExists bool
	Overwrite     bool
	DeleteSource  bool
	ScratchDir    string // where the concat manifest is written
}

// CameraPlan is the plan for one camera.
//
// Effects are split by when they may run:
//   - Prepare before the concat process
//   - Always after the process, whatever the outcome
//   - OnSuccess only after a zero exit status
//   - OnFailure only after a nonzero exit status
//   - SourceCleanup only after OnSuccess completed and CanDeleteSource allows it
type CameraPlan struct {
	CameraID     string
	Date         string
	Decision     Decision
	Segments     []string // absolute segment paths in concat order
	CameraDir    string
	ManifestPath string
	ArchivePath  string
	PartialPath  string

	Prepare       []effects.Effect
	Always        []effects.Effect
	OnSuccess     []effects.Effect
	OnFailure     []effects.Effect
	SourceCleanup []effects.Effect
}

// ArchiveName returns "<camera>-<date>.<format>".
func ArchiveName(cameraID, date, format string) string {
	return fmt.Sprintf("%s-%s.%s", cameraID, date, format)
}

// CameraDir returns <dateDir>/<cameraID>.
func CameraDir(dateDir, cameraID string) string {
	return filepath.Join(dateDir, cameraID)
}

// ArchivePath returns the archive location in the date directory, next to
// (not inside) the camera directory.
func ArchivePath(dateDir, cameraID, date, format string) string {
	return filepath.Join(dateDir, ArchiveName(cameraID, date, format))
}

// partialName keeps the in-progress output hidden and next to the archive so
// the final rename stays on one filesystem. The real extension is kept last
// so the concat tool picks the right container.
func partialName(cameraID, date, format string) string {
	return fmt.Sprintf(".%s-%s.partial.%s", cameraID, date, format)
}

// SelectSegments filters names down to recognized video extensions
// (case-insensitive) and sorts them lexically, which is chronological for
// timestamped segment names.
func SelectSegments(names, extensions []string) []string {
	var selected []string
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		for _, want := range extensions {
			if ext == strings.ToLower(want) {
				selected = append(selected, name)
				break
			}
		}
	}
	sort.Strings(selected)
	return selected
}

// GenerateCameraPlan builds the plan for one camera directory.
func GenerateCameraPlan(in CameraInput) CameraPlan {
	cameraDir := CameraDir(in.DateDir, in.CameraID)
	plan := CameraPlan{
		CameraID:    in.CameraID,
		Date:        in.Date,
		CameraDir:   cameraDir,
		ArchivePath: ArchivePath(in.DateDir, in.CameraID, in.Date, in.ArchiveFormat),
	}

	names := SelectSegments(in.Files, in.Extensions)
	if len(names) == 0 {
		plan.Decision = DecisionSkipEmpty
		return plan
	}

	for _, name := range names {
		plan.Segments = append(plan.Segments, filepath.Join(cameraDir, name))
	}

	if in.ArchiveExists && !in.Overwrite {
		plan.Decision = DecisionSkipArchived
		return plan
	}

	plan.Decision = DecisionStitch
	plan.ManifestPath = filepath.Join(in.ScratchDir, fmt.Sprintf("%s-%s-files.txt", in.CameraID, in.Date))
	plan.PartialPath = filepath.Join(in.DateDir, partialName(in.CameraID, in.Date, in.ArchiveFormat))

	plan.Prepare = []effects.Effect{
		effects.FileEffect{
			Operation: effects.FileWrite,
			Path:      plan.ManifestPath,
			Content:   Manifest(plan.Segments),
			Mode:      0o644,
		},
	}
	plan.Always = []effects.Effect{
		effects.FileEffect{Operation: effects.FileRemove, Path: plan.ManifestPath},
	}
	plan.OnFailure = []effects.Effect{
		effects.FileEffect{Operation: effects.FileRemove, Path: plan.PartialPath},
	}
	plan.OnSuccess = []effects.Effect{
		effects.FileEffect{Operation: effects.FileRename, Path: plan.PartialPath, Target: plan.ArchivePath},
		effects.NormalizeEffect{Path: in.DateDir},
	}
	if in.DeleteSource {
		plan.SourceCleanup = []effects.Effect{
			effects.FileEffect{Operation: effects.FileRemoveTree, Path: cameraDir},
		}
	} else {
		plan.OnSuccess = append(plan.OnSuccess, effects.LogEffect{
			Level:   "info",
			Message: "source segments kept (--keep-source)",
			Fields:  map[string]any{"camera": in.CameraID, "dir": cameraDir},
		})
	}

	return plan
}

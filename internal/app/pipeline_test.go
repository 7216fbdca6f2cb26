package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/camrec/internal/adapters/filesystem"
	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/ports/secondary"
)

// TestRecordThenStitch locates cam1 under locations/siteA, records two
// segments and stitches the day with default flags.
func TestRecordThenStitch(t *testing.T) {
	root := t.TempDir()
	locations := filepath.Join(root, "locations")
	output := filepath.Join(root, "output")
	if err := os.MkdirAll(filepath.Join(locations, "siteA", "cam1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(locations, "siteB", "cam2"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := filesystem.NewSegmentStore(t.TempDir())
	norm := &mockNormalizer{}

	capture := &fakeRunner{onRun: func(spec secondary.ProcessSpec) secondary.ProcessResult {
		if got := argAfter(spec, "-t"); got != "60" {
			t.Errorf("expected capture bounded to 60 seconds, got %s", got)
		}
		dir := filepath.Dir(lastArg(spec))
		writeFiles(t, dir, "cam1-2025-01-01_10-00-00.mkv", "cam1-2025-01-01_10-00-30.mkv")
		return secondary.ProcessResult{ExitCode: 0}
	}}
	recorder := NewRecordService(
		filesystem.NewCameraLocator(locations, 8),
		&mockStreamLoader{url: "rtsp://10.0.0.5:554/stream1"},
		capture,
		store,
		norm,
		nil,
		nil,
		RecordSettings{OutputRoot: output, FFmpegPath: "ffmpeg", SegmentSeconds: 30, SegmentFormat: "mkv"},
		nil,
		zerolog.Nop(),
		nil,
	)
	recorder.now = func() time.Time { return time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local) }

	rec, err := recorder.Record(context.Background(), primary.RecordRequest{CameraID: "cam1", Duration: "1m"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Session.LocationPath != filepath.Join(locations, "siteA") {
		t.Errorf("expected location %s, got %s", filepath.Join(locations, "siteA"), rec.Session.LocationPath)
	}
	if len(rec.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(rec.Segments))
	}

	concat := &fakeRunner{onRun: func(spec secondary.ProcessSpec) secondary.ProcessResult {
		if err := os.WriteFile(lastArg(spec), []byte("archive"), 0o644); err != nil {
			t.Errorf("write archive: %v", err)
		}
		return secondary.ProcessResult{ExitCode: 0}
	}}
	stitcher := NewStitchService(
		store,
		concat,
		NewEffectExecutor(store, norm, zerolog.Nop()),
		nil,
		StitchSettings{OutputRoot: output, FFmpegPath: "ffmpeg", ArchiveFormat: "mp4", Extensions: []string{".mp4", ".mkv"}},
		nil,
		zerolog.Nop(),
	)

	resp, err := stitcher.Stitch(context.Background(), primary.StitchRequest{Target: "2025-01-01"})
	if err != nil {
		t.Fatalf("stitch: %v", err)
	}
	if resp.Stitched() != 1 || resp.Failed() != 0 {
		t.Fatalf("expected one stitched camera, got %+v", resp.Cameras)
	}

	dateDir := filepath.Join(output, "2025-01-01")
	if _, err := os.Stat(filepath.Join(dateDir, "cam1-2025-01-01.mp4")); err != nil {
		t.Errorf("expected archive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dateDir, "cam1")); !os.IsNotExist(err) {
		t.Errorf("expected cam1 segments to be removed, stat err = %v", err)
	}

	archive := resp.Cameras[0].Archive
	if len(archive.Segments) != 2 || archive.Segments[0].CaptureTimestamp.After(archive.Segments[1].CaptureTimestamp) {
		t.Errorf("expected 2 chronologically ordered segments, got %+v", archive.Segments)
	}

	// Normalization ran after recording and after stitching, on the date directory.
	if len(norm.paths) != 2 || norm.paths[0] != dateDir || norm.paths[1] != dateDir {
		t.Errorf("expected two normalizations of %s, got %v", dateDir, norm.paths)
	}

	if _, err := recorder.Record(context.Background(), primary.RecordRequest{CameraID: "cam9", Duration: "1m"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown camera, got %v", err)
	}
}

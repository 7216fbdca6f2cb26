package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/example/camrec/internal/adapters/filesystem"
)

func TestSegmentStore_DirectoryOperations(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewSegmentStore(tmpDir)
	ctx := context.Background()
	testDir := filepath.Join(tmpDir, "2025-01-01", "camA")

	// Directory should not exist initially
	exists, err := store.DirectoryExists(ctx, testDir)
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if exists {
		t.Error("expected directory to not exist")
	}

	// Create directory with parents, twice
	for i := 0; i < 2; i++ {
		if err := store.EnsureDir(ctx, testDir); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
	}

	exists, err = store.DirectoryExists(ctx, testDir)
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}

	// Remove directory
	if err := store.RemoveTree(ctx, filepath.Dir(testDir)); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}

	exists, err = store.DirectoryExists(ctx, testDir)
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if exists {
		t.Error("expected directory to not exist after removal")
	}
}

func TestSegmentStore_ListFilesAndSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewSegmentStore("")
	ctx := context.Background()

	for _, d := range []string{"camB", "camA"} {
		if err := os.Mkdir(filepath.Join(tmpDir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"z.mkv", "a.mkv"} {
		if err := os.WriteFile(filepath.Join(tmpDir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	dirs, err := store.ListSubdirectories(ctx, tmpDir)
	if err != nil {
		t.Fatalf("ListSubdirectories failed: %v", err)
	}
	if want := []string{"camA", "camB"}; !reflect.DeepEqual(dirs, want) {
		t.Errorf("subdirectories = %v, want %v", dirs, want)
	}

	files, err := store.ListFiles(ctx, tmpDir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if want := []string{"a.mkv", "z.mkv"}; !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}

	if _, err := store.ListFiles(ctx, filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error listing a missing directory")
	}
}

func TestSegmentStore_FileOperations(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewSegmentStore(tmpDir)
	ctx := context.Background()

	src := filepath.Join(tmpDir, ".camA-2025-01-01.partial.mp4")
	dst := filepath.Join(tmpDir, "camA-2025-01-01.mp4")

	if err := store.WriteFile(ctx, src, []byte("video"), 0); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if ok, _ := store.FileExists(ctx, src); !ok {
		t.Fatal("expected written file to exist")
	}
	if ok, _ := store.FileExists(ctx, tmpDir); ok {
		t.Error("FileExists should be false for a directory")
	}

	if err := store.Rename(ctx, src, dst); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading renamed file: %v", err)
	}
	if string(got) != "video" {
		t.Errorf("renamed content = %q", got)
	}

	if err := store.RemoveFile(ctx, dst); err != nil {
		t.Fatalf("RemoveFile failed: %v", err)
	}
	if err := store.RemoveFile(ctx, dst); err != nil {
		t.Errorf("RemoveFile on missing file should succeed, got %v", err)
	}
}

func TestSegmentStore_MakeScratchDir(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewSegmentStore(tmpDir)

	dir, err := store.MakeScratchDir(context.Background(), "camrec-stitch-*")
	if err != nil {
		t.Fatalf("MakeScratchDir failed: %v", err)
	}
	if filepath.Dir(dir) != tmpDir {
		t.Errorf("scratch dir %s not under %s", dir, tmpDir)
	}
}

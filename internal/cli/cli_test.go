package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/camrec/internal/config"
)

func findSub(t *testing.T, parent *cobra.Command, use string) *cobra.Command {
	t.Helper()
	for _, sub := range parent.Commands() {
		if sub.Name() == use {
			return sub
		}
	}
	t.Fatalf("subcommand %s not registered under %s", use, parent.Name())
	return nil
}

func TestRecordCmdStructure(t *testing.T) {
	cmd := RecordCmd()

	if err := cmd.Args(cmd, []string{"cam1"}); err == nil {
		t.Error("record should require a camera and a duration")
	}
	if err := cmd.Args(cmd, []string{"cam1", "1m"}); err != nil {
		t.Errorf("unexpected args error: %v", err)
	}
	if cmd.Flags().Lookup("detach") == nil {
		t.Error("record should have a --detach flag")
	}
}

func TestStitchCmdStructure(t *testing.T) {
	cmd := StitchCmd()

	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("stitch should require a target")
	}
	for _, flag := range []string{"keep-source", "overwrite"} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Fatalf("stitch should have a --%s flag", flag)
		}
		if f.DefValue != "false" {
			t.Errorf("--%s should default to false, got %s", flag, f.DefValue)
		}
	}
}

func TestHistoryCmdStructure(t *testing.T) {
	cmd := HistoryCmd()
	for _, name := range []string{"sessions", "archives"} {
		sub := findSub(t, cmd, name)
		if sub.Flags().Lookup("camera") == nil || sub.Flags().Lookup("limit") == nil {
			t.Errorf("history %s should have --camera and --limit", name)
		}
	}
}

func TestBindGlobalFlags(t *testing.T) {
	root := &cobra.Command{Use: "camrec"}
	BindGlobalFlags(root)

	for _, flag := range []string{"config", "locations-root", "output-root", "normalize", "log-level"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
	if root.PersistentPreRunE == nil {
		t.Error("expected configuration to load before commands run")
	}
}

func TestWithoutDetach(t *testing.T) {
	got := withoutDetach([]string{"--output-root", "/out", "record", "cam1", "24h", "--detach", "-d"})
	want := []string{"--output-root", "/out", "record", "cam1", "24h"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("withoutDetach = %v, want %v", got, want)
	}
}

func TestShellJoin(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"/usr/local/bin/camrec", "record", "cam1", "1h"}, "/usr/local/bin/camrec record cam1 1h"},
		{[]string{"camrec", "--output-root", "/mnt/my videos"}, "camrec --output-root '/mnt/my videos'"},
		{[]string{"camrec", "it's"}, `camrec 'it'\''s'`},
		{[]string{"camrec", ""}, "camrec ''"},
	}

	for _, tt := range tests {
		if got := shellJoin(tt.args); got != tt.want {
			t.Errorf("shellJoin(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestCheckOutputRoot(t *testing.T) {
	dir := t.TempDir()

	if r := checkOutputRoot(dir); r.Status != "✓" {
		t.Errorf("writable root: expected ✓, got %s %s", r.Status, r.Details)
	}
	if r := checkOutputRoot(filepath.Join(dir, "missing")); r.Status != "⚠" {
		t.Errorf("missing root: expected ⚠, got %s", r.Status)
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if r := checkOutputRoot(file); r.Status != "✗" {
		t.Errorf("file as root: expected ✗, got %s", r.Status)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("probe file should be removed, found %d entries", len(entries))
	}
}

func TestCheckLocationsRoot(t *testing.T) {
	dir := t.TempDir()

	if r := checkLocationsRoot(dir); r.Status != "⚠" {
		t.Errorf("empty root: expected ⚠, got %s", r.Status)
	}
	if err := os.MkdirAll(filepath.Join(dir, "siteA", "cam1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if r := checkLocationsRoot(dir); r.Status != "✓" {
		t.Errorf("populated root: expected ✓, got %s", r.Status)
	}
	if r := checkLocationsRoot(filepath.Join(dir, "missing")); r.Status != "✗" {
		t.Errorf("missing root: expected ✗, got %s", r.Status)
	}
}

func TestCheckLedger(t *testing.T) {
	if r := checkLedger(config.LedgerConfig{Enabled: false}); r.Status != "✓" {
		t.Errorf("disabled ledger: expected ✓, got %s", r.Status)
	}
	path := filepath.Join(t.TempDir(), "sub", "camrec.db")
	if r := checkLedger(config.LedgerConfig{Enabled: true, Path: path}); r.Status != "✓" {
		t.Errorf("new ledger: expected ✓, got %s %s", r.Status, r.Details)
	}
}

func TestCheckFFmpeg_Missing(t *testing.T) {
	r := checkFFmpeg(t.Context(), "camrec-no-such-ffmpeg")
	if r.Status != "✗" {
		t.Errorf("expected ✗ for missing binary, got %s", r.Status)
	}
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, []CheckResult{
		{Name: "ffmpeg", Status: "✓"},
		{Name: "tmux", Status: "⚠", Details: "  tmux not found"},
	}, false)

	out := buf.String()
	if !strings.Contains(out, "tmux not found") || !strings.Contains(out, "All checks passed.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

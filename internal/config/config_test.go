package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME at an empty directory and clears CAMREC_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{EnvConfig, EnvLocationsRoot, EnvOutputRoot, EnvNormalize, EnvFFmpeg, EnvLedger, EnvLogLevel} {
		t.Setenv(env, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LocationsRoot != "/home/scv2/locations" {
		t.Errorf("LocationsRoot = %q", cfg.LocationsRoot)
	}
	if cfg.OutputRoot != "/output_videos" {
		t.Errorf("OutputRoot = %q", cfg.OutputRoot)
	}
	if cfg.Normalize.Strategy != StrategyOwnership {
		t.Errorf("Strategy = %q", cfg.Normalize.Strategy)
	}
	if cfg.Recording.SegmentSeconds != 900 || cfg.Recording.SegmentFormat != "mkv" {
		t.Errorf("unexpected recording config %+v", cfg.Recording)
	}
	if cfg.Stitch.ArchiveFormat != "mp4" || len(cfg.Stitch.Extensions) != 2 {
		t.Errorf("unexpected stitch config %+v", cfg.Stitch)
	}
	if want := filepath.Join(home, ".camrec", "camrec.db"); cfg.Ledger.Path != want {
		t.Errorf("Ledger.Path = %q, want %q", cfg.Ledger.Path, want)
	}
}

func TestLoad_FileEnvAndOverrides(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".camrec", "config.yaml"), `
locations_root: /srv/locations
output_root: /srv/out
normalize:
  strategy: permissions
recording:
  segment_seconds: 300
  interrupt_grace: 3s
stitch:
  extensions: [".mkv"]
`)

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LocationsRoot != "/srv/locations" || cfg.OutputRoot != "/srv/out" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Recording.SegmentSeconds != 300 || cfg.Recording.InterruptGrace != 3*time.Second {
		t.Errorf("recording = %+v", cfg.Recording)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Recording.SegmentFormat != "mkv" {
		t.Errorf("SegmentFormat = %q, want default", cfg.Recording.SegmentFormat)
	}

	t.Setenv(EnvOutputRoot, "/env/out")
	t.Setenv(EnvLedger, "false")
	cfg, err = Load(Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputRoot != "/env/out" {
		t.Errorf("env did not override file: %q", cfg.OutputRoot)
	}
	if cfg.Ledger.Enabled {
		t.Error("CAMREC_LEDGER=false should disable the ledger")
	}

	cfg, err = Load(Overrides{OutputRoot: "/flag/out", Normalize: StrategyNone})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputRoot != "/flag/out" || cfg.Normalize.Strategy != StrategyNone {
		t.Errorf("flags did not override env: %+v", cfg)
	}
}

func TestLoad_LedgerPathFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLedger, "/var/lib/camrec/ledger.db")

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Ledger.Enabled || cfg.Ledger.Path != "/var/lib/camrec/ledger.db" {
		t.Errorf("ledger = %+v", cfg.Ledger)
	}
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	home := isolate(t)

	_, err := Load(Overrides{ConfigPath: filepath.Join(home, "nope.yaml")})
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.yaml")
	writeFile(t, path, "output_root: [\n")

	_, err := Load(Overrides{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"empty output root", func(c *Config) { c.OutputRoot = " " }, "output_root"},
		{"empty locations root", func(c *Config) { c.LocationsRoot = "" }, "locations_root"},
		{"unknown strategy", func(c *Config) { c.Normalize.Strategy = "sudo" }, "unknown normalize strategy"},
		{"zero segment", func(c *Config) { c.Recording.SegmentSeconds = 0 }, "segment_seconds"},
		{"no extensions", func(c *Config) { c.Stitch.Extensions = nil }, "extensions"},
		{"extension without dot", func(c *Config) { c.Stitch.Extensions = []string{"mkv"} }, "must start with a dot"},
		{"negative depth", func(c *Config) { c.Locator.MaxDepth = -1 }, "max_depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errSub)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

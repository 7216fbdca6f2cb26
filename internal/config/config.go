// Package config loads camrec settings from defaults, an optional YAML file,
// environment variables and command-line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Normalization strategies.
const (
	StrategyOwnership   = "ownership"
	StrategyPermissions = "permissions"
	StrategyNone        = "none"
)

// Environment variables read by Load.
const (
	EnvConfig        = "CAMREC_CONFIG"
	EnvLocationsRoot = "CAMREC_LOCATIONS_ROOT"
	EnvOutputRoot    = "CAMREC_OUTPUT_ROOT"
	EnvNormalize     = "CAMREC_NORMALIZE"
	EnvFFmpeg        = "CAMREC_FFMPEG"
	EnvLedger        = "CAMREC_LEDGER"
	EnvLogLevel      = "CAMREC_LOG_LEVEL"
)

// Config represents the full camrec configuration.
type Config struct {
	LocationsRoot string          `yaml:"locations_root"`
	OutputRoot    string          `yaml:"output_root"`
	FFmpegPath    string          `yaml:"ffmpeg"`
	LogLevel      string          `yaml:"log_level"`
	Recording     RecordingConfig `yaml:"recording"`
	Stitch        StitchConfig    `yaml:"stitch"`
	Normalize     NormalizeConfig `yaml:"normalize"`
	Locator       LocatorConfig   `yaml:"locator"`
	Ledger        LedgerConfig    `yaml:"ledger"`
}

// RecordingConfig holds capture settings.
type RecordingConfig struct {
	SegmentSeconds int    `yaml:"segment_seconds"` // segment length, aligned to clock boundaries
	SegmentFormat  string `yaml:"segment_format"`  // container of each segment ("mkv")
	// InterruptGrace bounds how long the capture process gets to finalize
	// its open segment after an interrupt before it is killed.
	InterruptGrace time.Duration `yaml:"interrupt_grace"`
	TmuxPrefix     string        `yaml:"tmux_prefix"`
}

// StitchConfig holds archive settings.
type StitchConfig struct {
	ArchiveFormat string   `yaml:"archive_format"` // "mp4"
	Extensions    []string `yaml:"extensions"`     // recognized segment extensions
	ScratchDir    string   `yaml:"scratch_dir"`    // parent of manifest scratch dirs; empty = os.TempDir()
}

// NormalizeConfig selects the normalization strategy.
type NormalizeConfig struct {
	Strategy string `yaml:"strategy"` // ownership | permissions | none
}

// LocatorConfig bounds the camera search.
type LocatorConfig struct {
	MaxDepth int `yaml:"max_depth"` // 0 = unbounded
}

// LedgerConfig configures the SQLite session/archive ledger.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Overrides are values from command-line flags; empty fields are ignored.
type Overrides struct {
	ConfigPath    string
	LocationsRoot string
	OutputRoot    string
	Normalize     string
	LogLevel      string
}

// Default returns the built-in configuration.
func Default() *Config {
	ledgerPath := filepath.Join(os.TempDir(), "camrec", "camrec.db")
	if home, err := os.UserHomeDir(); err == nil {
		ledgerPath = filepath.Join(home, ".camrec", "camrec.db")
	}

	return &Config{
		LocationsRoot: "/home/scv2/locations",
		OutputRoot:    "/output_videos",
		FFmpegPath:    "ffmpeg",
		LogLevel:      "info",
		Recording: RecordingConfig{
			SegmentSeconds: 900,
			SegmentFormat:  "mkv",
			InterruptGrace: 10 * time.Second,
			TmuxPrefix:     "camrec",
		},
		Stitch: StitchConfig{
			ArchiveFormat: "mp4",
			Extensions:    []string{".mp4", ".mkv"},
		},
		Normalize: NormalizeConfig{Strategy: StrategyOwnership},
		Locator:   LocatorConfig{MaxDepth: 8},
		Ledger:    LedgerConfig{Enabled: true, Path: ledgerPath},
	}
}

// Load builds the effective configuration.
// Resolution order: defaults, YAML file, environment, flag overrides.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	path, explicit := configPath(o)
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	cfg.applyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// configPath returns the file to read and whether the user asked for it
// explicitly. The implicit ~/.camrec/config.yaml may be absent.
func configPath(o Overrides) (string, bool) {
	if o.ConfigPath != "" {
		return o.ConfigPath, true
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".camrec", "config.yaml"), false
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLocationsRoot); v != "" {
		c.LocationsRoot = v
	}
	if v := os.Getenv(EnvOutputRoot); v != "" {
		c.OutputRoot = v
	}
	if v := os.Getenv(EnvNormalize); v != "" {
		c.Normalize.Strategy = v
	}
	if v := os.Getenv(EnvFFmpeg); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv(EnvLedger); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Ledger.Enabled = enabled
		} else {
			c.Ledger.Path = v
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyOverrides(o Overrides) {
	if o.LocationsRoot != "" {
		c.LocationsRoot = o.LocationsRoot
	}
	if o.OutputRoot != "" {
		c.OutputRoot = o.OutputRoot
	}
	if o.Normalize != "" {
		c.Normalize.Strategy = o.Normalize
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LocationsRoot) == "" {
		return errors.New("locations_root is empty")
	}
	if strings.TrimSpace(c.OutputRoot) == "" {
		return errors.New("output_root is empty")
	}
	switch c.Normalize.Strategy {
	case StrategyOwnership, StrategyPermissions, StrategyNone:
	default:
		return fmt.Errorf("unknown normalize strategy %q (want %s, %s or %s)",
			c.Normalize.Strategy, StrategyOwnership, StrategyPermissions, StrategyNone)
	}
	if c.Recording.SegmentSeconds <= 0 {
		return fmt.Errorf("recording.segment_seconds must be positive, got %d", c.Recording.SegmentSeconds)
	}
	if c.Recording.SegmentFormat == "" {
		return errors.New("recording.segment_format is empty")
	}
	if c.Stitch.ArchiveFormat == "" {
		return errors.New("stitch.archive_format is empty")
	}
	if len(c.Stitch.Extensions) == 0 {
		return errors.New("stitch.extensions is empty")
	}
	for _, ext := range c.Stitch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("stitch extension %q must start with a dot", ext)
		}
	}
	if c.Locator.MaxDepth < 0 {
		return fmt.Errorf("locator.max_depth must not be negative, got %d", c.Locator.MaxDepth)
	}
	if c.Ledger.Enabled && c.Ledger.Path == "" {
		return errors.New("ledger.path is empty")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "aurex"

// Defaults applied when a value is missing or invalid.
const (
	DefaultProgressInterval = 250 * time.Millisecond
	DefaultEventBuffer      = 8
	DefaultResampleQuality  = 4
	DefaultLogLevel         = "info"
)

type Config struct {
	Library  LibraryConfig  `koanf:"library"`
	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`
	MPRIS    ToggleConfig   `koanf:"mpris"`
	Notify   ToggleConfig   `koanf:"notify"`
}

// LibraryConfig locates the catalog database and the folders to import.
type LibraryConfig struct {
	DBPath  string   `koanf:"db_path"` // default: $XDG_DATA_HOME/aurex/library.db
	Sources []string `koanf:"sources"` // paths imported by `aurex import` without arguments
}

// PlaybackConfig tunes the playback service and the audio engine.
type PlaybackConfig struct {
	ProgressInterval string `koanf:"progress_interval"` // duration, e.g. "250ms"
	EventBuffer      int    `koanf:"event_buffer"`      // end-of-media channel size (default: 8)
	ResampleQuality  int    `koanf:"resample_quality"`  // 1-6 (default: 4)
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: info)
	File  string `koanf:"file"`  // empty means stderr
	JSON  bool   `koanf:"json"`
}

// ToggleConfig enables or disables an optional integration.
type ToggleConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// Load reads the default config files, then extra if not empty.
// A missing extra file is an error; missing default files are not.
func Load(extra string) (*Config, error) {
	paths := getConfigPaths()
	if extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, extra)
	}
	return loadFrom(paths)
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Last file wins
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Library.DBPath != "" {
		cfg.Library.DBPath = expandPath(cfg.Library.DBPath)
	}
	for i, src := range cfg.Library.Sources {
		cfg.Library.Sources[i] = expandPath(src)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/aurex/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DatabasePath returns the catalog database path, creating the default
// data directory when no path is configured.
func (c *Config) DatabasePath() (string, error) {
	if c.Library.DBPath != "" {
		return c.Library.DBPath, nil
	}
	return xdg.DataFile(filepath.Join(appName, "library.db"))
}

// HistoryPath returns the shell history file under the XDG state dir.
func HistoryPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, "history"))
}

// LogPath returns the log file used while the terminal UI owns the screen.
func LogPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	cfg.ProgressInterval = parseInterval(cfg.ProgressInterval).String()
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}
	if cfg.ResampleQuality < 1 || cfg.ResampleQuality > 6 {
		cfg.ResampleQuality = DefaultResampleQuality
	}

	return cfg
}

// ProgressInterval returns the parsed progress interval, or the default
// when unset, invalid or not positive.
func (c *Config) ProgressInterval() time.Duration {
	return parseInterval(c.Playback.ProgressInterval)
}

func parseInterval(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return DefaultProgressInterval
	}
	return d
}

// MPRISEnabled reports whether the MPRIS adapter should run.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// NotifyEnabled reports whether track change notifications are sent.
func (c *Config) NotifyEnabled() bool {
	return c.Notify.Enabled == nil || *c.Notify.Enabled
}

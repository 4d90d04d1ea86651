// Package config loads the user's countdown preferences from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"countdown/internal/logging"
)

// Config is the on-disk preference file. Command-line flags override it.
type Config struct {
	Up      bool          `yaml:"up"`
	Say     bool          `yaml:"say"`
	Title   string        `yaml:"title"`
	Keys    Keys          `yaml:"keys"`
	Theme   Theme         `yaml:"theme"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// Keys binds key names, as bubbletea spells them ("space", "ctrl+c", "q"),
// to the logical inputs.
type Keys struct {
	Pause []string `yaml:"pause"`
	Quit  []string `yaml:"quit"`
}

// Theme holds lipgloss colors (ANSI numbers or hex).
type Theme struct {
	Digits string `yaml:"digits"`
	Title  string `yaml:"title"`
	Paused string `yaml:"paused"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Keys: Keys{
			Pause: []string{"space", "p"},
			Quit:  []string{"ctrl+c", "esc", "q"},
		},
		Theme: Theme{
			Digits: "69",
			Title:  "241",
			Paused: "214",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    DefaultHistoryPath(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return Normalize(cfg)
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

var (
	ErrNoPauseKey   = errors.New("keys.pause must bind at least one key")
	ErrNoQuitKey    = errors.New("keys.quit must bind at least one key")
	ErrKeyConflict  = errors.New("key bound to both pause and quit")
	ErrUnknownLevel = errors.New("unknown log level")
)

// Normalize fills blanks with defaults and rejects unusable values.
func Normalize(cfg Config) (Config, error) {
	def := Default()

	if cfg.Keys.Pause == nil {
		cfg.Keys.Pause = def.Keys.Pause
	}
	if cfg.Keys.Quit == nil {
		cfg.Keys.Quit = def.Keys.Quit
	}
	if len(cfg.Keys.Pause) == 0 {
		return cfg, ErrNoPauseKey
	}
	if len(cfg.Keys.Quit) == 0 {
		return cfg, ErrNoQuitKey
	}
	for _, p := range cfg.Keys.Pause {
		for _, q := range cfg.Keys.Quit {
			if p == q {
				return cfg, fmt.Errorf("%w: %q", ErrKeyConflict, p)
			}
		}
	}

	if cfg.Theme.Digits == "" {
		cfg.Theme.Digits = def.Theme.Digits
	}
	if cfg.Theme.Title == "" {
		cfg.Theme.Title = def.Theme.Title
	}
	if cfg.Theme.Paused == "" {
		cfg.Theme.Paused = def.Theme.Paused
	}

	if cfg.History.Path == "" {
		cfg.History.Path = def.History.Path
	}

	lvl, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, fmt.Errorf("%w: %s", ErrUnknownLevel, cfg.Log.Level)
	}
	cfg.Log.Level = lvl.String()
	return cfg, nil
}

package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultFile           = "TODO.md"
	DefaultPollIntervalMS = 250
	DefaultDebounceMS     = 300
	DefaultLogDir         = ".tickdown/logs"
	DefaultAccent         = "205"
)

// Config holds the full configuration for tickdown.
type Config struct {
	// File is the markdown document to watch.
	File string `toml:"file"`

	// Watch timing
	PollIntervalMS int `toml:"poll_interval_ms"`
	DebounceMS     int `toml:"debounce_ms"`

	// Display
	ShowCompleted  bool   `toml:"show_completed"`
	NoHeadingLabel string `toml:"no_heading_label"`

	// Logging
	LogDir string `toml:"log_dir"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Theme
	Theme ThemeConfig `toml:"theme"`

	// Quiet suppresses non-error output (flag only).
	Quiet bool `toml:"-"`

	// ConfigFile is an explicit config path from --config (flag only).
	ConfigFile string `toml:"-"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// ThemeConfig holds panel colors.
type ThemeConfig struct {
	Accent string `toml:"accent"`
}

// PollInterval returns the poll setting as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// DebounceWindow returns the debounce setting as a duration.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Accent returns the configured accent color, falling back to the
// default when unset.
func (c *Config) Accent() string {
	if c.Theme.Accent == "" {
		return DefaultAccent
	}
	return c.Theme.Accent
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("file must not be empty")
	}
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMS)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if c.LogDir == "" {
		return fmt.Errorf("log_dir must not be empty")
	}
	return nil
}

func setDefaults(cfg *Config) {
	cfg.File = DefaultFile
	cfg.PollIntervalMS = DefaultPollIntervalMS
	cfg.DebounceMS = DefaultDebounceMS
	cfg.ShowCompleted = false
	cfg.LogDir = DefaultLogDir
}

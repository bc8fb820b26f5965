package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnv overrides config from TICKDOWN_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TICKDOWN_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("TICKDOWN_POLL_MS"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.PollIntervalMS = i
		}
	}
	if v := os.Getenv("TICKDOWN_DEBOUNCE_MS"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.DebounceMS = i
		}
	}
	if v := os.Getenv("TICKDOWN_SHOW_COMPLETED"); v != "" {
		cfg.ShowCompleted = boolFromString(v)
	}
	if v := os.Getenv("TICKDOWN_NO_HEADING_LABEL"); v != "" {
		cfg.NoHeadingLabel = v
	}
	if v := os.Getenv("TICKDOWN_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TICKDOWN_HOOK"); v != "" {
		cfg.HookCommand = v
	}
	if v := os.Getenv("TICKDOWN_ACCENT"); v != "" {
		cfg.Theme.Accent = v
	}
}

// boolFromString interprets common truthy spellings.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

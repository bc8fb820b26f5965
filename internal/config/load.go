package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tickdown/tickdown.toml or OS-specific config dir)
// 3. Project config file (tickdown.toml or .tickdown.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// An explicit --config path in args replaces steps 2 and 3 and must
// exist.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2-3. Config files. --config has to be known before flag parsing,
	// so it is scanned out of args up front.
	explicit, err := configPathFromArgs(args)
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		if err := loadConfigFile(cfg, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		if userFile := findUserConfigFile(); userFile != "" {
			if err := loadConfigFile(cfg, userFile); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
			}
		}
		if projectFile := findProjectConfigFile(); projectFile != "" {
			if err := loadConfigFile(cfg, projectFile); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", projectFile, err)
			}
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// configPathFromArgs extracts the value of --config from raw args
// before the flag set has parsed them. Both "--config path" and
// "--config=path" forms are recognized, with one or two dashes.
func configPathFromArgs(args []string) (string, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return "", nil
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		switch {
		case name == "config":
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag --config needs a path")
			}
			return args[i+1], nil
		case strings.HasPrefix(name, "config="):
			return strings.TrimPrefix(name, "config="), nil
		}
	}
	return "", nil
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// findProjectConfigFile looks for a config file in the current
// directory.
func findProjectConfigFile() string {
	names := []string{"tickdown.toml", ".tickdown.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file. Checks
// ~/.tickdown/tickdown.toml first, then falls back to the OS-specific
// config directory.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".tickdown", "tickdown.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(cfgDir, "tickdown", "tickdown.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	cfg.File = expandPath(cfg.File)
	cfg.LogDir = expandPath(cfg.LogDir)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(cfg.ProjectRoot, cfg.File)
	}
	if !filepath.IsAbs(cfg.LogDir) {
		cfg.LogDir = filepath.Join(cfg.ProjectRoot, cfg.LogDir)
	}

	return nil
}

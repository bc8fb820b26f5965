// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tickdown/tickdown.toml or OS-specific config directory)
// 3. Project config file (tickdown.toml or .tickdown.toml in the working directory)
// 4. Environment variables (TICKDOWN_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// An explicit --config path replaces both discovered files.
//
// User-level config locations:
// - ~/.tickdown/tickdown.toml (preferred)
// - Windows: %APPDATA%\tickdown\tickdown.toml
// - macOS: ~/Library/Application Support/tickdown/tickdown.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tickdown/tickdown.toml or ~/.config/tickdown/tickdown.toml
//
// Project-level config locations (overrides user config):
// - ./tickdown.toml (preferred)
// - ./.tickdown.toml
package config

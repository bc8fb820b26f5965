package config

import (
	"fmt"
	"os"
)

// ExampleConfig returns an example configuration showing all available
// options.
func ExampleConfig() string {
	return `# Tickdown configuration file
# Every value can be overridden by TICKDOWN_* environment variables or CLI flags

# Markdown file to watch (relative paths resolve against the working directory)
file = "TODO.md"

# How often the file is polled for changes (milliseconds)
poll_interval_ms = 250

# How long a burst of saves must stay quiet before the trailing re-parse (milliseconds)
debounce_ms = 300

# Show completed tasks in the panel by default
show_completed = false

# Group label for tasks that appear before the first heading
# no_heading_label = "No heading"

# Session log directory (supports ~ and $VAR expansion)
log_dir = ".tickdown/logs"

# Command to run after each toggle; receives <file> <line> <new-state>
# hook_command = "/path/to/hook.sh"

[theme]
# Accent color for headings and the cursor (ANSI 256 index or hex)
accent = "205"
`
}

// WriteExample writes the example configuration to path, refusing to
// overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(ExampleConfig()), 0644)
}

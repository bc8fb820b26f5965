package config

import "flag"

// parseFlags defines and parses the global CLI flags. Flag defaults are
// the values already accumulated from files and environment, so an
// absent flag changes nothing.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tickdown", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Explicit config file path")
	fs.StringVar(&cfg.File, "file", cfg.File, "Markdown file to watch")
	fs.IntVar(&cfg.PollIntervalMS, "poll-ms", cfg.PollIntervalMS, "File poll interval in milliseconds")
	fs.IntVar(&cfg.DebounceMS, "debounce-ms", cfg.DebounceMS, "Change debounce window in milliseconds")
	fs.BoolVar(&cfg.ShowCompleted, "show-completed", cfg.ShowCompleted, "Show completed tasks in the panel")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory")
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Command to run after each toggle")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Suppress non-error output")

	return fs.Parse(args)
}

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/logging"
)

// tailCommand tails the latest session log file.
func tailCommand(cfg *config.Config, args []string) error {
	// Parse tail-specific flags
	fs := flag.NewFlagSet("tickdown tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Find the latest JSONL file
	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	if !cfg.Quiet {
		fmt.Printf("Tailing: %s\n", logPath)
		if *follow {
			fmt.Println("(Ctrl+C to stop)")
		}
		fmt.Println()
	}

	return logging.TailLog(os.Stdout, logPath, *n, *follow)
}

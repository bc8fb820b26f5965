package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/document"
	"github.com/tickdown/tickdown/internal/logging"
	"github.com/tickdown/tickdown/internal/tasks"
	"github.com/tickdown/tickdown/internal/watch"
)

// watchCommand runs the headless watch loop, printing one summary line
// per parse cycle until interrupted.
func watchCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse watch-specific flags
	fs := flag.NewFlagSet("tickdown watch", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := bindFile(cfg, fs.Args()); err != nil {
		return err
	}

	store := document.NewStore(cfg.File)

	var logger *logging.SessionLogger
	if !cfg.Quiet {
		l, err := logging.NewSessionLogger(cfg.LogDir, cfg.File)
		if err != nil {
			return fmt.Errorf("open session log: %w", err)
		}
		logger = l
		defer func() { _ = logger.Close() }()
		logger.Start(cfg.File)
		fmt.Printf("Watching %s (log: %s)\n", cfg.File, logger.LogPath)
	}

	session := watch.NewSession(store, watch.Options{
		Parser:   tasks.Parser{NoHeadingLabel: cfg.NoHeadingLabel},
		Poll:     cfg.PollInterval(),
		Debounce: cfg.DebounceWindow(),
		Logger:   logger,
	})

	err := session.Run(ctx, func(st watch.Status) {
		if st.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", st.Err)
			return
		}
		if cfg.Quiet {
			return
		}
		fmt.Printf("%s %-6s %d open · %d done in %d groups (%.1fms)\n",
			time.Now().Format("15:04:05"), st.Trigger,
			st.Result.TotalOpen, st.Result.TotalCompleted, len(st.Result.Groups),
			float64(st.Duration.Microseconds())/1000)
	})
	if errors.Is(err, context.Canceled) {
		// Interrupted by the user; the loop ending is the expected exit.
		return nil
	}
	return err
}

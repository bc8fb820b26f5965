package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/document"
	"github.com/tickdown/tickdown/internal/hooks"
	"github.com/tickdown/tickdown/internal/outline"
)

// toggleCommand flips the checkbox on a 1-based source line.
func toggleCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse toggle-specific flags
	fs := flag.NewFlagSet("tickdown toggle", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("usage: tickdown toggle <line> [file]")
	}
	lineNo, err := strconv.Atoi(remaining[0])
	if err != nil || lineNo < 1 {
		return fmt.Errorf("line must be a positive number, got %q", remaining[0])
	}
	if err := bindFile(cfg, remaining[1:]); err != nil {
		return err
	}
	line := lineNo - 1 // editors count from 1, the engine from 0

	store := document.NewStore(cfg.File)
	snap, err := store.Read()
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	if line >= len(snap.Lines) {
		return fmt.Errorf("%s has only %d lines", cfg.File, len(snap.Lines))
	}
	cb, ok := outline.ParseCheckbox(snap.Lines[line])
	if !ok {
		return fmt.Errorf("line %d has no checkbox", lineNo)
	}

	completed := !cb.Completed()
	if err := store.Toggle(line, cb.Completed()); err != nil {
		return fmt.Errorf("toggling line %d: %w", lineNo, err)
	}

	if cfg.HookCommand != "" {
		_, err := hooks.Invoke(ctx, hooks.Options{
			Command:   cfg.HookCommand,
			File:      cfg.File,
			Line:      line,
			Completed: completed,
			WorkDir:   cfg.ProjectRoot,
			Stderr:    os.Stderr,
		})
		if err != nil {
			// The toggle already landed; a failing hook is reported but
			// does not undo it.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	if !cfg.Quiet {
		fmt.Printf("Line %d marked %s\n", lineNo, hooks.StateWord(completed))
	}
	return nil
}

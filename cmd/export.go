package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/snapshot"
)

// exportCommand writes a snapshot JSON document for the current parse.
func exportCommand(cfg *config.Config, args []string) error {
	// Parse export-specific flags
	fs := flag.NewFlagSet("tickdown export", flag.ContinueOnError)
	out := fs.String("out", "", "Write the snapshot to a file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := bindFile(cfg, fs.Args()); err != nil {
		return err
	}

	res, err := parseDocument(cfg)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	f := snapshot.FromResult(cfg.File, res, time.Now())

	if *out == "" {
		return f.Encode(os.Stdout)
	}
	if err := f.Save(*out); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Printf("Wrote snapshot: %s (%d open, %d done)\n", *out, f.TotalOpen, f.TotalCompleted)
	}
	return nil
}

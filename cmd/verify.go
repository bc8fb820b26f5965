package cmd

import (
	"flag"
	"fmt"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/snapshot"
)

// verifyCommand validates a snapshot file against the bundled schema.
func verifyCommand(cfg *config.Config, args []string) error {
	// Parse verify-specific flags
	fs := flag.NewFlagSet("tickdown verify", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("usage: tickdown verify <snapshot.json>")
	}
	path := remaining[0]

	f, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	result := f.Validate()
	for _, w := range result.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	if result.Valid {
		if !cfg.Quiet {
			fmt.Printf("✅ %s is a valid snapshot (%d open, %d done)\n", path, f.TotalOpen, f.TotalCompleted)
		}
		return nil
	}

	fmt.Println("❌ Validation failed:")
	for _, e := range result.Errors {
		fmt.Printf("   - %v\n", e)
	}
	return fmt.Errorf("snapshot validation failed")
}

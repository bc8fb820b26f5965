package cmd

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/ui"
)

// doctorCommand checks the document, config, log directory, hook, and
// terminal.
func doctorCommand(cfg *config.Config, args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("tickdown doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := bindFile(cfg, fs.Args()); err != nil {
		return err
	}

	fmt.Println("Tickdown Doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	// Check the document
	fmt.Printf("Document: %s\n", cfg.File)
	info, err := os.Stat(cfg.File)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (run 'tickdown init' to create it)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		res, parseErr := parseDocument(cfg)
		if parseErr != nil {
			fmt.Printf("  ❌ Read error: %v\n", parseErr)
			allOK = false
		} else {
			fmt.Printf("  ✅ Parses: %d open, %d done in %d groups\n",
				res.TotalOpen, res.TotalCompleted, len(res.Groups))
			if *verbose {
				for _, g := range res.Groups {
					fmt.Printf("     %s: %d open, %d done\n", g.Heading, g.OpenCount, g.CompletedCount)
				}
			}
		}
	}
	fmt.Println()

	// Check config values
	fmt.Println("Config:")
	fmt.Printf("  ✅ Poll interval: %s\n", cfg.PollInterval())
	fmt.Printf("  ✅ Debounce window: %s\n", cfg.DebounceWindow())
	if cfg.NoHeadingLabel != "" {
		fmt.Printf("  ✅ No-heading label: %q\n", cfg.NoHeadingLabel)
	}
	fmt.Println()

	// Check log directory
	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (created on first run)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check hook command
	if cfg.HookCommand != "" {
		fmt.Printf("Hook command: %s\n", cfg.HookCommand)
		if !checkHookBinary(cfg.HookCommand) {
			allOK = false
		}
		fmt.Println()
	}

	// Check terminal
	fmt.Println("Terminal:")
	if ui.IsTTY(os.Stdout) {
		fmt.Println("  ✅ stdout is a TTY")
	} else {
		fmt.Println("  ⚠️  stdout is not a TTY (the panel needs one; ls and watch still work)")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Tickdown may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkHookBinary reports whether a configured hook command resolves to
// something runnable.
func checkHookBinary(command string) bool {
	if info, err := os.Stat(command); err == nil {
		if info.IsDir() {
			fmt.Println("  ❌ Path is a directory")
			return false
		}
		if info.Mode().Perm()&0111 == 0 {
			fmt.Println("  ❌ Not executable")
			return false
		}
		fmt.Println("  ✅ OK")
		return true
	}

	if resolved, err := exec.LookPath(command); err == nil {
		fmt.Printf("  ✅ OK (found in PATH: %s)\n", resolved)
		return true
	}

	fmt.Println("  ❌ Not found")
	return false
}

// Package cmd implements the CLI command structure for tickdown.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tickdown CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tickdown", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand. No args, or a first arg that is a flag,
	// means the default command: the interactive panel.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "toggle":
		return toggleCommand(ctx, cfg, remainingArgs)
	case "watch":
		return watchCommand(ctx, cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "verify":
		return verifyCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// If it's not a recognized command, it might be a document path
		// for the panel. Check if it's an existing file.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.File = subcommand
			return tuiCommand(ctx, cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive panel.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse tui-specific flags
	fs := flag.NewFlagSet("tickdown tui", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := bindFile(cfg, fs.Args()); err != nil {
		return err
	}

	return ui.RunTUI(ctx, cfg)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tickdown version %s\n", Version)
	return nil
}

// bindFile applies an optional positional document argument and
// resolves the final path against the project root.
func bindFile(cfg *config.Config, remaining []string) error {
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.File = remaining[0]
	}
	if !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(cfg.ProjectRoot, cfg.File)
	}
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tickdown - A live task panel for markdown checklists")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tickdown [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]            Open the interactive panel (default command)")
	fmt.Fprintln(w, "  ls [file]             Print the parsed task groups")
	fmt.Fprintln(w, "  toggle <line> [file]  Toggle the checkbox on a 1-based source line")
	fmt.Fprintln(w, "  watch [file]          Watch the document and print a summary per parse")
	fmt.Fprintln(w, "  export [file]         Write a snapshot JSON document")
	fmt.Fprintln(w, "  verify <snapshot>     Validate a snapshot against the bundled schema")
	fmt.Fprintln(w, "  init                  Write an example tickdown.toml and a starter TODO.md")
	fmt.Fprintln(w, "  doctor [file]         Check the document, config, and environment")
	fmt.Fprintln(w, "  tail                  Tail the latest session log")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|json|yaml) (default text)")
	fmt.Fprintln(w, "  -query string")
	fmt.Fprintln(w, "        jq expression applied to structured output")
	fmt.Fprintln(w, "  -all")
	fmt.Fprintln(w, "        Include completed root tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -out string")
	fmt.Fprintln(w, "        Write the snapshot to a file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}

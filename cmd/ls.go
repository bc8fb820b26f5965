package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/document"
	"github.com/tickdown/tickdown/internal/output"
	"github.com/tickdown/tickdown/internal/outline"
	"github.com/tickdown/tickdown/internal/snapshot"
	"github.com/tickdown/tickdown/internal/tasks"
)

// lsCommand prints the parsed task groups.
func lsCommand(cfg *config.Config, args []string) error {
	// Parse ls-specific flags
	fs := flag.NewFlagSet("tickdown ls", flag.ContinueOnError)
	formatFlag := fs.String("format", "text", "Output format (text|json|yaml)")
	query := fs.String("query", "", "jq expression applied to structured output")
	all := fs.Bool("all", false, "Include completed root tasks")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := bindFile(cfg, fs.Args()); err != nil {
		return err
	}

	format, err := output.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}
	if *query != "" && !output.IsStructured(format) {
		return fmt.Errorf("--query needs --format json or yaml")
	}

	res, err := parseDocument(cfg)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	if output.IsStructured(format) {
		printer := &output.Printer{W: os.Stdout, Format: format, Query: *query}
		return printer.Print(snapshot.FromResult(cfg.File, res, time.Now()))
	}

	printGroups(os.Stdout, res, *all)
	return nil
}

// parseDocument runs one read-scan-parse pass over the configured
// document.
func parseDocument(cfg *config.Config) (tasks.Result, error) {
	snap, err := document.NewStore(cfg.File).Read()
	if err != nil {
		return tasks.Result{}, err
	}
	p := tasks.Parser{NoHeadingLabel: cfg.NoHeadingLabel}
	return p.Parse(outline.Scan(snap.Lines), snap.Lines), nil
}

// printGroups renders the text listing: one block per heading group,
// with 1-based line numbers so the output pairs with 'tickdown toggle'.
func printGroups(w io.Writer, res tasks.Result, all bool) {
	if res.Empty() {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	printed := 0
	for _, g := range res.Groups {
		roots := g.Open
		if all {
			roots = append(append([]*tasks.Task{}, g.Open...), g.Completed...)
		}
		if len(roots) == 0 {
			continue
		}
		if printed > 0 {
			fmt.Fprintln(w)
		}
		printed++
		fmt.Fprintf(w, "%s (%d open, %d done)\n", g.Heading, g.OpenCount, g.CompletedCount)
		for _, t := range roots {
			printTask(w, t, 0)
		}
	}
	if printed == 0 {
		fmt.Fprintln(w, "No open tasks. Use -all to include completed ones.")
		return
	}
	fmt.Fprintf(w, "\n%d open · %d done\n", res.TotalOpen, res.TotalCompleted)
}

// printTask prints one task line and recurses into its children.
func printTask(w io.Writer, t *tasks.Task, depth int) {
	marker := "[ ]"
	if t.Completed {
		marker = "[x]"
	}
	fmt.Fprintf(w, "  %4d %s%s %s\n", t.Line+1, strings.Repeat("  ", depth), marker, t.Text)
	for _, c := range t.Children {
		printTask(w, c, depth+1)
	}
}

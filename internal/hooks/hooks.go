// Package hooks invokes external post-toggle hooks.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// Options configures a hook invocation.
type Options struct {
	Command   string // hook executable, empty disables the hook
	File      string // document the toggle was applied to
	Line      int    // zero-based line of the toggled checkbox
	Completed bool   // state after the toggle
	WorkDir   string
	Stdout    io.Writer // nil discards hook output
	Stderr    io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// StateWord returns the state argument for a toggle outcome.
func StateWord(completed bool) string {
	if completed {
		return "completed"
	}
	return "open"
}

// Invoke runs the hook command with the toggled file, the one-based
// line number, and the new state as arguments.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" || opts.File == "" {
		return Result{}, nil
	}

	args := []string{opts.File, strconv.Itoa(opts.Line + 1), StateWord(opts.Completed)}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tickdown/tickdown/internal/config"
)

// TestMain isolates the suite from the host environment: commands load
// config from HOME and from TICKDOWN_* variables, and tests must not
// pick up whatever the machine running them has configured.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "tickdown-test-home")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Setenv("HOME", home)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "TICKDOWN_") {
			os.Unsetenv(strings.SplitN(kv, "=", 2)[0])
		}
	}

	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

// writeTestDoc creates a markdown document in a fresh temp dir and
// returns its path.
func writeTestDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TODO.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		ctx := context.Background()
		out, err := captureStdout(t, func() error {
			return Run(ctx, []string{"--help"})
		})
		if err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "tickdown [command]") {
			t.Errorf("help output missing usage line: %q", out)
		}
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		ctx := context.Background()
		_, err := captureStdout(t, func() error {
			return Run(ctx, []string{"-h"})
		})
		if err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		ctx := context.Background()
		_, err := captureStdout(t, func() error {
			return Run(ctx, []string{"help"})
		})
		if err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		ctx := context.Background()
		out, err := captureStdout(t, func() error {
			return Run(ctx, []string{"--version"})
		})
		if err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
		if !strings.Contains(out, "tickdown version") {
			t.Errorf("version output: %q", out)
		}
	})

	t.Run("shows version with version command", func(t *testing.T) {
		ctx := context.Background()
		_, err := captureStdout(t, func() error {
			return Run(ctx, []string{"version"})
		})
		if err != nil {
			t.Errorf("expected no error with version command, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		ctx := context.Background()
		err := Run(ctx, []string{"not-a-command-or-file"})
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("bare invocation needs a terminal", func(t *testing.T) {
		// The default command is the panel, which refuses to start when
		// stdout is not a TTY, as in tests.
		ctx := context.Background()
		_, err := captureStdout(t, func() error {
			return Run(ctx, nil)
		})
		if err == nil || !strings.Contains(err.Error(), "TTY") {
			t.Errorf("expected a TTY error, got %v", err)
		}
	})

	t.Run("existing file path dispatches to the panel", func(t *testing.T) {
		ctx := context.Background()
		path := writeTestDoc(t, "- [ ] a\n")
		_, err := captureStdout(t, func() error {
			return Run(ctx, []string{path})
		})
		// Reaching the TTY check proves the path was taken as a
		// document, not an unknown command.
		if err == nil || !strings.Contains(err.Error(), "TTY") {
			t.Errorf("expected a TTY error, got %v", err)
		}
	})
}

func TestInitCommandCreatesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		File:        filepath.Join(tmpDir, "TODO.md"),
		ProjectRoot: tmpDir,
	}

	out, err := captureStdout(t, func() error {
		return initCommand(cfg, []string{})
	})
	if err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}

	configPath := filepath.Join(tmpDir, "tickdown.toml")
	for _, path := range []string{configPath, cfg.File} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("output: %q", out)
	}

	// The starter document parses into tasks.
	res, err := parseDocument(cfg)
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if res.TotalOpen == 0 {
		t.Error("starter document has no open tasks")
	}

	// A second run leaves existing files alone.
	before, err := os.ReadFile(cfg.File)
	if err != nil {
		t.Fatalf("read starter doc: %v", err)
	}
	out, err = captureStdout(t, func() error {
		return initCommand(cfg, []string{})
	})
	if err != nil {
		t.Fatalf("second initCommand() error = %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("second run output: %q", out)
	}
	after, err := os.ReadFile(cfg.File)
	if err != nil {
		t.Fatalf("read starter doc again: %v", err)
	}
	if string(before) != string(after) {
		t.Error("second init rewrote the document")
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("healthy document passes", func(t *testing.T) {
		ctx := context.Background()
		path := writeTestDoc(t, "# A\n- [ ] one\n")
		out, err := captureStdout(t, func() error {
			return Run(ctx, []string{"doctor", path})
		})
		if err != nil {
			t.Fatalf("doctor failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "All checks passed") {
			t.Errorf("output: %q", out)
		}
	})

	t.Run("missing hook binary fails", func(t *testing.T) {
		ctx := context.Background()
		path := writeTestDoc(t, "- [ ] one\n")
		t.Setenv("TICKDOWN_HOOK", filepath.Join(t.TempDir(), "no-such-hook"))
		out, err := captureStdout(t, func() error {
			return Run(ctx, []string{"doctor", path})
		})
		if err == nil {
			t.Fatalf("expected doctor to fail, output:\n%s", out)
		}
		if !strings.Contains(out, "Not found") {
			t.Errorf("output: %q", out)
		}
	})

	t.Run("document path that is a directory fails", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()
		_, err := captureStdout(t, func() error {
			return Run(ctx, []string{"doctor", dir})
		})
		if err == nil {
			t.Error("expected doctor to fail for a directory")
		}
	})
}

func TestBindFile(t *testing.T) {
	t.Run("positional argument wins", func(t *testing.T) {
		cfg := &config.Config{File: "/abs/default.md", ProjectRoot: "/root"}
		if err := bindFile(cfg, []string{"/elsewhere/doc.md"}); err != nil {
			t.Fatalf("bindFile() error = %v", err)
		}
		if cfg.File != "/elsewhere/doc.md" {
			t.Errorf("File: got %q", cfg.File)
		}
	})

	t.Run("relative paths resolve against the project root", func(t *testing.T) {
		cfg := &config.Config{File: "ignored.md", ProjectRoot: "/project"}
		if err := bindFile(cfg, []string{"notes.md"}); err != nil {
			t.Fatalf("bindFile() error = %v", err)
		}
		if cfg.File != filepath.Join("/project", "notes.md") {
			t.Errorf("File: got %q", cfg.File)
		}
	})

	t.Run("extra arguments are rejected", func(t *testing.T) {
		cfg := &config.Config{File: "a.md", ProjectRoot: "/project"}
		if err := bindFile(cfg, []string{"a.md", "b.md"}); err == nil {
			t.Error("expected an error for extra arguments")
		}
	})
}

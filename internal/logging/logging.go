// Package logging writes JSONL session logs and tail output.
//
// Every panel or watch session appends to its own log file under the
// configured log directory, one JSON object per line. Logging is
// best-effort by contract: helpers swallow write errors, and a nil
// *SessionLogger is a valid no-op logger, so callers never guard log
// calls.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Event is a single log line. Type is one of session_start, cycle,
// toggle, error, or session_end; the remaining fields are filled per
// type.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Source is the watched document (session_start events).
	Source string `json:"source,omitempty"`

	// Cycle carries parse results (cycle events).
	Cycle *CycleStats `json:"cycle,omitempty"`

	// File, Line, and State describe a checkbox flip (toggle events).
	// Line is one-based, the way editors display it.
	File  string `json:"file,omitempty"`
	Line  int    `json:"line,omitempty"`
	State string `json:"state,omitempty"`

	// Content is the failure description (error events).
	Content string `json:"content,omitempty"`
}

// CycleStats summarizes one parse cycle.
type CycleStats struct {
	Trigger    string  `json:"trigger"`
	Open       int     `json:"open"`
	Completed  int     `json:"completed"`
	Groups     int     `json:"groups"`
	DurationMS float64 `json:"duration_ms"`
}

// SessionLogger appends events to one session's JSONL file. It is safe
// for concurrent use; the watch goroutine and the panel both log.
type SessionLogger struct {
	Dir     string
	RunID   string
	LogPath string

	mu    sync.Mutex
	file  *os.File
	ended bool
}

// NewSessionLogger creates the log directory if needed and opens a new
// log file named after the session start time and the watched file.
func NewSessionLogger(dir, source string) (*SessionLogger, error) {
	if dir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.jsonl", id, slugify(filepath.Base(source))))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &SessionLogger{
		Dir:     dir,
		RunID:   id,
		LogPath: path,
		file:    file,
	}, nil
}

// Write appends one event, stamping the time if unset.
func (l *SessionLogger) Write(ev Event) error {
	if l == nil {
		return nil
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_, err = l.file.Write(data)
	return err
}

// Start records the beginning of a session over source.
func (l *SessionLogger) Start(source string) {
	_ = l.Write(Event{Type: "session_start", Source: source})
}

// Cycle records one parse cycle.
func (l *SessionLogger) Cycle(trigger string, open, completed, groups int, d time.Duration) {
	_ = l.Write(Event{Type: "cycle", Cycle: &CycleStats{
		Trigger:    trigger,
		Open:       open,
		Completed:  completed,
		Groups:     groups,
		DurationMS: float64(d.Microseconds()) / 1000,
	}})
}

// Toggle records a checkbox flip. line is zero-based and logged
// one-based.
func (l *SessionLogger) Toggle(file string, line int, completed bool) {
	state := "open"
	if completed {
		state = "completed"
	}
	_ = l.Write(Event{Type: "toggle", File: file, Line: line + 1, State: state})
}

// Error records a failure that did not stop the session.
func (l *SessionLogger) Error(op string, err error) {
	_ = l.Write(Event{Type: "error", Content: fmt.Sprintf("%s: %v", op, err)})
}

// Close writes the session_end event if one has not been written and
// closes the file. Safe on a nil logger.
func (l *SessionLogger) Close() error {
	if l == nil {
		return nil
	}
	if !l.ended {
		l.ended = true
		_ = l.Write(Event{Type: "session_end"})
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// slugify reduces a file name to log-filename-safe characters.
func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "session"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "session"
	}
	return slug
}

// FindLatestLog returns the most recently modified .jsonl file in the
// log directory, or "" when the directory is empty or absent.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}
	return latest, nil
}

// TailLog copies a log file to w. With n > 0 only approximately the
// last n lines are shown. With follow the call blocks and keeps
// streaming lines as the session writes them, until a write to w fails.
func TailLog(w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}
	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}
	for {
		time.Sleep(100 * time.Millisecond)
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
	}
}

// tailSeek positions the file roughly n lines before the end, then
// discards the partial line it probably landed in.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 100

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	offset := stat.Size() - int64(n)*avgLineLength
	if offset <= 0 {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	var b [1]byte
	for {
		if _, err := file.Read(b[:]); err != nil || b[0] == '\n' {
			return nil
		}
	}
}

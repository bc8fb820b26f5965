package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tickdown/tickdown/internal/tasks"
)

// SchemaVersion is the current snapshot format version.
const SchemaVersion = 1

// File is the root of an exported snapshot. The yaml tags keep field
// names identical across both structured output formats.
type File struct {
	SchemaVersion  int        `json:"schema_version" yaml:"schema_version"`
	Source         string     `json:"source" yaml:"source"`
	GeneratedAt    *time.Time `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	TotalOpen      int        `json:"total_open" yaml:"total_open"`
	TotalCompleted int        `json:"total_completed" yaml:"total_completed"`
	Groups         []Group    `json:"groups" yaml:"groups"`
}

// Group is one heading-scoped section of the source document.
type Group struct {
	Heading        string `json:"heading" yaml:"heading"`
	HeadingLine    int    `json:"heading_line" yaml:"heading_line"`
	OpenCount      int    `json:"open_count" yaml:"open_count"`
	CompletedCount int    `json:"completed_count" yaml:"completed_count"`
	Open           []Task `json:"open,omitempty" yaml:"open,omitempty"`
	Completed      []Task `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// Task is one checkbox item with its nested children.
type Task struct {
	Text      string `json:"text" yaml:"text"`
	Line      int    `json:"line" yaml:"line"`
	Completed bool   `json:"completed" yaml:"completed"`
	Children  []Task `json:"children,omitempty" yaml:"children,omitempty"`
}

// FromResult converts a parse result into a snapshot file. Source names
// the document the result came from; now becomes the generated_at stamp.
func FromResult(source string, res tasks.Result, now time.Time) *File {
	generated := now.UTC()
	f := &File{
		SchemaVersion:  SchemaVersion,
		Source:         source,
		GeneratedAt:    &generated,
		TotalOpen:      res.TotalOpen,
		TotalCompleted: res.TotalCompleted,
		Groups:         make([]Group, 0, len(res.Groups)),
	}
	for _, g := range res.Groups {
		f.Groups = append(f.Groups, Group{
			Heading:        g.Heading,
			HeadingLine:    g.HeadingLine,
			OpenCount:      g.OpenCount,
			CompletedCount: g.CompletedCount,
			Open:           exportTasks(g.Open),
			Completed:      exportTasks(g.Completed),
		})
	}
	return f
}

func exportTasks(ts []*tasks.Task) []Task {
	if len(ts) == 0 {
		return nil
	}
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, Task{
			Text:      t.Text,
			Line:      t.Line,
			Completed: t.Completed,
			Children:  exportTasks(t.Children),
		})
	}
	return out
}

// Load reads and parses a snapshot file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse snapshot file: %w", err)
	}

	return &f, nil
}

// Encode writes the snapshot to w with 2-space indentation and a
// trailing newline.
func (f *File) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Save writes the snapshot file to path with 2-space indentation.
func (f *File) Save(path string) error {
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}

// Package tasks reconstructs the checkbox task model from a document
// outline. Parsing is a pure function: it consumes a structural outline
// plus the raw document lines and produces heading-scoped task groups,
// with the parent/child hierarchy rebuilt from relative indentation.
// The whole model is rebuilt from scratch on every call and shares no
// state between calls.
package tasks

// DefaultNoHeadingLabel is the group heading used for tasks that appear
// before the first heading, or in documents without headings.
const DefaultNoHeadingLabel = "No heading"

// NoHeadingLine is the ordering key of the no-heading group. It sorts
// before every real heading line.
const NoHeadingLine = -1

// Task is a single checkbox list item. Line is the zero-based line
// number in the source document; it is the task's identity for toggling
// and navigation within one parse, and is not stable across parses.
// Indent is the column of the list marker and carries meaning only
// relative to neighbouring tasks (tabs and spaces are never normalized).
type Task struct {
	Text      string
	Line      int
	Completed bool
	Indent    int
	Children  []*Task
}

// Group holds the tasks scoped to one heading. Open and Completed are
// the root-level forests, split by each root's own completed flag: a
// completed root keeps its open children and stays in Completed. The
// counts cover the entire forest, roots and all descendants.
type Group struct {
	Heading        string
	HeadingLine    int
	Open           []*Task
	Completed      []*Task
	OpenCount      int
	CompletedCount int
}

// Empty reports whether the group holds no tasks at all.
func (g Group) Empty() bool {
	return g.OpenCount == 0 && g.CompletedCount == 0
}

// Result is one parse cycle's output: groups ordered by heading line
// (the no-heading group first) plus document-wide totals.
type Result struct {
	Groups         []Group
	TotalOpen      int
	TotalCompleted int
}

// Empty reports whether the document produced no tasks.
func (r Result) Empty() bool {
	return r.TotalOpen == 0 && r.TotalCompleted == 0
}

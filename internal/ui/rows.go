package ui

import (
	"strings"

	"github.com/tickdown/tickdown/internal/tasks"
)

type rowKind int

const (
	rowHeading rowKind = iota
	rowTask
)

// row is one visible line of the panel: either a heading with its
// group counts, or a task at some nesting depth.
type row struct {
	kind    rowKind
	heading string
	open    int
	done    int
	task    *tasks.Task
	depth   int
}

// buildRows flattens a parse result into the visible row list.
//
// Completed root tasks are hidden unless showCompleted is set; completed
// children of open roots always stay visible next to their siblings. A
// non-empty filter keeps tasks whose text contains it case-insensitively,
// along with their ancestors, and drops groups left with no tasks.
func buildRows(res tasks.Result, showCompleted bool, filter string) []row {
	query := strings.ToLower(strings.TrimSpace(filter))

	var rows []row
	for _, g := range res.Groups {
		var taskRows []row
		for _, t := range g.Open {
			taskRows = appendTaskRows(taskRows, t, 0, query)
		}
		if showCompleted {
			for _, t := range g.Completed {
				taskRows = appendTaskRows(taskRows, t, 0, query)
			}
		}
		if query != "" && len(taskRows) == 0 {
			continue
		}
		rows = append(rows, row{
			kind:    rowHeading,
			heading: g.Heading,
			open:    g.OpenCount,
			done:    g.CompletedCount,
		})
		rows = append(rows, taskRows...)
	}
	return rows
}

func appendTaskRows(rows []row, t *tasks.Task, depth int, query string) []row {
	if query != "" && !taskMatches(t, query) {
		return rows
	}
	rows = append(rows, row{kind: rowTask, task: t, depth: depth})
	for _, c := range t.Children {
		rows = appendTaskRows(rows, c, depth+1, query)
	}
	return rows
}

// taskMatches reports whether the task or any descendant contains the
// lowercased query.
func taskMatches(t *tasks.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Text), query) {
		return true
	}
	for _, c := range t.Children {
		if taskMatches(c, query) {
			return true
		}
	}
	return false
}

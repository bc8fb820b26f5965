package tasks

import (
	"sort"

	"github.com/tickdown/tickdown/internal/outline"
)

// Parser turns an outline plus document lines into a Result. The zero
// value is ready to use.
type Parser struct {
	// NoHeadingLabel names the group for tasks above the first heading.
	// Empty means DefaultNoHeadingLabel.
	NoHeadingLabel string
}

// Parse rebuilds the full task model for one document snapshot. It
// never fails: items whose lines are gone or no longer look like
// checkboxes are silently skipped, so a parse against a half-edited
// document yields the valid subset rather than an error. An outline
// with no list items yields an empty Result.
//
// Groups come back ordered by heading line, the no-heading group first.
// Tasks keep document order within their group.
func (p Parser) Parse(doc outline.Outline, lines []string) Result {
	if len(doc.Items) == 0 {
		return Result{}
	}
	label := p.NoHeadingLabel
	if label == "" {
		label = DefaultNoHeadingLabel
	}

	// Partition checkbox tasks by enclosing heading text. Repeated
	// heading texts merge into one group keyed on the first occurrence.
	type bucket struct {
		heading     string
		headingLine int
		flat        []*Task
	}
	byHeading := make(map[string]*bucket)
	var order []*bucket

	for _, item := range doc.Items {
		if item.Checkbox == "" {
			continue
		}
		if item.StartLine < 0 || item.StartLine >= len(lines) {
			// Stale outline entry: the document shrank underneath it.
			continue
		}
		cb, ok := outline.ParseCheckbox(lines[item.StartLine])
		if !ok {
			// The line changed since the outline was built and no
			// longer carries a checkbox.
			continue
		}
		if cb.Text == "" {
			continue
		}
		t := &Task{
			Text:      cb.Text,
			Line:      item.StartLine,
			Completed: cb.Completed(),
			Indent:    item.StartColumn,
		}

		key, headingLine := label, NoHeadingLine
		if h, found := EnclosingHeading(doc.Headings, item.StartLine); found {
			key, headingLine = h.Text, h.StartLine
		}
		b := byHeading[key]
		if b == nil {
			b = &bucket{heading: key, headingLine: headingLine}
			byHeading[key] = b
			order = append(order, b)
		}
		b.flat = append(b.flat, t)
	}
	if len(order) == 0 {
		return Result{}
	}

	sort.Slice(order, func(i, j int) bool {
		return order[i].headingLine < order[j].headingLine
	})

	res := Result{Groups: make([]Group, 0, len(order))}
	for _, b := range order {
		f := BuildForest(b.flat)
		res.Groups = append(res.Groups, Group{
			Heading:        b.heading,
			HeadingLine:    b.headingLine,
			Open:           f.Open,
			Completed:      f.Completed,
			OpenCount:      f.OpenCount,
			CompletedCount: f.CompletedCount,
		})
		res.TotalOpen += f.OpenCount
		res.TotalCompleted += f.CompletedCount
	}
	return res
}

// ParseLines is a convenience for one-shot callers: it scans the lines
// and parses the result in one step.
func (p Parser) ParseLines(lines []string) Result {
	return p.Parse(outline.Scan(lines), lines)
}

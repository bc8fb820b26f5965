// Package outline extracts document symbols from markdown text.
//
// The scanner is deliberately shallow: it recognizes ATX headings and
// bullet list items, which is all the task engine needs, and ignores
// every other construct. Lines inside fenced code blocks are skipped
// so a literal "- [ ]" in an example never becomes a task.
package outline

import (
	"regexp"
	"strings"
)

// Heading is an ATX heading and the zero-based line it starts on.
type Heading struct {
	Text      string
	StartLine int
}

// ListItem is a bullet list item and the zero-based line it starts on.
// StartColumn is the byte offset of the list marker within the line.
// Checkbox holds the character between the brackets when the item
// carries a checkbox, or the empty string for a plain bullet.
type ListItem struct {
	StartLine   int
	StartColumn int
	Checkbox    string
}

// Outline holds the symbols extracted from one document.
type Outline struct {
	Headings []Heading
	Items    []ListItem
}

var (
	headingRe = regexp.MustCompile(`^ {0,3}(#{1,6})(?:\s+(.*))?$`)
	bulletRe  = regexp.MustCompile(`^(\s*)([-*+])\s+(.*)$`)

	// A checkbox is a bullet followed by a single bracketed character.
	// Any character is allowed between the brackets; a space means the
	// task is open, everything else means completed.
	checkboxRe = regexp.MustCompile(`^(\s*)([-*+])\s+\[(.)\]\s*(.*)$`)
	prefixRe   = regexp.MustCompile(`^\s*[-*+]\s+\[.\]\s*`)
)

// Scan extracts headings and bullet items from lines. Headings are
// returned in document order, so StartLine is ascending.
func Scan(lines []string) Outline {
	var out Outline
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			// Only the matching marker closes a fence; a ``` inside a
			// ~~~ block is literal text.
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if f := fenceMarker(trimmed); f != "" {
			fence = f
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			out.Headings = append(out.Headings, Heading{
				Text:      headingText(m[2]),
				StartLine: i,
			})
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			item := ListItem{
				StartLine:   i,
				StartColumn: len(m[1]),
			}
			if cb, ok := ParseCheckbox(line); ok {
				item.Checkbox = cb.State
			}
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// Checkbox is the decomposition of one checkbox list item line.
type Checkbox struct {
	Indent   int    // leading whitespace width in bytes
	State    string // character between the brackets
	StateCol int    // byte offset of the state character within the line
	Text     string // remainder after the checkbox prefix, trimmed
}

// Completed reports whether the checkbox state marks the task done.
// A single space is open; any other character counts as completed.
func (c Checkbox) Completed() bool {
	return c.State != " "
}

// ParseCheckbox matches a single source line against the checkbox item
// shape. It reports false for anything else, including plain bullets.
func ParseCheckbox(line string) (Checkbox, bool) {
	idx := checkboxRe.FindStringSubmatchIndex(line)
	if idx == nil {
		return Checkbox{}, false
	}
	return Checkbox{
		Indent:   idx[3] - idx[2],
		State:    line[idx[6]:idx[7]],
		StateCol: idx[6],
		Text:     strings.TrimSpace(line[idx[8]:idx[9]]),
	}, true
}

// StripTaskPrefix removes the list marker and checkbox from the start
// of a line. Lines without a checkbox prefix are returned unchanged.
func StripTaskPrefix(line string) string {
	return prefixRe.ReplaceAllString(line, "")
}

// fenceMarker reports the code fence marker opening on this line, or
// the empty string when the line opens no fence.
func fenceMarker(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```"
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~"
	}
	return ""
}

// headingText normalizes heading content: surrounding whitespace is
// dropped, along with an optional closing hash run ("## Title ##").
func headingText(s string) string {
	s = strings.TrimSpace(s)
	trimmed := strings.TrimRight(s, "#")
	if trimmed == s {
		return s
	}
	if trimmed == "" {
		return ""
	}
	if strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
		return strings.TrimRight(trimmed, " \t")
	}
	return s
}

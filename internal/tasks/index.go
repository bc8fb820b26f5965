package tasks

import (
	"sort"

	"github.com/tickdown/tickdown/internal/outline"
)

// EnclosingHeading returns the heading that scopes the given zero-based
// line: the one with the greatest start line less than or equal to it.
// The headings slice must be sorted by start line ascending, which is
// how the outline scanner emits them. ok is false when the line sits
// above the first heading or the document has no headings at all.
func EnclosingHeading(headings []outline.Heading, line int) (h outline.Heading, ok bool) {
	// First heading strictly below the line; the enclosing heading is
	// its predecessor.
	i := sort.Search(len(headings), func(i int) bool {
		return headings[i].StartLine > line
	})
	if i == 0 {
		return outline.Heading{}, false
	}
	return headings[i-1], true
}

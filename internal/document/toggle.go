package document

import (
	"strings"

	"github.com/tickdown/tickdown/internal/outline"
)

// Toggle flips the checkbox on the given zero-based line. completed is
// the state the caller last saw for the task: an open task gets an "x",
// a completed one gets a space. Only the single character between the
// brackets changes; every other byte of the file is written back as
// read.
//
// The document may have moved on since the caller parsed it. When the
// line no longer exists or no longer carries a checkbox, Toggle does
// nothing and reports success: the next parse cycle will show the user
// what the document looks like now.
func (s *Store) Toggle(line int, completed bool) error {
	snap, err := s.Read()
	if err != nil {
		return err
	}
	if line < 0 || line >= len(snap.Lines) {
		return nil
	}
	cb, ok := outline.ParseCheckbox(snap.Lines[line])
	if !ok {
		return nil
	}

	mark := "x"
	if completed {
		mark = " "
	}
	old := snap.Lines[line]
	snap.Lines[line] = old[:cb.StateCol] + mark + old[cb.StateCol+len(cb.State):]

	return s.write(strings.Join(snap.Lines, "\n"))
}

package tasks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tickdown/tickdown/internal/outline"
)

// benchDoc builds a document with the given number of sections, each
// holding a small nested task tree, roughly the shape of a large
// real-world checklist.
func benchDoc(sections, tasksPer int) []string {
	var b strings.Builder
	for s := 0; s < sections; s++ {
		fmt.Fprintf(&b, "## Section %d\n\n", s)
		for t := 0; t < tasksPer; t++ {
			indent := strings.Repeat("  ", t%3)
			mark := " "
			if t%4 == 0 {
				mark = "x"
			}
			fmt.Fprintf(&b, "%s- [%s] task %d-%d\n", indent, mark, s, t)
		}
		b.WriteString("\n")
	}
	return strings.Split(b.String(), "\n")
}

func BenchmarkParse(b *testing.B) {
	lines := benchDoc(50, 40)
	doc := outline.Scan(lines)
	var p Parser

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := p.Parse(doc, lines)
		if res.Empty() {
			b.Fatal("unexpected empty result")
		}
	}
}

func BenchmarkScanAndParse(b *testing.B) {
	lines := benchDoc(50, 40)
	var p Parser

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := p.ParseLines(lines)
		if res.Empty() {
			b.Fatal("unexpected empty result")
		}
	}
}

func BenchmarkBuildForest(b *testing.B) {
	base := make([]*Task, 0, 1000)
	for i := 0; i < 1000; i++ {
		base = append(base, &Task{
			Text:      fmt.Sprintf("task %d", i),
			Line:      i,
			Indent:    (i % 4) * 2,
			Completed: i%3 == 0,
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// BuildForest fills Children in place, so each run needs fresh
		// nodes.
		flat := make([]*Task, len(base))
		for j, t := range base {
			c := *t
			c.Children = nil
			flat[j] = &c
		}
		f := BuildForest(flat)
		if f.OpenCount+f.CompletedCount != len(base) {
			b.Fatal("lost tasks while building")
		}
	}
}

package tasks

import "testing"

// task builds a flat entry the way the orchestrator hands them to the
// builder: line numbers follow input order in these tests.
func task(indent int, text string, completed bool) *Task {
	return &Task{Text: text, Indent: indent, Completed: completed}
}

func texts(ts []*Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

func sameTexts(got []*Task, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, t := range got {
		if t.Text != want[i] {
			return false
		}
	}
	return true
}

func TestBuildForestNesting(t *testing.T) {
	f := BuildForest([]*Task{
		task(0, "a", false),
		task(2, "b", false),
		task(4, "c", false),
		task(2, "d", false),
		task(0, "e", false),
	})

	if !sameTexts(f.Open, "a", "e") {
		t.Fatalf("roots: got %v, want [a e]", texts(f.Open))
	}
	a := f.Open[0]
	if !sameTexts(a.Children, "b", "d") {
		t.Errorf("children of a: got %v, want [b d]", texts(a.Children))
	}
	if !sameTexts(a.Children[0].Children, "c") {
		t.Errorf("children of b: got %v, want [c]", texts(a.Children[0].Children))
	}
	if len(f.Open[1].Children) != 0 {
		t.Errorf("e should have no children, got %v", texts(f.Open[1].Children))
	}
}

func TestBuildForestEqualIndentMeansSibling(t *testing.T) {
	f := BuildForest([]*Task{
		task(2, "a", false),
		task(2, "b", false),
		task(2, "c", false),
	})
	if !sameTexts(f.Open, "a", "b", "c") {
		t.Fatalf("roots: got %v, want [a b c]", texts(f.Open))
	}
	for _, r := range f.Open {
		if len(r.Children) != 0 {
			t.Errorf("%s should have no children, got %v", r.Text, texts(r.Children))
		}
	}
}

func TestBuildForestDedentToUnseenLevel(t *testing.T) {
	// Dedenting to a depth between two ancestors attaches to the
	// nearest one that is still strictly shallower.
	f := BuildForest([]*Task{
		task(0, "a", false),
		task(4, "b", false),
		task(2, "c", false),
	})
	if !sameTexts(f.Open, "a") {
		t.Fatalf("roots: got %v, want [a]", texts(f.Open))
	}
	if !sameTexts(f.Open[0].Children, "b", "c") {
		t.Errorf("children of a: got %v, want [b c]", texts(f.Open[0].Children))
	}
}

func TestBuildForestFirstTaskDeeplyIndented(t *testing.T) {
	// A document can open with an indented task; it is a root because
	// nothing shallower precedes it.
	f := BuildForest([]*Task{
		task(6, "floating", false),
		task(0, "grounded", false),
	})
	if !sameTexts(f.Open, "floating", "grounded") {
		t.Fatalf("roots: got %v, want [floating grounded]", texts(f.Open))
	}
}

func TestBuildForestRootBucketing(t *testing.T) {
	// Roots split by their own flag; a completed root keeps its open
	// children rather than having them hoisted.
	f := BuildForest([]*Task{
		task(0, "done parent", true),
		task(2, "still open child", false),
		task(2, "done child", true),
		task(0, "open parent", false),
		task(2, "done under open", true),
	})

	if !sameTexts(f.Open, "open parent") {
		t.Fatalf("open roots: got %v, want [open parent]", texts(f.Open))
	}
	if !sameTexts(f.Completed, "done parent") {
		t.Fatalf("completed roots: got %v, want [done parent]", texts(f.Completed))
	}
	if !sameTexts(f.Completed[0].Children, "still open child", "done child") {
		t.Errorf("children of done parent: got %v", texts(f.Completed[0].Children))
	}

	// Counts tally every node by its own flag exactly once.
	if f.OpenCount != 2 {
		t.Errorf("OpenCount: got %d, want 2", f.OpenCount)
	}
	if f.CompletedCount != 3 {
		t.Errorf("CompletedCount: got %d, want 3", f.CompletedCount)
	}
}

func TestBuildForestEmpty(t *testing.T) {
	f := BuildForest(nil)
	if len(f.Open) != 0 || len(f.Completed) != 0 || f.OpenCount != 0 || f.CompletedCount != 0 {
		t.Errorf("empty input should give a zero forest, got %+v", f)
	}
}

func TestForestWalkOrder(t *testing.T) {
	f := BuildForest([]*Task{
		task(0, "done root", true),
		task(0, "open root", false),
		task(2, "child", false),
	})

	var visited []string
	var depths []int
	f.Walk(func(t *Task, depth int) {
		visited = append(visited, t.Text)
		depths = append(depths, depth)
	})

	want := []string{"open root", "child", "done root"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d: got %q, want %q", i, visited[i], want[i])
		}
	}
	wantDepths := []int{0, 1, 0}
	for i := range wantDepths {
		if depths[i] != wantDepths[i] {
			t.Errorf("depth %d: got %d, want %d", i, depths[i], wantDepths[i])
		}
	}
}

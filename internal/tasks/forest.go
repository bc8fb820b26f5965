package tasks

// Forest is the reconstructed hierarchy for one group's tasks, with
// root tasks bucketed by their own completed flag and counts tallied
// across every node.
type Forest struct {
	Open           []*Task
	Completed      []*Task
	OpenCount      int
	CompletedCount int
}

// BuildForest turns a flat, line-ordered slice of tasks into a forest
// using relative indentation. A task's parent is the nearest preceding
// task with strictly smaller indent; equal indent means sibling. The
// input order is the document order and is preserved among siblings.
//
// Roots land in Open or Completed according to their own flag only, so
// a completed root carries any still-open children with it. Counts are
// per node: every task contributes exactly one tick to the bucket its
// own flag names, wherever it sits in the tree.
//
// Tasks are mutated in place (their Children slices are filled in);
// callers hand over ownership of the slice elements.
func BuildForest(flat []*Task) Forest {
	var f Forest
	var stack []*Task
	for _, t := range flat {
		for len(stack) > 0 && stack[len(stack)-1].Indent >= t.Indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, t)
		} else if t.Completed {
			f.Completed = append(f.Completed, t)
		} else {
			f.Open = append(f.Open, t)
		}
		stack = append(stack, t)

		if t.Completed {
			f.CompletedCount++
		} else {
			f.OpenCount++
		}
	}
	return f
}

// Walk calls fn for every task in the forest in document order, open
// roots before completed roots, parents before children. depth is zero
// for roots.
func (f Forest) Walk(fn func(t *Task, depth int)) {
	for _, t := range f.Open {
		walkTask(t, 0, fn)
	}
	for _, t := range f.Completed {
		walkTask(t, 0, fn)
	}
}

func walkTask(t *Task, depth int, fn func(*Task, int)) {
	fn(t, depth)
	for _, c := range t.Children {
		walkTask(c, depth+1, fn)
	}
}

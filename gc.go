package scheme

// collectGarbage runs one mark-and-sweep pass rooted at the
// interpreter's global scope: every value reachable from there survives,
// everything else registered in the heap is forgotten.
func (it *Interpreter) collectGarbage() {
	marked := make(map[Value]bool)
	mark(it.global, marked)
	for _, v := range it.heap.liveObjects() {
		if !marked[v] {
			it.heap.destroy(v)
		}
	}
}

// mark walks v and everything reachable from it, recording each visited
// value in marked. Cells fan out through First/Rest, Lambdas through
// their body forms and captured environment, and Scopes through their
// bindings and parent chain; every other value is a leaf.
func mark(v Value, marked map[Value]bool) {
	if v == nil || marked[v] {
		return
	}
	marked[v] = true
	switch val := v.(type) {
	case *Cell:
		mark(val.First, marked)
		mark(val.Rest, marked)
	case *Lambda:
		for _, form := range val.Body {
			mark(form, marked)
		}
		mark(val.Env, marked)
	case *Scope:
		for _, slot := range val.vars {
			mark(*slot, marked)
		}
		if val.parent != nil {
			mark(val.parent, marked)
		}
	}
}

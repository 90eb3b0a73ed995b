package scheme

// Define unconditionally (re)binds name in this frame, shadowing any
// binding of the same name in an ancestor.
func (s *Scope) Define(name Symbol, v Value) {
	if slot, ok := s.vars[name]; ok {
		*slot = v
		return
	}
	val := v
	s.vars[name] = &val
}

// Find reports whether name is bound in this frame or any ancestor.
func (s *Scope) Find(name Symbol) bool {
	for e := s; e != nil; e = e.parent {
		if _, ok := e.vars[name]; ok {
			return true
		}
	}
	return false
}

// lookup walks the parent chain for name without ever creating a
// binding. It is the find-then-read half of the find-then-get contract
// that symbol evaluation relies on (see Get below).
func (s *Scope) lookup(name Symbol) (Value, bool) {
	for e := s; e != nil; e = e.parent {
		if slot, ok := e.vars[name]; ok {
			return *slot, true
		}
	}
	return nil, false
}

// Get returns the storage cell of the first binding of name found by
// walking this scope and its ancestors. If name is bound nowhere, Get
// creates a fresh nil-valued placeholder binding in this frame (not the
// root) and returns a reference to it, rather than reporting failure.
//
// set!, the only caller, always calls Find first and only reaches here
// once it knows the name exists, so the placeholder path is never
// actually exercised by this catalog, but it is kept rather than
// collapsed into a two-value return.
func (s *Scope) Get(name Symbol) *Value {
	for e := s; e != nil; e = e.parent {
		if slot, ok := e.vars[name]; ok {
			return slot
		}
	}
	var placeholder Value
	s.vars[name] = &placeholder
	return &placeholder
}

package scheme

import (
	"fmt"

	"github.com/pkg/errors"
)

// Interpreter is a single Scheme runtime: its own heap, its own global
// scope, and the options that govern its collector and diagnostics.
// Nothing about it is shared across instances, so multiple Interpreters
// may run concurrently without interference.
type Interpreter struct {
	heap   *Heap
	global *Scope

	gcEnabled     bool
	heapWarnLimit int
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithGC toggles the post-evaluation mark-and-sweep pass. It defaults to
// enabled; disabling it is occasionally useful for inspecting heap
// growth across a sequence of Run calls.
func WithGC(enabled bool) Option {
	return func(it *Interpreter) { it.gcEnabled = enabled }
}

// WithHeapWarnLimit sets the live-object count above which HeapStats
// reports Exceeded. A limit of 0 (the default) disables the warning.
func WithHeapWarnLimit(n int) Option {
	return func(it *Interpreter) { it.heapWarnLimit = n }
}

// New builds a ready-to-use Interpreter: a fresh heap, a global scope
// seeded with the full builtin catalog, and the collector enabled.
func New(opts ...Option) (*Interpreter, error) {
	heap := NewHeap()
	it := &Interpreter{
		heap:      heap,
		global:    registerBuiltins(heap),
		gcEnabled: true,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it, nil
}

// HeapStats reports the live object count of the interpreter's heap.
type HeapStats struct {
	Live      int
	WarnLimit int
	Exceeded  bool
}

// HeapStats returns a snapshot of the interpreter's current heap usage.
func (it *Interpreter) HeapStats() HeapStats {
	live := it.heap.size()
	return HeapStats{
		Live:      live,
		WarnLimit: it.heapWarnLimit,
		Exceeded:  it.heapWarnLimit > 0 && live > it.heapWarnLimit,
	}
}

// Run parses exactly one top-level datum out of code, evaluates it
// against the interpreter's global scope, and serializes the result
// back to text. Empty input or trailing tokens after the datum are a
// syntax error. Bindings made by define and set! persist across calls
// on the same Interpreter; a mark-and-sweep pass rooted at the global
// scope runs after each successful evaluation unless disabled.
func (it *Interpreter) Run(code string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(fmt.Errorf("%v", r), "internal error evaluating %q", code)
		}
	}()

	datum, err := ReadDatum(code, it.heap)
	if err != nil {
		return "", err
	}
	value, err := Eval(it, datum, it.global)
	if err != nil {
		return "", err
	}
	out := Serialize(value)
	if it.gcEnabled {
		it.collectGarbage()
	}
	return out, nil
}

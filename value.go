// Package scheme implements a small Scheme-like interpreter: a tokenizer,
// a recursive-descent reader, a tree-walking evaluator over lexically
// scoped environments, a fixed catalog of built-in procedures, and a
// mark-and-sweep garbage collector over the live value graph.
//
// It follows the classic Norvig/SICP "lis.py" style of tree-walking
// evaluator, generalized to a closed-variant value model with an
// explicit heap and collector.
package scheme

import "fmt"

// Value is the sum type over every kind of object the interpreter can
// produce: Number, Boolean, Symbol, *Cell, *Builtin, *Lambda, *Scope.
// The empty list has no Value representation at all; it is the Go nil
// interface value.
//
// Only the concrete types in this file implement Value: a closed
// variant set distinguished by a Go type switch rather than an open
// interface hierarchy.
type Value interface {
	isValue()
}

// Number is a signed 64-bit integer. Arithmetic overflow wraps silently,
// matching Go's default int64 semantics.
type Number int64

func (Number) isValue() {}

// Boolean is a single true/false bit. Every value other than Boolean(false)
// is "truthy" to the evaluator.
type Boolean bool

func (Boolean) isValue() {}

// Symbol is an interned-by-value identifier. Two Symbols with the same
// text compare equal; symbols carry no other identity.
type Symbol string

func (Symbol) isValue() {}

// Cell is a mutable cons pair: (first . rest). A proper list is nil or a
// Cell whose Rest is itself a proper list. Cell is always referenced
// through a pointer so that set-car!/set-cdr! mutation is visible through
// every alias, and so identity equality is observable.
type Cell struct {
	First Value
	Rest  Value
}

func (*Cell) isValue() {}

// BuiltinFunc implements one primitive procedure. args is the
// un-evaluated cons-spine of the call's actual arguments (the tail of the
// application Cell); ordinary procedures evaluate it themselves via
// extractArgs, special forms choose what and when to evaluate.
type BuiltinFunc func(it *Interpreter, args Value, scope *Scope) (Value, error)

// Builtin is a named primitive procedure. It carries no other state: two
// Builtins with the same Name behave identically.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (*Builtin) isValue() {}

// Lambda is a user-defined procedure: its formal parameters, its body (a
// sequence of forms evaluated in order, the last form's value returned),
// and the scope captured at the point of creation. The captured scope is
// what makes a Lambda a lexical closure rather than a dynamic one.
type Lambda struct {
	Params []Symbol
	Body   []Value
	Env    *Scope
}

func (*Lambda) isValue() {}

// Scope is a lexical environment: a mutable name-to-value mapping plus an
// optional parent link. Scope is itself a first-class, self-evaluating
// Value, even though no builtin in this catalog produces a bare Scope
// as a result.
type Scope struct {
	vars   map[Symbol]*Value
	parent *Scope
}

func (*Scope) isValue() {}

func (n Number) String() string  { return fmt.Sprintf("%d", int64(n)) }
func (b Boolean) String() string { return map[bool]string{true: "#t", false: "#f"}[bool(b)] }
func (s Symbol) String() string  { return string(s) }

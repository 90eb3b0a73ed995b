package scheme

import "github.com/pkg/errors"

// The interpreter raises exactly three error categories. Each is a
// distinct concrete type so host code can branch on category with
// errors.As; all three carry a human-readable message, and NameError
// also records the offending symbol.

// SyntaxError reports malformed tokens, unbalanced parentheses, or
// misuse of special-form syntax.
type SyntaxError struct{ Msg string }

func (e *SyntaxError) Error() string { return "syntax error: " + e.Msg }

// NameError reports a reference to, or set! of, an unbound symbol.
type NameError struct {
	Symbol string
	Msg    string
}

func (e *NameError) Error() string { return "name error: " + e.Msg }

// RuntimeError reports type mismatches, arity violations, out-of-range
// indexing, or application of a non-procedure.
type RuntimeError struct{ Msg string }

func (e *RuntimeError) Error() string { return "runtime error: " + e.Msg }

func newSyntaxError(format string, args ...any) error {
	return &SyntaxError{Msg: errors.Errorf(format, args...).Error()}
}

func newNameError(sym Symbol, format string, args ...any) error {
	return &NameError{Symbol: string(sym), Msg: errors.Errorf(format, args...).Error()}
}

func newRuntimeError(format string, args ...any) error {
	return &RuntimeError{Msg: errors.Errorf(format, args...).Error()}
}

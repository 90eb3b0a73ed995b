package scheme

import "github.com/pkg/errors"

// Eval evaluates v in scope. Number, Boolean, Builtin, Lambda, and Scope
// values are self-evaluating; nil (the empty list) evaluates to itself.
// Symbols resolve through the scope chain. A Cell is a procedure
// application: its First is evaluated to find the procedure, and its
// Rest — still unevaluated — is handed to that procedure to decide what
// (and whether) to evaluate.
func Eval(it *Interpreter, v Value, scope *Scope) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case Number, Boolean, *Builtin, *Lambda, *Scope:
		return val, nil
	case Symbol:
		if result, ok := scope.lookup(val); ok {
			return result, nil
		}
		return nil, newNameError(val, "unbound symbol: %s", val)
	case *Cell:
		if sym, ok := val.First.(Symbol); ok && sym == "." {
			return nil, newSyntaxError("'.' may not appear in operator position")
		}
		head, err := Eval(it, val.First, scope)
		if err != nil {
			return nil, err
		}
		switch proc := head.(type) {
		case *Builtin:
			return proc.Fn(it, val.Rest, scope)
		case *Lambda:
			return applyLambda(it, proc, val.Rest, scope)
		default:
			return nil, newRuntimeError("cannot apply non-procedure: %s", Serialize(head))
		}
	default:
		return nil, newRuntimeError("cannot evaluate value of unknown type")
	}
}

// applyLambda evaluates argExprs in callerScope, binds the results to
// the lambda's parameters in a fresh frame over its captured
// environment, and evaluates its body forms in sequence, returning the
// value of the last one.
func applyLambda(it *Interpreter, fn *Lambda, argExprs Value, callerScope *Scope) (Value, error) {
	args, err := extractArgs(it, argExprs, callerScope, true)
	if err != nil {
		return nil, err
	}
	if len(args) != len(fn.Params) {
		return nil, newRuntimeError("lambda expects %d argument(s), got %d", len(fn.Params), len(args))
	}

	callScope := it.heap.NewScope(fn.Env)
	for i, p := range fn.Params {
		callScope.Define(p, args[i])
	}

	var result Value
	for _, form := range fn.Body {
		result, err = Eval(it, form, callScope)
		if err != nil {
			return nil, errors.Wrap(err, "lambda application")
		}
	}
	return result, nil
}

// extractArgs walks the Cell spine of args, producing one Value per
// element. When eval is true each element is evaluated in scope before
// being collected; special forms pass false to receive their operands
// raw. A spine that ends in something other than nil (an improper,
// dotted argument list) has that final value appended as a trailing
// element rather than rejected.
func extractArgs(it *Interpreter, args Value, scope *Scope, eval bool) ([]Value, error) {
	var out []Value
	cur := args
	for {
		if cur == nil {
			return out, nil
		}
		cell, ok := cur.(*Cell)
		if !ok {
			v, err := maybeEval(it, cur, scope, eval)
			if err != nil {
				return nil, err
			}
			return append(out, v), nil
		}
		v, err := maybeEval(it, cell.First, scope, eval)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		cur = cell.Rest
	}
}

func maybeEval(it *Interpreter, v Value, scope *Scope, eval bool) (Value, error) {
	if !eval {
		return v, nil
	}
	return Eval(it, v, scope)
}

// listElements is like extractArgs with eval=false, except that a
// non-nil, non-Cell tail is dropped rather than appended: it is used by
// special forms (if, define, lambda, ...) to pull their raw, unevaluated
// operands out of a Cell spine.
func listElements(v Value) []Value {
	var out []Value
	for {
		cell, ok := v.(*Cell)
		if !ok {
			return out
		}
		out = append(out, cell.First)
		v = cell.Rest
	}
}

// isFalse reports whether v is the Boolean false value, the only value
// treated as false in a test position; every other value, including 0
// and the empty list, is truthy.
func isFalse(v Value) bool {
	b, ok := v.(Boolean)
	return ok && !bool(b)
}

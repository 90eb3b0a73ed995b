package scheme

import "github.com/pkg/errors"

// registerBuiltins creates the global scope for a fresh Interpreter and
// binds every special form and procedure in the builtin catalog.
func registerBuiltins(heap *Heap) *Scope {
	global := heap.NewScope(nil)
	def := func(name string, fn BuiltinFunc) {
		global.Define(Symbol(name), heap.NewBuiltin(name, fn))
	}

	// Special forms: these receive their operands unevaluated and
	// decide for themselves what, and in what order, to evaluate.
	def("quote", biQuote)
	def("if", biIf)
	def("define", biDefine)
	def("set!", biSet)
	def("set-car!", biSetCar)
	def("set-cdr!", biSetCdr)
	def("lambda", biLambda)
	def("and", biAnd)
	def("or", biOr)

	// Ordinary procedures: all operands are evaluated before the
	// procedure body runs.
	def("+", biAdd)
	def("-", biSub)
	def("*", biMul)
	def("/", biDiv)
	def("max", biMax)
	def("min", biMin)
	def("abs", biAbs)
	def("=", biNumEq)
	def("<", biLt)
	def(">", biGt)
	def("<=", biLe)
	def(">=", biGe)
	def("not", biNot)
	def("boolean?", biBooleanP)
	def("number?", biNumberP)
	def("symbol?", biSymbolP)
	def("pair?", biPairP)
	def("null?", biNullP)
	def("list?", biListP)
	def("cons", biCons)
	def("car", biCar)
	def("cdr", biCdr)
	def("list", biList)
	def("list-ref", biListRef)
	def("list-tail", biListTail)

	return global
}

// --- special forms ---------------------------------------------------

func biQuote(it *Interpreter, args Value, scope *Scope) (Value, error) {
	// The 'x shorthand builds (quote . datum): args is already the datum,
	// nothing to unwrap. The explicit (quote x) call form instead builds
	// args as the one-element list Cell(x, nil); unwrap it to x unless x
	// is absent or a Number, in which case the wrapping list is returned
	// as-is.
	cell, ok := args.(*Cell)
	if !ok || cell.Rest != nil {
		return args, nil
	}
	if cell.First == nil {
		return args, nil
	}
	if _, isNumber := cell.First.(Number); isNumber {
		return args, nil
	}
	return cell.First, nil
}

func biIf(it *Interpreter, args Value, scope *Scope) (Value, error) {
	elems := listElements(args)
	if len(elems) < 1 {
		return nil, newSyntaxError("if requires at least a test")
	}
	test, err := Eval(it, elems[0], scope)
	if err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		// No branches were given: return Cell(nil, nil) rather than nil,
		// so a lone test, truthy or not, serializes as "(())".
		return it.heap.NewCell(nil, nil), nil
	}
	if !isFalse(test) {
		return Eval(it, elems[1], scope)
	}
	if len(elems) >= 3 {
		return Eval(it, elems[2], scope)
	}
	// No alternative was given: a false test with no else branch
	// evaluates to the plain empty list.
	return nil, nil
}

func biDefine(it *Interpreter, args Value, scope *Scope) (Value, error) {
	elems := listElements(args)
	if len(elems) < 2 {
		return nil, newSyntaxError("define requires a name and a value")
	}
	if sig, ok := elems[0].(*Cell); ok {
		// (define (name p1 ... pk) body...) binds name to
		// (lambda (p1 ... pk) body...) built in the current scope.
		name, ok := sig.First.(Symbol)
		if !ok {
			return nil, newSyntaxError("define requires a symbol name")
		}
		fn, err := biLambda(it, it.heap.NewCell(sig.Rest, args.(*Cell).Rest), scope)
		if err != nil {
			return nil, err
		}
		scope.Define(name, fn)
		return name, nil
	}
	if len(elems) != 2 {
		return nil, newSyntaxError("define requires a name and a value")
	}
	name, ok := elems[0].(Symbol)
	if !ok {
		return nil, newSyntaxError("define requires a symbol name")
	}
	val, err := Eval(it, elems[1], scope)
	if err != nil {
		return nil, errors.Wrap(err, "define: evaluating value")
	}
	scope.Define(name, val)
	return name, nil
}

func biSet(it *Interpreter, args Value, scope *Scope) (Value, error) {
	elems := listElements(args)
	if len(elems) != 2 {
		return nil, newSyntaxError("set! requires a name and a value")
	}
	name, ok := elems[0].(Symbol)
	if !ok {
		return nil, newSyntaxError("set! requires a symbol name")
	}
	if !scope.Find(name) {
		return nil, newNameError(name, "unbound symbol: %s", name)
	}
	val, err := Eval(it, elems[1], scope)
	if err != nil {
		return nil, errors.Wrap(err, "set!: evaluating value")
	}
	*scope.Get(name) = val
	return val, nil
}

func biSetCar(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return setCellField(it, args, scope, true)
}

func biSetCdr(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return setCellField(it, args, scope, false)
}

func setCellField(it *Interpreter, args Value, scope *Scope, car bool) (Value, error) {
	elems := listElements(args)
	if len(elems) != 2 {
		return nil, newSyntaxError("set-car!/set-cdr! requires a pair and a value")
	}
	target, err := Eval(it, elems[0], scope)
	if err != nil {
		return nil, errors.Wrap(err, "set-car!/set-cdr!: evaluating target")
	}
	cell, ok := target.(*Cell)
	if !ok {
		return nil, newRuntimeError("set-car!/set-cdr!: not a pair: %s", Serialize(target))
	}
	val, err := Eval(it, elems[1], scope)
	if err != nil {
		return nil, errors.Wrap(err, "set-car!/set-cdr!: evaluating value")
	}
	if car {
		cell.First = val
	} else {
		cell.Rest = val
	}
	return val, nil
}

func biLambda(it *Interpreter, args Value, scope *Scope) (Value, error) {
	elems := listElements(args)
	if len(elems) < 1 {
		return nil, newSyntaxError("lambda requires a parameter list")
	}
	paramValues := listElements(elems[0])
	params := make([]Symbol, 0, len(paramValues))
	for _, p := range paramValues {
		sym, ok := p.(Symbol)
		if !ok {
			return nil, newSyntaxError("lambda parameters must be symbols")
		}
		params = append(params, sym)
	}
	body := elems[1:]
	if len(body) == 0 {
		return nil, newSyntaxError("lambda requires at least one body form")
	}
	return it.heap.NewLambda(params, body, scope), nil
}

func biAnd(it *Interpreter, args Value, scope *Scope) (Value, error) {
	elems := listElements(args)
	if len(elems) == 0 {
		return it.heap.NewBoolean(true), nil
	}
	var result Value
	for _, e := range elems {
		v, err := Eval(it, e, scope)
		if err != nil {
			return nil, err
		}
		if isFalse(v) {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func biOr(it *Interpreter, args Value, scope *Scope) (Value, error) {
	elems := listElements(args)
	if len(elems) == 0 {
		return it.heap.NewBoolean(false), nil
	}
	var result Value
	for _, e := range elems {
		v, err := Eval(it, e, scope)
		if err != nil {
			return nil, err
		}
		if !isFalse(v) {
			return v, nil
		}
		result = v
	}
	return result, nil
}

// --- ordinary procedures ----------------------------------------------

func numbers(it *Interpreter, name string, args Value, scope *Scope, min int) ([]Number, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) < min {
		return nil, newRuntimeError("%s: requires at least %d argument(s)", name, min)
	}
	out := make([]Number, len(vals))
	for i, v := range vals {
		n, ok := v.(Number)
		if !ok {
			return nil, newRuntimeError("%s: not a number: %s", name, Serialize(v))
		}
		out[i] = n
	}
	return out, nil
}

func biAdd(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "+", args, scope, 0)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, n := range ns {
		sum += int64(n)
	}
	return it.heap.NewNumber(sum), nil
}

func biSub(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "-", args, scope, 1)
	if err != nil {
		return nil, err
	}
	if len(ns) == 1 {
		return it.heap.NewNumber(-int64(ns[0])), nil
	}
	acc := int64(ns[0])
	for _, n := range ns[1:] {
		acc -= int64(n)
	}
	return it.heap.NewNumber(acc), nil
}

func biMul(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "*", args, scope, 0)
	if err != nil {
		return nil, err
	}
	acc := int64(1)
	for _, n := range ns {
		acc *= int64(n)
	}
	return it.heap.NewNumber(acc), nil
}

func biDiv(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "/", args, scope, 1)
	if err != nil {
		return nil, err
	}
	if len(ns) == 1 {
		if ns[0] == 0 {
			return nil, newRuntimeError("/: division by zero")
		}
		return it.heap.NewNumber(1 / int64(ns[0])), nil
	}
	acc := int64(ns[0])
	for _, n := range ns[1:] {
		if n == 0 {
			return nil, newRuntimeError("/: division by zero")
		}
		acc /= int64(n)
	}
	return it.heap.NewNumber(acc), nil
}

func biMax(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "max", args, scope, 1)
	if err != nil {
		return nil, err
	}
	best := ns[0]
	for _, n := range ns[1:] {
		if n > best {
			best = n
		}
	}
	return it.heap.NewNumber(int64(best)), nil
}

func biMin(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "min", args, scope, 1)
	if err != nil {
		return nil, err
	}
	best := ns[0]
	for _, n := range ns[1:] {
		if n < best {
			best = n
		}
	}
	return it.heap.NewNumber(int64(best)), nil
}

func biAbs(it *Interpreter, args Value, scope *Scope) (Value, error) {
	ns, err := numbers(it, "abs", args, scope, 1)
	if err != nil {
		return nil, err
	}
	if len(ns) != 1 {
		return nil, newRuntimeError("abs: requires exactly 1 argument")
	}
	n := int64(ns[0])
	if n < 0 {
		n = -n
	}
	return it.heap.NewNumber(n), nil
}

func chainCompare(it *Interpreter, name string, args Value, scope *Scope, ok func(a, b int64) bool) (Value, error) {
	ns, err := numbers(it, name, args, scope, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(ns); i++ {
		if !ok(int64(ns[i-1]), int64(ns[i])) {
			return it.heap.NewBoolean(false), nil
		}
	}
	return it.heap.NewBoolean(true), nil
}

func biNumEq(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return chainCompare(it, "=", args, scope, func(a, b int64) bool { return a == b })
}
func biLt(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return chainCompare(it, "<", args, scope, func(a, b int64) bool { return a < b })
}
func biGt(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return chainCompare(it, ">", args, scope, func(a, b int64) bool { return a > b })
}
func biLe(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return chainCompare(it, "<=", args, scope, func(a, b int64) bool { return a <= b })
}
func biGe(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return chainCompare(it, ">=", args, scope, func(a, b int64) bool { return a >= b })
}

func biNot(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, newRuntimeError("not: requires exactly 1 argument")
	}
	return it.heap.NewBoolean(isFalse(vals[0])), nil
}

func predicate(it *Interpreter, name string, args Value, scope *Scope, test func(Value) bool) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, newRuntimeError("%s: requires exactly 1 argument", name)
	}
	return it.heap.NewBoolean(test(vals[0])), nil
}

func biBooleanP(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return predicate(it, "boolean?", args, scope, func(v Value) bool {
		_, ok := v.(Boolean)
		return ok
	})
}

func biNumberP(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return predicate(it, "number?", args, scope, func(v Value) bool {
		_, ok := v.(Number)
		return ok
	})
}

func biSymbolP(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return predicate(it, "symbol?", args, scope, func(v Value) bool {
		_, ok := v.(Symbol)
		return ok
	})
}

// biPairP reports true iff its argument is a Cell whose spine, read as a
// list, holds exactly two elements. A dotted pair's non-nil, non-Cell
// tail counts as its second element, so (cons 1 2) is a pair just as
// (list 1 2) is.
func biPairP(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return predicate(it, "pair?", args, scope, func(v Value) bool {
		cell, ok := v.(*Cell)
		if !ok {
			return false
		}
		return spineLength(cell) == 2
	})
}

// spineLength counts the elements of v read as a (possibly improper)
// list: each Cell contributes one element as it is walked, and a
// non-nil, non-Cell tail contributes one final trailing element.
func spineLength(v Value) int {
	count := 0
	cur := v
	for {
		if cur == nil {
			return count
		}
		cell, ok := cur.(*Cell)
		if !ok {
			return count + 1
		}
		count++
		cur = cell.Rest
	}
}

func biNullP(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return predicate(it, "null?", args, scope, func(v Value) bool { return v == nil })
}

// biListP reports true for nil and for any Cell whose spine terminates
// in nil; improper (dotted) spines are false.
func biListP(it *Interpreter, args Value, scope *Scope) (Value, error) {
	return predicate(it, "list?", args, scope, isProperList)
}

func isProperList(v Value) bool {
	for {
		if v == nil {
			return true
		}
		cell, ok := v.(*Cell)
		if !ok {
			return false
		}
		v = cell.Rest
	}
}

func biCons(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, newRuntimeError("cons: requires exactly 2 arguments")
	}
	return it.heap.NewCell(vals[0], vals[1]), nil
}

func biCar(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, newRuntimeError("car: requires exactly 1 argument")
	}
	cell, ok := vals[0].(*Cell)
	if !ok {
		return nil, newRuntimeError("car: not a pair: %s", Serialize(vals[0]))
	}
	return cell.First, nil
}

func biCdr(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, newRuntimeError("cdr: requires exactly 1 argument")
	}
	cell, ok := vals[0].(*Cell)
	if !ok {
		return nil, newRuntimeError("cdr: not a pair: %s", Serialize(vals[0]))
	}
	return cell.Rest, nil
}

func biList(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	var out Value
	for i := len(vals) - 1; i >= 0; i-- {
		out = it.heap.NewCell(vals[i], out)
	}
	return out, nil
}

func biListRef(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, newRuntimeError("list-ref: requires exactly 2 arguments")
	}
	idx, ok := vals[1].(Number)
	if !ok {
		return nil, newRuntimeError("list-ref: index must be a number")
	}
	if idx < 0 {
		return nil, newRuntimeError("list-ref: negative index")
	}
	cur := vals[0]
	for i := int64(0); i < int64(idx); i++ {
		cell, ok := cur.(*Cell)
		if !ok {
			return nil, newRuntimeError("list-ref: index out of range")
		}
		cur = cell.Rest
	}
	cell, ok := cur.(*Cell)
	if !ok {
		return nil, newRuntimeError("list-ref: index out of range")
	}
	return cell.First, nil
}

func biListTail(it *Interpreter, args Value, scope *Scope) (Value, error) {
	vals, err := extractArgs(it, args, scope, true)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, newRuntimeError("list-tail: requires exactly 2 arguments")
	}
	idx, ok := vals[1].(Number)
	if !ok {
		return nil, newRuntimeError("list-tail: index must be a number")
	}
	if idx < 0 {
		return nil, newRuntimeError("list-tail: negative index")
	}
	cur := vals[0]
	for i := int64(0); i < int64(idx); i++ {
		cell, ok := cur.(*Cell)
		if !ok {
			return nil, newRuntimeError("list-tail: index out of range")
		}
		cur = cell.Rest
	}
	return cur, nil
}

package kernel

import (
	"bufio"
	"fmt"
)

// NewGlobalEnvironment returns the initial environment with every builtin
// and special form bound, ready to be handed to Eval for a top-level
// driver.
func NewGlobalEnvironment(out *bufio.Writer) *Environment {
	env := NewEnvironment(nil)
	for name, fn := range builtinTable(out) {
		env.Define(Intern(name, Position{}), NewBuiltin(name, fn))
	}
	return env
}

func builtinTable(out *bufio.Writer) map[string]BuiltinFn {
	return map[string]BuiltinFn{
		"+":       arithFold("+", func(acc, v int64) int64 { return acc + v }),
		"-":       arithFold("-", func(acc, v int64) int64 { return acc - v }),
		"*":       arithFold("*", func(acc, v int64) int64 { return acc * v }),
		"/":       builtinDivide,
		"=":       builtinEquals,
		"<":       builtinLess,
		"print":   builtinPrint(out, false),
		"println": builtinPrint(out, true),
		"quote":   builtinQuote,
		"cons":    builtinCons,
		"car":     builtinCar,
		"cdr":     builtinCdr,
		"set":     builtinSet,
		"setq":    builtinSetq,
		"fn":      builtinFn,
		"macro":   builtinMacro,
		"if":      builtinIf,
		"while":   builtinWhile,
		"progn":   builtinProgn,
	}
}

// evalArgs evaluates every argument of args (a Cell chain or Nil),
// returning either the evaluated slice or the first Error produced.
func evalArgs(env *Environment, args Value) ([]Value, *ErrorVal) {
	return evalList(env, args)
}

func asInts(name string, pos Position, vs []Value) ([]int64, *ErrorVal) {
	ints := make([]int64, len(vs))
	for i, v := range vs {
		n, ok := v.(*Int)
		if !ok {
			return nil, NewError(fmt.Sprintf("builtin `%s' takes only numeric arguments", name), pos)
		}
		ints[i] = n.Value
	}
	return ints, nil
}

// arithFold folds op over the evaluated integer arguments, seeding the
// accumulator with the first.
func arithFold(name string, op func(acc, v int64) int64) BuiltinFn {
	return func(env *Environment, args Value, pos Position) Value {
		vals, e := evalArgs(env, args)
		if e != nil {
			return e
		}
		if len(vals) == 0 {
			return NewError("builtin requires at least 1 argument", pos)
		}
		ints, e := asInts(name, pos, vals)
		if e != nil {
			return e
		}
		acc := ints[0]
		for _, n := range ints[1:] {
			acc = op(acc, n)
		}
		return NewInt(acc, pos)
	}
}

func builtinDivide(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) == 0 {
		return NewError("builtin requires at least 1 argument", pos)
	}
	ints, e := asInts("/", pos, vals)
	if e != nil {
		return e
	}
	acc := ints[0]
	for _, n := range ints[1:] {
		if n == 0 {
			return NewError("division by zero", pos)
		}
		acc /= n
	}
	return NewInt(acc, pos)
}

func builtinEquals(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) == 0 {
		return NewError("builtin requires at least 1 argument", pos)
	}
	ints, e := asInts("=", pos, vals)
	if e != nil {
		return e
	}
	for _, n := range ints[1:] {
		if n != ints[0] {
			return Nil
		}
	}
	return True
}

// builtinLess returns True iff each argument is strictly greater than its
// successor (monotonically decreasing), not ordinary ascending order.
// This deliberately preserves a quirk of the reference behavior rather
// than "fixing" it.
func builtinLess(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) == 0 {
		return NewError("builtin requires at least 1 argument", pos)
	}
	ints, e := asInts("<", pos, vals)
	if e != nil {
		return e
	}
	for i := 1; i < len(ints); i++ {
		if ints[i-1] <= ints[i] {
			return Nil
		}
	}
	return True
}

func builtinPrint(out *bufio.Writer, newline bool) BuiltinFn {
	return func(env *Environment, args Value, pos Position) Value {
		vals, e := evalArgs(env, args)
		if e != nil {
			return e
		}
		for i, v := range vals {
			if i > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(v.String())
		}
		if newline {
			out.WriteByte('\n')
		}
		out.Flush()
		return Nil
	}
}

func builtinQuote(env *Environment, args Value, pos Position) Value {
	if listLength(args) != 1 {
		return NewError("quote requires exactly 1 argument", pos)
	}
	return nth(args, 0)
}

func builtinCons(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) != 2 {
		return NewError("cons requires exactly 2 arguments", pos)
	}
	return NewCell(vals[0], vals[1], pos)
}

func builtinCar(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) != 1 {
		return NewError("car requires exactly 1 argument", pos)
	}
	if c, ok := vals[0].(*Cell); ok {
		return c.Car
	}
	return Nil
}

func builtinCdr(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) != 1 {
		return NewError("cdr requires exactly 1 argument", pos)
	}
	if c, ok := vals[0].(*Cell); ok {
		return c.Cdr
	}
	return Nil
}

func builtinSet(env *Environment, args Value, pos Position) Value {
	vals, e := evalArgs(env, args)
	if e != nil {
		return e
	}
	if len(vals) != 2 {
		return NewError("set requires exactly 2 arguments", pos)
	}
	sym, ok := vals[0].(Sym)
	if !ok {
		return NewError("set first argument must evaluate to a symbol", pos)
	}
	env.Assign(sym, vals[1])
	return vals[1]
}

func builtinSetq(env *Environment, args Value, pos Position) Value {
	if listLength(args) != 2 {
		return NewError("setq requires exactly 2 arguments", pos)
	}
	symVal := nth(args, 0)
	sym, ok := symVal.(Sym)
	if !ok {
		return NewError("setq first argument must be a symbol", pos)
	}
	val := Eval(env, nth(args, 1))
	if e, ok := IsError(val); ok {
		return e
	}
	env.Assign(sym, val)
	return val
}

// parseFnForm reads the common (name? params body...) shape shared by fn
// and macro. name is empty when the form is anonymous.
func parseFnForm(args Value, pos Position) (name string, params Value, body Value, errv *ErrorVal) {
	if listLength(args) < 2 {
		return "", nil, nil, NewError("requires at least 2 arguments", pos)
	}
	first := nth(args, 0)
	rest := args.(*Cell).Cdr
	if sym, ok := first.(Sym); ok {
		if listLength(rest) < 2 {
			return "", nil, nil, NewError("requires a parameter list and a body", pos)
		}
		params = nth(rest, 0)
		body = rest.(*Cell).Cdr
		return sym.Name(), params, body, nil
	}
	params = first
	body = rest
	return "", params, body, nil
}

func builtinFn(env *Environment, args Value, pos Position) Value {
	name, params, body, e := parseFnForm(args, pos)
	if e != nil {
		return e
	}
	lambda := &Lambda{base{pos}, name, params, body, env}
	if name != "" {
		env.Define(Intern(name, pos), lambda)
	}
	return lambda
}

func builtinMacro(env *Environment, args Value, pos Position) Value {
	name, params, body, e := parseFnForm(args, pos)
	if e != nil {
		return e
	}
	macro := &Macro{base{pos}, name, params, body, env}
	if name != "" {
		env.Define(Intern(name, pos), macro)
	}
	return macro
}

func builtinIf(env *Environment, args Value, pos Position) Value {
	n := listLength(args)
	if n < 2 {
		return NewError("if requires at least 2 arguments", pos)
	}
	test := Eval(env, nth(args, 0))
	if e, ok := IsError(test); ok {
		return e
	}
	if IsTrue(test) {
		return Eval(env, nth(args, 1))
	}
	if n == 2 {
		return Nil
	}
	return progn(env, args.(*Cell).Cdr.(*Cell).Cdr)
}

func builtinWhile(env *Environment, args Value, pos Position) Value {
	if listLength(args) < 1 {
		return NewError("while requires at least 1 argument", pos)
	}
	cell := args.(*Cell)
	test := cell.Car
	body := cell.Cdr

	var result Value = Nil
	for {
		cond := Eval(env, test)
		if e, ok := IsError(cond); ok {
			return e
		}
		if !IsTrue(cond) {
			return result
		}
		result = progn(env, body)
		if e, ok := IsError(result); ok {
			return e
		}
	}
}

func builtinProgn(env *Environment, args Value, pos Position) Value {
	return progn(env, args)
}

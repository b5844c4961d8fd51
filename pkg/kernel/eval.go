package kernel

import "fmt"

// Eval interprets v against env. Errors are ordinary return values (an
// *ErrorVal), not Go errors: any evaluator helper that receives one as an
// intermediate result returns it unchanged, preserving its original
// source position.
func Eval(env *Environment, v Value) Value {
	switch t := v.(type) {
	case Sym:
		val, ok := env.Get(t)
		if !ok {
			return NewError("undeclared identifier: "+t.Name(), t.Pos())
		}
		return val

	case *Cell:
		head := Eval(env, t.Car)
		if e, ok := IsError(head); ok {
			return e
		}
		return apply(env, head, t.Cdr, t.Pos())

	default:
		// Int, Str, Nil, True, Builtin, Lambda, Macro, ErrorVal: self-evaluating.
		return v
	}
}

// apply dispatches on the kind of the evaluated head.
func apply(env *Environment, head Value, rawArgs Value, callPos Position) Value {
	switch fn := head.(type) {
	case *Builtin:
		return fn.Fn(env, rawArgs, callPos)

	case *Lambda:
		args, e := evalList(env, rawArgs)
		if e != nil {
			return e
		}
		frame, e := Extend(fn.Env, fn.Params, args, callPos)
		if e != nil {
			return e
		}
		return progn(frame, fn.Body)

	case *Macro:
		rawArgSlice, ok := toSlice(rawArgs)
		if !ok {
			return NewError("malformed argument list", callPos)
		}
		frame, e := Extend(fn.Env, fn.Params, rawArgSlice, callPos)
		if e != nil {
			return e
		}
		expansion := progn(frame, fn.Body)
		if e, ok := IsError(expansion); ok {
			return e
		}
		return Eval(env, expansion)

	default:
		return NewError(fmt.Sprintf("attempt to call non-function: %s", head.String()), callPos)
	}
}

// evalList evaluates each element of list (left to right), short-circuiting
// on the first ErrorVal produced.
func evalList(env *Environment, list Value) ([]Value, *ErrorVal) {
	var out []Value
	cur := list
	for {
		switch t := cur.(type) {
		case *NilVal:
			return out, nil
		case *Cell:
			v := Eval(env, t.Car)
			if e, ok := IsError(v); ok {
				return nil, e
			}
			out = append(out, v)
			cur = t.Cdr
		default:
			return nil, NewError("improper argument list", cur.Pos())
		}
	}
}

// progn evaluates each expression of list in sequence, returning the last
// value, or Nil if list is empty. Short-circuits on Error.
func progn(env *Environment, list Value) Value {
	var result Value = Nil
	cur := list
	for {
		switch t := cur.(type) {
		case *NilVal:
			return result
		case *Cell:
			result = Eval(env, t.Car)
			if e, ok := IsError(result); ok {
				return e
			}
			cur = t.Cdr
		default:
			return NewError("improper body list", cur.Pos())
		}
	}
}

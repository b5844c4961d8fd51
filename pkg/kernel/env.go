package kernel

import "fmt"

// Environment is a chain of frames mapping symbol names to values. Frames
// are extended, never mutated in place, when a function is entered; an
// individual binding within a frame may be reassigned in place via
// Assign.
type Environment struct {
	bindings map[string]*Value
	parent   *Environment
}

// NewEnvironment creates a frame chained to parent (nil for the global
// frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		bindings: make(map[string]*Value),
		parent:   parent,
	}
}

// lookup walks frames from innermost to outermost, returning the binding
// cell for sym and true, or (nil, false) if sym is unbound anywhere on the
// chain.
func (env *Environment) lookup(sym Sym) (*Value, bool) {
	for e := env; e != nil; e = e.parent {
		if cell, ok := e.bindings[sym.Name()]; ok {
			return cell, true
		}
	}
	return nil, false
}

// Get resolves sym to its bound value, or reports ok=false if unbound.
func (env *Environment) Get(sym Sym) (Value, bool) {
	cell, ok := env.lookup(sym)
	if !ok {
		return nil, false
	}
	return *cell, true
}

// Define inserts or overwrites the binding for sym at the innermost
// (current) frame.
func (env *Environment) Define(sym Sym, val Value) {
	v := val
	env.bindings[sym.Name()] = &v
}

// Assign finds sym's binding via lookup and mutates it in place. If no
// binding exists anywhere on the chain, it defines one at the innermost
// frame instead. Both `set` and `setq` rely on this fallback.
func (env *Environment) Assign(sym Sym, val Value) {
	if cell, ok := env.lookup(sym); ok {
		*cell = val
		return
	}
	env.Define(sym, val)
}

// Names returns every symbol name bound anywhere on env's frame chain,
// innermost frames first. Used by the REPL for tab completion.
func (env *Environment) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for e := env; e != nil; e = e.parent {
		for name := range e.bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Extend produces a new frame chained to env, binding params to args. The
// final tail of a dotted params list captures any remaining args as a
// fresh list. Returns an ErrorVal on arity mismatch.
func Extend(env *Environment, params Value, args []Value, pos Position) (*Environment, *ErrorVal) {
	frame := NewEnvironment(env)
	i := 0
	cur := params
	for {
		switch t := cur.(type) {
		case *NilVal:
			if i != len(args) {
				return nil, NewError(fmt.Sprintf("wrong number of arguments: expected %d, got %d", i, len(args)), pos)
			}
			return frame, nil
		case *Cell:
			sym, ok := t.Car.(Sym)
			if !ok {
				return nil, NewError("parameter must be a symbol", t.Car.Pos())
			}
			if i >= len(args) {
				return nil, NewError(fmt.Sprintf("too few arguments: expected at least %d", i+1), pos)
			}
			frame.Define(sym, args[i])
			i++
			cur = t.Cdr
		case Sym:
			// Dotted tail: bind the rest symbol to the list of remaining args.
			frame.Define(t, listOf(pos, args[i:]...))
			return frame, nil
		default:
			return nil, NewError("malformed parameter list", cur.Pos())
		}
	}
}

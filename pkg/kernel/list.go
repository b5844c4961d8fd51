package kernel

// Helpers over the cons-cell list representation used throughout the
// reader, environment and evaluator.

// listOf builds a proper list of vs, terminated by Nil, every cell stamped
// with pos.
func listOf(pos Position, vs ...Value) Value {
	var tail Value = Nil
	for i := len(vs) - 1; i >= 0; i-- {
		tail = NewCell(vs[i], tail, pos)
	}
	return tail
}

// toSlice walks a proper list into a Go slice. If v is not a proper list
// (Nil-terminated chain of Cells), ok is false.
func toSlice(v Value) (elems []Value, ok bool) {
	for {
		switch t := v.(type) {
		case *NilVal:
			return elems, true
		case *Cell:
			elems = append(elems, t.Car)
			v = t.Cdr
		default:
			return elems, false
		}
	}
}

// listLength counts the cells of a proper list; -1 if v is improper.
func listLength(v Value) int {
	n := 0
	for {
		switch t := v.(type) {
		case *NilVal:
			return n
		case *Cell:
			n++
			v = t.Cdr
		default:
			return -1
		}
	}
}

// nth returns the i-th element (0-based) of a list, or Nil if out of range.
func nth(v Value, i int) Value {
	for {
		c, ok := v.(*Cell)
		if !ok {
			return Nil
		}
		if i == 0 {
			return c.Car
		}
		i--
		v = c.Cdr
	}
}

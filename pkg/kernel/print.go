package kernel

import "strings"

// printValue renders a Cell as "(e1 e2 … en)" when proper, or
// "(e1 e2 … . tail)" when improper. Nested quotes are not abbreviated
// back to the reader shorthand.
func printValue(v Value) string {
	var b strings.Builder
	b.WriteByte('(')
	first := true
	for {
		c, ok := v.(*Cell)
		if !ok {
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(c.Car.String())
		v = c.Cdr
	}
	if !IsNil(v) {
		b.WriteString(" . ")
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

// printBody renders a Lambda/Macro body (a list of forms) for the readable
// form used by Lambda.String()/Macro.String().
func printBody(body Value) string {
	elems, ok := toSlice(body)
	if !ok {
		return body.String()
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

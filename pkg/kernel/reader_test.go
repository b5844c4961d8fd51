package kernel

import "testing"

func mustReadAll(t *testing.T, src string) []Value {
	t.Helper()
	forms, err := ReadAll(src, "test")
	if err != nil {
		t.Fatalf("ReadAll(%q) error: %v", src, err)
	}
	return forms
}

func TestReadAtoms(t *testing.T) {
	forms := mustReadAll(t, `42 foo "hello world"`)
	if len(forms) != 3 {
		t.Fatalf("got %d forms, want 3", len(forms))
	}
	if n, ok := forms[0].(*Int); !ok || n.Value != 42 {
		t.Errorf("forms[0] = %v, want Int(42)", forms[0])
	}
	if s, ok := forms[1].(Sym); !ok || s.Name() != "foo" {
		t.Errorf("forms[1] = %v, want Sym(foo)", forms[1])
	}
	if s, ok := forms[2].(*Str); !ok || s.Value != "hello world" {
		t.Errorf("forms[2] = %v, want Str(hello world)", forms[2])
	}
}

func TestReadEmptyListIsNil(t *testing.T) {
	forms := mustReadAll(t, `()`)
	if !IsNil(forms[0]) {
		t.Errorf("() read as %v, want Nil", forms[0])
	}
}

func TestReadProperList(t *testing.T) {
	forms := mustReadAll(t, `(1 2 3)`)
	elems, ok := toSlice(forms[0])
	if !ok || len(elems) != 3 {
		t.Fatalf("(1 2 3) read as %v", forms[0])
	}
}

func TestReadDottedPair(t *testing.T) {
	forms := mustReadAll(t, `(a . b)`)
	c, ok := forms[0].(*Cell)
	if !ok {
		t.Fatalf("(a . b) did not read as a Cell: %v", forms[0])
	}
	if sym, ok := c.Car.(Sym); !ok || sym.Name() != "a" {
		t.Errorf("car = %v, want a", c.Car)
	}
	if sym, ok := c.Cdr.(Sym); !ok || sym.Name() != "b" {
		t.Errorf("cdr = %v, want b", c.Cdr)
	}
}

func TestReadImproperListWithFixedPrefix(t *testing.T) {
	forms := mustReadAll(t, `(a b . c)`)
	elems, ok := toSlice(forms[0])
	if ok {
		t.Fatalf("expected an improper list, toSlice succeeded with %v", elems)
	}
	c := forms[0].(*Cell)
	if sym, ok := c.Cdr.(*Cell).Cdr.(Sym); !ok || sym.Name() != "c" {
		t.Errorf("tail = %v, want c", c.Cdr.(*Cell).Cdr)
	}
}

func TestReadQuoteShorthand(t *testing.T) {
	forms := mustReadAll(t, `'x`)
	c, ok := forms[0].(*Cell)
	if !ok {
		t.Fatalf("'x did not expand to a Cell: %v", forms[0])
	}
	if sym, ok := c.Car.(Sym); !ok || sym.Name() != "quote" {
		t.Errorf("head = %v, want quote", c.Car)
	}
	inner := c.Cdr.(*Cell).Car
	if sym, ok := inner.(Sym); !ok || sym.Name() != "x" {
		t.Errorf("quoted form = %v, want x", inner)
	}
}

func TestReadCommentsStripped(t *testing.T) {
	forms := mustReadAll(t, "1 # this is a comment\n2")
	if len(forms) != 2 {
		t.Fatalf("got %d forms, want 2", len(forms))
	}
}

func TestReadErrorUnterminatedList(t *testing.T) {
	_, err := ReadAll(`(1 2`, "test")
	if err == nil {
		t.Fatal("expected an error for an unterminated list")
	}
}

func TestReadErrorStrayRParen(t *testing.T) {
	_, err := ReadAll(`)`, "test")
	if err == nil {
		t.Fatal("expected an error for a stray )")
	}
}

func TestReadErrorMalformedDottedForm(t *testing.T) {
	_, err := ReadAll(`(a . b c)`, "test")
	if err == nil {
		t.Fatal("expected an error for a malformed dotted list")
	}
}

func TestReadErrorUnexpectedEOF(t *testing.T) {
	_, err := ReadAll(`'`, "test")
	if err == nil {
		t.Fatal("expected an error for unexpected EOF")
	}
}

func TestReadErrorPositionIsStamped(t *testing.T) {
	_, err := ReadAll("(1 2\n(3 4)", "myfile")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected a *ParseError, got %T", err)
	}
	if pe.Pos.File != "myfile" {
		t.Errorf("Pos.File = %q, want myfile", pe.Pos.File)
	}
}

package repl

import (
	"strings"
	"testing"

	"github.com/leinonen/corelisp/pkg/kernel"
)

func TestFormatEvalErrorIncludesPosition(t *testing.T) {
	f := NewErrorFormatter()
	pos := kernel.Position{File: "demo.lisp", Line: 4, Column: 9}
	e := kernel.NewError("undeclared identifier: foo", pos)

	got := f.FormatEvalError(e)
	if !strings.Contains(got, "demo.lisp:4:9:") {
		t.Errorf("FormatEvalError(%v) = %q, missing location prefix", e, got)
	}
	if !strings.Contains(got, "undeclared identifier: foo") {
		t.Errorf("FormatEvalError(%v) = %q, missing message", e, got)
	}
}

func TestClassifyErrorKinds(t *testing.T) {
	cases := []struct {
		msg  string
		kind ErrorKind
	}{
		{"undeclared identifier: x", ErrorKindUnbound},
		{"builtin `+' takes only numeric arguments", ErrorKindType},
		{"attempt to call non-function: 1", ErrorKindCall},
		{"division by zero", ErrorKindArity},
		{"something else entirely", ErrorKindGeneral},
	}
	for _, c := range cases {
		if got := classify(c.msg); got != c.kind {
			t.Errorf("classify(%q) = %v, want %v", c.msg, got, c.kind)
		}
	}
}

func TestFormatParseErrorWithPosition(t *testing.T) {
	f := NewErrorFormatter()
	_, err := kernel.ReadAll(`(1 2`, "bad.lisp")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	got := f.FormatParseError(err)
	if !strings.Contains(got, "bad.lisp") {
		t.Errorf("FormatParseError = %q, missing file name", got)
	}
}

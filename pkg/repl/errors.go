package repl

import (
	"strings"

	"github.com/fatih/color"

	"github.com/leinonen/corelisp/pkg/kernel"
)

// ErrorKind categorizes a diagnostic for color coding: a read error, an
// unbound identifier, a wrong-type argument, an arity mismatch or division
// by zero, a non-function call, or any other error (general).
type ErrorKind int

const (
	ErrorKindRead ErrorKind = iota
	ErrorKindUnbound
	ErrorKindType
	ErrorKindArity
	ErrorKindCall
	ErrorKindGeneral
)

// ErrorFormatter renders diagnostics the way the REPL prints them: colored
// by kind, in the "<file>:<line>:<col>: <msg>" shape.
type ErrorFormatter struct {
	readColor    *color.Color
	unboundColor *color.Color
	typeColor    *color.Color
	arityColor   *color.Color
	callColor    *color.Color
	generalColor *color.Color
	prefixColor  *color.Color
}

// NewErrorFormatter creates a formatter with predefined colors.
func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{
		readColor:    color.New(color.FgRed, color.Bold),
		unboundColor: color.New(color.FgYellow, color.Bold),
		typeColor:    color.New(color.FgMagenta, color.Bold),
		arityColor:   color.New(color.FgCyan, color.Bold),
		callColor:    color.New(color.FgRed),
		generalColor: color.New(color.FgRed),
		prefixColor:  color.New(color.FgHiBlack),
	}
}

func classify(msg string) ErrorKind {
	switch {
	case strings.HasPrefix(msg, "undeclared identifier"):
		return ErrorKindUnbound
	case strings.Contains(msg, "takes only numeric arguments"), strings.Contains(msg, "must evaluate to a symbol"), strings.Contains(msg, "must be a symbol"):
		return ErrorKindType
	case strings.Contains(msg, "arguments"), strings.Contains(msg, "division by zero"):
		return ErrorKindArity
	case strings.HasPrefix(msg, "attempt to call non-function"):
		return ErrorKindCall
	default:
		return ErrorKindGeneral
	}
}

func (f *ErrorFormatter) colorFor(kind ErrorKind) *color.Color {
	switch kind {
	case ErrorKindUnbound:
		return f.unboundColor
	case ErrorKindType:
		return f.typeColor
	case ErrorKindArity:
		return f.arityColor
	case ErrorKindCall:
		return f.callColor
	default:
		return f.generalColor
	}
}

// FormatEvalError renders an *kernel.ErrorVal as
// "<file>:<line>:<col>: <msg>", colorized by the error's shape.
func (f *ErrorFormatter) FormatEvalError(e *kernel.ErrorVal) string {
	kind := classify(e.Message)
	c := f.colorFor(kind)
	loc := f.prefixColor.Sprint(e.Pos().String() + ":")
	return loc + " " + c.Sprint(e.Message)
}

// FormatParseError renders a read-time error (*kernel.ParseError) in the
// same diagnostic shape.
func (f *ErrorFormatter) FormatParseError(err error) string {
	if pe, ok := err.(*kernel.ParseError); ok {
		loc := f.prefixColor.Sprint(pe.Pos.String() + ":")
		return loc + " " + f.readColor.Sprint(pe.Message)
	}
	return f.readColor.Sprint(err.Error())
}

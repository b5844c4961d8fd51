// Package repl implements the interactive top-level driver: it reads
// balanced top-level forms from stdin (or a file), feeds them to the
// kernel evaluator, and prints results or diagnostics. The driver, the
// diagnostic channel, and command-line handling are external
// collaborators rather than part of the language core. This is the
// ambient CLI wrapping pkg/kernel, grounded on the teacher's
// pkg/repl/repl.go and cmd/minimal-lisp/main.go.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/leinonen/corelisp/pkg/kernel"
)

// REPL is a readline-backed read-eval-print loop over a persistent global
// environment.
type REPL struct {
	Env    *kernel.Environment
	errFmt *ErrorFormatter
	colors bool
}

// New creates a REPL writing evaluated output and print/println side
// effects to stdout.
func New(colors bool) *REPL {
	out := bufio.NewWriter(os.Stdout)
	return &REPL{
		Env:    kernel.NewGlobalEnvironment(out),
		errFmt: NewErrorFormatter(),
		colors: colors,
	}
}

// Run starts the interactive loop, reading from stdin with readline
// history/completion and printing colorized diagnostics.
func (r *REPL) Run() {
	if !r.colors {
		color.NoColor = true
	}
	r.printWelcome()

	completer := &symbolCompleter{env: r.Env}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "corelisp> ",
		HistoryFile:     "/tmp/corelisp_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline unavailable (%v); falling back to plain stdin\n", err)
		r.runPlain(bufio.NewScanner(os.Stdin))
		return
	}
	defer rl.Close()

	for {
		input, ok := r.readForm(rl)
		if !ok {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}
		if input == ":reset" || input == ":clear" {
			continue
		}
		r.evalAndPrint(input, "<repl>")
	}

	goodbyeColor := color.New(color.FgMagenta, color.Bold)
	goodbyeColor.Println("Goodbye!")
}

// runPlain is the bufio.Scanner fallback used when readline cannot attach
// to the terminal (e.g. piped input).
func (r *REPL) runPlain(scanner *bufio.Scanner) {
	var buf strings.Builder
	depth := 0
	inString := false

	prompt := func() {
		if buf.Len() == 0 {
			fmt.Print("corelisp> ")
		} else {
			fmt.Print("...       ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "quit" || trimmed == "exit" {
				break
			}
			if trimmed == ":reset" || trimmed == ":clear" {
				prompt()
				continue
			}
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		depth += parenDelta(line, &inString)

		if depth <= 0 && strings.TrimSpace(buf.String()) != "" {
			r.evalAndPrint(buf.String(), "<repl>")
			buf.Reset()
			depth = 0
			inString = false
		}
		prompt()
	}
	fmt.Println("Goodbye!")
}

// readForm buffers lines from rl until parentheses balance, mirroring the
// teacher's readCompleteExpressionWithColors.
func (r *REPL) readForm(rl *readline.Instance) (string, bool) {
	var lines []string
	depth := 0
	inString := false

	rl.SetPrompt("corelisp> ")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			if err == io.EOF {
				return "", false
			}
			if len(lines) == 0 {
				continue
			}
			return "", false
		}
		lines = append(lines, line)
		if len(lines) == 1 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "quit" || trimmed == "exit" || trimmed == ":reset" || trimmed == ":clear" {
				return trimmed, true
			}
		}
		depth += parenDelta(line, &inString)
		joined := strings.Join(lines, "\n")
		if depth <= 0 && strings.TrimSpace(joined) != "" {
			return joined, true
		}
		rl.SetPrompt("...       ")
	}
}

// parenDelta counts the net paren balance contributed by line, ignoring
// parens inside string literals and characters after a `#` comment.
func parenDelta(line string, inString *bool) int {
	delta := 0
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escaped {
			escaped = false
			continue
		}
		if *inString {
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				*inString = false
			}
			continue
		}
		switch c {
		case '"':
			*inString = true
		case '#':
			return delta
		case '(':
			delta++
		case ')':
			delta--
		}
	}
	return delta
}

// evalAndPrint reads one or more top-level forms from src and evaluates
// each against the persistent global environment, printing either a
// diagnostic or the result value, without aborting the session.
func (r *REPL) evalAndPrint(src, file string) {
	forms, err := kernel.ReadAll(src, file)
	if err != nil {
		fmt.Println(r.errFmt.FormatParseError(err))
		return
	}
	for _, form := range forms {
		result := kernel.Eval(r.Env, form)
		if e, ok := kernel.IsError(result); ok {
			fmt.Println(r.errFmt.FormatEvalError(e))
			continue
		}
		resultColor := color.New(color.FgGreen)
		fmt.Printf("=> %s\n", resultColor.Sprint(result.String()))
	}
}

func (r *REPL) printWelcome() {
	title := color.New(color.FgCyan, color.Bold)
	instr := color.New(color.FgYellow)
	title.Println("corelisp")
	instr.Println("Type expressions to evaluate them, or 'quit' to exit.")
	instr.Println("Multi-line forms are supported; the prompt waits for balanced parentheses.")
	fmt.Println()
}

// LoadFile reads the top-level forms of filename and evaluates each in
// order against env, printing each eval error and continuing with the next
// form. A read error stops reading: the forms before it are evaluated, the
// read error is printed, and the rest of the file is not evaluated.
func LoadFile(filename string, env *kernel.Environment, errFmt *ErrorFormatter) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	forms, perr := kernel.ReadAll(string(content), filename)
	for _, form := range forms {
		result := kernel.Eval(env, form)
		if e, ok := kernel.IsError(result); ok {
			fmt.Println(errFmt.FormatEvalError(e))
		}
	}
	if perr != nil {
		fmt.Println(errFmt.FormatParseError(perr))
	}
	return nil
}

// Command corelisp is the driver: it owns the long-lived global
// environment, reads top-level forms either from a file or
// interactively, and feeds them to the kernel evaluator. Grounded on the
// teacher's cmd/minimal-lisp/main.go.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/leinonen/corelisp/pkg/kernel"
	"github.com/leinonen/corelisp/pkg/repl"
)

func main() {
	var filename string
	var noColor bool
	flag.StringVar(&filename, "f", "", "load and execute a corelisp file")
	flag.BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")
	flag.Parse()

	if filename != "" {
		out := bufio.NewWriter(os.Stdout)
		env := kernel.NewGlobalEnvironment(out)
		errFmt := repl.NewErrorFormatter()
		if err := repl.LoadFile(filename, env, errFmt); err != nil {
			// Only an I/O failure (the file itself could not be read) affects
			// the exit code. Individual read/eval errors inside the file are
			// printed and otherwise do not.
			fmt.Fprintf(os.Stderr, "corelisp: %v\n", err)
			os.Exit(1)
		}
		return
	}

	session := repl.New(!noColor)
	session.Run()
}

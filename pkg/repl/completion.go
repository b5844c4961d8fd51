package repl

import (
	"sort"
	"strings"

	"github.com/leinonen/corelisp/pkg/kernel"
)

// symbolCompleter implements readline.AutoCompleter, offering every symbol
// currently bound in the environment (builtins plus anything the user has
// `fn`/`macro`/`set`/`setq`-defined at the top level) as a tab-completion
// candidate. Grounded on the teacher's CompletionProvider, simplified
// since corelisp has no module system or special-function argument
// completion to account for.
type symbolCompleter struct {
	env *kernel.Environment
}

// Do implements readline.AutoCompleter.
func (c *symbolCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	prefix, start := currentWord(line, pos)
	if prefix == "" && !justAfterOpenParen(line, pos) {
		return nil, 0
	}

	var matches []string
	for _, name := range c.env.Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	out := make([][]rune, len(matches))
	for i, m := range matches {
		out[i] = []rune(m[len(prefix):])
	}
	_ = start
	return out, len(prefix)
}

// currentWord extracts the symbol-name fragment ending at pos and the
// rune offset it starts at.
func currentWord(line []rune, pos int) (string, int) {
	start := pos
	for start > 0 && !isWordBoundary(line[start-1]) {
		start--
	}
	return string(line[start:pos]), start
}

func justAfterOpenParen(line []rune, pos int) bool {
	return pos > 0 && line[pos-1] == '('
}

func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '(', ')', '\'', '"', '#':
		return true
	default:
		return false
	}
}

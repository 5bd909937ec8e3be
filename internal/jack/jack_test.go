package jack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func tokEOF(line, column int) Token {
	return NewToken(EOF, "", line, column)
}

// compileLines compiles the source and returns the VM text split into lines
func compileLines(t *testing.T, src string) []string {
	t.Helper()
	require := require.New(t)
	class, err := Compile([]rune(src))
	require.NoError(err)
	lines := make([]string, 0, len(class.Instructions))
	for _, in := range class.Instructions {
		lines = append(lines, in.String())
	}
	return lines
}

// vm splits a listing written one instruction per line
func vm(listing string) []string {
	lines := strings.Split(strings.TrimSpace(listing), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// inFunction wraps statements in a function of class Main declaring the given
// variables
func inFunction(decls, body string) string {
	return "class Main { function void main() { " + decls + " " + body + " } }"
}

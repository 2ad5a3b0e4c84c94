package repl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"snake/repl"
)

func TestReplEvaluatesEachLine(t *testing.T) {
	in := strings.NewReader("1 + 2\nlet x = 10 in x * 2\n")
	var out strings.Builder

	repl.Start(in, &out)

	output := out.String()
	assert.Contains(t, output, "=> 3")
	assert.Contains(t, output, "=> 20")
}

func TestReplReportsParseErrors(t *testing.T) {
	in := strings.NewReader("let x = in x\n")
	var out strings.Builder

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "error")
}

func TestReplReportsRuntimeErrors(t *testing.T) {
	in := strings.NewReader("1 + true\n")
	var out strings.Builder

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "error:")
}

func TestReplSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n1\n")
	var out strings.Builder

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "=> 1")
}

// Package repl implements a line-at-a-time read-eval-print loop over the
// tree-walking interpreter, for exploring Snake semantics without going
// through the NASM backend.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"snake/internal/errs"
	"snake/internal/interp"
	"snake/internal/parser"
)

const prompt = ">> "

// Start runs the loop, reading lines from in and writing prompts,
// results, and printed output to out until in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	engine := interp.New(out)

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		prog, err := parser.ParseSource("<repl>", line)
		if err != nil {
			reportError(out, line, err)
			continue
		}

		value, err := engine.Run(prog)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}

		fmt.Fprintf(out, "=> %s\n", interp.Sprint(value))
	}
}

func reportError(out io.Writer, line string, err error) {
	ce, ok := err.(*errs.CompileError)
	if !ok {
		fmt.Fprintf(out, "error: %s\n", err)
		return
	}
	reporter := errs.NewReporter("<repl>", line)
	fmt.Fprint(out, reporter.Format(ce))
}

package errs

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders CompileError values as Rust-style caret diagnostics
// against one source file.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for source, keyed by filename for display.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders err as a multi-line, colorized diagnostic.
func (r *Reporter) Format(err *CompileError) string {
	var b strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	b.WriteString(fmt.Sprintf("%s[%s]: %s\n", red("error"), err.Code, err.Message))

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)
	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if line, ok := r.line(err.Position.Line); ok {
		b.WriteString(fmt.Sprintf("%s %s %s\n", bold(pad(err.Position.Line, width)), dim("│"), line))
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), red(marker(err.Position.Column, err.Length))))
	}

	for _, note := range err.Notes {
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("="), dim("note: "+note)))
	}

	return b.String()
}

func (r *Reporter) line(n int) (string, bool) {
	if n <= 0 || n > len(r.lines) {
		return "", false
	}
	return r.lines[n-1], true
}

func lineNumberWidth(n int) int { return len(fmt.Sprintf("%d", n)) }

func pad(n, width int) string { return fmt.Sprintf("%*d", width, n) }

func marker(column, length int) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}
	return strings.Repeat(" ", column-1) + strings.Repeat("^", length)
}

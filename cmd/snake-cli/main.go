package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/teris-io/cli"

	"snake/internal/compiler"
	"snake/internal/errs"
)

var description = strings.ReplaceAll(`
The Snake compiler takes a .snek source file and translates it into
x86-64 NASM assembly, running it through the full parse, check,
uniquify, closure-convert, lift, and sequentialize pipeline before
emitting code.
`, "\n", " ")

var SnakeCompiler = cli.New(description).
	WithArg(cli.NewArg("input", "The Snake (.snek) source file to compile")).
	WithArg(cli.NewArg("output", "The NASM (.s) assembly file to write")).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	inputPath, outputPath := args[0], args[1]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Printf("ERROR: unable to read %s: %s\n", inputPath, err)
		return -1
	}

	result, err := compiler.Compile(inputPath, string(source))
	if err != nil {
		reportError(inputPath, string(source), err)
		return -1
	}

	if err := os.WriteFile(outputPath, []byte(result.Asm), 0644); err != nil {
		fmt.Printf("ERROR: unable to write %s: %s\n", outputPath, err)
		return -1
	}

	color.Green("compiled %s -> %s", inputPath, outputPath)
	return 0
}

// reportError renders a caret-style diagnostic when err is a recognized
// *errs.CompileError, or falls back to a plain message otherwise.
func reportError(filename, source string, err error) {
	ce, ok := err.(*errs.CompileError)
	if !ok {
		color.Red("ERROR: %s", err)
		return
	}
	reporter := errs.NewReporter(filename, source)
	fmt.Print(reporter.Format(ce))
}

func main() { os.Exit(SnakeCompiler.Run(os.Args, os.Stdout)) }

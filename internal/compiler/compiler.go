// Package compiler wires the full pass pipeline together: parse, check,
// uniquify, convert closures, lift lambdas, sequentialize, and emit
// NASM (spec.md §4, §6's "Compiler entry").
package compiler

import (
	"snake/internal/anf"
	"snake/internal/checker"
	"snake/internal/closure"
	"snake/internal/codegen"
	"snake/internal/core"
	"snake/internal/lift"
	"snake/internal/parser"
	"snake/internal/uniquify"
)

// Result is everything a caller might want out of a successful compile:
// the final NASM text, plus the intermediate trees a diagnostics
// consumer (the LSP, a `-dump` CLI flag) might want to inspect.
type Result struct {
	Asm  string
	Core *core.Program
	Lift *lift.Program
	ANF  *anf.Program
}

// Compile runs every pass in order over source named filename, stopping
// at the first error (spec.md §7: fail fast, no partial output).
func Compile(filename, source string) (*Result, error) {
	prog, err := parser.ParseSource(filename, source)
	if err != nil {
		return nil, err
	}
	if err := checker.Check(prog); err != nil {
		return nil, err
	}

	coreProg := closure.Convert(uniquify.Run(prog))
	liftProg := lift.Run(coreProg)
	seqProg := anf.Run(liftProg)
	asm := codegen.Generate(seqProg)

	return &Result{Asm: asm, Core: coreProg, Lift: liftProg, ANF: seqProg}, nil
}

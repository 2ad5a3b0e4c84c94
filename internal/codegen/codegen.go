package codegen

import (
	"fmt"

	"snake/internal/abi"
	"snake/internal/anf"
)

var errorLabels = map[abi.ErrorCode]string{
	abi.ArithTypeError:   errArith,
	abi.CmpTypeError:     errCmp,
	abi.Overflow:         errOverflow,
	abi.IfTypeError:      errIf,
	abi.LogicTypeError:   errLogic,
	abi.NonArrayError:    errNonArray,
	abi.IndexNotNumber:   errIndexNum,
	abi.IndexOutOfBounds: errIndexBound,
	abi.NonClosureError:  errNonClosure,
	abi.LambdaArityError: errArity,
}

// errorOrder fixes a deterministic emission order for the trampolines so
// repeated runs of Generate produce byte-identical output.
var errorOrder = []abi.ErrorCode{
	abi.ArithTypeError, abi.CmpTypeError, abi.Overflow, abi.IfTypeError,
	abi.LogicTypeError, abi.NonArrayError, abi.IndexNotNumber,
	abi.IndexOutOfBounds, abi.NonClosureError, abi.LambdaArityError,
}

// Generate lowers a fully sequentialized program to NASM source text
// (spec.md §4.6-§4.7, §6's emitted layout).
func Generate(prog *anf.Program) string {
	asm := &assembler{}
	asm.raw("extern print_snake_val")
	asm.raw("extern snake_error")
	asm.raw("")
	asm.raw("section .data")
	asm.raw("align 8")
	asm.raw(fmt.Sprintf("HEAP: times %d dq 0", abi.HeapWords))
	asm.raw("")
	asm.raw("section .text")
	asm.raw("global start_here")
	asm.raw("")

	counter := 0

	asm.label("start_here")
	asm.mov(r15, "HEAP")
	entry := newEmitState(&counter, nil)
	emitExpr(asm, entry, prog.Main)
	asm.ret()

	emitErrorTrampolines(asm)

	for _, fn := range prog.Functions {
		asm.raw("")
		asm.label(globalLabel(fn.Name))
		fnState := newEmitState(&counter, fn.Params)
		emitExpr(asm, fnState, fn.Body)
		asm.ret()
	}

	return asm.String()
}

// emitErrorTrampolines writes one label per runtime error code: it
// expects the offending value already sitting in Rax at the jump site,
// moves it into Rsi, loads the error code into Rdi, and calls into the
// runtime. snake_error never returns.
func emitErrorTrampolines(asm *assembler) {
	for _, code := range errorOrder {
		asm.raw("")
		asm.label(errorLabels[code])
		asm.mov(rsi, rax)
		asm.mov(rdi, hex(uint64(code)))
		asm.call("snake_error")
	}
}

package codegen

import (
	"snake/internal/abi"
	"snake/internal/anf"
	"snake/internal/ast"
)

// errLabel names for the runtime trampolines codegen.go emits once per
// program (spec.md §6's error-code table).
const (
	errArith      = "arith_error"
	errCmp        = "cmp_error"
	errOverflow   = "overflow_error"
	errIf         = "if_error"
	errLogic      = "logic_error"
	errNonArray   = "non_array_error"
	errIndexNum   = "index_not_number_error"
	errIndexBound = "index_out_of_bounds_error"
	errNonClosure = "non_closure_error"
	errArity      = "lambda_arity_error"
)

func operandOf(state *emitState, imm anf.ImmExp) string {
	switch v := imm.(type) {
	case anf.ImmNum:
		return hex(abi.TagInt(v.Value))
	case anf.ImmBool:
		return hex(abi.TagBool(v.Value))
	case anf.ImmVar:
		i, ok := state.vars[v.Name]
		if !ok {
			panic("codegen: unbound variable " + v.Name)
		}
		return slot(i)
	default:
		panic("codegen: unknown immediate")
	}
}

func loadInto(asm *assembler, state *emitState, imm anf.ImmExp, reg string) {
	asm.mov(reg, operandOf(state, imm))
}

// checkTag jumps to errLabel unless reg's bits masked by mask equal tag.
// rcx is clobbered.
func checkTag(asm *assembler, reg string, mask, tag uint64, errLabel string) {
	asm.mov(rcx, reg)
	asm.and(rcx, hex(mask))
	asm.cmp(rcx, hex(tag))
	asm.jcc("ne", errLabel)
}

// checkBool jumps to errLabel unless reg holds one of the two exact
// boolean bit patterns. rcx is clobbered.
func checkBool(asm *assembler, reg, errLabel string) {
	asm.mov(rcx, reg)
	asm.or(rcx, hex(1<<63))
	asm.cmp(rcx, hex(abi.SnakeTrue))
	asm.jcc("ne", errLabel)
}

// emitBoolFromFlag materializes a tagged bool in Rax from the flags set
// by a preceding cmp, testing the given condition code.
func emitBoolFromFlag(asm *assembler, state *emitState, cc string) {
	t := state.fresh("is_true")
	d := state.fresh("bool_done")
	asm.jcc(cc, t)
	asm.mov(rax, hex(abi.SnakeFalse))
	asm.jmp(d)
	asm.label(t)
	asm.mov(rax, hex(abi.SnakeTrue))
	asm.label(d)
}

// emitExpr lowers e, leaving its value in Rax.
func emitExpr(asm *assembler, state *emitState, e anf.SeqExp) {
	switch n := e.(type) {

	case *anf.Imm:
		loadInto(asm, state, n.Value, rax)

	case *anf.Prim:
		emitPrim(asm, state, n)

	case *anf.Let:
		emitExpr(asm, state, n.BoundExp)
		i := state.bind(n.Var)
		asm.mov(slot(i), rax)
		emitExpr(asm, state, n.Body)

	case *anf.If:
		loadInto(asm, state, n.Cond, rax)
		checkBool(asm, rax, errIf)
		asm.cmp(rax, hex(abi.SnakeFalse))
		elseLbl := state.fresh("else")
		endLbl := state.fresh("endif")
		asm.jcc("e", elseLbl)
		emitExpr(asm, state, n.Then)
		asm.jmp(endLbl)
		asm.label(elseLbl)
		emitExpr(asm, state, n.Else)
		asm.label(endLbl)

	case *anf.FunDefs:
		emitFunDefs(asm, state, n)

	case *anf.InternalTailCall:
		emitInternalTailCall(asm, state, n)

	case *anf.ExternalCall:
		emitExternalCall(asm, state, n)

	case *anf.MakeClosure:
		emitMakeClosure(asm, state, n)

	case *anf.GetCode:
		loadInto(asm, state, n.Closure, rax)
		asm.mov(rax, mem(rax, 0))

	case *anf.GetEnv:
		loadInto(asm, state, n.Closure, rax)
		asm.mov(rax, mem(rax, 16))

	case *anf.CheckArityAndUntag:
		loadInto(asm, state, n.Closure, rax)
		checkTag(asm, rax, abi.ClosTagMask, abi.ClosTag, errNonClosure)
		asm.sub(rax, hex(abi.ClosTag))
		asm.mov(rcx, mem(rax, 8))
		asm.cmp(rcx, hex(uint64(n.Arity)))
		asm.jcc("ne", errArity)

	default:
		panic("codegen: unexpected node in instruction selector")
	}
}

func emitPrim(asm *assembler, state *emitState, n *anf.Prim) {
	a := n.Args
	switch n.Op {
	case ast.Add, ast.Sub:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.IntTagMask, abi.IntTag, errArith)
		loadInto(asm, state, a[1], rdx)
		checkTag(asm, rdx, abi.IntTagMask, abi.IntTag, errArith)
		if n.Op == ast.Add {
			asm.add(rax, rdx)
		} else {
			asm.sub(rax, rdx)
		}
		asm.jcc("o", errOverflow)

	case ast.Mul:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.IntTagMask, abi.IntTag, errArith)
		loadInto(asm, state, a[1], rdx)
		checkTag(asm, rdx, abi.IntTagMask, abi.IntTag, errArith)
		asm.sar(rdx, "1")
		asm.imul(rax, rdx)
		asm.jcc("o", errOverflow)

	case ast.Add1, ast.Sub1:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.IntTagMask, abi.IntTag, errArith)
		if n.Op == ast.Add1 {
			asm.add(rax, hex(2))
		} else {
			asm.sub(rax, hex(2))
		}
		asm.jcc("o", errOverflow)

	case ast.Not:
		loadInto(asm, state, a[0], rax)
		checkBool(asm, rax, errLogic)
		asm.xor(rax, hex(1<<63))

	case ast.Print:
		loadInto(asm, state, a[0], rdi)
		emitRuntimeCall(asm, state, "print_snake_val")

	case ast.IsBool:
		loadInto(asm, state, a[0], rax)
		asm.mov(rcx, rax)
		asm.or(rcx, hex(1<<63))
		asm.cmp(rcx, hex(abi.SnakeTrue))
		emitBoolFromFlag(asm, state, "e")

	case ast.IsNum:
		loadInto(asm, state, a[0], rax)
		asm.mov(rcx, rax)
		asm.and(rcx, hex(abi.IntTagMask))
		asm.cmp(rcx, hex(abi.IntTag))
		emitBoolFromFlag(asm, state, "e")

	case ast.IsFun:
		loadInto(asm, state, a[0], rax)
		asm.mov(rcx, rax)
		asm.and(rcx, hex(abi.ClosTagMask))
		asm.cmp(rcx, hex(abi.ClosTag))
		emitBoolFromFlag(asm, state, "e")

	case ast.IsArray:
		loadInto(asm, state, a[0], rax)
		asm.mov(rcx, rax)
		asm.and(rcx, hex(abi.ArrTagMask))
		asm.cmp(rcx, hex(abi.ArrTag))
		emitBoolFromFlag(asm, state, "e")

	case ast.And, ast.Or:
		loadInto(asm, state, a[0], rax)
		checkBool(asm, rax, errLogic)
		loadInto(asm, state, a[1], rdx)
		checkBool(asm, rdx, errLogic)
		if n.Op == ast.And {
			asm.and(rax, rdx)
		} else {
			asm.or(rax, rdx)
		}

	case ast.Lt, ast.Gt, ast.Le, ast.Ge:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.IntTagMask, abi.IntTag, errCmp)
		loadInto(asm, state, a[1], rdx)
		checkTag(asm, rdx, abi.IntTagMask, abi.IntTag, errCmp)
		asm.cmp(rax, rdx)
		emitBoolFromFlag(asm, state, map[ast.PrimOp]string{ast.Lt: "l", ast.Gt: "g", ast.Le: "le", ast.Ge: "ge"}[n.Op])

	case ast.Eq, ast.Neq:
		loadInto(asm, state, a[0], rax)
		loadInto(asm, state, a[1], rdx)
		asm.cmp(rax, rdx)
		if n.Op == ast.Eq {
			emitBoolFromFlag(asm, state, "e")
		} else {
			emitBoolFromFlag(asm, state, "ne")
		}

	case ast.Length:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.ArrTagMask, abi.ArrTag, errNonArray)
		asm.sub(rax, hex(abi.ArrTag))
		asm.mov(rax, mem(rax, 0))
		asm.sal(rax, "1")

	case ast.MakeArray:
		asm.mov(rax, hex(uint64(len(a))))
		asm.mov(mem(r15, 0), rax)
		for i, elem := range a {
			loadInto(asm, state, elem, rax)
			asm.mov(mem(r15, 8*(i+1)), rax)
		}
		asm.mov(rax, r15)
		asm.add(rax, hex(abi.ArrTag))
		asm.add(r15, hex(uint64(8*(len(a)+1))))

	case ast.ArrayGet:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.ArrTagMask, abi.ArrTag, errNonArray)
		asm.mov(rcx, rax)
		asm.sub(rcx, hex(abi.ArrTag))
		loadInto(asm, state, a[1], rdx)
		checkTag(asm, rdx, abi.IntTagMask, abi.IntTag, errIndexNum)
		asm.sar(rdx, "1")
		asm.mov(rax, mem(rcx, 0))
		asm.cmp(rdx, "0")
		asm.jcc("l", errIndexBound)
		asm.cmp(rdx, rax)
		asm.jcc("ge", errIndexBound)
		asm.mov(rax, memIndexed(rcx, rdx, 8, 8))

	case ast.ArraySet:
		loadInto(asm, state, a[0], rax)
		checkTag(asm, rax, abi.ArrTagMask, abi.ArrTag, errNonArray)
		asm.mov(rcx, rax)
		asm.sub(rcx, hex(abi.ArrTag))
		loadInto(asm, state, a[1], rdx)
		checkTag(asm, rdx, abi.IntTagMask, abi.IntTag, errIndexNum)
		asm.sar(rdx, "1")
		asm.mov(rax, mem(rcx, 0))
		asm.cmp(rdx, "0")
		asm.jcc("l", errIndexBound)
		asm.cmp(rdx, rax)
		asm.jcc("ge", errIndexBound)
		loadInto(asm, state, a[2], rax)
		asm.mov(memIndexed(rcx, rdx, 8, 8), rax)

	default:
		panic("codegen: unhandled primitive " + n.Op.String())
	}
}

// emitRuntimeCall rounds the outgoing frame extent to an odd multiple of
// 8 bytes, matching the alignment convention the entry point establishes
// (rsp 16-byte aligned at every call boundary).
func emitRuntimeCall(asm *assembler, state *emitState, name string) {
	shift := state.callShift()
	asm.sub(rsp, hex(uint64(shift)))
	asm.call(name)
	asm.add(rsp, hex(uint64(shift)))
}

func (st *emitState) callShift() int {
	base := st.stack
	if base%2 == 0 {
		base++
	}
	return 8 * base
}

func emitFunDefs(asm *assembler, state *emitState, n *anf.FunDefs) {
	bodyLbl := state.fresh("body")
	asm.jmp(bodyLbl)
	baseStack := state.stack
	for _, d := range n.Decls {
		asm.label(localLabel(d.Name))
		state.stack = baseStack
		for i, p := range d.Params {
			state.vars[p] = baseStack + i
		}
		state.stack = baseStack + len(d.Params)
		state.functions[d.Name] = baseStack
		emitExpr(asm, state, d.Body)
		asm.ret()
	}
	state.stack = baseStack
	asm.label(bodyLbl)
	emitExpr(asm, state, n.Body)
}

// emitInternalTailCall overwrites the caller's own frame, starting at
// the callee's declaration-site base, then jumps into it in place.
func emitInternalTailCall(asm *assembler, state *emitState, n *anf.InternalTailCall) {
	base, ok := state.functions[n.Label]
	if !ok {
		panic("codegen: internal tail call to unknown local function " + n.Label)
	}
	scratch := state.stack
	for i, arg := range n.Args {
		loadInto(asm, state, arg, rax)
		asm.mov(slot(scratch+i), rax)
	}
	for i := range n.Args {
		asm.mov(rax, slot(scratch+i))
		asm.mov(slot(base+i), rax)
	}
	asm.jmp(localLabel(n.Label))
}

func emitExternalCall(asm *assembler, state *emitState, n *anf.ExternalCall) {
	if n.IsTail {
		// the callee's code pointer, if held in a variable, must be read
		// before the argument overwrite below can clobber its slot.
		var codeReg string
		if !n.Fun.IsLabel {
			codeReg = r9
			loadInto(asm, state, anf.ImmVar{Name: n.Fun.Name}, codeReg)
		}
		scratch := state.stack
		for i, arg := range n.Args {
			loadInto(asm, state, arg, rax)
			asm.mov(slot(scratch+i), rax)
		}
		for i := range n.Args {
			asm.mov(rax, slot(scratch+i))
			asm.mov(slot(i), rax)
		}
		if n.Fun.IsLabel {
			asm.jmp(globalLabel(n.Fun.Name))
		} else {
			asm.jmp(codeReg)
		}
		return
	}

	// Rsp is lowered by shift and the call then pushes the return
	// address, so the callee's entry Rsp sits shift+8 bytes below the
	// current one and slot(padBase+1+i) here is the callee's own slot(i).
	shift := state.callShift()
	padBase := shift / 8
	for i, arg := range n.Args {
		loadInto(asm, state, arg, rax)
		asm.mov(slot(padBase+1+i), rax)
	}
	asm.sub(rsp, hex(uint64(shift)))
	if n.Fun.IsLabel {
		asm.call(globalLabel(n.Fun.Name))
	} else {
		i, ok := state.vars[n.Fun.Name]
		if !ok {
			panic("codegen: unbound code pointer variable " + n.Fun.Name)
		}
		asm.mov(rcx, mem(rsp, -8*(i+1)+shift))
		asm.call(rcx)
	}
	asm.add(rsp, hex(uint64(shift)))
}

func emitMakeClosure(asm *assembler, state *emitState, n *anf.MakeClosure) {
	asm.lea(rax, "[rel "+globalLabel(n.Label)+"]")
	asm.mov(mem(r15, 0), rax)
	asm.mov(rax, hex(uint64(n.Arity)))
	asm.mov(mem(r15, 8), rax)
	loadInto(asm, state, n.Env, rax)
	asm.mov(mem(r15, 16), rax)
	asm.mov(rax, r15)
	asm.add(rax, hex(abi.ClosTag))
	asm.add(r15, hex(24))
}

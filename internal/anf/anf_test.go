package anf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/anf"
	"snake/internal/closure"
	"snake/internal/lift"
	"snake/internal/parser"
	"snake/internal/uniquify"
)

func run(t *testing.T, src string) *anf.Program {
	t.Helper()
	prog, err := parser.ParseSource("test.snek", src)
	require.NoError(t, err)
	return anf.Run(lift.Run(closure.Convert(uniquify.Run(prog))))
}

func TestPrimOperandsBecomeImmediateViaLet(t *testing.T) {
	p := run(t, "(1 + 2) + (3 + 4)")
	outer, ok := p.Main.(*anf.Let)
	require.True(t, ok, "expected the first compound sub-add to be hoisted, got %T", p.Main)
	_, ok = outer.BoundExp.(*anf.Prim)
	assert.True(t, ok)

	inner, ok := outer.Body.(*anf.Let)
	require.True(t, ok)
	prim, ok := inner.Body.(*anf.Prim)
	require.True(t, ok)
	for _, a := range prim.Args {
		_, isVar := a.(anf.ImmVar)
		assert.True(t, isVar, "every Prim operand must be immediate after ANF")
	}
}

func TestIfBindsConditionToFreshVar(t *testing.T) {
	p := run(t, "if 1 < 2: 3 else: 4")
	let, ok := p.Main.(*anf.Let)
	require.True(t, ok)
	ifExp, ok := let.Body.(*anf.If)
	require.True(t, ok)
	condVar, ok := ifExp.Cond.(anf.ImmVar)
	require.True(t, ok)
	assert.Equal(t, let.Var, condVar.Name)
}

func TestLetBindingsStayRightAssociatedInOrder(t *testing.T) {
	p := run(t, "let a = 1, b = 2 in a + b")
	outer, ok := p.Main.(*anf.Let)
	require.True(t, ok)
	inner, ok := outer.Body.(*anf.Let)
	require.True(t, ok)
	_, ok = inner.Body.(*anf.Prim)
	assert.True(t, ok)
}

func TestCallArgumentsAreSequentialized(t *testing.T) {
	p := run(t, "def f(x, y) = x; f(1 + 1, 2)")
	defs := p.Main.(*anf.FunDefs)
	require.Len(t, defs.Decls, 1, "a tail call from the top-level body stays local")

	let, ok := defs.Body.(*anf.Let)
	require.True(t, ok, "the compound first argument must be hoisted into a let, got %T", defs.Body)
	_, ok = let.BoundExp.(*anf.Prim)
	assert.True(t, ok)

	call, ok := let.Body.(*anf.InternalTailCall)
	require.True(t, ok)
	_, ok = call.Args[0].(anf.ImmVar)
	assert.True(t, ok)
	_, ok = call.Args[1].(anf.ImmNum)
	assert.True(t, ok)
}

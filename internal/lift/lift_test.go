package lift_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/closure"
	"snake/internal/core"
	"snake/internal/lift"
	"snake/internal/parser"
	"snake/internal/uniquify"
)

func run(t *testing.T, src string) *lift.Program {
	t.Helper()
	prog, err := parser.ParseSource("test.snek", src)
	require.NoError(t, err)
	return lift.Run(closure.Convert(uniquify.Run(prog)))
}

func TestTailRecursiveFunctionStaysLocal(t *testing.T) {
	p := run(t, "def fact(n) = if n < 2: 1 else: fact(n - 1); fact(5)")
	assert.Empty(t, p.Functions, "a function only ever self-tail-called should not be lifted")

	defs, ok := p.Main.(*core.FunDefs)
	require.True(t, ok, "expected the local FunDefs to survive, got %T", p.Main)
	require.Len(t, defs.Decls, 1)

	ifExpr := defs.Decls[0].Body.(*core.If)
	_, ok = ifExpr.Else.(*core.InternalTailCall)
	assert.True(t, ok, "expected InternalTailCall, got %T", ifExpr.Else)
}

func TestNonTailCallForcesLift(t *testing.T) {
	p := run(t, "def f(x) = x + 1; f(f(1))")
	require.Len(t, p.Functions, 1)
	assert.Equal(t, "1", p.Functions[0].Name, "f is the first binder, so uniquify renames it to \"1\"")

	call, ok := p.Main.(*core.ExternalCall)
	require.True(t, ok, "expected ExternalCall, got %T", p.Main)
	assert.True(t, call.Fun.IsLabel)
	assert.Equal(t, p.Functions[0].Name, call.Fun.Name)

	inner, ok := call.Args[0].(*core.ExternalCall)
	require.True(t, ok, "expected the inner call also lifted, got %T", call.Args[0])
	assert.Equal(t, p.Functions[0].Name, inner.Fun.Name)
}

func TestLambdaLiftsToGlobalWithEnvArray(t *testing.T) {
	p := run(t, "let y = 10 in let f = lambda(x): x + y in f(1)")
	require.Len(t, p.Functions, 1)
	fn := p.Functions[0]
	assert.Contains(t, fn.Params, "#env")

	outer := p.Main.(*core.Let)
	inner := outer.Body.(*core.Let)
	mc, ok := inner.Bindings[0].Value.(*core.MakeClosure)
	require.True(t, ok, "expected MakeClosure binding f, got %T", inner.Bindings[0].Value)
	assert.Equal(t, fn.Name, mc.Label)
	env := mc.Env.(*core.Prim)
	require.Len(t, env.Args, 1, "lambda captures the enclosing y")
	capturedVar := env.Args[0].(*core.Var)
	assert.Equal(t, outer.Bindings[0].Name, capturedVar.Name)
}

func TestClosureCallExpandsToFiveLetProtocol(t *testing.T) {
	p := run(t, "let f = lambda(x): x in f(1)")
	let := p.Main.(*core.Let)

	// #lambda
	l1 := let.Body.(*core.Let)
	_, ok := l1.Bindings[0].Value.(*core.MakeClosure)
	assert.False(t, ok, "callee here is a Var read of f, not the MakeClosure itself")

	// #untagged
	l2 := l1.Body.(*core.Let)
	_, ok = l2.Bindings[0].Value.(*core.CheckArityAndUntag)
	require.True(t, ok)

	// #code
	l3 := l2.Body.(*core.Let)
	_, ok = l3.Bindings[0].Value.(*core.GetCode)
	require.True(t, ok)

	// #env
	l4 := l3.Body.(*core.Let)
	_, ok = l4.Bindings[0].Value.(*core.GetEnv)
	require.True(t, ok)

	call, ok := l4.Body.(*core.ExternalCall)
	require.True(t, ok)
	assert.False(t, call.Fun.IsLabel)
}

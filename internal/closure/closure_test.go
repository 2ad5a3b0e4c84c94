package closure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/closure"
	"snake/internal/core"
	"snake/internal/parser"
	"snake/internal/uniquify"
)

func convert(t *testing.T, src string) *core.Program {
	t.Helper()
	prog, err := parser.ParseSource("test.snek", src)
	require.NoError(t, err)
	return closure.Convert(uniquify.Run(prog))
}

func TestDirectCallForKnownFunction(t *testing.T) {
	prog := convert(t, "def f(x) = x; f(1)")
	defs := prog.Body.(*core.FunDefs)
	call, ok := defs.Body.(*core.DirectCall)
	require.True(t, ok, "expected DirectCall, got %T", defs.Body)
	assert.Equal(t, defs.Decls[0].Name, call.Name)
}

func TestClosureCallThroughVariable(t *testing.T) {
	prog := convert(t, "let f = lambda(x): x in f(1)")
	let := prog.Body.(*core.Let)
	_, ok := let.Body.(*core.ClosureCall)
	require.True(t, ok, "expected ClosureCall, got %T", let.Body)
}

func TestBareFunctionReferenceBecomesMakeClosure(t *testing.T) {
	prog := convert(t, "def f(x) = x; f")
	defs := prog.Body.(*core.FunDefs)
	mc, ok := defs.Body.(*core.MakeClosure)
	require.True(t, ok, "expected MakeClosure, got %T", defs.Body)
	assert.Equal(t, defs.Decls[0].Name, mc.Label)
	assert.Equal(t, 1, mc.Arity)
}

func TestLambdaSurvivesClosureConversion(t *testing.T) {
	prog := convert(t, "let f = lambda(x): x + 1 in 1")
	let := prog.Body.(*core.Let)
	_, ok := let.Bindings[0].Value.(*core.Lambda)
	assert.True(t, ok, "lambda lifting, not closure conversion, should remove Lambda nodes")
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/ast"
)

func TestParseLetAdd(t *testing.T) {
	prog, err := ParseSource("test.snek", "let x = 3 in x + 1")
	require.NoError(t, err)
	require.NotNil(t, prog)

	let, ok := prog.Body.(*ast.LetExpr)
	require.True(t, ok, "expected a let expression, got %T", prog.Body)
	assert.Equal(t, "x", let.Bindings[0].Name)

	add, ok := let.Body.(*ast.PrimApp)
	require.True(t, ok)
	assert.Equal(t, ast.Add, add.Op)
}

func TestParseLambdaAndCall(t *testing.T) {
	prog, err := ParseSource("test.snek", "let f = lambda(x): x + 1 in f(f(3))")
	require.NoError(t, err)

	let := prog.Body.(*ast.LetExpr)
	_, ok := let.Bindings[0].Value.(*ast.LambdaExpr)
	require.True(t, ok)

	outer, ok := let.Body.(*ast.CallExpr)
	require.True(t, ok)
	_, ok = outer.Callee.(*ast.VarExpr)
	require.True(t, ok)
	_, ok = outer.Args[0].(*ast.CallExpr)
	require.True(t, ok)
}

func TestParseFunDefsAndIf(t *testing.T) {
	src := `def fact(n) = if n < 2: 1 else: n * fact(n - 1); fact(10)`
	prog, err := ParseSource("test.snek", src)
	require.NoError(t, err)

	fd, ok := prog.Body.(*ast.FunDefsExpr)
	require.True(t, ok)
	require.Len(t, fd.Decls, 1)
	assert.Equal(t, "fact", fd.Decls[0].Name)

	_, ok = fd.Decls[0].Body.(*ast.IfExpr)
	require.True(t, ok)

	call, ok := fd.Body.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
}

func TestParseArrayLiteralAndIndex(t *testing.T) {
	prog, err := ParseSource("test.snek", "let xs = [1, 2, 3] in xs[1] + 10")
	require.NoError(t, err)

	let := prog.Body.(*ast.LetExpr)
	arr, ok := let.Bindings[0].Value.(*ast.PrimApp)
	require.True(t, ok)
	assert.Equal(t, ast.MakeArray, arr.Op)
	assert.Len(t, arr.Args, 3)

	add := let.Body.(*ast.PrimApp)
	assert.Equal(t, ast.Add, add.Op)
	get, ok := add.Args[0].(*ast.PrimApp)
	require.True(t, ok)
	assert.Equal(t, ast.ArrayGet, get.Op)
}

func TestParseArraySet(t *testing.T) {
	prog, err := ParseSource("test.snek", "let xs = [0, 0] in (xs[1] := xs; xs)")
	require.NoError(t, err)

	let := prog.Body.(*ast.LetExpr)
	semi, ok := let.Body.(*ast.SemicolonExpr)
	require.True(t, ok)
	set, ok := semi.First.(*ast.PrimApp)
	require.True(t, ok)
	assert.Equal(t, ast.ArraySet, set.Op)
	require.Len(t, set.Args, 3)
}

func TestParseSemicolonSequencing(t *testing.T) {
	prog, err := ParseSource("test.snek", "print(3922); 3922")
	require.NoError(t, err)

	semi, ok := prog.Body.(*ast.SemicolonExpr)
	require.True(t, ok)
	p, ok := semi.First.(*ast.PrimApp)
	require.True(t, ok)
	assert.Equal(t, ast.Print, p.Op)
}

func TestParseNegativeLiteral(t *testing.T) {
	prog, err := ParseSource("test.snek", "-5 + 1")
	require.NoError(t, err)

	add := prog.Body.(*ast.PrimApp)
	lit, ok := add.Args[0].(*ast.NumLit)
	require.True(t, ok)
	assert.Equal(t, int64(-5), lit.Value)
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, err := ParseSource("test.snek", "let x = 1 in x := 2")
	require.Error(t, err)
}

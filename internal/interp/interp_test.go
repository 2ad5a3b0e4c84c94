package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/abi"
	"snake/internal/interp"
	"snake/internal/parser"
)

func run(t *testing.T, src string) (interp.Value, error, string) {
	t.Helper()
	prog, err := parser.ParseSource("test.snek", src)
	require.NoError(t, err)
	var out bytes.Buffer
	v, err := interp.New(&out).Run(prog)
	return v, err, out.String()
}

func TestArithmetic(t *testing.T) {
	v, err, _ := run(t, "(1 + 2) * 3")
	require.NoError(t, err)
	assert.Equal(t, interp.IntValue(9), v)
}

func TestOverflowIsReported(t *testing.T) {
	_, err, _ := run(t, "4611686018427387903 + 1")
	require.Error(t, err)
	rtErr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, abi.Overflow, rtErr.Code)
}

func TestArithTypeErrorOnBoolOperand(t *testing.T) {
	_, err, _ := run(t, "true + 1")
	require.Error(t, err)
	rtErr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, abi.ArithTypeError, rtErr.Code)
}

func TestIfRequiresBoolCondition(t *testing.T) {
	_, err, _ := run(t, "if 1: 2 else: 3")
	rtErr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, abi.IfTypeError, rtErr.Code)
}

func TestClosuresAndMutualRecursion(t *testing.T) {
	v, err, _ := run(t, `
		def even(n) = if n == 0: true else: odd(n - 1)
		def odd(n) = if n == 0: false else: even(n - 1);
		even(10)
	`)
	require.NoError(t, err)
	assert.Equal(t, interp.BoolValue(true), v)
}

func TestLambdaClosesOverEnvironment(t *testing.T) {
	v, err, _ := run(t, "let y = 10 in let f = (lambda(x): x + y) in f(5)")
	require.NoError(t, err)
	assert.Equal(t, interp.IntValue(15), v)
}

func TestArrayIndexAndSet(t *testing.T) {
	v, err, _ := run(t, "let xs = [1, 2, 3] in (xs[1] := 99; xs[1])")
	require.NoError(t, err)
	assert.Equal(t, interp.IntValue(99), v)
}

func TestArrayOutOfBounds(t *testing.T) {
	_, err, _ := run(t, "let xs = [1, 2] in xs[5]")
	rtErr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, abi.IndexOutOfBounds, rtErr.Code)
}

func TestPrintWritesFormattedValueAndReturnsIt(t *testing.T) {
	v, err, out := run(t, "print([1, true, 3])")
	require.NoError(t, err)
	arr, ok := v.(*interp.ArrayValue)
	require.True(t, ok)
	assert.Len(t, arr.Elems, 3)
	assert.Equal(t, "[1, true, 3]\n", out)
}

func TestSelfReferentialArrayPrintsLoop(t *testing.T) {
	_, _, out := run(t, "let xs = [0] in (xs[0] := xs; print(xs))")
	assert.Equal(t, "[<loop>]\n", out)
}

func TestCallingNonClosureIsAnError(t *testing.T) {
	_, err, _ := run(t, "let x = 5 in x(1)")
	rtErr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, abi.NonClosureError, rtErr.Code)
}

func TestWrongArityIsAnError(t *testing.T) {
	_, err, _ := run(t, "let f = (lambda(x, y): x + y) in f(1)")
	rtErr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, abi.LambdaArityError, rtErr.Code)
}

package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/ast"
	"snake/internal/checker"
	"snake/internal/errs"
	"snake/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseSource("test.snek", src)
	require.NoError(t, err)
	return prog
}

func checkErr(t *testing.T, src string) *errs.CompileError {
	t.Helper()
	prog := mustParse(t, src)
	err := checker.Check(prog)
	require.Error(t, err)
	ce, ok := err.(*errs.CompileError)
	require.True(t, ok, "expected *errs.CompileError, got %T", err)
	return ce
}

func TestCheckAcceptsValidPrograms(t *testing.T) {
	programs := []string{
		"let x = 3 in x + 1",
		"let f = lambda(x): x + 1 in f(f(3))",
		"def fact(n) = if n < 2: 1 else: n * fact(n - 1); fact(10)",
		"let xs = [1, 2, 3] in xs[1] + 10",
		"print(3922); 3922",
	}
	for _, src := range programs {
		prog := mustParse(t, src)
		assert.NoError(t, checker.Check(prog), "source: %s", src)
	}
}

func TestCheckOverflow(t *testing.T) {
	ce := checkErr(t, "4611686018427387904") // 2^62
	assert.Equal(t, errs.ErrorOverflow, ce.Code)
}

func TestCheckMaxLiteralAccepted(t *testing.T) {
	prog := mustParse(t, "4611686018427387903") // 2^62 - 1
	assert.NoError(t, checker.Check(prog))
}

func TestCheckUnboundVariable(t *testing.T) {
	ce := checkErr(t, "x + 1")
	assert.Equal(t, errs.ErrorUnboundVariable, ce.Code)
}

func TestCheckDuplicateBinding(t *testing.T) {
	ce := checkErr(t, "let x = 1, x = 2 in x")
	assert.Equal(t, errs.ErrorDuplicateBinding, ce.Code)
}

func TestCheckDuplicateFunName(t *testing.T) {
	ce := checkErr(t, "def f(x) = x def f(y) = y; f(1)")
	assert.Equal(t, errs.ErrorDuplicateFunName, ce.Code)
}

func TestCheckDuplicateArgName(t *testing.T) {
	ce := checkErr(t, "def f(x, x) = x; f(1, 2)")
	assert.Equal(t, errs.ErrorDuplicateArgName, ce.Code)
}

func TestCheckWrongArity(t *testing.T) {
	ce := checkErr(t, "def f(x, y) = x + y; f(1)")
	assert.Equal(t, errs.ErrorWrongArity, ce.Code)
}

func TestCheckValueUsedAsFunction(t *testing.T) {
	ce := checkErr(t, "let x = 1 in x(2)")
	assert.Equal(t, errs.ErrorValueUsedAsFunction, ce.Code)
}

func TestCheckAllowsCallingAliasedLambda(t *testing.T) {
	prog := mustParse(t, "let f = lambda(x): x in let g = f in g(1)")
	assert.NoError(t, checker.Check(prog))
}

func TestCheckCatchesWrongArityOnLetBoundLambda(t *testing.T) {
	ce := checkErr(t, "let f = lambda(x, y): x in f(1)")
	assert.Equal(t, errs.ErrorWrongArity, ce.Code)
}

func TestCheckDefersArrayElementCallsToRuntime(t *testing.T) {
	prog := mustParse(t, "let fs = [lambda(x): x] in let g = fs[0] in g(1)")
	assert.NoError(t, checker.Check(prog))
}

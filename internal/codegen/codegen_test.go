package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake/internal/anf"
	"snake/internal/closure"
	"snake/internal/codegen"
	"snake/internal/lift"
	"snake/internal/parser"
	"snake/internal/uniquify"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseSource("test.snek", src)
	require.NoError(t, err)
	seq := anf.Run(lift.Run(closure.Convert(uniquify.Run(prog))))
	return codegen.Generate(seq)
}

func TestEntryPointAndHeapAreEmitted(t *testing.T) {
	out := generate(t, "1 + 2")
	assert.Contains(t, out, "global start_here")
	assert.Contains(t, out, "start_here:")
	assert.Contains(t, out, "HEAP: times 1024 dq 0")
	assert.Contains(t, out, "extern print_snake_val")
	assert.Contains(t, out, "extern snake_error")
}

func TestArithmeticEmitsOverflowAndTypeChecks(t *testing.T) {
	out := generate(t, "1 + 2")
	assert.Contains(t, out, "jo")
	assert.Contains(t, out, "arith_error:")
	assert.Contains(t, out, "jne    arith_error")
}

func TestAllErrorTrampolinesArePresent(t *testing.T) {
	out := generate(t, "1")
	for _, label := range []string{
		"arith_error:", "cmp_error:", "overflow_error:", "if_error:",
		"logic_error:", "non_array_error:", "index_not_number_error:",
		"index_out_of_bounds_error:", "non_closure_error:", "lambda_arity_error:",
	} {
		assert.Contains(t, out, label, "missing trampoline %s", label)
	}
}

func TestLiftedFunctionGetsGlobalLabel(t *testing.T) {
	out := generate(t, "let f = (lambda (x): x + 1) in f(5)")
	count := strings.Count(out, "func_")
	assert.GreaterOrEqual(t, count, 2, "expected a func_<label> definition and at least one reference, got:\n%s", out)
}

func TestTailRecursionCompilesToLocalJmpNotCall(t *testing.T) {
	out := generate(t, "def loop(n) = if n < 1: 0 else: loop(n - 1); loop(5)")
	assert.Contains(t, out, "local_")
	assert.NotContains(t, out, "call   func_loop")
}

func TestMakeArrayWritesLengthThenElements(t *testing.T) {
	out := generate(t, "[1, 2, 3]")
	assert.Contains(t, out, "r15")
	assert.Contains(t, out, "0x1")
}

package interp

import (
	"fmt"
	"io"
	"math"
	"math/big"

	"snake/internal/abi"
	"snake/internal/ast"
)

// maxCallDepth bounds recursion the same way the compiled runtime's
// fixed-size stack eventually would; past it we report the same
// StackError code rather than crashing the host Go process.
const maxCallDepth = 100000

// Interp evaluates surface syntax trees directly, without running any
// of the compiler's later passes.
type Interp struct {
	Out   io.Writer
	depth int
}

// New returns an interpreter that writes Print output to out.
func New(out io.Writer) *Interp {
	return &Interp{Out: out}
}

// Run evaluates prog's body in an empty top-level environment.
func (in *Interp) Run(prog *ast.Program) (Value, error) {
	return in.eval(prog.Body, newFrame(nil))
}

func (in *Interp) eval(e ast.Expr, env *frame) (Value, error) {
	switch n := e.(type) {

	case *ast.NumLit:
		return IntValue(n.Value), nil

	case *ast.BoolLit:
		return BoolValue(n.Value), nil

	case *ast.VarExpr:
		v, ok := env.get(n.Name)
		if !ok {
			return nil, fmt.Errorf("interp: unbound variable %q (should have been rejected by the checker)", n.Name)
		}
		return v, nil

	case *ast.PrimApp:
		return in.evalPrim(n, env)

	case *ast.LetExpr:
		cur := env
		for _, b := range n.Bindings {
			v, err := in.eval(b.Value, cur)
			if err != nil {
				return nil, err
			}
			next := newFrame(cur)
			next.vars[b.Name] = v
			cur = next
		}
		return in.eval(n.Body, cur)

	case *ast.IfExpr:
		cond, err := in.eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(BoolValue)
		if !ok {
			return nil, typeError(abi.IfTypeError, cond)
		}
		if b {
			return in.eval(n.Then, env)
		}
		return in.eval(n.Else, env)

	case *ast.FunDefsExpr:
		fnFrame := newFrame(env)
		for _, d := range n.Decls {
			fnFrame.vars[d.Name] = &ClosureValue{Params: d.Params, Body: d.Body, Env: fnFrame}
		}
		return in.eval(n.Body, fnFrame)

	case *ast.LambdaExpr:
		return &ClosureValue{Params: n.Params, Body: n.Body, Env: env}, nil

	case *ast.CallExpr:
		return in.evalCall(n, env)

	case *ast.SemicolonExpr:
		if _, err := in.eval(n.First, env); err != nil {
			return nil, err
		}
		return in.eval(n.Second, env)

	default:
		return nil, fmt.Errorf("interp: unhandled expression %T", e)
	}
}

func (in *Interp) evalCall(n *ast.CallExpr, env *frame) (Value, error) {
	calleeVal, err := in.eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	closure, ok := calleeVal.(*ClosureValue)
	if !ok {
		return nil, typeError(abi.NonClosureError, calleeVal)
	}
	if len(n.Args) != len(closure.Params) {
		return nil, typeError(abi.LambdaArityError, calleeVal)
	}
	args, err := in.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}

	in.depth++
	if in.depth > maxCallDepth {
		in.depth--
		return nil, &RuntimeError{Code: abi.StackError}
	}
	child := newFrame(closure.Env)
	for i, p := range closure.Params {
		child.vars[p] = args[i]
	}
	v, err := in.eval(closure.Body, child)
	in.depth--
	return v, err
}

func (in *Interp) evalArgs(args []ast.Expr, env *frame) ([]Value, error) {
	vals := make([]Value, len(args))
	for i, a := range args {
		v, err := in.eval(a, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

const (
	maxTagged = int64(1)<<62 - 1
	minTagged = -(int64(1) << 62)
)

func inRange(v int64) bool { return v >= minTagged && v <= maxTagged }

func (in *Interp) evalPrim(n *ast.PrimApp, env *frame) (Value, error) {
	args, err := in.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}

	asInt := func(v Value, code abi.ErrorCode) (int64, error) {
		i, ok := v.(IntValue)
		if !ok {
			return 0, typeError(code, v)
		}
		return int64(i), nil
	}
	asBool := func(v Value, code abi.ErrorCode) (bool, error) {
		b, ok := v.(BoolValue)
		if !ok {
			return false, typeError(code, v)
		}
		return bool(b), nil
	}
	asArray := func(v Value, code abi.ErrorCode) (*ArrayValue, error) {
		a, ok := v.(*ArrayValue)
		if !ok {
			return nil, typeError(code, v)
		}
		return a, nil
	}

	switch n.Op {
	case ast.Add, ast.Sub:
		a, err := asInt(args[0], abi.ArithTypeError)
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1], abi.ArithTypeError)
		if err != nil {
			return nil, err
		}
		var r int64
		if n.Op == ast.Add {
			r = a + b
		} else {
			r = a - b
		}
		if !inRange(r) {
			return nil, typeError(abi.Overflow, IntValue(r))
		}
		return IntValue(r), nil

	case ast.Mul:
		a, err := asInt(args[0], abi.ArithTypeError)
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1], abi.ArithTypeError)
		if err != nil {
			return nil, err
		}
		prod := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
		if !prod.IsInt64() || !inRange(prod.Int64()) {
			return nil, typeError(abi.Overflow, IntValue(math.MaxInt64))
		}
		return IntValue(prod.Int64()), nil

	case ast.Add1, ast.Sub1:
		a, err := asInt(args[0], abi.ArithTypeError)
		if err != nil {
			return nil, err
		}
		var r int64
		if n.Op == ast.Add1 {
			r = a + 1
		} else {
			r = a - 1
		}
		if !inRange(r) {
			return nil, typeError(abi.Overflow, IntValue(r))
		}
		return IntValue(r), nil

	case ast.Not:
		b, err := asBool(args[0], abi.LogicTypeError)
		if err != nil {
			return nil, err
		}
		return BoolValue(!b), nil

	case ast.Print:
		fmt.Fprintln(in.Out, sprintValue(args[0]))
		return args[0], nil

	case ast.IsBool:
		_, ok := args[0].(BoolValue)
		return BoolValue(ok), nil

	case ast.IsNum:
		_, ok := args[0].(IntValue)
		return BoolValue(ok), nil

	case ast.IsFun:
		_, ok := args[0].(*ClosureValue)
		return BoolValue(ok), nil

	case ast.IsArray:
		_, ok := args[0].(*ArrayValue)
		return BoolValue(ok), nil

	case ast.And, ast.Or:
		a, err := asBool(args[0], abi.LogicTypeError)
		if err != nil {
			return nil, err
		}
		b, err := asBool(args[1], abi.LogicTypeError)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.And {
			return BoolValue(a && b), nil
		}
		return BoolValue(a || b), nil

	case ast.Lt, ast.Gt, ast.Le, ast.Ge:
		a, err := asInt(args[0], abi.CmpTypeError)
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1], abi.CmpTypeError)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case ast.Lt:
			return BoolValue(a < b), nil
		case ast.Gt:
			return BoolValue(a > b), nil
		case ast.Le:
			return BoolValue(a <= b), nil
		default:
			return BoolValue(a >= b), nil
		}

	case ast.Eq, ast.Neq:
		eq := valuesEqual(args[0], args[1])
		if n.Op == ast.Neq {
			eq = !eq
		}
		return BoolValue(eq), nil

	case ast.Length:
		arr, err := asArray(args[0], abi.NonArrayError)
		if err != nil {
			return nil, err
		}
		return IntValue(len(arr.Elems)), nil

	case ast.MakeArray:
		return &ArrayValue{Elems: args}, nil

	case ast.ArrayGet:
		arr, err := asArray(args[0], abi.NonArrayError)
		if err != nil {
			return nil, err
		}
		idx, err := asInt(args[1], abi.IndexNotNumber)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= int64(len(arr.Elems)) {
			return nil, typeError(abi.IndexOutOfBounds, IntValue(idx))
		}
		return arr.Elems[idx], nil

	case ast.ArraySet:
		arr, err := asArray(args[0], abi.NonArrayError)
		if err != nil {
			return nil, err
		}
		idx, err := asInt(args[1], abi.IndexNotNumber)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= int64(len(arr.Elems)) {
			return nil, typeError(abi.IndexOutOfBounds, IntValue(idx))
		}
		arr.Elems[idx] = args[2]
		return args[2], nil

	default:
		return nil, fmt.Errorf("interp: unhandled primitive %s", n.Op)
	}
}

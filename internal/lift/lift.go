package lift

import (
	"fmt"

	"snake/internal/ast"
	"snake/internal/core"
)

// rewriter threads the fresh-name counter for lambda labels and closure-
// call protocol temporaries, and accumulates every hoisted declaration.
type rewriter struct {
	a         *analysis
	counter   int
	functions []*core.FunDecl
}

// Run performs the full lambda-lifting pass over prog and returns the
// hoisted-function table plus the rewritten entry expression.
func Run(prog *core.Program) *Program {
	a := newAnalysis()
	analyze(prog.Body, "", true, nil, a)

	r := &rewriter{a: a}
	main := r.rewrite(prog.Body, "", true)
	return &Program{Functions: r.functions, Main: main}
}

func (r *rewriter) fresh(prefix string) string {
	r.counter++
	return fmt.Sprintf("%s_%d", prefix, r.counter)
}

func varsToExprs(names []string) []core.Expr {
	out := make([]core.Expr, len(names))
	for i, n := range names {
		out[i] = &core.Var{Name: n}
	}
	return out
}

func (r *rewriter) rewriteArgs(args []core.Expr, frame string) []core.Expr {
	out := make([]core.Expr, len(args))
	for i, a := range args {
		out[i] = r.rewrite(a, frame, false)
	}
	return out
}

func (r *rewriter) rewrite(e core.Expr, frame string, isTail bool) core.Expr {
	switch n := e.(type) {
	case *core.Num:
		return n

	case *core.Bool:
		return n

	case *core.Var:
		return n

	case *core.Prim:
		return &core.Prim{Op: n.Op, Args: r.rewriteArgs(n.Args, frame), Pos: n.Pos}

	case *core.Let:
		bindings := make([]core.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			bindings[i] = core.Binding{Name: b.Name, Value: r.rewrite(b.Value, frame, false)}
		}
		return &core.Let{Bindings: bindings, Body: r.rewrite(n.Body, frame, isTail), Pos: n.Pos}

	case *core.If:
		return &core.If{
			Cond: r.rewrite(n.Cond, frame, false),
			Then: r.rewrite(n.Then, frame, isTail),
			Else: r.rewrite(n.Else, frame, isTail),
			Pos:  n.Pos,
		}

	case *core.FunDefs:
		return r.rewriteFunDefs(n, frame, isTail)

	case *core.DirectCall:
		return r.rewriteDirectCall(n, frame, isTail)

	case *core.ClosureCall:
		return r.rewriteClosureCall(n, frame, isTail)

	case *core.MakeClosure:
		return r.rewriteMakeClosure(n, frame)

	case *core.Lambda:
		return r.rewriteLambda(n)

	default:
		panic("lift: unexpected node during rewriting")
	}
}

func (r *rewriter) rewriteFunDefs(n *core.FunDefs, frame string, isTail bool) core.Expr {
	var local []*core.FunDecl
	for _, d := range n.Decls {
		captured := r.a.captured[d.Name]
		body := r.rewrite(d.Body, d.Name, true)

		if !r.a.toLift[d.Name] {
			local = append(local, &core.FunDecl{Name: d.Name, Params: d.Params, Body: body, Pos: d.Pos})
			continue
		}

		if r.a.firstClass[d.Name] {
			wrapped := wrapEnvCaptures(captured, body, d.Pos)
			params := extend(d.Params, "#env")
			r.functions = append(r.functions, &core.FunDecl{Name: d.Name, Params: params, Body: wrapped, Pos: d.Pos})
		} else {
			params := extend(d.Params, captured...)
			r.functions = append(r.functions, &core.FunDecl{Name: d.Name, Params: params, Body: body, Pos: d.Pos})
		}
	}

	rest := r.rewrite(n.Body, frame, isTail)
	if len(local) == 0 {
		return rest
	}
	return &core.FunDefs{Decls: local, Body: rest, Pos: n.Pos}
}

// wrapEnvCaptures rebinds every captured name from the #env array that a
// lifted, first-class-referenced function now receives as its last
// parameter, innermost binding first so later bindings may read earlier
// ones without ordering surprises (they don't depend on each other, but
// this keeps the nesting direction consistent with Let elsewhere).
func wrapEnvCaptures(captured []string, body core.Expr, pos ast.Position) core.Expr {
	wrapped := body
	for i := len(captured) - 1; i >= 0; i-- {
		get := &core.Prim{Op: ast.ArrayGet, Args: []core.Expr{&core.Var{Name: "#env"}, &core.Num{Value: int64(i)}}, Pos: pos}
		wrapped = &core.Let{Bindings: []core.Binding{{Name: captured[i], Value: get}}, Body: wrapped, Pos: pos}
	}
	return wrapped
}

func (r *rewriter) rewriteDirectCall(n *core.DirectCall, frame string, isTail bool) core.Expr {
	args := r.rewriteArgs(n.Args, frame)

	_, known := r.a.declFrame[n.Name]
	if known && !r.a.toLift[n.Name] {
		// Liftability analysis guarantees this only holds for a tail call
		// from the declaring frame or from the function's own body; it
		// stays a local, in-place frame reuse.
		return &core.InternalTailCall{Label: n.Name, Args: args, Pos: n.Pos}
	}

	if r.a.firstClass[n.Name] {
		env := &core.Prim{Op: ast.MakeArray, Args: varsToExprs(r.a.captured[n.Name]), Pos: n.Pos}
		args = append(args, env)
	} else {
		args = append(args, varsToExprs(r.a.captured[n.Name])...)
	}
	return &core.ExternalCall{Fun: core.CalleeRef{IsLabel: true, Name: n.Name}, Args: args, IsTail: isTail, Pos: n.Pos}
}

func (r *rewriter) rewriteClosureCall(n *core.ClosureCall, frame string, isTail bool) core.Expr {
	callee := r.rewrite(n.Callee, frame, false)
	args := r.rewriteArgs(n.Args, frame)
	pos := n.Pos

	lambdaVar := r.fresh("#lambda")
	untaggedVar := r.fresh("#untagged")
	codeVar := r.fresh("#code")
	envVar := r.fresh("#env")

	call := &core.ExternalCall{
		Fun:    core.CalleeRef{IsLabel: false, Name: codeVar},
		Args:   append(args, &core.Var{Name: envVar}),
		IsTail: isTail,
		Pos:    pos,
	}

	return &core.Let{Bindings: []core.Binding{{Name: lambdaVar, Value: callee}}, Pos: pos, Body: &core.Let{
		Bindings: []core.Binding{{Name: untaggedVar, Value: &core.CheckArityAndUntag{Arity: len(n.Args), Closure: &core.Var{Name: lambdaVar}, Pos: pos}}},
		Pos:      pos,
		Body: &core.Let{
			Bindings: []core.Binding{{Name: codeVar, Value: &core.GetCode{Closure: &core.Var{Name: untaggedVar}, Pos: pos}}},
			Pos:      pos,
			Body: &core.Let{
				Bindings: []core.Binding{{Name: envVar, Value: &core.GetEnv{Closure: &core.Var{Name: untaggedVar}, Pos: pos}}},
				Pos:      pos,
				Body:     call,
			},
		},
	}}
}

func (r *rewriter) rewriteMakeClosure(n *core.MakeClosure, frame string) core.Expr {
	captured, hasCaptures := r.a.captured[n.Label]
	if !hasCaptures || len(captured) == 0 {
		return &core.MakeClosure{Arity: n.Arity, Label: n.Label, Env: r.rewrite(n.Env, frame, false), Pos: n.Pos}
	}
	env := &core.Prim{Op: ast.MakeArray, Args: varsToExprs(captured), Pos: n.Pos}
	return &core.MakeClosure{Arity: n.Arity, Label: n.Label, Env: env, Pos: n.Pos}
}

func (r *rewriter) rewriteLambda(n *core.Lambda) core.Expr {
	label := r.fresh("lambda")
	captured := r.a.lambdaCaptured[n]

	body := r.rewrite(n.Body, "<lambda>", true)
	wrapped := wrapEnvCaptures(captured, body, n.Pos)
	params := extend(n.Params, "#env")
	r.functions = append(r.functions, &core.FunDecl{Name: label, Params: params, Body: wrapped, Pos: n.Pos})

	env := &core.Prim{Op: ast.MakeArray, Args: varsToExprs(captured), Pos: n.Pos}
	return &core.MakeClosure{Arity: len(n.Params), Label: label, Env: env, Pos: n.Pos}
}

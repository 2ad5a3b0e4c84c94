// Package uniquify alpha-renames every binder in a checked surface tree
// to a fresh, globally distinct name and desugars Semicolon sequencing
// into Let, per spec.md §4.2. Downstream passes never see a shadowed or
// reused identifier.
package uniquify

import (
	"strconv"

	"snake/internal/ast"
	"snake/internal/core"
)

// scope maps a surface name to the fresh name currently bound for it.
type scope map[string]string

func (s scope) extend() scope {
	next := make(scope, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// Run renames prog.Body and returns the core-tree equivalent.
func Run(prog *ast.Program) *core.Program {
	counter := 0
	return &core.Program{Body: uniquify(prog.Body, scope{}, &counter)}
}

func fresh(counter *int) string {
	*counter++
	return strconv.Itoa(*counter)
}

func uniquify(e ast.Expr, env scope, counter *int) core.Expr {
	switch n := e.(type) {
	case *ast.NumLit:
		return &core.Num{Value: n.Value, Pos: n.Span}

	case *ast.BoolLit:
		return &core.Bool{Value: n.Value, Pos: n.Span}

	case *ast.VarExpr:
		return &core.Var{Name: env[n.Name], Pos: n.Span}

	case *ast.PrimApp:
		args := make([]core.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = uniquify(a, env, counter)
		}
		return &core.Prim{Op: n.Op, Args: args, Pos: n.Span}

	case *ast.LetExpr:
		scoped := env.extend()
		bindings := make([]core.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			newName := fresh(counter)
			value := uniquify(b.Value, scoped, counter)
			scoped[b.Name] = newName
			bindings[i] = core.Binding{Name: newName, Value: value}
		}
		return &core.Let{Bindings: bindings, Body: uniquify(n.Body, scoped, counter), Pos: n.Span}

	case *ast.IfExpr:
		return &core.If{
			Cond: uniquify(n.Cond, env, counter),
			Then: uniquify(n.Then, env, counter),
			Else: uniquify(n.Else, env, counter),
			Pos:  n.Span,
		}

	case *ast.FunDefsExpr:
		scoped := env.extend()
		for _, d := range n.Decls {
			scoped[d.Name] = fresh(counter)
		}
		decls := make([]*core.FunDecl, len(n.Decls))
		for i, d := range n.Decls {
			funcScope := scoped.extend()
			params := make([]string, len(d.Params))
			for j, p := range d.Params {
				newParam := fresh(counter)
				funcScope[p] = newParam
				params[j] = newParam
			}
			decls[i] = &core.FunDecl{
				Name:   scoped[d.Name],
				Params: params,
				Body:   uniquify(d.Body, funcScope, counter),
				Pos:    d.Span,
			}
		}
		return &core.FunDefs{Decls: decls, Body: uniquify(n.Body, scoped, counter), Pos: n.Span}

	case *ast.CallExpr:
		args := make([]core.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = uniquify(a, env, counter)
		}
		return &core.Call{Callee: uniquify(n.Callee, env, counter), Args: args, Pos: n.Span}

	case *ast.LambdaExpr:
		scoped := env.extend()
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			newParam := fresh(counter)
			scoped[p] = newParam
			params[i] = newParam
		}
		return &core.Lambda{Params: params, Body: uniquify(n.Body, scoped, counter), Pos: n.Span}

	case *ast.SemicolonExpr:
		// e1; e2 desugars to let _ = e1 in e2 the moment uniquification
		// sees it, so no later pass has a Semicolon case to handle.
		binder := fresh(counter)
		first := uniquify(n.First, env, counter)
		return &core.Let{
			Bindings: []core.Binding{{Name: binder, Value: first}},
			Body:     uniquify(n.Second, env, counter),
			Pos:      n.Span,
		}

	default:
		panic("uniquify: unhandled surface node")
	}
}

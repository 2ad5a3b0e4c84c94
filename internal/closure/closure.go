// Package closure performs closure conversion (spec.md §4.3) over a
// uniquified tree: classifying applications as direct or closure calls,
// and reifying bare references to known functions into heap closures.
package closure

import (
	"snake/internal/ast"
	"snake/internal/core"
)

// funcInfo records that a name is bound to a known top-level/local
// function (as opposed to an ordinary variable) and its declared arity.
type funcInfo struct {
	Arity int
}

// scope maps function-bound names to their arity. Since every name is
// globally unique after uniquification, no shadowing bookkeeping is
// needed: a flat extended copy per FunDefs group is enough.
type scope map[string]funcInfo

func (s scope) extend() scope {
	next := make(scope, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// Convert returns a copy of prog with its calls and function references
// rewritten; prog itself is not modified.
func Convert(prog *core.Program) *core.Program {
	return &core.Program{Body: convert(prog.Body, scope{})}
}

func convertArgs(args []core.Expr, funcs scope) []core.Expr {
	out := make([]core.Expr, len(args))
	for i, a := range args {
		out[i] = convert(a, funcs)
	}
	return out
}

func convert(e core.Expr, funcs scope) core.Expr {
	switch n := e.(type) {
	case *core.Num:
		return n

	case *core.Bool:
		return n

	case *core.Var:
		// A bare reference to a known function, outside call position,
		// reifies to a closure with an empty capture environment: which
		// variables a function captures is not known at this stage, and
		// lambda lifting fills the environment in afterwards.
		if info, ok := funcs[n.Name]; ok {
			return &core.MakeClosure{
				Arity: info.Arity,
				Label: n.Name,
				Env:   &core.Prim{Op: ast.MakeArray, Pos: n.Pos},
				Pos:   n.Pos,
			}
		}
		return n

	case *core.Prim:
		return &core.Prim{Op: n.Op, Args: convertArgs(n.Args, funcs), Pos: n.Pos}

	case *core.Let:
		bindings := make([]core.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			bindings[i] = core.Binding{Name: b.Name, Value: convert(b.Value, funcs)}
		}
		return &core.Let{Bindings: bindings, Body: convert(n.Body, funcs), Pos: n.Pos}

	case *core.If:
		return &core.If{
			Cond: convert(n.Cond, funcs),
			Then: convert(n.Then, funcs),
			Else: convert(n.Else, funcs),
			Pos:  n.Pos,
		}

	case *core.FunDefs:
		scoped := funcs.extend()
		for _, d := range n.Decls {
			scoped[d.Name] = funcInfo{Arity: len(d.Params)}
		}
		decls := make([]*core.FunDecl, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = &core.FunDecl{Name: d.Name, Params: d.Params, Body: convert(d.Body, scoped), Pos: d.Pos}
		}
		return &core.FunDefs{Decls: decls, Body: convert(n.Body, scoped), Pos: n.Pos}

	case *core.Call:
		if v, ok := n.Callee.(*core.Var); ok {
			if _, ok := funcs[v.Name]; ok {
				return &core.DirectCall{Name: v.Name, Args: convertArgs(n.Args, funcs), Pos: n.Pos}
			}
		}
		return &core.ClosureCall{Callee: convert(n.Callee, funcs), Args: convertArgs(n.Args, funcs), Pos: n.Pos}

	case *core.Lambda:
		return &core.Lambda{Params: n.Params, Body: convert(n.Body, funcs), Pos: n.Pos}

	default:
		panic("closure: unexpected node before conversion")
	}
}

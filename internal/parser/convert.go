package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"snake/internal/ast"
)

// primsByName maps the call-style spelling of a primitive to its PrimOp.
// Binary/comparison primitives are recognized as infix operators by the
// grammar directly and never appear here.
var primsByName = map[string]ast.PrimOp{
	"add1":    ast.Add1,
	"sub1":    ast.Sub1,
	"print":   ast.Print,
	"isbool":  ast.IsBool,
	"isnum":   ast.IsNum,
	"isfun":   ast.IsFun,
	"isarray": ast.IsArray,
	"length":  ast.Length,
}

func pos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func buildProgram(e *Expr) *ast.Program {
	return &ast.Program{Body: buildExpr(e)}
}

func buildExpr(e *Expr) ast.Expr {
	switch {
	case e.Let != nil:
		return buildLet(e.Let)
	case e.If != nil:
		return buildIf(e.If)
	case e.Def != nil:
		return buildFunDefs(e.Def)
	case e.Lambda != nil:
		return buildLambda(e.Lambda)
	default:
		return buildSeq(e.Seq)
	}
}

func buildLet(l *LetExprG) ast.Expr {
	bindings := make([]ast.Binding, len(l.Bindings))
	for i, b := range l.Bindings {
		bindings[i] = ast.Binding{Name: b.Name, Value: buildExpr(b.Value)}
	}
	return &ast.LetExpr{Bindings: bindings, Body: buildExpr(l.Body), Span: pos(l.Pos), End_: pos(l.EndPos)}
}

func buildIf(i *IfExprG) ast.Expr {
	return &ast.IfExpr{
		Cond: buildExpr(i.Cond), Then: buildExpr(i.Then), Else: buildExpr(i.Else),
		Span: pos(i.Pos), End_: pos(i.EndPos),
	}
}

func buildFunDefs(f *FunDefsG) ast.Expr {
	decls := make([]*ast.FunDecl, len(f.Decls))
	for i, d := range f.Decls {
		decls[i] = &ast.FunDecl{Name: d.Name, Params: d.Params, Body: buildExpr(d.Body), Span: pos(d.Pos), End_: pos(d.EndPos)}
	}
	return &ast.FunDefsExpr{Decls: decls, Body: buildExpr(f.Body), Span: pos(f.Pos), End_: pos(f.EndPos)}
}

func buildLambda(l *LambdaExprG) ast.Expr {
	return &ast.LambdaExpr{Params: l.Params, Body: buildExpr(l.Body), Span: pos(l.Pos), End_: pos(l.EndPos)}
}

func buildSeq(s *SeqExprG) ast.Expr {
	first := buildAssign(s.First)
	if s.Rest == nil {
		return first
	}
	return &ast.SemicolonExpr{First: first, Second: buildExpr(s.Rest), Span: pos(s.Pos), End_: pos(s.EndPos)}
}

// buildError is panicked by the AST builder on a structurally malformed
// tree that the grammar's own productions cannot rule out (only array
// index expressions are valid ":=" targets); ParseSource recovers it.
type buildError struct {
	pos ast.Position
	msg string
}

func buildAssign(a *AssignExprG) ast.Expr {
	target := buildOr(a.Target)
	if a.Value == nil {
		return target
	}
	idx, ok := target.(*ast.PrimApp)
	if !ok || idx.Op != ast.ArrayGet {
		panic(buildError{pos: pos(a.Pos), msg: "assignment target must be an array index expression, e.g. xs[i] := v"})
	}
	// The grammar lets the assigned value absorb a trailing "; rest";
	// re-associate it so "xs[i] := v; rest" assigns v and then runs rest.
	if seq := a.Value.Seq; seq != nil && seq.Rest != nil {
		set := &ast.PrimApp{Op: ast.ArraySet, Args: []ast.Expr{idx.Args[0], idx.Args[1], buildAssign(seq.First)}, Span: pos(a.Pos), End_: pos(seq.First.EndPos)}
		return &ast.SemicolonExpr{First: set, Second: buildExpr(seq.Rest), Span: pos(a.Pos), End_: pos(a.EndPos)}
	}
	return &ast.PrimApp{Op: ast.ArraySet, Args: []ast.Expr{idx.Args[0], idx.Args[1], buildExpr(a.Value)}, Span: pos(a.Pos), End_: pos(a.EndPos)}
}

func buildOr(o *OrExprG) ast.Expr {
	left := buildAnd(o.Left)
	if o.Right == nil {
		return left
	}
	right := buildOr(o.Right)
	return &ast.PrimApp{Op: ast.Or, Args: []ast.Expr{left, right}, Span: pos(o.Pos), End_: pos(o.EndPos)}
}

func buildAnd(a *AndExprG) ast.Expr {
	left := buildEq(a.Left)
	if a.Right == nil {
		return left
	}
	right := buildAnd(a.Right)
	return &ast.PrimApp{Op: ast.And, Args: []ast.Expr{left, right}, Span: pos(a.Pos), End_: pos(a.EndPos)}
}

func buildEq(e *EqExprG) ast.Expr {
	left := buildRel(e.Left)
	if e.Right == nil {
		return left
	}
	right := buildEq(e.Right)
	op := ast.Eq
	if e.Op == "!=" {
		op = ast.Neq
	}
	return &ast.PrimApp{Op: op, Args: []ast.Expr{left, right}, Span: pos(e.Pos), End_: pos(e.EndPos)}
}

func buildRel(r *RelExprG) ast.Expr {
	left := buildAdd(r.Left)
	if r.Right == nil {
		return left
	}
	right := buildRel(r.Right)
	var op ast.PrimOp
	switch r.Op {
	case "<=":
		op = ast.Le
	case ">=":
		op = ast.Ge
	case "<":
		op = ast.Lt
	default:
		op = ast.Gt
	}
	return &ast.PrimApp{Op: op, Args: []ast.Expr{left, right}, Span: pos(r.Pos), End_: pos(r.EndPos)}
}

func buildAddLevel(a *AddExprG) ast.Expr {
	left := buildMul(a.Left)
	if a.Right == nil {
		return left
	}
	right := buildAddLevel(a.Right)
	op := ast.Add
	if a.Op == "-" {
		op = ast.Sub
	}
	return &ast.PrimApp{Op: op, Args: []ast.Expr{left, right}, Span: pos(a.Pos), End_: pos(a.EndPos)}
}

// buildAdd exists so buildRel reads naturally; it forwards to buildAddLevel.
func buildAdd(a *AddExprG) ast.Expr { return buildAddLevel(a) }

func buildMul(m *MulExprG) ast.Expr {
	left := buildUnary(m.Left)
	if m.Right == nil {
		return left
	}
	right := buildMul(m.Right)
	return &ast.PrimApp{Op: ast.Mul, Args: []ast.Expr{left, right}, Span: pos(m.Pos), End_: pos(m.EndPos)}
}

func buildUnary(u *UnaryExprG) ast.Expr {
	switch {
	case u.Not != nil:
		inner := buildUnary(u.Not)
		return &ast.PrimApp{Op: ast.Not, Args: []ast.Expr{inner}, Span: pos(u.Pos), End_: pos(u.EndPos)}
	case u.Neg != nil:
		inner := buildUnary(u.Neg)
		if lit, ok := inner.(*ast.NumLit); ok {
			return &ast.NumLit{Value: -lit.Value, Span: pos(u.Pos), End_: pos(u.EndPos)}
		}
		// No general negation primitive exists; model it as 0 - x.
		return &ast.PrimApp{Op: ast.Sub, Args: []ast.Expr{&ast.NumLit{Value: 0, Span: pos(u.Pos), End_: pos(u.EndPos)}, inner}, Span: pos(u.Pos), End_: pos(u.EndPos)}
	default:
		return buildPostfix(u.Atom)
	}
}

func buildPostfix(p *PostfixExprG) ast.Expr {
	expr := buildAtom(p.Atom)
	for _, trail := range p.Trail {
		switch {
		case trail.Call != nil:
			args := make([]ast.Expr, len(trail.Call.Args))
			for i, a := range trail.Call.Args {
				args[i] = buildExpr(a)
			}
			if name, ok := expr.(*ast.VarExpr); ok {
				if op, isPrim := primsByName[name.Name]; isPrim {
					expr = &ast.PrimApp{Op: op, Args: args, Span: pos(trail.Pos), End_: pos(trail.EndPos)}
					continue
				}
				if name.Name == "array" {
					expr = &ast.PrimApp{Op: ast.MakeArray, Args: args, Span: pos(trail.Pos), End_: pos(trail.EndPos)}
					continue
				}
			}
			expr = &ast.CallExpr{Callee: expr, Args: args, Span: pos(trail.Pos), End_: pos(trail.EndPos)}
		case trail.Index != nil:
			idx := buildExpr(trail.Index.Index)
			expr = &ast.PrimApp{Op: ast.ArrayGet, Args: []ast.Expr{expr, idx}, Span: pos(trail.Pos), End_: pos(trail.EndPos)}
		}
	}
	return expr
}

func buildAtom(a *AtomG) ast.Expr {
	switch {
	case a.Int != nil:
		return &ast.NumLit{Value: *a.Int, Span: pos(a.Pos), End_: pos(a.EndPos)}
	case a.Bool != nil:
		return &ast.BoolLit{Value: a.Bool.Value == "true", Span: pos(a.Pos), End_: pos(a.EndPos)}
	case a.Array != nil:
		elems := make([]ast.Expr, len(a.Array.Elements))
		for i, e := range a.Array.Elements {
			elems[i] = buildExpr(e)
		}
		return &ast.PrimApp{Op: ast.MakeArray, Args: elems, Span: pos(a.Pos), End_: pos(a.EndPos)}
	case a.Paren != nil:
		return buildExpr(a.Paren)
	default:
		return &ast.VarExpr{Name: *a.Ident, Span: pos(a.Pos), End_: pos(a.EndPos)}
	}
}

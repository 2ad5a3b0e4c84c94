// Package checker performs the static validation spec.md §4.1 requires
// before any rewriting pass runs: integer range, scoping, duplicate-name,
// and (for statically known callees) arity checks. It reports the first
// violation found or nil.
package checker

import (
	"snake/internal/ast"
	"snake/internal/errs"
)

const (
	i63Max = int64(1)<<62 - 1
	i63Min = -(int64(1) << 62)
)

// symbolKind distinguishes a variable binding from a known function
// binding (whose arity lets the checker catch direct-call arity errors
// at compile time; first-class calls still defer to CheckArityAndUntag
// at runtime per spec.md §4.1).
type symbolKind int

const (
	// kindVar is a binding whose shape doesn't statically rule out
	// holding a closure (e.g. it came from a Var, Call, or If); calling
	// it is accepted here and left to CheckArityAndUntag at runtime.
	kindVar symbolKind = iota
	// kindValue is a binding whose bound expression is statically known
	// to never be a function (a literal number, bool, or array). Calling
	// one is a compile-time error.
	kindValue
	kindFunc
)

type symbol struct {
	kind  symbolKind
	arity int
}

// classifyBinding infers the symbol kind a let binding's value deserves,
// propagating through aliasing (let g = f in ...) and the Print passthrough
// so a lambda bound several names away is still recognized as callable.
func classifyBinding(value ast.Expr, symbols env) symbol {
	switch v := value.(type) {
	case *ast.LambdaExpr:
		return symbol{kind: kindFunc, arity: len(v.Params)}
	case *ast.VarExpr:
		if sym, ok := symbols[v.Name]; ok {
			return sym
		}
		return symbol{kind: kindVar}
	case *ast.NumLit, *ast.BoolLit:
		return symbol{kind: kindValue}
	case *ast.PrimApp:
		if v.Op == ast.MakeArray {
			return symbol{kind: kindValue}
		}
		if v.Op == ast.Print && len(v.Args) == 1 {
			return classifyBinding(v.Args[0], symbols)
		}
		return symbol{kind: kindVar}
	default:
		return symbol{kind: kindVar}
	}
}

type env map[string]symbol

func (e env) extend() env {
	next := make(env, len(e))
	for k, v := range e {
		next[k] = v
	}
	return next
}

// Check validates prog and returns the first error encountered, or nil.
func Check(prog *ast.Program) error {
	return check(prog.Body, env{})
}

func check(e ast.Expr, symbols env) error {
	switch n := e.(type) {
	case *ast.NumLit:
		if n.Value > i63Max || n.Value < i63Min {
			return errs.Overflow(n.Value, n.Pos())
		}
		return nil

	case *ast.BoolLit:
		return nil

	case *ast.VarExpr:
		if _, ok := symbols[n.Name]; !ok {
			return errs.UnboundVariable(n.Name, n.Pos())
		}
		return nil

	case *ast.PrimApp:
		for _, arg := range n.Args {
			if err := check(arg, symbols); err != nil {
				return err
			}
		}
		return nil

	case *ast.LetExpr:
		scoped := symbols.extend()
		seen := make(map[string]bool, len(n.Bindings))
		for _, b := range n.Bindings {
			if seen[b.Name] {
				return errs.DuplicateBinding(b.Name, n.Pos())
			}
			seen[b.Name] = true
			if err := check(b.Value, scoped); err != nil {
				return err
			}
			scoped[b.Name] = classifyBinding(b.Value, scoped)
		}
		return check(n.Body, scoped)

	case *ast.IfExpr:
		if err := check(n.Cond, symbols); err != nil {
			return err
		}
		if err := check(n.Then, symbols); err != nil {
			return err
		}
		return check(n.Else, symbols)

	case *ast.FunDefsExpr:
		scoped := symbols.extend()
		seen := make(map[string]bool, len(n.Decls))
		for _, d := range n.Decls {
			if seen[d.Name] {
				return errs.DuplicateFunName(d.Name, d.Pos())
			}
			seen[d.Name] = true
			scoped[d.Name] = symbol{kind: kindFunc, arity: len(d.Params)}
		}
		for _, d := range n.Decls {
			bodyScope := scoped.extend()
			params := make(map[string]bool, len(d.Params))
			for _, p := range d.Params {
				if params[p] {
					return errs.DuplicateArgName(p, d.Pos())
				}
				params[p] = true
				bodyScope[p] = symbol{kind: kindVar}
			}
			if err := check(d.Body, bodyScope); err != nil {
				return err
			}
		}
		return check(n.Body, scoped)

	case *ast.CallExpr:
		if v, ok := n.Callee.(*ast.VarExpr); ok {
			sym, bound := symbols[v.Name]
			if !bound {
				return errs.UndefinedFunction(v.Name, v.Pos())
			}
			if sym.kind == kindValue {
				return errs.ValueUsedAsFunction(v.Name, v.Pos())
			}
			if sym.kind == kindFunc && sym.arity != len(n.Args) {
				return errs.WrongArity(v.Name, sym.arity, len(n.Args), n.Pos())
			}
		} else if err := check(n.Callee, symbols); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := check(arg, symbols); err != nil {
				return err
			}
		}
		return nil

	case *ast.LambdaExpr:
		scoped := symbols.extend()
		params := make(map[string]bool, len(n.Params))
		for _, p := range n.Params {
			if params[p] {
				return errs.DuplicateArgName(p, n.Pos())
			}
			params[p] = true
			scoped[p] = symbol{kind: kindVar}
		}
		return check(n.Body, scoped)

	case *ast.SemicolonExpr:
		if err := check(n.First, symbols); err != nil {
			return err
		}
		return check(n.Second, symbols)

	default:
		return nil
	}
}

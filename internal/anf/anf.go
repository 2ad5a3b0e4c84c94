package anf

import (
	"fmt"

	"snake/internal/core"
	"snake/internal/lift"
)

// binding is one fresh-variable let pending insertion above a node whose
// operand needed to be immediate.
type binding struct {
	Var   string
	Bound SeqExp
}

// Run sequentializes every lifted function body and the entry
// expression into ANF.
func Run(prog *lift.Program) *Program {
	counter := 0
	functions := make([]*FunDecl, len(prog.Functions))
	for i, d := range prog.Functions {
		functions[i] = &FunDecl{Name: d.Name, Params: d.Params, Body: sequentialize(d.Body, &counter)}
	}
	return &Program{Functions: functions, Main: sequentialize(prog.Main, &counter)}
}

func freshVar(counter *int) string {
	*counter++
	return fmt.Sprintf("#var_%d", *counter)
}

func freshIf(counter *int) string {
	*counter++
	return fmt.Sprintf("#if_%d", *counter)
}

// wrapImm forces seq into an immediate, introducing a fresh let binding
// when it is not already one, and hands the resulting ImmExp to cont.
func wrapImm(seq SeqExp, counter *int, cont func(ImmExp) SeqExp) SeqExp {
	if im, ok := seq.(*Imm); ok {
		return cont(im.Value)
	}
	v := freshVar(counter)
	return &Let{Var: v, BoundExp: seq, Body: cont(ImmVar{v})}
}

// parseParamExps sequentializes each of params, in order, returning the
// immediate form of each alongside the let bindings needed to make
// non-immediate ones so (in left-to-right evaluation order).
func parseParamExps(params []core.Expr, counter *int) ([]ImmExp, []binding) {
	var bindings []binding
	imms := make([]ImmExp, len(params))
	for i, p := range params {
		seq := sequentialize(p, counter)
		if im, ok := seq.(*Imm); ok {
			imms[i] = im.Value
			continue
		}
		v := freshVar(counter)
		bindings = append(bindings, binding{Var: v, Bound: seq})
		imms[i] = ImmVar{v}
	}
	return imms, bindings
}

func generateNestedLet(bindings []binding, body SeqExp) SeqExp {
	if len(bindings) == 0 {
		return body
	}
	return &Let{Var: bindings[0].Var, BoundExp: bindings[0].Bound, Body: generateNestedLet(bindings[1:], body)}
}

func sequentialize(e core.Expr, counter *int) SeqExp {
	switch n := e.(type) {
	case *core.Num:
		return &Imm{Value: ImmNum{Value: n.Value}}

	case *core.Bool:
		return &Imm{Value: ImmBool{Value: n.Value}}

	case *core.Var:
		return &Imm{Value: ImmVar{Name: n.Name}}

	case *core.Prim:
		imms, bindings := parseParamExps(n.Args, counter)
		return generateNestedLet(bindings, &Prim{Op: n.Op, Args: imms})

	case *core.Let:
		if len(n.Bindings) == 0 {
			return sequentialize(n.Body, counter)
		}
		var result SeqExp
		for i := len(n.Bindings) - 1; i >= 0; i-- {
			b := n.Bindings[i]
			var body SeqExp
			if result != nil {
				body = result
			} else {
				body = sequentialize(n.Body, counter)
			}
			result = &Let{Var: b.Name, BoundExp: sequentialize(b.Value, counter), Body: body}
		}
		return result

	case *core.If:
		varName := freshIf(counter)
		return &Let{
			Var:      varName,
			BoundExp: sequentialize(n.Cond, counter),
			Body: &If{
				Cond: ImmVar{Name: varName},
				Then: sequentialize(n.Then, counter),
				Else: sequentialize(n.Else, counter),
			},
		}

	case *core.FunDefs:
		decls := make([]*FunDecl, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = &FunDecl{Name: d.Name, Params: d.Params, Body: sequentialize(d.Body, counter)}
		}
		return &FunDefs{Decls: decls, Body: sequentialize(n.Body, counter)}

	case *core.InternalTailCall:
		imms, bindings := parseParamExps(n.Args, counter)
		return generateNestedLet(bindings, &InternalTailCall{Label: n.Label, Args: imms})

	case *core.ExternalCall:
		imms, bindings := parseParamExps(n.Args, counter)
		return generateNestedLet(bindings, &ExternalCall{
			Fun:    CalleeRef{IsLabel: n.Fun.IsLabel, Name: n.Fun.Name},
			Args:   imms,
			IsTail: n.IsTail,
		})

	case *core.MakeClosure:
		return wrapImm(sequentialize(n.Env, counter), counter, func(imm ImmExp) SeqExp {
			return &MakeClosure{Arity: n.Arity, Label: n.Label, Env: imm}
		})

	case *core.GetCode:
		return wrapImm(sequentialize(n.Closure, counter), counter, func(imm ImmExp) SeqExp {
			return &GetCode{Closure: imm}
		})

	case *core.GetEnv:
		return wrapImm(sequentialize(n.Closure, counter), counter, func(imm ImmExp) SeqExp {
			return &GetEnv{Closure: imm}
		})

	case *core.CheckArityAndUntag:
		return wrapImm(sequentialize(n.Closure, counter), counter, func(imm ImmExp) SeqExp {
			return &CheckArityAndUntag{Arity: n.Arity, Closure: imm}
		})

	default:
		panic("anf: unexpected node after lifting")
	}
}

package lift

import "snake/internal/core"

// analysis is the result of the liftability analysis: for every local
// function name, whether it must be hoisted, whether it is ever taken as
// a first-class value (forcing the env-array capture convention instead
// of plain trailing parameters), the frame it was declared in (for the
// same-scope tail-call exemption), and the variables in scope at its
// declaration point (its capture list once lifted).
type analysis struct {
	declFrame  map[string]string
	toLift     map[string]bool
	firstClass map[string]bool
	captured   map[string][]string

	lambdaCaptured map[*core.Lambda][]string
}

func newAnalysis() *analysis {
	return &analysis{
		declFrame:      map[string]string{},
		toLift:         map[string]bool{},
		firstClass:     map[string]bool{},
		captured:       map[string][]string{},
		lambdaCaptured: map[*core.Lambda][]string{},
	}
}

// extend returns a fresh slice holding vars followed by names, never
// sharing a backing array with vars (sibling branches must not alias).
func extend(vars []string, names ...string) []string {
	next := make([]string, len(vars)+len(names))
	copy(next, vars)
	copy(next[len(vars):], names)
	return next
}

// analyze walks e, recording liftability facts into a. frame identifies
// the function body currently being walked (empty string for the
// program's implicit top-level frame); isTail is true when e's value is
// returned directly from that frame without further computation.
func analyze(e core.Expr, frame string, isTail bool, scopeVars []string, a *analysis) {
	switch n := e.(type) {
	case *core.Num, *core.Bool, *core.Var:
		return

	case *core.Prim:
		for _, arg := range n.Args {
			analyze(arg, frame, false, scopeVars, a)
		}

	case *core.Let:
		vars := scopeVars
		for _, b := range n.Bindings {
			analyze(b.Value, frame, false, vars, a)
			vars = extend(vars, b.Name)
		}
		analyze(n.Body, frame, isTail, vars, a)

	case *core.If:
		analyze(n.Cond, frame, false, scopeVars, a)
		analyze(n.Then, frame, isTail, scopeVars, a)
		analyze(n.Else, frame, isTail, scopeVars, a)

	case *core.FunDefs:
		for _, d := range n.Decls {
			a.declFrame[d.Name] = frame
			a.captured[d.Name] = extend(scopeVars)
		}
		for _, d := range n.Decls {
			bodyVars := extend(scopeVars, d.Params...)
			analyze(d.Body, d.Name, true, bodyVars, a)
		}
		analyze(n.Body, frame, isTail, scopeVars, a)

	case *core.DirectCall:
		for _, arg := range n.Args {
			analyze(arg, frame, false, scopeVars, a)
		}
		declFrame, known := a.declFrame[n.Name]
		if known && !(isTail && (frame == declFrame || frame == n.Name)) {
			a.toLift[n.Name] = true
		}

	case *core.ClosureCall:
		analyze(n.Callee, frame, false, scopeVars, a)
		for _, arg := range n.Args {
			analyze(arg, frame, false, scopeVars, a)
		}

	case *core.MakeClosure:
		analyze(n.Env, frame, false, scopeVars, a)
		a.toLift[n.Label] = true
		a.firstClass[n.Label] = true

	case *core.Lambda:
		a.lambdaCaptured[n] = extend(scopeVars)
		bodyVars := extend(scopeVars, n.Params...)
		analyze(n.Body, "<lambda>", true, bodyVars, a)

	default:
		panic("lift: unexpected node before lifting")
	}
}

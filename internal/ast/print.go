package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (n *NumLit) String() string { return strconv.FormatInt(n.Value, 10) }

func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (v *VarExpr) String() string { return v.Name }

func (p *PrimApp) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Op, strings.Join(args, ", "))
}

func (l *LetExpr) String() string {
	var b strings.Builder
	b.WriteString("let ")
	for i, bind := range l.Bindings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(bind.Name)
		b.WriteString(" = ")
		b.WriteString(bind.Value.String())
	}
	b.WriteString(" in ")
	b.WriteString(l.Body.String())
	return b.String()
}

func (i *IfExpr) String() string {
	return fmt.Sprintf("if %s: %s else: %s", i.Cond, i.Then, i.Else)
}

func (f *FunDefsExpr) String() string {
	var b strings.Builder
	for _, decl := range f.Decls {
		b.WriteString(fmt.Sprintf("def %s(%s) = %s; ", decl.Name, strings.Join(decl.Params, ", "), decl.Body))
	}
	b.WriteString(f.Body.String())
	return b.String()
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func (l *LambdaExpr) String() string {
	return fmt.Sprintf("lambda(%s): %s", strings.Join(l.Params, ", "), l.Body)
}

func (s *SemicolonExpr) String() string {
	return fmt.Sprintf("%s; %s", s.First, s.Second)
}

func (p *Program) String() string { return p.Body.String() }

package ast

// Node is implemented by every surface syntax tree element.
type Node interface {
	Pos() Position
	End() Position
	String() string
}

// Expr is implemented by every surface expression variant.
type Expr interface {
	Node
	exprNode()
}

func (*NumLit) exprNode()       {}
func (*BoolLit) exprNode()      {}
func (*VarExpr) exprNode()      {}
func (*PrimApp) exprNode()      {}
func (*LetExpr) exprNode()      {}
func (*IfExpr) exprNode()       {}
func (*FunDefsExpr) exprNode()  {}
func (*CallExpr) exprNode()     {}
func (*LambdaExpr) exprNode()   {}
func (*SemicolonExpr) exprNode() {}

// NumLit is an integer literal. Value holds the full 64-bit parsed value;
// the checker rejects it if it falls outside [-2^62, 2^62-1].
type NumLit struct {
	Value    int64
	Span, End_ Position
}

func (n *NumLit) Pos() Position { return n.Span }
func (n *NumLit) End() Position { return n.End_ }

// BoolLit is a boolean literal.
type BoolLit struct {
	Value      bool
	Span, End_ Position
}

func (b *BoolLit) Pos() Position { return b.Span }
func (b *BoolLit) End() Position { return b.End_ }

// VarExpr is a variable reference.
type VarExpr struct {
	Name       string
	Span, End_ Position
}

func (v *VarExpr) Pos() Position { return v.Span }
func (v *VarExpr) End() Position { return v.End_ }

// PrimApp is an application of a built-in primitive operator.
type PrimApp struct {
	Op         PrimOp
	Args       []Expr
	Span, End_ Position
}

func (p *PrimApp) Pos() Position { return p.Span }
func (p *PrimApp) End() Position { return p.End_ }

// Binding is one (name, value) pair of a let group.
type Binding struct {
	Name  string
	Value Expr
}

// LetExpr binds a sequence of non-recursive, sequentially scoped names.
type LetExpr struct {
	Bindings   []Binding
	Body       Expr
	Span, End_ Position
}

func (l *LetExpr) Pos() Position { return l.Span }
func (l *LetExpr) End() Position { return l.End_ }

// IfExpr is a conditional.
type IfExpr struct {
	Cond, Then, Else Expr
	Span, End_       Position
}

func (i *IfExpr) Pos() Position { return i.Span }
func (i *IfExpr) End() Position { return i.End_ }

// FunDecl is one declaration inside a fundefs group.
type FunDecl struct {
	Name       string
	Params     []string
	Body       Expr
	Span, End_ Position
}

func (f *FunDecl) Pos() Position { return f.Span }
func (f *FunDecl) End() Position { return f.End_ }
func (f *FunDecl) String() string { return "fun " + f.Name }

// FunDefsExpr declares one or more mutually recursive functions in scope
// for Body.
type FunDefsExpr struct {
	Decls      []*FunDecl
	Body       Expr
	Span, End_ Position
}

func (f *FunDefsExpr) Pos() Position { return f.Span }
func (f *FunDefsExpr) End() Position { return f.End_ }

// CallExpr applies Callee (an arbitrary expression) to Args. Whether this
// resolves to a known top-level function or must go through the closure
// protocol is decided later by the closure converter.
type CallExpr struct {
	Callee     Expr
	Args       []Expr
	Span, End_ Position
}

func (c *CallExpr) Pos() Position { return c.Span }
func (c *CallExpr) End() Position { return c.End_ }

// LambdaExpr is an anonymous, first-class function literal.
type LambdaExpr struct {
	Params     []string
	Body       Expr
	Span, End_ Position
}

func (l *LambdaExpr) Pos() Position { return l.Span }
func (l *LambdaExpr) End() Position { return l.End_ }

// SemicolonExpr sequences two expressions, discarding the first's value.
// Desugared by the uniquifier to a single-binding Let of E1 (under a fresh
// binder that nothing reads) around E2; no later pass sees this node.
type SemicolonExpr struct {
	First, Second Expr
	Span, End_    Position
}

func (s *SemicolonExpr) Pos() Position { return s.Span }
func (s *SemicolonExpr) End() Position { return s.End_ }

// Program is the parsed, unchecked surface tree.
type Program struct {
	Body Expr
}

package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// This file is the participle struct-tag grammar for Snake, generalizing
// the layered-precedence style of a hand-written recursive-descent parser
// into participle's declarative grammar: one struct per precedence level,
// each delegating to the next-tighter level for its operands.

type Expr struct {
	Pos, EndPos lexer.Position

	Let    *LetExprG    `  @@`
	If     *IfExprG     `| @@`
	Def    *FunDefsG    `| @@`
	Lambda *LambdaExprG `| @@`
	Seq    *SeqExprG    `| @@`
}

type LetExprG struct {
	Pos, EndPos lexer.Position

	Bindings []*BindingG `"let" @@ ("," @@)* "in"`
	Body     *Expr       `@@`
}

type BindingG struct {
	Pos, EndPos lexer.Position

	Name  string `@Ident "="`
	Value *Expr  `@@`
}

type IfExprG struct {
	Pos, EndPos lexer.Position

	Cond *Expr `"if" @@ ":"`
	Then *Expr `@@ "else" ":"`
	Else *Expr `@@`
}

type FunDefsG struct {
	Pos, EndPos lexer.Position

	Decls []*FunDeclG `("def" @@)+`
	Body  *Expr       `";" @@`
}

type FunDeclG struct {
	Pos, EndPos lexer.Position

	Name   string   `@Ident "("`
	Params []string `[ @Ident ("," @Ident)* ] ")"`
	Body   *Expr    `"=" @@`
}

type LambdaExprG struct {
	Pos, EndPos lexer.Position

	Params []string `"lambda" "(" [ @Ident ("," @Ident)* ] ")" ":"`
	Body   *Expr    `@@`
}

// SeqExprG is an assignment-level expression optionally followed by a
// semicolon-separated continuation: e1; e2 evaluates e1 for effect only.
type SeqExprG struct {
	Pos, EndPos lexer.Position

	First *AssignExprG `@@`
	Rest  *Expr         `[ ";" @@ ]`
}

// AssignExprG is `target := value` (array-element assignment) or falls
// through to plain boolean-or expressions.
type AssignExprG struct {
	Pos, EndPos lexer.Position

	Target *OrExprG `@@`
	Value  *Expr    `[ ":=" @@ ]`
}

type OrExprG struct {
	Pos, EndPos lexer.Position

	Left  *AndExprG  `@@`
	Op    string     `[ @"||"`
	Right *OrExprG   `  @@ ]`
}

type AndExprG struct {
	Pos, EndPos lexer.Position

	Left  *EqExprG  `@@`
	Op    string    `[ @"&&"`
	Right *AndExprG `  @@ ]`
}

type EqExprG struct {
	Pos, EndPos lexer.Position

	Left  *RelExprG `@@`
	Op    string    `[ @("==" | "!=")`
	Right *EqExprG  `  @@ ]`
}

type RelExprG struct {
	Pos, EndPos lexer.Position

	Left  *AddExprG `@@`
	Op    string    `[ @("<=" | ">=" | "<" | ">")`
	Right *RelExprG `  @@ ]`
}

type AddExprG struct {
	Pos, EndPos lexer.Position

	Left  *MulExprG  `@@`
	Op    string     `[ @("+" | "-")`
	Right *AddExprG  `  @@ ]`
}

type MulExprG struct {
	Pos, EndPos lexer.Position

	Left  *UnaryExprG `@@`
	Op    string      `[ @"*"`
	Right *MulExprG   `  @@ ]`
}

type UnaryExprG struct {
	Pos, EndPos lexer.Position

	Not  *UnaryExprG   `  "!" @@`
	Neg  *UnaryExprG   `| "-" @@`
	Atom *PostfixExprG `| @@`
}

type PostfixExprG struct {
	Pos, EndPos lexer.Position

	Atom  *AtomG        `@@`
	Trail []*PostfixTrailG `@@*`
}

type PostfixTrailG struct {
	Pos, EndPos lexer.Position

	Call  *CallTrailG  `  @@`
	Index *IndexTrailG `| @@`
}

type CallTrailG struct {
	Pos, EndPos lexer.Position

	Args []*Expr `"(" [ @@ ("," @@)* ] ")"`
}

type IndexTrailG struct {
	Pos, EndPos lexer.Position

	Index *Expr `"[" @@ "]"`
}

type AtomG struct {
	Pos, EndPos lexer.Position

	Int   *int64     `  @Int`
	Bool  *BoolLitG  `| @@`
	Array *ArrayLitG `| @@`
	Paren *Expr      `| "(" @@ ")"`
	Ident *string    `| @Ident`
}

type BoolLitG struct {
	Pos, EndPos lexer.Position

	Value string `@("true" | "false")`
}

type ArrayLitG struct {
	Pos, EndPos lexer.Position

	Elements []*Expr `"[" [ @@ ("," @@)* ] "]"`
}

package ast

// PrimOp enumerates the primitive operators of the surface language.
type PrimOp int

const (
	Add PrimOp = iota
	Sub
	Mul
	Add1
	Sub1
	Not
	Print
	IsBool
	IsNum
	And
	Or
	Lt
	Gt
	Le
	Ge
	Eq
	Neq
	Length
	IsFun
	IsArray
	MakeArray
	ArrayGet
	ArraySet
)

var primNames = map[PrimOp]string{
	Add: "+", Sub: "-", Mul: "*",
	Add1: "add1", Sub1: "sub1", Not: "!",
	Print: "print", IsBool: "isbool", IsNum: "isnum",
	And: "&&", Or: "||",
	Lt: "<", Gt: ">", Le: "<=", Ge: ">=", Eq: "==", Neq: "!=",
	Length: "length", IsFun: "isfun", IsArray: "isarray",
	MakeArray: "array", ArrayGet: "index", ArraySet: "arrayset",
}

func (p PrimOp) String() string {
	if n, ok := primNames[p]; ok {
		return n
	}
	return "<unknown-prim>"
}

// Arity returns the fixed number of operands the primitive expects, or -1
// if the primitive is variadic (only MakeArray is).
func (p PrimOp) Arity() int {
	switch p {
	case Add1, Sub1, Not, Print, IsBool, IsNum, Length, IsFun, IsArray:
		return 1
	case Add, Sub, Mul, And, Or, Lt, Gt, Le, Ge, Eq, Neq, ArrayGet:
		return 2
	case ArraySet:
		return 3
	case MakeArray:
		return -1
	default:
		return -1
	}
}

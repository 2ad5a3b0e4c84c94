package errs

import (
	"fmt"

	"github.com/pkg/errors"

	"snake/internal/ast"
)

// CompileError is a structured compile-time diagnostic: the offending
// position, the specific E#### code, and a human-readable message. The
// first error discovered by a pass short-circuits it; no partial output
// is produced.
type CompileError struct {
	Code     string
	Message  string
	Position ast.Position
	Length   int
	Notes    []string
	cause    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Position)
}

// Unwrap lets errors.Is/errors.As and pkg/errors.Cause see through a
// CompileError raised while propagating a lower-level failure.
func (e *CompileError) Unwrap() error { return e.cause }

func newError(code, message string, pos ast.Position) *CompileError {
	return &CompileError{Code: code, Message: message, Position: pos, Length: 1}
}

func (e *CompileError) withLength(l int) *CompileError {
	e.Length = l
	return e
}

func (e *CompileError) withNote(note string) *CompileError {
	e.Notes = append(e.Notes, note)
	return e
}

// Overflow reports an integer literal outside [-2^62, 2^62-1].
func Overflow(num int64, pos ast.Position) *CompileError {
	return newError(ErrorOverflow, fmt.Sprintf("integer literal %d overflows a 63-bit tagged value", num), pos)
}

// UnboundVariable reports a Var with no binding site in scope.
func UnboundVariable(name string, pos ast.Position) *CompileError {
	return newError(ErrorUnboundVariable, fmt.Sprintf("unbound variable '%s'", name), pos).withLength(len(name))
}

// DuplicateBinding reports a let group that binds name twice.
func DuplicateBinding(name string, pos ast.Position) *CompileError {
	return newError(ErrorDuplicateBinding, fmt.Sprintf("duplicate binding '%s' in let", name), pos).withLength(len(name))
}

// DuplicateFunName reports a fundefs group that declares name twice.
func DuplicateFunName(name string, pos ast.Position) *CompileError {
	return newError(ErrorDuplicateFunName, fmt.Sprintf("duplicate function name '%s'", name), pos).withLength(len(name))
}

// DuplicateArgName reports a parameter list that repeats name.
func DuplicateArgName(name string, pos ast.Position) *CompileError {
	return newError(ErrorDuplicateArgName, fmt.Sprintf("duplicate argument name '%s'", name), pos).withLength(len(name))
}

// UndefinedFunction reports a direct call to a name with no function
// binder in scope.
func UndefinedFunction(name string, pos ast.Position) *CompileError {
	return newError(ErrorUndefinedFunction, fmt.Sprintf("call to undefined function '%s'", name), pos).withLength(len(name))
}

// WrongArity reports a direct call whose argument count does not match
// the statically known function's parameter count.
func WrongArity(name string, want, got int, pos ast.Position) *CompileError {
	return newError(ErrorWrongArity,
		fmt.Sprintf("function '%s' takes %d argument(s), called with %d", name, want, got), pos).
		withNote("first-class calls through a closure value defer this check to runtime")
}

// ValueUsedAsFunction reports a call whose callee names a variable, not
// a function.
func ValueUsedAsFunction(name string, pos ast.Position) *CompileError {
	return newError(ErrorValueUsedAsFunction, fmt.Sprintf("'%s' is a variable, not a function", name), pos).withLength(len(name))
}

// ParseError wraps a lower-level parse failure (from participle) with a
// Snake error code so the CLI/LSP can render it uniformly.
func ParseError(pos ast.Position, cause error) *CompileError {
	e := newError(ErrorParse, errors.Cause(cause).Error(), pos)
	e.cause = cause
	return e
}

// Package lift hoists local function declarations and lambdas to the top
// level (spec.md §4.4): deciding which local functions must leave their
// declaring scope, appending their captured variables to their parameter
// lists, classifying call sites as InternalTailCall or ExternalCall, and
// expanding closure calls into the GetCode/GetEnv/CheckArityAndUntag
// protocol.
package lift

import "snake/internal/core"

// Program is the result of lambda lifting: every hoisted function
// (originally a local FunDecl or a Lambda) alongside the entry
// expression that runs in the implicit top-level frame.
type Program struct {
	Functions []*core.FunDecl
	Main      core.Expr
}

package errs

// Error codes for the Snake compiler.
//
// E0001-E0099: checker (static) errors
// E0100-E0199: parser/lexer errors
const (
	// ErrorOverflow: an integer literal falls outside [-2^62, 2^62-1].
	ErrorOverflow = "E0001"

	// ErrorUnboundVariable: a Var resolves to no binder in scope.
	ErrorUnboundVariable = "E0002"

	// ErrorDuplicateBinding: a single let binds the same name twice.
	ErrorDuplicateBinding = "E0003"

	// ErrorDuplicateFunName: a single fundefs group declares a name twice.
	ErrorDuplicateFunName = "E0004"

	// ErrorDuplicateArgName: a function/lambda parameter list repeats a name.
	ErrorDuplicateArgName = "E0005"

	// ErrorUndefinedFunction: a direct call names a function not in scope.
	ErrorUndefinedFunction = "E0006"

	// ErrorWrongArity: a direct call to a statically known function passes
	// the wrong number of arguments.
	ErrorWrongArity = "E0007"

	// ErrorValueUsedAsFunction: a call's callee position names a variable
	// rather than a function.
	ErrorValueUsedAsFunction = "E0008"

	// ErrorParse: the surface grammar rejected the source.
	ErrorParse = "E0100"
)

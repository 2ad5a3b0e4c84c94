package interp

import (
	"fmt"

	"snake/internal/abi"
)

// RuntimeError mirrors a fatal error the compiled runtime would report
// via snake_error (spec.md §6): a fixed error code and the value that
// triggered it.
type RuntimeError struct {
	Code  abi.ErrorCode
	Value Value
}

func (e *RuntimeError) Error() string {
	if e.Value == nil {
		return abi.Messages[e.Code]
	}
	return fmt.Sprintf("%s %s", abi.Messages[e.Code], sprintValue(e.Value))
}

func typeError(code abi.ErrorCode, v Value) error {
	return &RuntimeError{Code: code, Value: v}
}

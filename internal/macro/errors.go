package macro

import "errors"

// Errors for macro execution.
var (
	// ErrStateClosed is returned when operating on a closed interpreter.
	ErrStateClosed = errors.New("macro state is closed")

	// ErrFunctionNotFound is returned when calling an undefined Lua function.
	ErrFunctionNotFound = errors.New("macro function not found")
)

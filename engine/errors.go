package engine

import "fmt"

// SemanticError reports a well-formed statement that violates a per-type
// rule (duplicate BST key, duplicate set element, index out of bounds,
// unsupported method for a type). The structure is left unchanged.
type SemanticError struct {
	Msg string
}

func (e *SemanticError) Error() string {
	return e.Msg
}

func semanticf(format string, args ...interface{}) error {
	return &SemanticError{Msg: fmt.Sprintf(format, args...)}
}

// EmptyStructureError reports a pop/remove on an empty structure. The
// operation is a no-op.
type EmptyStructureError struct {
	Structure string
}

func (e *EmptyStructureError) Error() string {
	return e.Structure + " is empty"
}

// ExecError ties a runtime error to the operation that caused it.
// Failures are isolated per statement: the engine records the error and
// continues with the next operation.
type ExecError struct {
	Index int
	Line  int
	Err   error
}

func (e ExecError) Error() string {
	return fmt.Sprintf("operation %d (line %d): %v", e.Index, e.Line, e.Err)
}

func (e ExecError) Unwrap() error {
	return e.Err
}

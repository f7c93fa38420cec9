package runtime

import "fmt"

// ReferenceError reports an unresolved name lookup, a write through an
// unresolvable reference, or an assignment whose target is not a
// reference at all.
type ReferenceError struct {
	Message string
}

func NewReferenceError(format string, args ...any) *ReferenceError {
	return &ReferenceError{Message: fmt.Sprintf(format, args...)}
}

func (e *ReferenceError) Error() string {
	return "ReferenceError: " + e.Message
}

// TypeError reports a value used against its type: calling a
// non-callable, or taking a property reference over a primitive.
type TypeError struct {
	Message string
}

func NewTypeError(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Message
}

// SyntaxError reports a construct the evaluator does not recognise,
// such as an unknown operator token. It marks a contract violation
// between the parser and the evaluator rather than a value fault.
type SyntaxError struct {
	Message string
}

func NewSyntaxError(format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return "SyntaxError: " + e.Message
}

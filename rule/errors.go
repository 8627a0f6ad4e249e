package rule

import "fmt"

// Error is a rule-compilation failure: a malformed expression or
// pattern embedded in a rule's pre/postcondition, discovered once at
// Compile time rather than repeatedly at evaluation time.
type Error struct {
	Class   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rule: class %q: %s", e.Class, e.Message)
}

func newError(class, format string, args ...any) *Error {
	return &Error{Class: class, Message: fmt.Sprintf(format, args...)}
}

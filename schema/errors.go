package schema

import (
	"fmt"

	"github.com/oarkflow/schemacore/value"
)

// Error is a construction-time error: an unresolved reference, a cycle
// in the inheritance/mixin graph, or a malformed schema document. It
// is returned from FromMap/FromJSON and from schemaview.New;,
// construction-time errors abort and no partial engine is usable.
type Error struct {
	Code    value.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code value.Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrUnknownClass is returned (wrapped in an *Error) when a class name
// does not resolve.
func ErrUnknownClass(name string) *Error {
	return newError(value.CodeUnknownClass, "unknown class %q", name)
}

// ErrUnknownSlot is returned (wrapped in an *Error) when a slot name
// does not resolve.
func ErrUnknownSlot(name string) *Error {
	return newError(value.CodeUnknownSlot, "unknown slot %q", name)
}

// ErrUnknownEnum is returned (wrapped in an *Error) when an enum name
// does not resolve.
func ErrUnknownEnum(name string) *Error {
	return newError(value.CodeUnknownEnum, "unknown enum %q", name)
}

// ErrCycle is returned when inheritance or mixin chains contain a
// cycle.
func ErrCycle(chain []string) *Error {
	return newError(value.CodeCycleDetected, "cycle detected in class hierarchy: %v", chain)
}

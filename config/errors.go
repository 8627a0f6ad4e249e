package config

import (
	"fmt"
	"strings"
)

// Error is one rejected field: a numeric limit that was zero or
// negative, or an eviction policy outside the supported set.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every Error found by Config.Validate, so a
// caller sees all rejected fields in one pass instead of fixing them
// one at a time.
type ValidationError struct {
	Errors []*Error
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, sub := range e.Errors {
		parts[i] = sub.Error()
	}
	return "config: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Errors = append(e.Errors, &Error{Field: field, Message: fmt.Sprintf(format, args...)})
}

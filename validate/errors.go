package validate

import (
	"context"
	"fmt"

	"github.com/oarkflow/schemacore/value"
)

// IssueError adapts a single value.Issue to the error interface, for
// callers that want a plain error rather than a Report (e.g. a
// MustValidate-style helper that panics or returns early on the first
// problem), grounded on the single-error Validate/
// ValidateWithPath contract in jsonschema/v2/jsonschema.go, which this
// package otherwise generalizes into a multi-issue Report.
type IssueError struct {
	Issue value.Issue
}

func (e *IssueError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Issue.Code, e.Issue.Message, e.Issue.Path)
}

// MustValidate runs Validate and, if the resulting report carries any
// error-severity issue, returns the first one wrapped as an
// *IssueError instead of the full report.
func (e *Engine) MustValidate(className string, instance value.Value, opts Options) error {
	report, err := e.Validate(context.Background(), className, instance, opts)
	if err != nil {
		return err
	}
	if errs := report.Errors(); len(errs) > 0 {
		return &IssueError{Issue: errs[0]}
	}
	return nil
}

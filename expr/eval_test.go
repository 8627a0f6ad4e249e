package expr

import (
	"testing"

	"github.com/oarkflow/schemacore/value"
)

func eval(t *testing.T, src string, ctx Context) (value.Value, error) {
	t.Helper()
	n, err := Parse(src)
	if err != nil {
		return value.Value{}, err
	}
	return Eval(n, ctx, NewFunctions(), DefaultLimits())
}

func TestEvalUndefinedVariableErrors(t *testing.T) {
	_, err := eval(t, "{missing}", Context{})
	if err == nil {
		t.Fatalf("expected undefined-variable error")
	}
	if ee, ok := err.(*Error); !ok || ee.Kind != ErrUnknownVariable {
		t.Fatalf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	_, err := eval(t, "1 / 0", Context{})
	ee, ok := err.(*Error)
	if !ok || ee.Kind != ErrDivisionByZero {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestEvalAndShortCircuitsRight(t *testing.T) {
	// the right side references an undefined variable; 'and' must not
	// evaluate it once the left side is false.
	v, err := eval(t, "false and {missing}", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Bool() {
		t.Fatalf("expected false")
	}
}

func TestEvalOrShortCircuitsRight(t *testing.T) {
	v, err := eval(t, "true or {missing}", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Bool() {
		t.Fatalf("expected true")
	}
}

func TestEvalTernaryEvaluatesOnlyTakenBranch(t *testing.T) {
	v, err := eval(t, "1 if true else {missing}", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int() != 1 {
		t.Fatalf("expected 1, got %v", v)
	}
}

func TestEvalNullOnlyComparesEqual(t *testing.T) {
	v, err := eval(t, "null == null", Context{})
	if err != nil || !v.Bool() {
		t.Fatalf("expected true, got %v err=%v", v, err)
	}
	if _, err := eval(t, "null < null", Context{}); err == nil {
		t.Fatalf("expected error comparing null with <")
	}
}

func TestEvalStringConcatenation(t *testing.T) {
	v, err := eval(t, `"a" + "b"`, Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str() != "ab" {
		t.Fatalf("expected ab, got %v", v)
	}
}

func TestEvalMaxDepthExceeded(t *testing.T) {
	n, err := Parse("not not not not not true")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Eval(n, Context{}, NewFunctions(), Limits{MaxDepth: 2})
	ee, ok := err.(*Error)
	if !ok || ee.Kind != ErrRuntimeLimit {
		t.Fatalf("expected ErrRuntimeLimit, got %v", err)
	}
}

func TestEvalFieldAccessOnNonObjectErrors(t *testing.T) {
	_, err := eval(t, "{x}.field", Context{"x": value.Int(1)})
	ee, ok := err.(*Error)
	if !ok || ee.Kind != ErrTypeMismatch {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

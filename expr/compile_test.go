package expr

import (
	"testing"

	"github.com/oarkflow/schemacore/value"
)

func compileAndRun(t *testing.T, src string, ctx Context) (value.Value, error) {
	t.Helper()
	n, err := Parse(src)
	if err != nil {
		return value.Value{}, err
	}
	prog, err := Compile(n)
	if err != nil {
		return value.Value{}, err
	}
	return EvalCompiled(prog, ctx, NewFunctions(), DefaultLimits())
}

func TestCompiledMatchesTreeWalkerArith(t *testing.T) {
	tw, err1 := eval(t, "(1 + 2) * 3 - 4 / 2", Context{})
	bc, err2 := compileAndRun(t, "(1 + 2) * 3 - 4 / 2", Context{})
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v %v", err1, err2)
	}
	if !value.Equal(tw, bc) {
		t.Fatalf("tree-walker %v != compiled %v", tw, bc)
	}
}

func TestCompiledShortCircuitsAnd(t *testing.T) {
	v, err := compileAndRun(t, "false and {missing}", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Bool() {
		t.Fatalf("expected false")
	}
}

func TestCompiledShortCircuitsOr(t *testing.T) {
	v, err := compileAndRun(t, "true or {missing}", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Bool() {
		t.Fatalf("expected true")
	}
}

func TestCompiledTernaryMatchesTreeWalker(t *testing.T) {
	ctx := Context{"x": value.Int(10)}
	tw, err1 := eval(t, "{x} if {x} > 5 else 0", ctx)
	bc, err2 := compileAndRun(t, "{x} if {x} > 5 else 0", ctx)
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v %v", err1, err2)
	}
	if !value.Equal(tw, bc) {
		t.Fatalf("mismatch: %v != %v", tw, bc)
	}
}

func TestCompiledFunctionCall(t *testing.T) {
	v, err := compileAndRun(t, `upper("ok")`, Context{})
	if err != nil || v.Str() != "OK" {
		t.Fatalf("got %v err=%v", v, err)
	}
}

func TestCompiledDivisionByZero(t *testing.T) {
	_, err := compileAndRun(t, "1 / 0", Context{})
	ee, ok := err.(*Error)
	if !ok || ee.Kind != ErrDivisionByZero {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

package expr

import (
	"testing"

	"github.com/oarkflow/schemacore/value"
)

func TestParsePrecedence(t *testing.T) {
	n, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Eval(n, Context{}, NewFunctions(), DefaultLimits())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Int() != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestParseComparisonBindsLooserThanArith(t *testing.T) {
	n, err := Parse("1 + 1 == 2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Eval(n, Context{}, NewFunctions(), DefaultLimits())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !v.Bool() {
		t.Fatalf("expected true")
	}
}

func TestParseTernary(t *testing.T) {
	n, err := Parse("{x} if {x} > 0 else 0 - {x}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Eval(n, Context{"x": value.Int(-5)}, NewFunctions(), DefaultLimits())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Int() != 5 {
		t.Fatalf("expected abs-like result 5, got %v", v)
	}
}

func TestParseVarBraceSyntax(t *testing.T) {
	n, err := Parse("{name}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Eval(n, Context{"name": value.String("ada")}, NewFunctions(), DefaultLimits())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Str() != "ada" {
		t.Fatalf("expected ada, got %v", v)
	}
}

func TestParseBareIdentifierRequiresCall(t *testing.T) {
	_, err := Parse("name")
	if err == nil {
		t.Fatalf("expected error for bare identifier")
	}
}

func TestParseFieldAccess(t *testing.T) {
	n, err := Parse("{obj}.field")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx := Context{"obj": value.Object(map[string]value.Value{"field": value.Int(42)})}
	v, err := Eval(n, ctx, NewFunctions(), DefaultLimits())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Int() != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestParseEmptyExpressionErrors(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}

func TestParseUnclosedStringErrors(t *testing.T) {
	if _, err := Parse(`"unterminated`); err == nil {
		t.Fatalf("expected error for unclosed string")
	}
}

func TestParseTrailingTokenErrors(t *testing.T) {
	if _, err := Parse("1 + 1 2"); err == nil {
		t.Fatalf("expected error for trailing input")
	}
}

func TestParseFunctionCall(t *testing.T) {
	n, err := Parse(`upper("ok")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Eval(n, Context{}, NewFunctions(), DefaultLimits())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Str() != "OK" {
		t.Fatalf("expected OK, got %v", v)
	}
}

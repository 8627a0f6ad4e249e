package validate

import (
	"context"
	"testing"

	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/rule"
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/schemaview"
	"github.com/oarkflow/schemacore/value"
)

func personSchemaMap() map[string]any {
	return map[string]any{
		"id":   "https://example.org/person",
		"name": "person-schema",
		"enums": map[string]any{
			"StatusEnum": map[string]any{
				"permissible_values": []any{"active", "inactive"},
			},
		},
		"slots": map[string]any{
			"street": map[string]any{
				"range": "string",
			},
			"name": map[string]any{
				"range":    "string",
				"required": true,
				"pattern":  "^[A-Z][a-z]+$",
			},
			"age": map[string]any{
				"range":         "integer",
				"minimum_value": 0,
				"maximum_value": 150,
			},
			"status": map[string]any{
				"range": "StatusEnum",
			},
			"emails": map[string]any{
				"range":       "string",
				"multivalued": true,
			},
			"address": map[string]any{
				"range": "Address",
			},
		},
		"classes": map[string]any{
			"Address": map[string]any{
				"slots": []any{"street"},
			},
			"Person": map[string]any{
				"slots": []any{"name", "age", "status", "emails", "address"},
			},
		},
	}
}

func buildEngine(t *testing.T, m map[string]any) *Engine {
	t.Helper()
	s, err := schema.FromMap(m)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	view, err := schemaview.New(s)
	if err != nil {
		t.Fatalf("schemaview.New: %v", err)
	}
	ee := expr.NewEngine(expr.DefaultEngineOptions())
	re := rule.New(view, ee)
	return New(view, ee, re)
}

func TestValidateRequiredFieldMissing(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{"age": value.Int(30)})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() == 0 {
		t.Fatalf("expected a required-field error, got %v", report.All())
	}
	found := false
	for _, issue := range report.Errors() {
		if issue.Code == value.CodeRequiredFieldMissing {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeRequiredFieldMissing, got %v", report.Errors())
	}
}

func TestValidatePatternAndRange(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name": value.String("not-a-name"),
		"age":  value.Int(200),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	codes := map[value.Code]bool{}
	for _, issue := range report.Errors() {
		codes[issue.Code] = true
	}
	if !codes[value.CodePatternMismatch] {
		t.Errorf("expected a pattern mismatch, got %v", report.Errors())
	}
	if !codes[value.CodeRangeViolation] {
		t.Errorf("expected a range violation, got %v", report.Errors())
	}
}

func TestValidateEnum(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name":   value.String("Ada"),
		"status": value.String("archived"),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() != 1 || report.Errors()[0].Code != value.CodeEnumViolation {
		t.Fatalf("expected a single enum violation, got %v", report.Errors())
	}
}

func TestValidateMultivaluedShape(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name":   value.String("Ada"),
		"emails": value.String("not-an-array"),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() != 1 || report.Errors()[0].Code != value.CodeCardinalityViolation {
		t.Fatalf("expected a cardinality violation, got %v", report.Errors())
	}
}

func TestValidateNestedClassRecurses(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name": value.String("Ada"),
		"address": value.Object(map[string]value.Value{
			"street": value.Int(5),
		}),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	found := false
	for _, issue := range report.Errors() {
		if issue.Path == "$.address.street" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a nested error at $.address.street, got %v", report.Errors())
	}
}

func TestValidateCrossReferenceMissing(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name":    value.String("Ada"),
		"address": value.String("addr-1"),
	})
	instances := InstanceSet{
		"Address": map[string]value.Instance{},
	}
	report, err := e.Validate(context.Background(), "Person", instance, Options{Instances: instances})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() != 1 || report.Errors()[0].Code != value.CodeCrossReferenceMissing {
		t.Fatalf("expected a cross-reference error, got %v", report.Errors())
	}
}

func TestValidateCrossReferenceWithoutInstancesAllowsAll(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name":    value.String("Ada"),
		"address": value.String("addr-1"),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() != 0 {
		t.Fatalf("expected no errors with no instance data loaded, got %v", report.Errors())
	}
}

func TestValidateValidInstancePasses(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name":   value.String("Ada"),
		"age":    value.Int(36),
		"status": value.String("active"),
		"emails": value.Array([]value.Value{value.String("a@example.org")}),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected a valid report, got %v", report.Errors())
	}
}

func TestValidateArrayParallelMatchesSequential(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	items := make([]value.Value, 200)
	for i := range items {
		items[i] = value.String("bad email")
	}
	instance := value.Object(map[string]value.Value{
		"name":   value.String("Ada"),
		"emails": value.Array(items),
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{ParallelThreshold: 8})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() != 0 {
		t.Fatalf("plain strings shouldn't fail any check, got %v", report.Errors())
	}
}

func TestValidateUnknownClass(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	_, err := e.Validate(context.Background(), "Nonexistent", value.Object(nil), Options{})
	if err == nil {
		t.Fatal("expected an error for an unknown class")
	}
}

func TestValidateMaxErrorsStopsEarly(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	instance := value.Object(map[string]value.Value{
		"name": value.Int(5), // wrong type; the pattern check skips non-strings
	})
	report, err := e.Validate(context.Background(), "Person", instance, Options{MaxErrors: 1})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.ErrorCount() > 1 {
		t.Fatalf("expected at most 1 error once the budget is exhausted, got %d", report.ErrorCount())
	}
}

package validate

import (
	"context"
	"testing"

	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/value"
)

func TestCustomValidatorRuns(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	e.RegisterCustomValidator(CustomValidator{
		Name: "no-admin-names",
		AppliesTo: func(slot schema.Slot) bool {
			return slot.Name == "name"
		},
		Fn: func(slot schema.Slot, v value.Value, path string) []value.Issue {
			if v.Kind() == value.KindString && v.Str() == "Admin" {
				return []value.Issue{{
					Severity: value.SeverityError,
					Message:  "name may not be Admin",
					Path:     path,
					Code:     value.CodeRuleViolation,
				}}
			}
			return nil
		},
	})

	instance := value.Object(map[string]value.Value{"name": value.String("Admin")})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	found := false
	for _, issue := range report.Errors() {
		if issue.Message == "name may not be Admin" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the custom validator's issue, got %v", report.Errors())
	}
}

func TestCustomValidatorPanicRecovered(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	e.RegisterCustomValidator(CustomValidator{
		Name:      "always-panics",
		AppliesTo: func(slot schema.Slot) bool { return slot.Name == "name" },
		Fn: func(slot schema.Slot, v value.Value, path string) []value.Issue {
			panic("boom")
		},
	})

	instance := value.Object(map[string]value.Value{"name": value.String("Ada")})
	report, err := e.Validate(context.Background(), "Person", instance, Options{})
	if err != nil {
		t.Fatalf("Validate panicked through to the caller: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("a recovered panic should not itself produce an issue, got %v", report.Errors())
	}
}

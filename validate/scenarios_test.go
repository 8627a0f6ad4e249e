package validate

import (
	"context"
	"testing"

	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/value"
)

// dateSchemaMap describes a Record class whose "date" slot carries named
// regex capture groups, plus a rule whose postcondition reads one of
// those captures back out of the expression context.
func dateSchemaMap() map[string]any {
	return map[string]any{
		"id":   "https://example.org/record",
		"name": "record-schema",
		"slots": map[string]any{
			"date": map[string]any{
				"range":    "string",
				"required": true,
				"pattern":  `^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})$`,
			},
		},
		"classes": map[string]any{
			"Record": map[string]any{
				"slots": []any{"date"},
				"rules": []any{
					map[string]any{
						"description": "year must not be empty",
						"postconditions": map[string]any{
							"expressions": []any{`{year} != ""`},
						},
					},
				},
			},
		},
	}
}

// TestPatternNamedCapturesReachRulePostconditions proves that the named
// groups a matching pattern produces are visible to that same
// instance's rule postconditions, and that a non-matching value records
// no capture: the pattern issue is reported and the rule reading
// {year} fails with an expression error for the undefined variable.
func TestPatternNamedCapturesReachRulePostconditions(t *testing.T) {
	e := buildEngine(t, dateSchemaMap())

	instance := value.Object(map[string]value.Value{
		"date": value.String("2025-01-31"),
	})
	report, err := e.Validate(context.Background(), "Record", instance, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected a clean report with year exposed to the rule, got %v", report.Errors())
	}

	bad := value.Object(map[string]value.Value{
		"date": value.String("2025/01/31"),
	})
	report, err = e.Validate(context.Background(), "Record", bad, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	codes := map[value.Code]int{}
	for _, issue := range report.Errors() {
		codes[issue.Code]++
	}
	if report.ErrorCount() != 2 || codes[value.CodePatternMismatch] != 1 || codes[value.CodeExpressionRuntimeErr] != 1 {
		t.Fatalf("expected one pattern mismatch and one expression error for the missing year capture, got %v", report.Errors())
	}
}

// treeSchemaMap describes a self-referential Tree class bounded to a
// recursion depth of 3, with an identifier slot so circular references
// are detectable by id.
func treeSchemaMap(useBox bool) map[string]any {
	return map[string]any{
		"id":   "https://example.org/tree",
		"name": "tree-schema",
		"slots": map[string]any{
			"id": map[string]any{
				"range":      "string",
				"identifier": true,
			},
			"children": map[string]any{
				"range":       "Tree",
				"multivalued": true,
			},
		},
		"classes": map[string]any{
			"Tree": map[string]any{
				"slots": []any{"id", "children"},
				"recursion_options": map[string]any{
					"max_depth": 3,
					"use_box":   useBox,
				},
			},
		},
	}
}

func nestedTree(depth int, id string) value.Value {
	node := map[string]value.Value{"id": value.String(id)}
	if depth > 0 {
		node["children"] = value.Array([]value.Value{nestedTree(depth-1, id+"c")})
	}
	return value.Object(node)
}

// TestRecursionDepthExceededBeyondConfiguredMax checks that nesting
// within max_depth validates cleanly but one level past it reports
// recursion_depth_exceeded.
func TestRecursionDepthExceededBeyondConfiguredMax(t *testing.T) {
	e := buildEngine(t, treeSchemaMap(false))

	within := nestedTree(3, "root")
	report, err := e.Validate(context.Background(), "Tree", within, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected depth 3 to validate within max_depth 3, got %v", report.Errors())
	}

	tooDeep := nestedTree(4, "root")
	report, err = e.Validate(context.Background(), "Tree", tooDeep, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	found := false
	for _, issue := range report.Errors() {
		if issue.Code == value.CodeRecursionDepthExceed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a recursion depth violation, got %v", report.Errors())
	}
}

// TestCircularReferenceRejectedUnlessUseBox checks that a self-id
// reappearing under itself is rejected by default, and accepted once
// the class opts into use_box.
func TestCircularReferenceRejectedUnlessUseBox(t *testing.T) {
	circular := value.Object(map[string]value.Value{
		"id": value.String("same-id"),
		"children": value.Array([]value.Value{
			value.Object(map[string]value.Value{"id": value.String("same-id")}),
		}),
	})

	e := buildEngine(t, treeSchemaMap(false))
	report, err := e.Validate(context.Background(), "Tree", circular, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	found := false
	for _, issue := range report.Errors() {
		if issue.Code == value.CodeCircularReference {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a circular reference violation without use_box, got %v", report.Errors())
	}

	boxed := buildEngine(t, treeSchemaMap(true))
	report, err = boxed.Validate(context.Background(), "Tree", circular, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected use_box to permit id re-entry, got %v", report.Errors())
	}
}

// primitiveNoneOfSchemaMap declares a "value" slot excluded from every
// primitive kind, including null, matching value.Kind's full set.
func primitiveNoneOfSchemaMap() map[string]any {
	return map[string]any{
		"id":   "https://example.org/any-slot",
		"name": "any-slot-schema",
		"slots": map[string]any{
			"value": map[string]any{
				"none_of": []any{
					map[string]any{"range": "string"},
					map[string]any{"range": "integer"},
					map[string]any{"range": "float"},
					map[string]any{"range": "boolean"},
					map[string]any{"range": "null"},
				},
			},
		},
		"classes": map[string]any{
			"Holder": map[string]any{
				"slots": []any{"value"},
			},
		},
	}
}

// TestNoneOfRejectsEveryPrimitiveKindIncludingNull proves the null
// branch of a none_of constraint actually matches null (rather than
// silently matching everything), while leaving a non-primitive value
// such as an array unaffected.
func TestNoneOfRejectsEveryPrimitiveKindIncludingNull(t *testing.T) {
	e := buildEngine(t, primitiveNoneOfSchemaMap())

	number := value.Object(map[string]value.Value{"value": value.Int(42)})
	report, err := e.Validate(context.Background(), "Holder", number, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Valid() {
		t.Fatalf("expected an integer to trip the none_of integer branch")
	}

	arr := value.Object(map[string]value.Value{
		"value": value.Array([]value.Value{value.Int(1), value.Int(2)}),
	})
	report, err = e.Validate(context.Background(), "Holder", arr, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected an array to match none of the primitive branches, got %v", report.Errors())
	}
}

// TestCheckBooleanConstraintsNoneOfMatchesNull exercises
// checkBooleanConstraints directly against a null value: a
// none_of branch with range "null" must reject it, since
// validateSlot's own present/null handling never reaches
// checkBooleanConstraints for a bare null field.
func TestCheckBooleanConstraintsNoneOfMatchesNull(t *testing.T) {
	slot := schema.Slot{
		Name: "value",
		NoneOf: []schema.Slot{
			{Range: "string"},
			{Range: "integer"},
			{Range: "float"},
			{Range: "boolean"},
			{Range: "null"},
		},
	}
	if issue := checkBooleanConstraints(slot, value.Null(), "$.value"); issue == nil {
		t.Fatalf("expected a none_of violation for a null value")
	}
	if issue := checkBooleanConstraints(slot, value.String("hi"), "$.value"); issue == nil {
		t.Fatalf("expected a none_of violation for a string value")
	}
	if issue := checkBooleanConstraints(slot, value.Array([]value.Value{value.Int(1), value.Int(2)}), "$.value"); issue != nil {
		t.Fatalf("expected an array to match none of the primitive branches, got %v", issue)
	}
}

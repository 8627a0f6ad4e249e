package schema

import "testing"

func personSchemaMap() map[string]any {
	return map[string]any{
		"id":   "https://example.org/person",
		"name": "person-schema",
		"slots": map[string]any{
			"age": map[string]any{
				"range": "integer",
			},
			"guardian_name": map[string]any{
				"range": "string",
			},
			"guardian_phone": map[string]any{
				"range": "string",
			},
		},
		"classes": map[string]any{
			"Person": map[string]any{
				"slots": []any{"age", "guardian_name", "guardian_phone"},
				"rules": []any{
					map[string]any{
						"description": "minors require a guardian",
						"preconditions": map[string]any{
							"expressions": []any{"age <= 17"},
						},
						"postconditions": map[string]any{
							"slot_conditions": map[string]any{
								"guardian_name":  map[string]any{"required": true},
								"guardian_phone": map[string]any{"required": true},
							},
						},
					},
				},
			},
		},
	}
}

func TestFromMapBuildsClassesAndSlots(t *testing.T) {
	s, err := FromMap(personSchemaMap())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Classes["Person"]; !ok {
		t.Fatalf("expected Person class, got %+v", s.Classes)
	}
	if len(s.Classes["Person"].Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(s.Classes["Person"].Rules))
	}
	rule := s.Classes["Person"].Rules[0]
	if len(rule.Preconditions.Expressions) != 1 || rule.Preconditions.Expressions[0] != "age <= 17" {
		t.Fatalf("precondition expression not parsed: %+v", rule.Preconditions)
	}
	req := rule.Postconditions.SlotConditions["guardian_name"].Required
	if req == nil || !*req {
		t.Fatalf("expected guardian_name required=true, got %+v", req)
	}
}


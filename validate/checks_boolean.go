package validate

import (
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/value"
)

// slotMatches reports whether v satisfies sub's own constraints: its
// range (primitive only — a class/enum range inside a boolean
// constraint is treated permissively, since resolving it would need
// the SchemaView and recursion context this helper deliberately
// doesn't take), pattern, min/max and equals_string/equals_number.
// equals_expression is intentionally not evaluated here: boolean
// sub-constraints are meant to describe shape, not instance-dependent
// computation, and the RuleEngine already covers that need for
// whole-instance conditions.
func slotMatches(sub schema.Slot, v value.Value) bool {
	if sub.Range != "" {
		if _, isPrimitive := primitiveRangeKind(sub.Range); isPrimitive {
			if checkType(sub.Range, v, "") != nil {
				return false
			}
		}
	}
	if sub.Pattern != "" && checkPattern(sub.Pattern, v, "") != nil {
		return false
	}
	if checkRange(sub.Minimum, sub.Maximum, v, "") != nil {
		return false
	}
	if sub.EqualsString != nil {
		if v.Kind() != value.KindString || v.Str() != *sub.EqualsString {
			return false
		}
	}
	if sub.EqualsNumber != nil {
		f, ok := v.AsFloat64()
		if !ok || f != *sub.EqualsNumber {
			return false
		}
	}
	return true
}

// checkBooleanConstraints evaluates slot's any_of/all_of/
// exactly_one_of/none_of against v boolean-constraint
// check.
func checkBooleanConstraints(slot schema.Slot, v value.Value, path string) *value.Issue {
	if len(slot.AnyOf) > 0 {
		ok := false
		for _, sub := range slot.AnyOf {
			if slotMatches(sub, v) {
				ok = true
				break
			}
		}
		if !ok {
			return &value.Issue{Severity: value.SeverityError, Message: "value matches none of any_of", Path: path, Code: value.CodeRangeViolation}
		}
	}
	if len(slot.AllOf) > 0 {
		for _, sub := range slot.AllOf {
			if !slotMatches(sub, v) {
				return &value.Issue{Severity: value.SeverityError, Message: "value fails an all_of constraint", Path: path, Code: value.CodeRangeViolation}
			}
		}
	}
	if len(slot.ExactlyOneOf) > 0 {
		matches := 0
		for _, sub := range slot.ExactlyOneOf {
			if slotMatches(sub, v) {
				matches++
			}
		}
		if matches != 1 {
			return &value.Issue{Severity: value.SeverityError, Message: "value must match exactly one of exactly_one_of", Path: path, Code: value.CodeRangeViolation}
		}
	}
	if len(slot.NoneOf) > 0 {
		for _, sub := range slot.NoneOf {
			if slotMatches(sub, v) {
				return &value.Issue{Severity: value.SeverityError, Message: "value matches a none_of constraint", Path: path, Code: value.CodeRangeViolation}
			}
		}
	}
	return nil
}

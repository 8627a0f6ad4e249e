package validate

import (
	"github.com/oarkflow/schemacore/value"
)

// checkLength validates a string value's rune length against
// maxStringLength (the security_limits cap, default 1 MB)
// "length check".
func checkLength(v value.Value, maxLen int, path string) *value.Issue {
	if v.Kind() != value.KindString || maxLen <= 0 {
		return nil
	}
	if v.Len() <= maxLen {
		return nil
	}
	return &value.Issue{
		Severity: value.SeverityError,
		Message:  "string exceeds maximum length",
		Path:     path,
		Code:     value.CodeLengthViolation,
	}
}

// checkMultivaluedShape validates that a slot's multivalued-ness
// matches the shape of the value it was given: a multivalued slot
// must receive an array (or null, if absent handling already passed),
// and a single-valued slot must not receive an array.
func checkMultivaluedShape(multivalued bool, v value.Value, path string) *value.Issue {
	isArray := v.Kind() == value.KindArray
	if multivalued && !isArray && !v.IsNull() {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "multivalued slot requires an array",
			Path:     path,
			Code:     value.CodeCardinalityViolation,
		}
	}
	if !multivalued && isArray {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "single-valued slot received an array",
			Path:     path,
			Code:     value.CodeCardinalityViolation,
		}
	}
	return nil
}

// identifierTracker records, per validation run, the identifier values
// seen for each class so duplicate identifiers within the same run are
// reported. Keyed by the exact class name being validated: identifiers
// are only required to be unique among instances validated as that
// class, not globally and not across a class hierarchy.
type identifierTracker struct {
	seen map[string]map[string]bool
}

func newIdentifierTracker() *identifierTracker {
	return &identifierTracker{seen: map[string]map[string]bool{}}
}

// check records idValue for className and returns an issue if it was
// already seen for that class in this run.
func (t *identifierTracker) check(className, idValue, path string) *value.Issue {
	byClass, ok := t.seen[className]
	if !ok {
		byClass = map[string]bool{}
		t.seen[className] = byClass
	}
	if byClass[idValue] {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "duplicate identifier " + idValue + " for class " + className,
			Path:     path,
			Code:     value.CodeIdentifierNotUnique,
		}
	}
	byClass[idValue] = true
	return nil
}

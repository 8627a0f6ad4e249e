package validate

import (
	"github.com/oarkflow/schemacore/value"
)

// checkCrossReference resolves slot's value as an identifier of
// targetClass within instances step 5. A target class absent
// from instances is not an error — see the cross-reference resolution
// decision in DESIGN.md — nor is a nil/empty instance set: both mean
// "no instance data is loaded to check against", which allows
// everything through rather than rejecting every cross-reference.
func checkCrossReference(instances InstanceSet, targetClass string, v value.Value, path string) *value.Issue {
	if v.Kind() != value.KindString || targetClass == "" {
		return nil
	}
	if len(instances) == 0 {
		return nil
	}
	byID, ok := instances[targetClass]
	if !ok {
		return nil
	}
	if _, found := byID[v.Str()]; found {
		return nil
	}
	return &value.Issue{
		Severity: value.SeverityError,
		Message:  "reference to unknown " + targetClass + " identifier " + v.Str(),
		Path:     path,
		Code:     value.CodeCrossReferenceMissing,
	}
}

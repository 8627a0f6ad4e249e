package validate

import "github.com/oarkflow/schemacore/value"

// checkRange validates a numeric value against slot's minimum/maximum,
// when set. Non-numeric values are left to checkType.
func checkRange(min, max *float64, v value.Value, path string) *value.Issue {
	if min == nil && max == nil {
		return nil
	}
	f, ok := v.AsFloat64()
	if !ok {
		return nil
	}
	if min != nil && f < *min {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "value below minimum",
			Path:     path,
			Code:     value.CodeRangeViolation,
		}
	}
	if max != nil && f > *max {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "value above maximum",
			Path:     path,
			Code:     value.CodeRangeViolation,
		}
	}
	return nil
}

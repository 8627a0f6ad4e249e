package validate

import (
	"github.com/oarkflow/schemacore/value"
)

// primitiveRangeKind reports whether rng names one of the core
// primitive type names (as opposed to a class or enum reference) and,
// if so, the Kind a conforming Value must carry.
func primitiveRangeKind(rng string) (value.Kind, bool) {
	switch rng {
	case "string":
		return value.KindString, true
	case "integer":
		return value.KindInt, true
	case "float", "double":
		return value.KindFloat, true
	case "boolean":
		return value.KindBool, true
	case "null":
		return value.KindNull, true
	default:
		return 0, false
	}
}

// checkType validates v against slot's range when the range is a
// primitive type name. Integer ranges accept a float Value that holds
// a whole number, since untyped JSON numeric decoders commonly produce
// float64 regardless of the literal's shape. Class and enum ranges are
// handled by the caller (recursion and checkEnum respectively) since
// they need context this function doesn't have.
func checkType(rng string, v value.Value, path string) *value.Issue {
	want, ok := primitiveRangeKind(rng)
	if !ok {
		return nil
	}
	if v.Kind() == want {
		return nil
	}
	if want == value.KindInt && v.Kind() == value.KindFloat && v.Float() == float64(int64(v.Float())) {
		return nil
	}
	if want == value.KindFloat && v.Kind() == value.KindInt {
		return nil
	}
	return &value.Issue{
		Severity: value.SeverityError,
		Message:  "expected " + want.String() + ", got " + v.Kind().String(),
		Path:     path,
		Code:     value.CodeTypeMismatch,
	}
}

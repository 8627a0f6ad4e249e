package value

// Code is a stable, machine-checkable error/issue code.
type Code string

const (
	CodeRequiredFieldMissing  Code = "required_field_missing"
	CodeTypeMismatch          Code = "type_mismatch"
	CodePatternMismatch       Code = "pattern_mismatch"
	CodeRangeViolation        Code = "range_violation"
	CodeEnumViolation         Code = "enum_violation"
	CodeLengthViolation       Code = "length_violation"
	CodeCardinalityViolation  Code = "cardinality_violation"
	CodeCycleDetected         Code = "cycle_detected"
	CodeUnknownClass          Code = "unknown_class"
	CodeUnknownSlot           Code = "unknown_slot"
	CodeUnknownEnum           Code = "unknown_enum"
	CodeExpressionParseError  Code = "expression_parse_error"
	CodeExpressionRuntimeErr  Code = "expression_runtime_error"
	CodeRuleViolation         Code = "rule_violation"
	CodeCircularReference     Code = "circular_reference"
	CodeRecursionDepthExceed  Code = "recursion_depth_exceeded"
	CodeValidationCancelled   Code = "validation_cancelled"
	CodeIdentifierNotUnique   Code = "identifier_not_unique"
	CodeCrossReferenceMissing Code = "cross_reference_missing"
	CodeSchemaParseError      Code = "schema_parse_error"
	CodeConfigInvalid         Code = "config_invalid"
)

package expr

import (
	"strings"

	thirdparty "github.com/oarkflow/expr"

	"github.com/oarkflow/schemacore/value"
)

// EvaluateTemplate evaluates a "{{ ... }}"-wrapped default-value
// template, a second and independent expression dialect reserved for
// slot/attribute defaults only. It never participates in rule
// preconditions or postconditions, which always use this package's own
// mini-language (parser.go/eval.go); this is purely the convenience
// LinkML-style schema authors expect for computed defaults, grounded
// on the evaluateExpression/prepareDefault helpers in
// jsonschema/v2/expression.go and jsonschema/validator_magics.go's
// NewDefaultVal, both of which delegate to github.com/oarkflow/expr.
//
// src that is not wrapped in "{{" / "}}" is returned as a string
// literal unchanged — callers should only route values that look like
// a template through this function.
func EvaluateTemplate(src string, ctx Context) (value.Value, error) {
	if !IsTemplate(src) {
		return value.String(src), nil
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(src), "{{"), "}}")
	inner = strings.TrimSpace(inner)

	env := make(map[string]any, len(ctx))
	for k, v := range ctx {
		env[k] = value.ToAny(v)
	}

	result, err := thirdparty.Eval(inner, env)
	if err != nil {
		return value.Value{}, newErr(ErrParse, -1, "template default %q: %v", src, err)
	}
	return value.FromAny(result), nil
}

// IsTemplate reports whether s uses the "{{ ... }}" default-value
// template syntax rather than being a literal value.
func IsTemplate(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{{") && strings.HasSuffix(t, "}}")
}

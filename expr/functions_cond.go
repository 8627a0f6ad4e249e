package expr

import "github.com/oarkflow/schemacore/value"

// registerConditionalFns wires case(...) builtin: a flat
// cond1, val1, cond2, val2, ..., default argument list evaluated in
// order, returning the first val whose cond is true, or the trailing
// default when none match.
func registerConditionalFns(f *Functions) {
	f.registerBuiltin("case", 1, -1, func(a []value.Value) (value.Value, error) {
		if len(a)%2 == 0 {
			return value.Value{}, arityError("case", len(a))
		}
		i := 0
		for ; i+1 < len(a); i += 2 {
			cond := a[i]
			if cond.Kind() != value.KindBool {
				return value.Value{}, typeError("case", "boolean condition")
			}
			if cond.Bool() {
				return a[i+1], nil
			}
		}
		return a[i], nil
	})
}

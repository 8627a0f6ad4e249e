package rule

import (
	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/value"
)

// matchCondition implements precondition/postcondition matching
// machinery (it is the same machinery for both — "same matching
// machinery" per the postcondition-evaluation paragraph): SlotConditions
// and Expressions are ANDed together ("Combined"), and a Composite
// recurses with its own combinator.
func (e *Engine) matchCondition(c CompiledCondition, instance value.Value, ctx expr.Context) (bool, error) {
	for _, name := range c.slotOrder {
		sc := c.SlotConditions[name]
		fieldVal, present := instance.Field(name)
		ok, err := e.matchSlotCondition(sc, fieldVal, present)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	for i, n := range c.Expressions {
		v, err := e.ee.EvalNode(n, ctx)
		if err != nil {
			return false, newError("", "expression %q: %v", c.expressionSrcs[i], err)
		}
		if v.Kind() != value.KindBool {
			return false, newError("", "expression %q did not evaluate to a boolean", c.expressionSrcs[i])
		}
		if !v.Bool() {
			return false, nil
		}
	}

	if c.CompositeKind != schema.CompositeNone {
		ok, err := e.matchComposite(c.CompositeKind, c.Composite, instance, ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}

func (e *Engine) matchComposite(kind schema.CompositeKind, conds []CompiledCondition, instance value.Value, ctx expr.Context) (bool, error) {
	switch kind {
	case schema.CompositeAnyOf:
		for _, c := range conds {
			ok, err := e.matchCondition(c, instance, ctx)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case schema.CompositeAllOf:
		for _, c := range conds {
			ok, err := e.matchCondition(c, instance, ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case schema.CompositeExactlyOneOf:
		matches := 0
		for _, c := range conds {
			ok, err := e.matchCondition(c, instance, ctx)
			if err != nil {
				return false, err
			}
			if ok {
				matches++
				if matches > 1 {
					return false, nil
				}
			}
		}
		return matches == 1, nil
	case schema.CompositeNoneOf:
		for _, c := range conds {
			ok, err := e.matchCondition(c, instance, ctx)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return true, nil
	}
}

// matchSlotCondition evaluates a single slot's sub-condition: required
// presence, range, pattern, equality, and min/max bound checks.
func (e *Engine) matchSlotCondition(sc CompiledSlotCondition, v value.Value, present bool) (bool, error) {
	if sc.Required != nil {
		if present != *sc.Required {
			return false, nil
		}
	}
	if !present {
		// every remaining check is about the value itself; an absent,
		// non-required field trivially satisfies them.
		return true, nil
	}

	if sc.Range != "" {
		if !matchesRange(sc.Range, v) {
			return false, nil
		}
	}
	if sc.Pattern != nil {
		if v.Kind() != value.KindString || !sc.Pattern.MatchString(v.Str()) {
			return false, nil
		}
	}
	if sc.EqualsString != nil {
		if v.Kind() != value.KindString || v.Str() != *sc.EqualsString {
			return false, nil
		}
	}
	if sc.EqualsNumber != nil {
		f, ok := v.AsFloat64()
		if !ok || f != *sc.EqualsNumber {
			return false, nil
		}
	}
	if sc.EqualsExpression != nil {
		ctx := expr.Context{"value": v}
		result, err := e.ee.EvalNode(sc.EqualsExpression, ctx)
		if err != nil {
			return false, err
		}
		if !value.Equal(result, v) {
			return false, nil
		}
	}
	if sc.Minimum != nil {
		f, ok := v.AsFloat64()
		if !ok || f < *sc.Minimum {
			return false, nil
		}
	}
	if sc.Maximum != nil {
		f, ok := v.AsFloat64()
		if !ok || f > *sc.Maximum {
			return false, nil
		}
	}

	if len(sc.AnyOf) > 0 {
		matched := false
		for _, sub := range sc.AnyOf {
			ok, err := e.matchSlotCondition(sub, v, present)
			if err != nil {
				return false, err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	if len(sc.AllOf) > 0 {
		for _, sub := range sc.AllOf {
			ok, err := e.matchSlotCondition(sub, v, present)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	if len(sc.ExactlyOneOf) > 0 {
		matches := 0
		for _, sub := range sc.ExactlyOneOf {
			ok, err := e.matchSlotCondition(sub, v, present)
			if err != nil {
				return false, err
			}
			if ok {
				matches++
				if matches > 1 {
					break
				}
			}
		}
		if matches != 1 {
			return false, nil
		}
	}
	if len(sc.NoneOf) > 0 {
		for _, sub := range sc.NoneOf {
			ok, err := e.matchSlotCondition(sub, v, present)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
	}

	return true, nil
}

// matchesRange reports whether v is consistent with a range name: one
// of the core primitive type names, or (as a permissive fallback for
// enum/class ranges the RuleEngine does not itself resolve) any
// non-null value.
func matchesRange(rng string, v value.Value) bool {
	switch rng {
	case "string":
		return v.Kind() == value.KindString
	case "integer":
		return v.Kind() == value.KindInt
	case "float", "double":
		return v.Kind() == value.KindFloat || v.Kind() == value.KindInt
	case "boolean":
		return v.Kind() == value.KindBool
	default:
		return !v.IsNull()
	}
}

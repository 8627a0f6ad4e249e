package schema

// SlotCondition is one sub-condition attached to a slot name within a
// SlotConditions precondition/postcondition precondition
// matching rules (a)-(f).
type SlotCondition struct {
	Required     *bool
	Range        string
	Pattern      string
	EqualsString *string
	EqualsNumber *float64
	// EqualsExpression is the mini-language source; compiled once into
	// rule.CompiledRule by the RuleEngine.
	EqualsExpression string
	Minimum          *float64
	Maximum          *float64

	AnyOf        []SlotCondition
	AllOf        []SlotCondition
	ExactlyOneOf []SlotCondition
	NoneOf       []SlotCondition
}

// CompositeKind names the boolean combinator of a Composite condition.
type CompositeKind uint8

const (
	CompositeNone CompositeKind = iota
	CompositeAnyOf
	CompositeAllOf
	CompositeExactlyOneOf
	CompositeNoneOf
)

// Condition is a Rule's precondition or postcondition: some
// combination of per-slot conditions, raw boolean expressions, and
// nested composite combinators, all ANDed together when more than one
// is present.
type Condition struct {
	// SlotConditions maps slot name to the sub-condition that must hold
	// for that slot.
	SlotConditions map[string]SlotCondition

	// Expressions are mini-language sources that must each evaluate to
	// boolean true.
	Expressions []string

	// Composite, when Kind != CompositeNone, recursively combines
	// nested conditions with the named combinator.
	Composite struct {
		Kind       CompositeKind
		Conditions []Condition
	}
}

// IsEmpty reports whether the condition carries no constraints at all
// (an always-true precondition, matching every instance).
func (c Condition) IsEmpty() bool {
	return len(c.SlotConditions) == 0 && len(c.Expressions) == 0 && c.Composite.Kind == CompositeNone
}

package rule

import (
	"regexp"
	"sort"

	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/schema"
)

// CompiledSlotCondition mirrors schema.SlotCondition with every
// embedded expression parsed into an AST and every pattern compiled
// into a *regexp.Regexp, so Evaluate never re-parses or re-compiles
// per instance.
type CompiledSlotCondition struct {
	Required         *bool
	Range            string
	Pattern          *regexp.Regexp
	EqualsString     *string
	EqualsNumber     *float64
	EqualsExpression expr.Node

	Minimum *float64
	Maximum *float64

	AnyOf        []CompiledSlotCondition
	AllOf        []CompiledSlotCondition
	ExactlyOneOf []CompiledSlotCondition
	NoneOf       []CompiledSlotCondition
}

// CompiledCondition mirrors schema.Condition with every embedded
// expression source pre-parsed.
type CompiledCondition struct {
	SlotConditions map[string]CompiledSlotCondition
	// slotOrder fixes deterministic iteration order over
	// SlotConditions (map iteration order is otherwise random).
	slotOrder []string

	Expressions    []expr.Node
	expressionSrcs []string // kept for error messages

	CompositeKind schema.CompositeKind
	Composite     []CompiledCondition
}

// CompiledRule is a schema.Rule with its conditions pre-parsed,
// produced once by Engine.Compile and reused for every instance of the
// owning class.
type CompiledRule struct {
	Description    string
	Priority       int
	declarationIdx int
	Preconditions  CompiledCondition
	Postconditions CompiledCondition
}

// CompiledClass is every rule owned by one schema class, sorted into
// evaluation order (descending priority, ties by declaration order),
//.
type CompiledClass struct {
	ClassName string
	Rules      []CompiledRule
}

func compileSlotCondition(class string, sc schema.SlotCondition) (CompiledSlotCondition, error) {
	out := CompiledSlotCondition{
		Required:     sc.Required,
		Range:        sc.Range,
		EqualsString: sc.EqualsString,
		EqualsNumber: sc.EqualsNumber,
		Minimum:      sc.Minimum,
		Maximum:      sc.Maximum,
	}
	if sc.Pattern != "" {
		re, err := regexp.Compile(sc.Pattern)
		if err != nil {
			return out, newError(class, "invalid pattern %q: %v", sc.Pattern, err)
		}
		out.Pattern = re
	}
	if sc.EqualsExpression != "" {
		n, err := expr.Parse(sc.EqualsExpression)
		if err != nil {
			return out, newError(class, "invalid equals_expression %q: %v", sc.EqualsExpression, err)
		}
		out.EqualsExpression = n
	}
	for _, sub := range sc.AnyOf {
		c, err := compileSlotCondition(class, sub)
		if err != nil {
			return out, err
		}
		out.AnyOf = append(out.AnyOf, c)
	}
	for _, sub := range sc.AllOf {
		c, err := compileSlotCondition(class, sub)
		if err != nil {
			return out, err
		}
		out.AllOf = append(out.AllOf, c)
	}
	for _, sub := range sc.ExactlyOneOf {
		c, err := compileSlotCondition(class, sub)
		if err != nil {
			return out, err
		}
		out.ExactlyOneOf = append(out.ExactlyOneOf, c)
	}
	for _, sub := range sc.NoneOf {
		c, err := compileSlotCondition(class, sub)
		if err != nil {
			return out, err
		}
		out.NoneOf = append(out.NoneOf, c)
	}
	return out, nil
}

func compileCondition(class string, c schema.Condition) (CompiledCondition, error) {
	out := CompiledCondition{
		SlotConditions: make(map[string]CompiledSlotCondition, len(c.SlotConditions)),
		CompositeKind:  c.Composite.Kind,
	}
	names := make([]string, 0, len(c.SlotConditions))
	for name := range c.SlotConditions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cc, err := compileSlotCondition(class, c.SlotConditions[name])
		if err != nil {
			return out, err
		}
		out.SlotConditions[name] = cc
		out.slotOrder = append(out.slotOrder, name)
	}
	for _, src := range c.Expressions {
		n, err := expr.Parse(src)
		if err != nil {
			return out, newError(class, "invalid expression %q: %v", src, err)
		}
		out.Expressions = append(out.Expressions, n)
		out.expressionSrcs = append(out.expressionSrcs, src)
	}
	for _, sub := range c.Composite.Conditions {
		cc, err := compileCondition(class, sub)
		if err != nil {
			return out, err
		}
		out.Composite = append(out.Composite, cc)
	}
	return out, nil
}

func compileRule(class string, idx int, r schema.Rule) (CompiledRule, error) {
	pre, err := compileCondition(class, r.Preconditions)
	if err != nil {
		return CompiledRule{}, err
	}
	post, err := compileCondition(class, r.Postconditions)
	if err != nil {
		return CompiledRule{}, err
	}
	return CompiledRule{
		Description:    r.Description,
		Priority:       r.Priority,
		declarationIdx: idx,
		Preconditions:  pre,
		Postconditions: post,
	}, nil
}

// compileClassRules compiles every rule in rules (in declaration
// order) and returns them sorted by descending priority, ties broken
// by declaration order.
func compileClassRules(class string, rules []schema.Rule) ([]CompiledRule, error) {
	out := make([]CompiledRule, 0, len(rules))
	for i, r := range rules {
		cr, err := compileRule(class, i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].declarationIdx < out[j].declarationIdx
	})
	return out, nil
}

package rule

import (
	"sync"

	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/schemaview"
	"github.com/oarkflow/schemacore/value"
)

// Options configures a single Evaluate call, narrowed from
// validate.Options to the handful of settings the RuleEngine itself
// consults.
type Options struct {
	FailFast bool
}

// Engine is the RuleEngine: it compiles a class's rules once and
// evaluates them against instances using the shared ExpressionEngine,
//.
type Engine struct {
	view *schemaview.View
	ee   *expr.Engine

	mu       sync.RWMutex
	compiled map[string]*CompiledClass
}

// New builds a RuleEngine over view, evaluating expressions through
// ee (the same Engine instance the ValidationEngine uses, so the
// expression cache is shared process-wide).
func New(view *schemaview.View, ee *expr.Engine) *Engine {
	return &Engine{view: view, ee: ee, compiled: make(map[string]*CompiledClass)}
}

// Compile compiles (once, memoized) every rule owned by className,
// per "Compiled rule representation": every embedded expression is
// parsed and every pattern is regexp-compiled ahead of time.
func (e *Engine) Compile(className string) (*CompiledClass, error) {
	e.mu.RLock()
	if cc, ok := e.compiled[className]; ok {
		e.mu.RUnlock()
		return cc, nil
	}
	e.mu.RUnlock()

	class, err := e.view.GetClass(className)
	if err != nil {
		return nil, err
	}
	rules, err := compileClassRules(className, class.Rules)
	if err != nil {
		return nil, err
	}
	cc := &CompiledClass{ClassName: className, Rules: rules}

	e.mu.Lock()
	e.compiled[className] = cc
	e.mu.Unlock()
	return cc, nil
}

// RuleResult reports one evaluated rule's outcome.
type RuleResult struct {
	Rule    CompiledRule
	Matched bool
	Issue   *value.Issue // set only when the postcondition failed
}

// Evaluate runs every rule in compiled against instance, in
// priority-then-declaration order. Preconditions that don't match
// silently skip their rule. A matched rule whose postcondition fails
// produces an Issue carrying the rule's description as the message.
// In FailFast mode, evaluation stops at the first failing rule. extra
// supplies additional expression variables layered on top of the
// instance's own fields (e.g. named regex capture groups the
// ValidationEngine collected while checking this instance's slot
// patterns); later entries win on name collision.
func (e *Engine) Evaluate(compiled *CompiledClass, instance value.Value, path *value.Path, opts Options, extra ...expr.Context) ([]RuleResult, error) {
	ctx := instanceContext(instance)
	for _, ec := range extra {
		for k, v := range ec {
			ctx[k] = v
		}
	}
	results := make([]RuleResult, 0, len(compiled.Rules))

	for _, r := range compiled.Rules {
		matched, err := e.matchCondition(r.Preconditions, instance, ctx)
		if err != nil {
			return results, err
		}
		if !matched {
			results = append(results, RuleResult{Rule: r, Matched: false})
			continue
		}

		ok, err := e.matchCondition(r.Postconditions, instance, ctx)
		if err != nil {
			return results, err
		}
		if ok {
			results = append(results, RuleResult{Rule: r, Matched: true})
			continue
		}

		issue := &value.Issue{
			Severity:    value.SeverityError,
			Message:     r.Description,
			Path:        path.String(),
			ValidatorID: "rule",
			Code:        value.CodeRuleViolation,
		}
		results = append(results, RuleResult{Rule: r, Matched: true, Issue: issue})
		if opts.FailFast {
			return results, nil
		}
	}
	return results, nil
}

// instanceContext builds the expression Context a rule's embedded
// expressions evaluate against: the instance's own fields, flattened,
// ("the engine supplies the full instance object
// as the expression context").
func instanceContext(instance value.Value) expr.Context {
	ctx := expr.Context{}
	if instance.Kind() == value.KindObject {
		for k, v := range instance.Obj() {
			ctx[k] = v
		}
	}
	return ctx
}

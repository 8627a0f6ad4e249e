// Package validate implements the ValidationEngine: the per-instance
// pipeline that walks a class's induced slots applying type, pattern,
// range, boolean-constraint, enum, length, cardinality, identifier-
// uniqueness and cross-reference checks, evaluates class rules through
// the RuleEngine, and produces a path-ordered value.Report.
package validate

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/rule"
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/schemaview"
	"github.com/oarkflow/schemacore/value"
)

// Engine is the ValidationEngine: it wires a frozen SchemaView, a
// shared ExpressionEngine (the same instance the RuleEngine uses, so
// its expression cache is process-wide rather than per-engine), and a
// RuleEngine, plus its own custom-validator registry.
type Engine struct {
	view   *schemaview.View
	ee     *expr.Engine
	rules  *rule.Engine
	custom *customRegistry
}

// New builds a ValidationEngine over view, evaluating expressions
// through ee and rules through re.
func New(view *schemaview.View, ee *expr.Engine, re *rule.Engine) *Engine {
	return &Engine{view: view, ee: ee, rules: re, custom: newCustomRegistry()}
}

// Validate runs the full per-instance pipeline against instance,
// resolving className's induced slots against view. It returns a
// finalized report and a nil error; the only error is an unknown class
// name, which is returned with a nil report.
func (e *Engine) Validate(ctx context.Context, className string, instance value.Value, opts Options) (*value.Report, error) {
	if _, err := e.view.GetClass(className); err != nil {
		return nil, err
	}

	st := e.view.Schema().Settings
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = st.MaxErrors
	}
	opts.FailFast = opts.FailFast || st.FailFast
	opts.FailOnWarning = opts.FailOnWarning || st.FailOnWarning

	sh := &shared{
		report:        value.NewReport(),
		recursion:     newRecursionTracker(e.view, opts.maxDepth(st.MaxDepth)),
		idents:        newIdentifierTracker(),
		maxErrors:     opts.maxErrors(),
		failOnWarning: opts.FailOnWarning,
	}
	c := &vctx{
		path:      value.NewPath(),
		root:      instance,
		instances: opts.Instances,
		opts:      opts,
		s:         sh,
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	e.validateInstance(ctx, c, className, instance)

	if ctx.Err() != nil {
		sh.addIssue(value.Issue{
			Severity: value.SeverityError,
			Message:  "validation cancelled: " + ctx.Err().Error(),
			Path:     c.path.String(),
			Code:     value.CodeValidationCancelled,
		})
		log.WithField("class", className).Warn("validation cancelled")
	}

	return sh.report.Finalize(), nil
}

// ValidateInstance is a convenience over Validate for callers holding
// a value.Instance record rather than a bare class name and Value.
func (e *Engine) ValidateInstance(ctx context.Context, inst value.Instance, opts Options) (*value.Report, error) {
	return e.Validate(ctx, inst.ClassName, inst.ToValue(), opts)
}

// validateInstance is the recursive core of the pipeline (steps 1-6):
// resolve the class, enter the recursion tracker, walk every induced
// slot, evaluate class rules, then exit.
func (e *Engine) validateInstance(ctx context.Context, c *vctx, className string, v value.Value) {
	if ctx.Err() != nil || c.overMaxErrors() {
		return
	}

	class, err := e.view.GetClass(className)
	if err != nil {
		c.addIssue(value.Issue{Severity: value.SeverityError, Message: err.Error(), Path: c.path.String(), Code: value.CodeUnknownClass})
		return
	}

	objectID := identifierValue(e.view, className, v)
	if issue := c.enterRecursion(objectID, className); issue != nil {
		issue.Path = c.path.String()
		c.addIssue(*issue)
		return
	}
	defer c.exitRecursion(objectID)

	c.pushClass(className)
	defer c.popClass()

	outerCaptures := c.captures
	c.captures = nil
	defer func() { c.captures = outerCaptures }()

	slotNames, _ := e.view.ClassSlots(className)
	for _, slotName := range slotNames {
		if ctx.Err() != nil || c.overMaxErrors() {
			return
		}
		slot, err := e.view.InducedSlot(className, slotName)
		if err != nil {
			continue
		}
		fieldVal, present := v.Field(slotName)
		begin := c.path.Len()
		c.path.Push(slotName)
		e.validateSlot(ctx, c, className, slot, fieldVal, present)
		c.path.Pop(begin)
	}

	e.evaluateRules(c, class, v)
}

// evaluateRules runs className's compiled rules against v and reports
// any postcondition failures as issues.
func (e *Engine) evaluateRules(c *vctx, class schema.Class, v value.Value) {
	if len(class.Rules) == 0 {
		return
	}
	cc, err := e.rules.Compile(class.Name)
	if err != nil {
		c.addIssue(value.Issue{Severity: value.SeverityError, Message: err.Error(), Path: c.path.String(), Code: value.CodeRuleViolation})
		return
	}
	results, err := e.rules.Evaluate(cc, v, c.path, rule.Options{FailFast: c.opts.FailFast}, c.captureContext())
	if err != nil {
		c.addIssue(value.Issue{Severity: value.SeverityError, Message: err.Error(), Path: c.path.String(), Code: value.CodeExpressionRuntimeErr})
		return
	}
	for _, r := range results {
		if r.Issue != nil {
			c.addIssue(*r.Issue)
		}
	}
}

// validateSlot applies the ordered per-slot checks to a single induced
// slot, handling the required/absent case, multivalued fan-out, and
// (for class-range slots) either recursing into nested instance data
// or resolving a cross-reference, depending on whether the value
// carries an inline object or a bare identifier string.
func (e *Engine) validateSlot(ctx context.Context, c *vctx, className string, slot schema.Slot, v value.Value, present bool) {
	if !present || v.IsNull() {
		if slot.Required {
			c.addIssue(value.Issue{
				Severity: value.SeverityError,
				Message:  "required slot " + slot.Name + " is missing",
				Path:     c.path.String(),
				Code:     value.CodeRequiredFieldMissing,
			})
		}
		return
	}

	// A slot with no range accepts any value, arrays included, so only
	// ranged or multivalued slots have their shape checked.
	if slot.Range != "" || slot.Multivalued {
		if issue := checkMultivaluedShape(slot.Multivalued, v, c.path.String()); issue != nil {
			c.addIssue(*issue)
			return
		}
	}

	if slot.Multivalued && v.Kind() == value.KindArray {
		if slot.Required && len(v.Arr()) == 0 {
			c.addIssue(value.Issue{
				Severity: value.SeverityError,
				Message:  "required multivalued slot " + slot.Name + " must not be empty",
				Path:     c.path.String(),
				Code:     value.CodeCardinalityViolation,
			})
			return
		}
		e.validateArray(ctx, c, className, slot, v.Arr())
		return
	}

	e.validateSingleValue(ctx, c, className, slot, v)
}

// validateArray fans array elements out across the bounded worker pool
// when the element count exceeds the configured threshold, each
// element validating against a forked vctx so concurrent goroutines
// never share a mutable *value.Path.
func (e *Engine) validateArray(ctx context.Context, c *vctx, className string, slot schema.Slot, items []value.Value) {
	threshold := c.opts.parallelThreshold()
	if len(items) <= threshold {
		for i, item := range items {
			begin := c.path.Len()
			c.path.PushIndex(i)
			e.validateSingleValue(ctx, c, className, slot, item)
			c.path.Pop(begin)
		}
		return
	}

	validateElementsParallel(len(items), c.opts.ThreadPoolSize, func(i int) {
		if ctx.Err() != nil || c.overMaxErrors() {
			return
		}
		elem := c.fork()
		elem.path.PushIndex(i)
		e.validateSingleValue(ctx, elem, className, slot, items[i])
	})
}

// validateSingleValue runs the fixed check ordering from the pipeline
// (type/range, pattern, range, boolean-constraint, enum, length,
// identifier uniqueness) on one scalar or object value, then recurses
// or cross-references for class-valued slots.
func (e *Engine) validateSingleValue(ctx context.Context, c *vctx, className string, slot schema.Slot, v value.Value) {
	path := c.path.String()

	if issue := checkType(slot.Range, v, path); issue != nil {
		c.addIssue(*issue)
	}
	if issue := checkPattern(slot.Pattern, v, path); issue != nil {
		c.addIssue(*issue)
	} else if slot.Pattern != "" && v.Kind() == value.KindString {
		for name, val := range namedPatternCaptures(slot.Pattern, v.Str()) {
			c.recordCapture(name, val)
		}
	}
	if issue := checkRange(slot.Minimum, slot.Maximum, v, path); issue != nil {
		c.addIssue(*issue)
	}
	if issue := checkBooleanConstraints(slot, v, path); issue != nil {
		c.addIssue(*issue)
	}
	if issue := checkEnum(e.view, slot, c.instances, v, path); issue != nil {
		c.addIssue(*issue)
	}
	if issue := checkLength(v, securityMaxStringLength, path); issue != nil {
		c.addIssue(*issue)
	}
	if slot.Identifier && v.Kind() == value.KindString {
		if issue := c.checkIdentifier(className, v.Str(), path); issue != nil {
			c.addIssue(*issue)
		}
	}
	for _, issue := range e.custom.run(slot, v, path) {
		c.addIssue(issue)
	}

	if targetClass, err := e.view.GetClass(slot.Range); err == nil {
		switch v.Kind() {
		case value.KindObject:
			begin := c.path.Len()
			e.validateInstance(ctx, c, targetClass.Name, v)
			c.path.Pop(begin)
		case value.KindString:
			if issue := checkCrossReference(c.instances, slot.Range, v, path); issue != nil {
				c.addIssue(*issue)
			}
		}
	}
}

// securityMaxStringLength is the default string-length cap; a future revision threads config.SecurityLimits
// through Options rather than hardcoding it here.
const securityMaxStringLength = 1 << 20

// identifierValue returns the string form of className's identifier
// slot value within v, or "" if the class has no identifier slot or
// the instance doesn't carry one.
func identifierValue(view *schemaview.View, className string, v value.Value) string {
	slotNames, err := view.ClassSlots(className)
	if err != nil {
		return ""
	}
	for _, name := range slotNames {
		slot, err := view.InducedSlot(className, name)
		if err != nil || !slot.Identifier {
			continue
		}
		if fv, ok := v.Field(name); ok && fv.Kind() == value.KindString {
			return fv.Str()
		}
	}
	return ""
}

package validate

import (
	"sync"

	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/value"
)

// InstanceSet is the cross-reference resolution collection a caller
// supplies to a validation run; an alias for value.InstanceSet kept in
// this package so callers of Engine.Validate don't need to import
// value just to name the option.
type InstanceSet = value.InstanceSet

// shared holds the state every concurrent branch of one validation run
// must agree on: the accumulating report, the recursion and identifier
// trackers, and the error budget. All access goes through its mutex,
// since array elements may validate on different goroutines.
type shared struct {
	mu            sync.Mutex
	report        *value.Report
	recursion     *recursionTracker
	idents        *identifierTracker
	errCount      int
	maxErrors     int
	failOnWarning bool
}

func (s *shared) addIssue(issue value.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.Add(issue)
	if issue.Severity == value.SeverityError || (s.failOnWarning && issue.Severity == value.SeverityWarning) {
		s.errCount++
	}
}

func (s *shared) overMaxErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errCount >= s.maxErrors
}

func (s *shared) checkIdentifier(className, idValue, path string) *value.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	// An id already open further up the recursion stack is a re-entry
	// the recursion tracker admitted (use_box), not a second instance.
	open := 0
	for _, id := range s.recursion.visited {
		if id == idValue {
			open++
		}
	}
	if open > 1 {
		return nil
	}
	return s.idents.check(className, idValue, path)
}

func (s *shared) enterRecursion(objectID, className string) *value.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recursion.enter(objectID, className)
}

func (s *shared) exitRecursion(objectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recursion.exit(objectID)
}

// vctx is the validation scratchpad threaded through one recursive
// descent: the current path, the class stack (for recursion
// diagnostics), the root value (so custom validators can look at
// sibling fields beyond the immediate parent), and a pointer to the
// shared cross-goroutine state. One root vctx is built per top-level
// Validate call; fork produces an independent copy (its own path and
// class stack, same shared state) for each concurrently-validated
// array element, grounded on the single long-lived
// *ValidateCtx in jsonschema/schema.go, adapted to be safely forkable
// since that type was never validated from multiple goroutines
// at once.
type vctx struct {
	path       *value.Path
	classStack []string
	root       value.Value
	instances  InstanceSet
	opts       Options

	// captures holds the named regex capture groups produced by
	// pattern checks against the slots of the instance currently being
	// walked (e.g. a "date" slot matching `(?P<year>\d{4})-...` records
	// "year"), scoped to one validateInstance call and made available
	// to that instance's rules as expression variables.
	captures map[string]string

	s *shared
}

// fork returns an independent vctx for a concurrently-validated array
// element: its own path (cloned from the parent's current position)
// and class stack, sharing every cross-goroutine resource.
func (c *vctx) fork() *vctx {
	classStack := append([]string(nil), c.classStack...)
	return &vctx{
		path:       c.path.Clone(),
		classStack: classStack,
		root:       c.root,
		instances:  c.instances,
		opts:       c.opts,
		s:          c.s,
	}
}

func (c *vctx) addIssue(issue value.Issue) { c.s.addIssue(issue) }
func (c *vctx) overMaxErrors() bool        { return c.s.overMaxErrors() }

// recordCapture stores a named pattern capture for the instance
// currently being walked.
func (c *vctx) recordCapture(name, val string) {
	if c.captures == nil {
		c.captures = map[string]string{}
	}
	c.captures[name] = val
}

// captureContext renders the current instance's recorded captures as
// an expression Context, for RuleEngine.Evaluate's extra-variables
// parameter.
func (c *vctx) captureContext() expr.Context {
	if len(c.captures) == 0 {
		return nil
	}
	ctx := make(expr.Context, len(c.captures))
	for k, v := range c.captures {
		ctx[k] = value.String(v)
	}
	return ctx
}

func (c *vctx) pushClass(name string) {
	c.classStack = append(c.classStack, name)
}

func (c *vctx) popClass() {
	c.classStack = c.classStack[:len(c.classStack)-1]
}

func (c *vctx) checkIdentifier(className, idValue, path string) *value.Issue {
	return c.s.checkIdentifier(className, idValue, path)
}

func (c *vctx) enterRecursion(objectID, className string) *value.Issue {
	return c.s.enterRecursion(objectID, className)
}

func (c *vctx) exitRecursion(objectID string) {
	c.s.exitRecursion(objectID)
}

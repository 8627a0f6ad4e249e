package validate

import (
	"github.com/oarkflow/schemacore/schemaview"
	"github.com/oarkflow/schemacore/value"
)

// recursionTracker maintains, per validation run, a stack of visited
// instance ids and a depth counter, enforcing the recursion invariants
// for classes marked (explicitly or by auto-detection) recursive:
// grounded on the original's RecursionTracker (validator/
// recursion_checker.rs), adapted to the view-driven IsRecursive/
// RecursionOptions this module already resolves in schemaview.
type recursionTracker struct {
	view    *schemaview.View
	visited []string
	depth   int
	maxDflt int
}

func newRecursionTracker(view *schemaview.View, maxDepthDefault int) *recursionTracker {
	return &recursionTracker{view: view, maxDflt: maxDepthDefault}
}

// enter checks and records entry into objectID of class className. An
// empty objectID (no identifier slot present) falls back to
// "anonymous", matching the original's convention, which means
// anonymous nested instances never trip the circular-reference check
// on identity alone, only the depth counter does.
func (t *recursionTracker) enter(objectID, className string) *value.Issue {
	anonymous := objectID == ""
	if anonymous {
		objectID = "anonymous"
	}
	class, err := t.view.GetClass(className)
	recursive := t.view.IsRecursive(className)

	maxDepth := t.maxDflt
	useBox := false
	if err == nil && class.Recursion.MaxDepth > 0 {
		maxDepth = class.Recursion.MaxDepth
	}
	if err == nil {
		useBox = class.Recursion.UseBox
	}

	if recursive {
		if t.depth > maxDepth {
			return &value.Issue{
				Severity: value.SeverityError,
				Message:  "maximum recursion depth exceeded for class " + className,
				Code:     value.CodeRecursionDepthExceed,
			}
		}
		if !anonymous && t.seen(objectID) && !useBox {
			return &value.Issue{
				Severity: value.SeverityError,
				Message:  "circular reference detected for " + className + " id " + objectID,
				Code:     value.CodeCircularReference,
			}
		}
	} else if !anonymous && t.seen(objectID) {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "unexpected circular reference in non-recursive class " + className,
			Code:     value.CodeCircularReference,
		}
	}

	t.visited = append(t.visited, objectID)
	t.depth++
	return nil
}

// exit pops the most recent entry matching objectID (falling back to
// "anonymous" per enter's convention) and decrements the depth.
func (t *recursionTracker) exit(objectID string) {
	if objectID == "" {
		objectID = "anonymous"
	}
	for i := len(t.visited) - 1; i >= 0; i-- {
		if t.visited[i] == objectID {
			t.visited = append(t.visited[:i], t.visited[i+1:]...)
			break
		}
	}
	if t.depth > 0 {
		t.depth--
	}
}

func (t *recursionTracker) seen(objectID string) bool {
	for _, v := range t.visited {
		if v == objectID {
			return true
		}
	}
	return false
}

package value

import (
	"sort"
	"strings"
)

// Report is the structured output of a validation pass: an ordered set
// of Issues plus aggregate stats, grounded on jsonschema/schema.go's
// ValidateCtx/errsToString but exposing severities instead of a single
// flattened error string.
type Report struct {
	issues []Issue
	sorted bool
}

// NewReport returns an empty report ready to accumulate issues.
func NewReport() *Report {
	return &Report{}
}

// Add appends an issue to the report. The report is marked unsorted;
// callers that need path-ordering call Finalize once validation ends.
func (r *Report) Add(issue Issue) {
	r.issues = append(r.issues, issue)
	r.sorted = false
}

// Finalize sorts issues into non-decreasing path order, stable
// so issues raised at the same path keep their original relative order
// (e.g. type check before pattern check before range check, matching
// fixed check ordering).
func (r *Report) Finalize() *Report {
	if r.sorted {
		return r
	}
	sort.SliceStable(r.issues, func(i, j int) bool {
		return r.issues[i].Path < r.issues[j].Path
	})
	r.sorted = true
	return r
}

// All returns every issue regardless of severity.
func (r *Report) All() []Issue { return r.issues }

// Errors returns only error-severity issues.
func (r *Report) Errors() []Issue { return r.bySeverity(SeverityError) }

// Warnings returns only warning-severity issues.
func (r *Report) Warnings() []Issue { return r.bySeverity(SeverityWarning) }

func (r *Report) bySeverity(s Severity) []Issue {
	out := make([]Issue, 0, len(r.issues))
	for _, issue := range r.issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-severity issues.
func (r *Report) WarningCount() int { return r.count(SeverityWarning) }

func (r *Report) count(s Severity) int {
	n := 0
	for _, issue := range r.issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Valid reports whether the report carries no error-severity issues.
// fail_on_warning is a caller-side decision, not baked
// into Valid itself; use ValidWithOptions to apply it.
func (r *Report) Valid() bool { return r.ErrorCount() == 0 }

// ValidWithOptions reports whether the report is free of error-severity
// issues and, when failOnWarning is true, free of warning-severity
// issues too.
func (r *Report) ValidWithOptions(failOnWarning bool) bool {
	if !r.Valid() {
		return false
	}
	return !failOnWarning || r.WarningCount() == 0
}

// Merge appends another report's issues into this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.issues = append(r.issues, other.issues...)
	r.sorted = false
}

// String renders a flattened human-readable summary, in the style of
// jsonschema/common.go's errsToString.
func (r *Report) String() string {
	var sb strings.Builder
	for _, issue := range r.issues {
		sb.WriteString("'")
		sb.WriteString(issue.Path)
		sb.WriteString("' ")
		sb.WriteString(issue.Message)
		sb.WriteString("; ")
	}
	return sb.String()
}

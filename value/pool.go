package value

import "sync"

// issuePool recycles []Issue backing arrays across validation runs,
// grounded on jsonschema/schema.go's vctPool (a sync.Pool around
// *ValidateCtx, reset-and-return on every call).
var issuePool = sync.Pool{
	New: func() any {
		s := make([]Issue, 0, 16)
		return &s
	},
}

// AcquireIssues returns a zero-length, pooled []Issue slice and a
// release function that must be called exactly once when the caller is
// done with it (typically via defer), guaranteeing release on every
// exit path.
func AcquireIssues() (slice *[]Issue, release func()) {
	s := issuePool.Get().(*[]Issue)
	*s = (*s)[:0]
	return s, func() { issuePool.Put(s) }
}

// pathPool recycles *Path values across nested validation calls.
var pathPool = sync.Pool{
	New: func() any { return NewPath() },
}

// AcquirePath returns a pooled, empty *Path and a release function.
func AcquirePath() (p *Path, release func()) {
	p = pathPool.Get().(*Path)
	p.segments = p.segments[:0]
	p.dirty = true
	return p, func() { pathPool.Put(p) }
}

// reportPool recycles *Report values across validation calls on the
// same engine.
var reportPool = sync.Pool{
	New: func() any { return NewReport() },
}

// AcquireReport returns a pooled, empty *Report and a release function.
// Callers that return the report to their own caller (rather than
// merging it and discarding it) must NOT release it; AcquireReport is
// intended for scratch reports merged into a parent before returning.
func AcquireReport() (r *Report, release func()) {
	r = reportPool.Get().(*Report)
	r.issues = r.issues[:0]
	r.sorted = false
	return r, func() { reportPool.Put(r) }
}

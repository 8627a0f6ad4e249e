package validate

import (
	"regexp"
	"sync"

	"github.com/oarkflow/schemacore/value"
)

// regexCache is the compiled-regex cache described in "the
// compiled regex cache is LRU with the same contract as the
// expression cache" — kept intentionally simple (unbounded,
// process-wide) since slot patterns are a small, schema-fixed set
// compiled at most once per distinct pattern string, unlike
// expression sources which can be instance-dependent.
var regexCache sync.Map // map[string]*regexp.Regexp

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// checkPattern validates a string value against slot's pattern, when
// set. Non-string values are left to checkType to reject; a pattern
// against a non-string value is not itself flagged here.
func checkPattern(pattern string, v value.Value, path string) *value.Issue {
	if pattern == "" || v.Kind() != value.KindString {
		return nil
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return &value.Issue{
			Severity: value.SeverityError,
			Message:  "invalid pattern " + pattern + ": " + err.Error(),
			Path:     path,
			Code:     value.CodePatternMismatch,
		}
	}
	if re.MatchString(v.Str()) {
		return nil
	}
	return &value.Issue{
		Severity: value.SeverityError,
		Message:  "value does not match pattern " + pattern,
		Path:     path,
		Code:     value.CodePatternMismatch,
	}
}

// namedPatternCaptures returns the named capture groups pattern
// matched against s (e.g. pattern `^(?P<year>\d{4})-...` against a
// matching date string yields {"year": "2024", ...}), or nil if
// pattern has no named groups, fails to compile, or doesn't match.
func namedPatternCaptures(pattern, s string) map[string]string {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil
	}
	names := re.SubexpNames()
	hasNamed := false
	for _, n := range names {
		if n != "" {
			hasNamed = true
			break
		}
	}
	if !hasNamed {
		return nil
	}
	matches := re.FindStringSubmatch(s)
	if matches == nil {
		return nil
	}
	out := make(map[string]string, len(names))
	for i, name := range names {
		if i == 0 || name == "" {
			continue
		}
		out[name] = matches[i]
	}
	return out
}

package validate

import "time"

// Options configures a single Validate call. MaxErrors and MaxDepth
// override the schema's Settings block when set; at zero they take the
// Settings value, then the engine default. FailFast and FailOnWarning
// are on when either the option or the Settings block turns them on.
// AllowAdditionalProperties and CheckSlotUsage are not read by the
// engine; the other fields fall back to engine defaults at zero.
type Options struct {
	AllowAdditionalProperties bool
	FailFast                  bool
	FailOnWarning             bool
	CheckSlotUsage            bool
	MaxErrors                 int
	Timeout                   time.Duration
	MaxDepth                  int
	ThreadPoolSize            int

	// ParallelThreshold is the element count above which an array
	// slot's elements validate concurrently. Zero means the engine
	// default (64).
	ParallelThreshold int

	// Instances resolves cross-reference slots; may be nil, in which
	// case every cross-reference check passes (see DESIGN.md's
	// cross-reference resolution decision).
	Instances InstanceSet
}

func (o Options) maxErrors() int {
	if o.MaxErrors > 0 {
		return o.MaxErrors
	}
	return 100
}

func (o Options) maxDepth(settingsDefault int) int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	if settingsDefault > 0 {
		return settingsDefault
	}
	return 100
}

func (o Options) parallelThreshold() int {
	if o.ParallelThreshold > 0 {
		return o.ParallelThreshold
	}
	return 64
}

// Package config holds the nested configuration record that tunes the
// parser, validator, generator, caches, expression engine and security
// limits, grounded on the functional-options Options struct
// in jsonschema/v2/compiler.go, generalized to the nested-group shape
// and map-based construction the rest of this module uses (schema.FromMap).
package config

// Parser groups the settings that affect schema loading: caching of
// parsed schemas, structural limits, and accepted source formats.
type Parser struct {
	CacheEnabled bool
	CacheSize    int
	MaxSlots     int // per class
	MaxClasses   int // per schema
	Formats      []string
}

// Validator groups the settings that affect a validation run.
type Validator struct {
	Parallelism int
	BatchSize   int
	TimeoutMS   int
	FailFast    bool
	MaxErrors   int
}

// Generator groups settings for the (out of scope for this module's
// core, but configurable) documentation/code generation surface.
type Generator struct {
	OutputDir   string
	IncludeDocs bool
}

// EvictionPolicy names a supported cache eviction strategy. LRU is the
// only one this module implements; the type exists so FromMap can
// reject anything else explicitly instead of silently ignoring it.
type EvictionPolicy string

const (
	EvictionLRU EvictionPolicy = "lru"
)

// Cache groups general-purpose cache settings: entry cap, TTL and
// eviction policy. Config.Validate checks them; no engine reads them,
// and the expression cache is sized from Expression.CacheSize.
type Cache struct {
	MaxEntries int
	TTLSeconds int
	Eviction   EvictionPolicy
}

// Expression groups the ExpressionEngine's tuning knobs: whether to
// cache and/or compile to bytecode, cache sizing, and runtime limits.
type Expression struct {
	EnableCache       bool
	EnableCompilation bool
	CacheSize         int
	TimeoutSeconds    int
	MaxRecursionDepth int
}

// SecurityLimits mirrors the memory/resource caps a validation run
// enforces: maximum string length, expression depth, constraint count
// per slot, function call arity, cache entries, JSON document size,
// slots per class, classes per schema, and errors collected per run.
type SecurityLimits struct {
	MaxStringLength       int
	MaxExpressionDepth    int
	MaxConstraintsPerSlot int
	MaxFunctionArgs       int
	MaxCacheEntries       int
	MaxJSONSizeBytes      int
	MaxSlotsPerClass      int
	MaxClassesPerSchema   int
	MaxValidationErrors   int
}

// Config is the full nested configuration record.
type Config struct {
	Parser         Parser
	Validator      Validator
	Generator      Generator
	Cache          Cache
	Expression     Expression
	SecurityLimits SecurityLimits
}

// Default returns the documented default configuration. Every limit
// here is strictly positive, so Default().Validate() always succeeds.
func Default() Config {
	return Config{
		Parser: Parser{
			CacheEnabled: true,
			CacheSize:    500,
			MaxSlots:     1000,
			MaxClasses:   10000,
			Formats:      []string{"json", "yaml"},
		},
		Validator: Validator{
			Parallelism: 8,
			BatchSize:   64,
			TimeoutMS:   30000,
			FailFast:    false,
			MaxErrors:   100,
		},
		Generator: Generator{
			OutputDir:   ".",
			IncludeDocs: true,
		},
		Cache: Cache{
			MaxEntries: 10000,
			TTLSeconds: 3600,
			Eviction:   EvictionLRU,
		},
		Expression: Expression{
			EnableCache:       true,
			EnableCompilation: true,
			CacheSize:         500,
			TimeoutSeconds:    5,
			MaxRecursionDepth: 100,
		},
		SecurityLimits: SecurityLimits{
			MaxStringLength:       1 << 20, // 1 MB
			MaxExpressionDepth:    100,
			MaxConstraintsPerSlot: 1000,
			MaxFunctionArgs:       20,
			MaxCacheEntries:       10000,
			MaxJSONSizeBytes:      10 << 20, // 10 MB
			MaxSlotsPerClass:      1000,
			MaxClassesPerSchema:   10000,
			MaxValidationErrors:   100,
		},
	}
}

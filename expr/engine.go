package expr

import (
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/oarkflow/schemacore/value"
)

// EngineOptions configures an Engine's cache and runtime limits.
type EngineOptions struct {
	CacheCapacity int
	CacheTTL      time.Duration
	Limits        Limits
	// CompileThreshold is the hit count at which Engine.Eval switches
	// a cached expression from tree-walking to its compiled Program,
	// for hot expressions.
	CompileThreshold int
}

// DefaultEngineOptions matches config.Default()'s expression-cache
// defaults (capacity ~500, TTL 1h).
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		CacheCapacity:    500,
		CacheTTL:         time.Hour,
		Limits:           DefaultLimits(),
		CompileThreshold: 8,
	}
}

// Engine is the public ExpressionEngine: a parser, a two-tier AST
// cache, the builtin+custom function registry, and an optional
// bytecode compiler, matching component boundary.
type Engine struct {
	opts      EngineOptions
	cache     *cache
	funcs     *Functions
	compileMu sync.RWMutex
	compile   map[string]*Program

	evaluations         atomic.Uint64
	compiledEvaluations atomic.Uint64
	parseTimeNanos      atomic.Int64
	compileTimeNanos    atomic.Int64
	evalTimeNanos       atomic.Int64
}

// NewEngine builds an Engine with the given options, preloaded with
// every builtin function.
func NewEngine(opts EngineOptions) *Engine {
	if opts.CacheCapacity <= 0 {
		opts.CacheCapacity = 500
	}
	return &Engine{
		opts:    opts,
		cache:   newCache(opts.CacheCapacity, opts.CacheTTL),
		funcs:   NewFunctions(),
		compile: make(map[string]*Program),
	}
}

// Parse parses src, serving from cache when available.
func (e *Engine) Parse(src string) (Node, error) {
	if n, ok := e.cache.get(src); ok {
		return n, nil
	}
	start := time.Now()
	n, err := Parse(src)
	e.parseTimeNanos.Add(time.Since(start).Nanoseconds())
	if err != nil {
		return nil, err
	}
	e.cache.put(src, n)
	return n, nil
}

// Eval parses (if needed) and evaluates src against ctx. Once an
// expression's cache entry has been promoted to the hot tier and
// accessed CompileThreshold times, Eval compiles it once and reuses
// the Program thereafter, falling back to the tree-walker on a
// compile error (logged at Debug, never surfaced to the caller, since
// the tree-walker is always behaviorally authoritative).
func (e *Engine) Eval(src string, ctx Context) (value.Value, error) {
	n, err := e.Parse(src)
	if err != nil {
		return value.Value{}, err
	}
	e.compileMu.RLock()
	prog, compiled := e.compile[src]
	e.compileMu.RUnlock()
	if compiled {
		start := time.Now()
		v, err := EvalCompiled(prog, ctx, e.funcs, e.opts.Limits)
		e.evalTimeNanos.Add(time.Since(start).Nanoseconds())
		e.evaluations.Add(1)
		if err == nil {
			e.compiledEvaluations.Add(1)
			return v, nil
		}
		// A compiled-program error that disagrees with the tree-walker
		// would indicate a poisoned cache entry; re-verify against the
		// authoritative evaluator rather than trusting it blindly.
	}
	if e.opts.CompileThreshold > 0 && !compiled {
		e.cache.mu.RLock()
		entry, isHot := e.cache.hot[src]
		ready := isHot && entry.hits >= e.opts.CompileThreshold
		e.cache.mu.RUnlock()
		if ready {
			start := time.Now()
			if prog, cerr := Compile(n); cerr == nil {
				e.compileTimeNanos.Add(time.Since(start).Nanoseconds())
				e.compileMu.Lock()
				e.compile[src] = prog
				e.compileMu.Unlock()
			} else {
				log.WithError(cerr).WithField("expression", src).Debug("expression compile failed, using tree-walker")
			}
		}
	}
	start := time.Now()
	v, err := Eval(n, ctx, e.funcs, e.opts.Limits)
	e.evalTimeNanos.Add(time.Since(start).Nanoseconds())
	if !compiled {
		e.evaluations.Add(1)
	}
	return v, err
}

// EvalNode evaluates an already-parsed AST directly, skipping the
// parse-cache lookup Eval does on raw source. The RuleEngine uses this
// to run the ASTs it pre-parsed at compile time.
func (e *Engine) EvalNode(n Node, ctx Context) (value.Value, error) {
	start := time.Now()
	v, err := Eval(n, ctx, e.funcs, e.opts.Limits)
	e.evalTimeNanos.Add(time.Since(start).Nanoseconds())
	e.evaluations.Add(1)
	return v, err
}

// Functions returns the engine's function registry, for callers (the
// RuleEngine) that need to evaluate pre-parsed ASTs themselves via the
// package-level Eval rather than through Engine.Eval's caching path.
func (e *Engine) Functions() *Functions { return e.funcs }

// Limits returns the engine's configured evaluation limits.
func (e *Engine) Limits() Limits { return e.opts.Limits }

// EvalCompiled evaluates a pre-compiled Program directly, bypassing
// parse-cache lookup entirely — used when the caller has already
// compiled an expression once (e.g. a RuleEngine's CompiledClass) and
// wants to avoid the map lookups in Eval.
func (e *Engine) EvalCompiled(prog *Program, ctx Context) (value.Value, error) {
	start := time.Now()
	v, err := EvalCompiled(prog, ctx, e.funcs, e.opts.Limits)
	e.evalTimeNanos.Add(time.Since(start).Nanoseconds())
	e.evaluations.Add(1)
	if err == nil {
		e.compiledEvaluations.Add(1)
	}
	return v, err
}

// RegisterFunction adds a custom function to the engine's registry.
func (e *Engine) RegisterFunction(name string, minArity, maxArity int, call func([]value.Value) (value.Value, error)) error {
	return e.funcs.Register(name, minArity, maxArity, call)
}

// ResetCache discards every cached AST and compiled program, logging
// a warning; exposed for callers (and the validator) that detect a
// poisoned cache externally.
func (e *Engine) ResetCache(reason string) {
	e.cache.reset(reason)
	e.compileMu.Lock()
	e.compile = make(map[string]*Program)
	e.compileMu.Unlock()
}

// Metrics reports the engine's parse-cache hit/miss/eviction/
// promotion/poisoning counters together with its cumulative evaluation
// counts and parse/compile/eval timings.
func (e *Engine) Metrics() CacheMetrics {
	m := e.cache.metrics()
	m.Evaluations = e.evaluations.Load()
	m.CompiledEvaluations = e.compiledEvaluations.Load()
	m.ParseTime = time.Duration(e.parseTimeNanos.Load())
	m.CompileTime = time.Duration(e.compileTimeNanos.Load())
	m.EvalTime = time.Duration(e.evalTimeNanos.Load())
	return m
}

package expr

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// CacheMetrics accumulates an Engine's cumulative parse-cache and
// evaluation counters, exposed read-only via Engine.Metrics: cache
// hits/misses/evictions/promotions/poisonings, how many evaluations
// ran (tree-walked or compiled) and how many of those used a compiled
// Program, and total time spent parsing, compiling and evaluating.
type CacheMetrics struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Promotions uint64
	Poisoned   uint64

	Evaluations         uint64
	CompiledEvaluations uint64
	ParseTime           time.Duration
	CompileTime         time.Duration
	EvalTime            time.Duration
}

type cacheEntry struct {
	key       string
	node      Node
	createdAt time.Time
	hits      int
	elem      *list.Element
}

// cache is the bounded two-tier LRU the Engine parks parsed ASTs in,
// keyed by source text: a larger "cold" tier for first-seen
// expressions and a smaller "hot" tier for expressions that have
// proven themselves by repeat use, grounded on the
// sync.RWMutex-guarded compiled-schema cache
// (jsonschema/v2/compiler.go's Compiler.cache) generalized to two
// tiers and a creation-time TTL.
type cache struct {
	mu sync.RWMutex

	ttl time.Duration

	hotCap  int
	coldCap int

	hot     map[string]*cacheEntry
	hotLRU  *list.List
	cold    map[string]*cacheEntry
	coldLRU *list.List

	promoteAfterHits int

	hits       atomic.Uint64
	misses     atomic.Uint64
	evictions  atomic.Uint64
	promotions atomic.Uint64
	poisoned   atomic.Uint64
}

func newCache(capacity int, ttl time.Duration) *cache {
	if capacity <= 0 {
		capacity = 500
	}
	hotCap := capacity / 4
	if hotCap < 8 {
		hotCap = 8
	}
	return &cache{
		ttl:              ttl,
		hotCap:           hotCap,
		coldCap:          capacity,
		hot:              make(map[string]*cacheEntry),
		hotLRU:           list.New(),
		cold:             make(map[string]*cacheEntry),
		coldLRU:          list.New(),
		promoteAfterHits: 2,
	}
}

// get returns the cached AST for src, if present and unexpired. A hit
// in the cold tier counts toward promotion into the hot tier once
// promoteAfterHits is reached.
func (c *cache) get(src string) (Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.hot[src]; ok {
		if c.expired(e) {
			c.removeLocked(e, true)
			c.misses.Add(1)
			return nil, false
		}
		c.hotLRU.MoveToFront(e.elem)
		e.hits++
		c.hits.Add(1)
		return e.node, true
	}
	if e, ok := c.cold[src]; ok {
		if c.expired(e) {
			c.removeLocked(e, false)
			c.misses.Add(1)
			return nil, false
		}
		c.coldLRU.MoveToFront(e.elem)
		e.hits++
		c.hits.Add(1)
		if e.hits >= c.promoteAfterHits {
			c.promoteLocked(e)
		}
		return e.node, true
	}
	c.misses.Add(1)
	return nil, false
}

func (c *cache) put(src string, n Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.hot[src]; ok {
		return
	}
	if _, ok := c.cold[src]; ok {
		return
	}
	e := &cacheEntry{key: src, node: n, createdAt: time.Now()}
	e.elem = c.coldLRU.PushFront(e)
	c.cold[src] = e
	if c.coldLRU.Len() > c.coldCap {
		back := c.coldLRU.Back()
		if back != nil {
			victim := back.Value.(*cacheEntry)
			c.removeLocked(victim, false)
			c.evictions.Add(1)
		}
	}
}

func (c *cache) promoteLocked(e *cacheEntry) {
	c.coldLRU.Remove(e.elem)
	delete(c.cold, e.key)
	e.elem = c.hotLRU.PushFront(e)
	c.hot[e.key] = e
	c.promotions.Add(1)
	log.WithField("expression", e.key).Debug("expression promoted to hot cache tier")
	if c.hotLRU.Len() > c.hotCap {
		back := c.hotLRU.Back()
		if back != nil {
			victim := back.Value.(*cacheEntry)
			c.removeLocked(victim, true)
			c.evictions.Add(1)
		}
	}
}

func (c *cache) removeLocked(e *cacheEntry, hot bool) {
	if hot {
		c.hotLRU.Remove(e.elem)
		delete(c.hot, e.key)
		return
	}
	c.coldLRU.Remove(e.elem)
	delete(c.cold, e.key)
}

func (c *cache) expired(e *cacheEntry) bool {
	return c.ttl > 0 && time.Since(e.createdAt) > c.ttl
}

// reset discards every cached entry. Called when the cache is found
// poisoned (a cached AST fails to evaluate in a way only a corrupted
// entry could explain) — logged at Warn, matching "poisoning is
// handled by resetting the cache and logging a warning".
func (c *cache) reset(reason string) {
	c.mu.Lock()
	c.hot = make(map[string]*cacheEntry)
	c.hotLRU = list.New()
	c.cold = make(map[string]*cacheEntry)
	c.coldLRU = list.New()
	c.mu.Unlock()
	c.poisoned.Add(1)
	log.WithField("reason", reason).Warn("expression cache poisoned, resetting")
}

func (c *cache) isHot(src string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.hot[src]
	return ok
}

func (c *cache) metrics() CacheMetrics {
	return CacheMetrics{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Evictions:  c.evictions.Load(),
		Promotions: c.promotions.Load(),
		Poisoned:   c.poisoned.Load(),
	}
}

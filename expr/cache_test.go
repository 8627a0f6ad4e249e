package expr

import (
	"testing"
	"time"
)

func TestCacheMissThenHit(t *testing.T) {
	c := newCache(10, 0)
	if _, ok := c.get("1+1"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	n, err := Parse("1+1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c.put("1+1", n)
	if _, ok := c.get("1+1"); !ok {
		t.Fatalf("expected hit after put")
	}
	m := c.metrics()
	if m.Hits != 1 || m.Misses != 1 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestCachePromotesToHotTier(t *testing.T) {
	c := newCache(10, 0)
	c.promoteAfterHits = 2
	n, _ := Parse("1+1")
	c.put("1+1", n)
	c.get("1+1") // hit 1, still cold
	if c.isHot("1+1") {
		t.Fatalf("should not be hot yet")
	}
	c.get("1+1") // hit 2, promotes
	if !c.isHot("1+1") {
		t.Fatalf("expected promotion to hot tier")
	}
	m := c.metrics()
	if m.Promotions != 1 {
		t.Fatalf("expected 1 promotion, got %+v", m)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := newCache(10, time.Nanosecond)
	n, _ := Parse("1+1")
	c.put("1+1", n)
	time.Sleep(time.Millisecond)
	if _, ok := c.get("1+1"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestCacheEvictsOverCapacity(t *testing.T) {
	c := newCache(2, 0)
	for _, s := range []string{"1+1", "2+2", "3+3"} {
		n, _ := Parse(s)
		c.put(s, n)
	}
	if _, ok := c.get("1+1"); ok {
		t.Fatalf("expected oldest cold entry to have been evicted")
	}
	m := c.metrics()
	if m.Evictions == 0 {
		t.Fatalf("expected at least one eviction")
	}
}

func TestCacheResetClearsPoisonedEntries(t *testing.T) {
	c := newCache(10, 0)
	n, _ := Parse("1+1")
	c.put("1+1", n)
	c.reset("poison test")
	if _, ok := c.get("1+1"); ok {
		t.Fatalf("expected cache to be empty after reset")
	}
	if c.metrics().Poisoned != 1 {
		t.Fatalf("expected poisoned counter to increment")
	}
}

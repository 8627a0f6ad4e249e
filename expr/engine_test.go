package expr

import (
	"testing"

	"github.com/oarkflow/schemacore/value"
)

func TestEngineEvalCachesAcrossCalls(t *testing.T) {
	e := NewEngine(DefaultEngineOptions())
	ctx := Context{"x": value.Int(3)}
	for i := 0; i < 3; i++ {
		v, err := e.Eval("{x} * {x}", ctx)
		if err != nil {
			t.Fatalf("eval %d: %v", i, err)
		}
		if v.Int() != 9 {
			t.Fatalf("eval %d: got %v", i, v)
		}
	}
	m := e.Metrics()
	if m.Hits == 0 {
		t.Fatalf("expected cache hits across repeated Eval calls")
	}
}

func TestEnginePromotesAndCompilesHotExpression(t *testing.T) {
	opts := DefaultEngineOptions()
	opts.CompileThreshold = 1
	e := NewEngine(opts)
	e.cache.promoteAfterHits = 1
	ctx := Context{"x": value.Int(4)}

	var last value.Value
	var err error
	for i := 0; i < 5; i++ {
		last, err = e.Eval("{x} + 1", ctx)
		if err != nil {
			t.Fatalf("eval %d: %v", i, err)
		}
	}
	if last.Int() != 5 {
		t.Fatalf("got %v", last)
	}
	e.compileMu.RLock()
	_, compiled := e.compile["{x} + 1"]
	e.compileMu.RUnlock()
	if !compiled {
		t.Fatalf("expected expression to have been compiled after repeated hot use")
	}
}

func TestEngineRegisterFunction(t *testing.T) {
	e := NewEngine(DefaultEngineOptions())
	if err := e.RegisterFunction("triple", 1, 1, func(a []value.Value) (value.Value, error) {
		return value.Int(a[0].Int() * 3), nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	v, err := e.Eval("triple(7)", Context{})
	if err != nil || v.Int() != 21 {
		t.Fatalf("got %v err=%v", v, err)
	}
}

func TestEngineResetCacheClearsCompiledPrograms(t *testing.T) {
	e := NewEngine(DefaultEngineOptions())
	if _, err := e.Eval("1 + 1", Context{}); err != nil {
		t.Fatalf("eval: %v", err)
	}
	e.ResetCache("test")
	if e.Metrics().Poisoned != 1 {
		t.Fatalf("expected poisoned counter to increment")
	}
}

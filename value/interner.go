package value

import "sync"

// Handle is a compact, process-lifetime-stable reference into the
// string interner.
type Handle uint32

// Interner is a monotonically growing, append-only table mapping
// strings to compact handles, grounded on the process-wide
// compiledRegexPool in jsonschema/v2/compiler.go (a lazily-populated
// sync-guarded global). Handles never change once issued; Reset is
// provided only for tests.
type Interner struct {
	mu      sync.RWMutex
	strings []string
	index   map[string]Handle
}

func newInterner() *Interner {
	in := &Interner{index: make(map[string]Handle, 64)}
	for _, s := range preinterned {
		in.intern(s)
	}
	return in
}

var global = newInterner()

// preinterned are the common field/type/error-code names calls
// out for pre-interning.
var preinterned = []string{
	"name", "type", "id", "value", "description",
	"string", "integer", "float", "boolean", "null", "array", "object",
	string(CodeRequiredFieldMissing), string(CodeTypeMismatch),
	string(CodePatternMismatch), string(CodeRangeViolation),
	string(CodeEnumViolation), string(CodeLengthViolation),
	string(CodeCardinalityViolation), string(CodeCycleDetected),
	string(CodeUnknownClass), string(CodeUnknownSlot), string(CodeUnknownEnum),
	string(CodeExpressionParseError), string(CodeExpressionRuntimeErr),
	string(CodeRuleViolation), string(CodeCircularReference),
	string(CodeRecursionDepthExceed),
}

func (in *Interner) intern(s string) Handle {
	in.mu.RLock()
	if h, ok := in.index[s]; ok {
		in.mu.RUnlock()
		return h
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if h, ok := in.index[s]; ok {
		return h
	}
	h := Handle(len(in.strings))
	in.strings = append(in.strings, s)
	in.index[s] = h
	return h
}

func (in *Interner) lookup(h Handle) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(h) >= len(in.strings) {
		return "", false
	}
	return in.strings[h], true
}

func (in *Interner) reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.strings = in.strings[:0]
	in.index = make(map[string]Handle, 64)
	for _, s := range preinterned {
		in.internLocked(s)
	}
}

func (in *Interner) internLocked(s string) Handle {
	if h, ok := in.index[s]; ok {
		return h
	}
	h := Handle(len(in.strings))
	in.strings = append(in.strings, s)
	in.index[s] = h
	return h
}

// Intern returns the handle for s, interning it if new.
func Intern(s string) Handle { return global.intern(s) }

// Lookup resolves a handle back to its string, if known.
func Lookup(h Handle) (string, bool) { return global.lookup(h) }

// ResetInterner clears the process-wide interner back to its
// pre-interned baseline. Only safe to call outside an in-flight
// validation run, since live handles would otherwise dangle.
func ResetInterner() { global.reset() }

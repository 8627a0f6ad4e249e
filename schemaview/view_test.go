package schemaview

import (
	"testing"

	"github.com/oarkflow/schemacore/schema"
)

func animalSchema() map[string]any {
	return map[string]any{
		"slots": map[string]any{
			"name": map[string]any{"range": "string", "required": true},
			"legs": map[string]any{"range": "integer"},
			"sound": map[string]any{"range": "string"},
		},
		"classes": map[string]any{
			"Named": map[string]any{
				"slots": []any{"name"},
			},
			"Vocal": map[string]any{
				"slots": []any{"sound"},
			},
			"Animal": map[string]any{
				"is_a":   "Named",
				"mixins": []any{"Vocal"},
				"slots":  []any{"legs"},
			},
			"Dog": map[string]any{
				"is_a": "Animal",
				"slot_usage": map[string]any{
					"legs": map[string]any{"minimum_value": 4.0, "maximum_value": 4.0},
				},
			},
		},
	}
}

func buildView(t *testing.T, m map[string]any) *View {
	t.Helper()
	s, err := schema.FromMap(m)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	v, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestClassAncestorsLeafFirstExcludesSelf(t *testing.T) {
	v := buildView(t, animalSchema())
	anc, err := v.ClassAncestors("Dog")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Animal", "Named"}
	if len(anc) != len(want) {
		t.Fatalf("got %v want %v", anc, want)
	}
	for i := range want {
		if anc[i] != want[i] {
			t.Fatalf("got %v want %v", anc, want)
		}
	}
	// Mixins are not ancestors per the GLOSSARY.
	for _, a := range anc {
		if a == "Vocal" {
			t.Fatalf("mixin leaked into ancestors: %v", anc)
		}
	}
}

func TestClassSlotsOrderMixinsThenIsAThenOwn(t *testing.T) {
	v := buildView(t, animalSchema())
	slots, err := v.ClassSlots("Animal")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"sound", "name", "legs"}
	if len(slots) != len(want) {
		t.Fatalf("got %v want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("got %v want %v", slots, want)
		}
	}
}

func TestClassSlotsNoDuplicates(t *testing.T) {
	v := buildView(t, animalSchema())
	slots, _ := v.ClassSlots("Dog")
	seen := map[string]bool{}
	for _, s := range slots {
		if seen[s] {
			t.Fatalf("duplicate slot %q in %v", s, slots)
		}
		seen[s] = true
	}
}

func TestInducedSlotAppliesOverride(t *testing.T) {
	v := buildView(t, animalSchema())
	slot, err := v.InducedSlot("Dog", "legs")
	if err != nil {
		t.Fatal(err)
	}
	if slot.Minimum == nil || *slot.Minimum != 4 {
		t.Fatalf("expected minimum override to apply, got %+v", slot)
	}
	// Unoverridden attributes equal the base slot's.
	base, _ := v.GetSlot("legs")
	if slot.Range != base.Range {
		t.Fatalf("expected range unchanged, got %q want %q", slot.Range, base.Range)
	}
}

func TestInducedSlotOnAncestorUnaffectedByDescendantOverride(t *testing.T) {
	v := buildView(t, animalSchema())
	slot, err := v.InducedSlot("Animal", "legs")
	if err != nil {
		t.Fatal(err)
	}
	if slot.Minimum != nil {
		t.Fatalf("expected no minimum on Animal.legs, got %v", *slot.Minimum)
	}
}

func TestUnknownClassError(t *testing.T) {
	v := buildView(t, animalSchema())
	if _, err := v.ClassAncestors("Nope"); err == nil {
		t.Fatal("expected error for unknown class")
	}
}

func TestCycleDetection(t *testing.T) {
	m := map[string]any{
		"classes": map[string]any{
			"A": map[string]any{"is_a": "B"},
			"B": map[string]any{"is_a": "A"},
		},
	}
	s, err := schema.FromMap(m)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(s); err == nil {
		t.Fatal("expected cycle detection error")
	}
}

func TestRootAndLeafClasses(t *testing.T) {
	v := buildView(t, animalSchema())
	roots := v.RootClasses()
	found := map[string]bool{}
	for _, r := range roots {
		found[r] = true
	}
	if !found["Named"] || !found["Vocal"] {
		t.Fatalf("expected Named and Vocal to be roots, got %v", roots)
	}
	leaves := v.LeafClasses()
	foundLeaf := map[string]bool{}
	for _, l := range leaves {
		foundLeaf[l] = true
	}
	if !foundLeaf["Dog"] {
		t.Fatalf("expected Dog to be a leaf, got %v", leaves)
	}
}

func TestDeterministicConstruction(t *testing.T) {
	m := animalSchema()
	v1 := buildView(t, m)
	v2 := buildView(t, m)
	s1, _ := v1.ClassSlots("Animal")
	s2, _ := v2.ClassSlots("Animal")
	if len(s1) != len(s2) {
		t.Fatalf("nondeterministic class slots: %v vs %v", s1, s2)
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("nondeterministic class slots: %v vs %v", s1, s2)
		}
	}
}

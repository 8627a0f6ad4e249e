package schemaview

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/oarkflow/schemacore/schema"
)

// randomAnimalSchemaMap rebuilds animalSchema with a randomly chosen
// (but always valid) leg count constraint on Dog, checking that
// SchemaView construction and induced-slot resolution are insensitive
// to the specific numeric values involved.
func randomAnimalSchemaMap() map[string]any {
	legs := float64(gofakeit.Number(1, 8))
	m := animalSchema()
	classes := m["classes"].(map[string]any)
	dog := classes["Dog"].(map[string]any)
	usage := dog["slot_usage"].(map[string]any)
	usage["legs"] = map[string]any{"minimum_value": legs, "maximum_value": legs}
	return m
}

// TestFixturesRandomizedSlotUsageResolvesConsistently is a property
// check: whatever numeric constraint gofakeit picks for Dog's legs
// slot_usage, the induced slot for Dog must carry exactly that
// constraint, and Animal (which doesn't override it) must not.
func TestFixturesRandomizedSlotUsageResolvesConsistently(t *testing.T) {
	gofakeit.Seed(3)
	for i := 0; i < 20; i++ {
		m := randomAnimalSchemaMap()
		s, err := schema.FromMap(m)
		if err != nil {
			t.Fatalf("FromMap: %v", err)
		}
		v, err := New(s)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		dogLegs, err := v.InducedSlot("Dog", "legs")
		if err != nil {
			t.Fatalf("InducedSlot(Dog, legs): %v", err)
		}
		if dogLegs.Minimum == nil || dogLegs.Maximum == nil || *dogLegs.Minimum != *dogLegs.Maximum {
			t.Fatalf("fixture %d: expected Dog.legs to carry a fixed min==max constraint, got %+v", i, dogLegs)
		}

		animalLegs, err := v.InducedSlot("Animal", "legs")
		if err != nil {
			t.Fatalf("InducedSlot(Animal, legs): %v", err)
		}
		if animalLegs.Minimum != nil || animalLegs.Maximum != nil {
			t.Fatalf("fixture %d: Animal.legs should carry no constraint, got %+v", i, animalLegs)
		}
	}
}

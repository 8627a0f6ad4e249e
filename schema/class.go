package schema

// Class is a node in the schema's inheritance/mixin graph, owned by a
// Schema.
type Class struct {
	Name     string
	IsA      string   // optional parent class name
	Mixins   []string // ordered list of mixin class names
	Abstract bool

	// Slots is the ordered list of slot names declared directly on
	// this class (not inherited, not mixed in).
	Slots []string

	// SlotUsage overrides specific attributes of an inherited or
	// direct slot for this class only.
	SlotUsage map[string]Slot

	// Attributes are slot definitions declared inline on the class
	// rather than referencing a schema-level Slot by name. They behave
	// like direct slots for class_slots/induced_slot purposes, and are
	// registered into Schema.Slots by FromMap so downstream code has a
	// single place to look a slot definition up.
	Attributes []string

	Rules []Rule

	// UniqueKeys names sets of slot names that must be jointly unique
	// across instances of this class hierarchy (beyond the single
	// Identifier-slot uniqueness invariant in ).
	UniqueKeys map[string][]string

	Recursion RecursionOptions
}

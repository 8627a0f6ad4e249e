package schemaview

import (
	"sort"

	"github.com/oarkflow/schemacore/schema"
)

// ClassAncestors returns the ordered ancestors of name, leaf-first
// (immediate parent first, root last), excluding the class itself.
// Fails with an unknown-class error if name is unknown; cycles are
// construction-time errors and never surface here.
func (v *View) ClassAncestors(name string) ([]string, error) {
	if _, ok := v.schema.Classes[name]; !ok {
		return nil, schema.ErrUnknownClass(name)
	}
	return v.ancestors[name], nil
}

// ClassDescendants returns the set of transitive descendants of name.
func (v *View) ClassDescendants(name string) (map[string]bool, error) {
	if _, ok := v.schema.Classes[name]; !ok {
		return nil, schema.ErrUnknownClass(name)
	}
	return v.descendants[name], nil
}

// ClassSlots returns the ordered union of direct slots and slots from
// ancestors and mixins for name class_slots contract.
func (v *View) ClassSlots(name string) ([]string, error) {
	if _, ok := v.schema.Classes[name]; !ok {
		return nil, schema.ErrUnknownClass(name)
	}
	return v.classSlots[name], nil
}

// InducedSlot returns the effective definition of slotName as seen by
// class name: the base slot merged with every slot_usage override
// from the class and its ancestors/mixins, most specific last.
func (v *View) InducedSlot(className, slotName string) (schema.Slot, error) {
	if _, ok := v.schema.Classes[className]; !ok {
		return schema.Slot{}, schema.ErrUnknownClass(className)
	}
	slot, ok := v.induced[className][slotName]
	if !ok {
		return schema.Slot{}, schema.ErrUnknownSlot(slotName)
	}
	return slot, nil
}

// GetClass looks up a class definition by name.
func (v *View) GetClass(name string) (schema.Class, error) {
	c, ok := v.schema.Classes[name]
	if !ok {
		return schema.Class{}, schema.ErrUnknownClass(name)
	}
	return c, nil
}

// GetSlot looks up a schema-level slot definition by name (the base
// definition, not induced for any particular class).
func (v *View) GetSlot(name string) (schema.Slot, error) {
	s, ok := v.schema.Slots[name]
	if !ok {
		return schema.Slot{}, schema.ErrUnknownSlot(name)
	}
	return s, nil
}

// GetEnum looks up an enum definition by name.
func (v *View) GetEnum(name string) (schema.Enum, error) {
	e, ok := v.schema.Enums[name]
	if !ok {
		return schema.Enum{}, schema.ErrUnknownEnum(name)
	}
	return e, nil
}

// GetType looks up a type definition by name.
func (v *View) GetType(name string) (schema.Type, bool) {
	t, ok := v.schema.Types[name]
	return t, ok
}

// RootClasses returns, in deterministic sorted order, every class with
// no parent (is_a unset).
func (v *View) RootClasses() []string {
	var out []string
	for name, c := range v.schema.Classes {
		if c.IsA == "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// LeafClasses returns, in deterministic sorted order, every class with
// no descendants.
func (v *View) LeafClasses() []string {
	var out []string
	for name := range v.schema.Classes {
		if len(v.descendants[name]) == 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// FindSlotUsers returns, in deterministic sorted order, every class
// whose induced slot set includes slotName.
func (v *View) FindSlotUsers(slotName string) []string {
	users := append([]string(nil), v.slotUsers[slotName]...)
	sort.Strings(users)
	return users
}

// IsRecursive reports whether className is marked recursive, either
// explicitly via recursion_options or because one of its induced
// slots' range is the class itself or one of its descendants (a
// self-loop in slot ranges auto-
// detection rule).
func (v *View) IsRecursive(className string) bool {
	c, ok := v.schema.Classes[className]
	if !ok {
		return false
	}
	if c.Recursion.Recursive {
		return true
	}
	for _, slotName := range v.classSlots[className] {
		slot := v.induced[className][slotName]
		if slot.Range == className {
			return true
		}
		if v.descendants[className][slot.Range] {
			return true
		}
	}
	return false
}

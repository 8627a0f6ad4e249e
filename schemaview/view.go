// Package schemaview implements the SchemaView component: the
// denormalized, read-mostly index over a parsed schema (ancestors,
// descendants, induced slots, permissible-value sets, type
// hierarchies). A View is built once by New and is immutable
// thereafter — safe for concurrent reads from multiple goroutines.
package schemaview

import (
	"fmt"

	"github.com/oarkflow/schemacore/schema"
)

// View is the frozen, denormalized index over a Schema.
type View struct {
	schema *schema.Schema

	ancestors   map[string][]string          // leaf-first, excluding self
	descendants map[string]map[string]bool   // all transitive descendants
	classSlots  map[string][]string          // declaration-ordered, deduped
	induced     map[string]map[string]schema.Slot
	slotUsers   map[string][]string
	overlayOrd  map[string][]string // root-first class-name overlay chain, used by induced_slot
}

// Schema returns the parsed schema the view was built from.
func (v *View) Schema() *schema.Schema { return v.schema }

// New builds a SchemaView from a parsed Schema, resolving inheritance,
// mixins and slot_usage overrides into an effective view of every
// class and slot. It performs the construction-time validation // requires: every slot reference must resolve, and inheritance/mixin
// chains must be acyclic. Construction fails on the first problem
// found;, no partial view is usable.
func New(s *schema.Schema) (*View, error) {
	if s == nil {
		return nil, schema.ErrUnknownClass("<nil schema>")
	}
	v := &View{
		schema:      s,
		ancestors:   map[string][]string{},
		descendants: map[string]map[string]bool{},
		classSlots:  map[string][]string{},
		induced:     map[string]map[string]schema.Slot{},
		slotUsers:   map[string][]string{},
		overlayOrd:  map[string][]string{},
	}

	if err := v.checkAcyclic(); err != nil {
		return nil, err
	}
	if err := v.checkReferences(); err != nil {
		return nil, err
	}

	for name := range s.Classes {
		v.ancestors[name] = v.computeAncestors(name, map[string]bool{})
	}
	for name := range s.Classes {
		for _, anc := range v.ancestors[name] {
			if v.descendants[anc] == nil {
				v.descendants[anc] = map[string]bool{}
			}
			v.descendants[anc][name] = true
		}
	}
	for name := range s.Classes {
		v.classSlots[name] = v.computeClassSlots(name, map[string]bool{})
		v.overlayOrd[name] = v.computeOverlayOrder(name, map[string]bool{})
	}
	for name := range s.Classes {
		for _, slotName := range v.classSlots[name] {
			v.slotUsers[slotName] = append(v.slotUsers[slotName], name)
		}
	}
	for name := range s.Classes {
		v.induced[name] = map[string]schema.Slot{}
		for _, slotName := range v.classSlots[name] {
			slot, err := v.computeInducedSlot(name, slotName)
			if err != nil {
				return nil, err
			}
			v.induced[name][slotName] = slot
		}
	}

	return v, nil
}

// checkAcyclic walks every class's is_a + mixin edges and fails on the
// first cycle found invariant.
func (v *View) checkAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var chain []string

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			return schema.ErrCycle(append(append([]string{}, chain...), name))
		}
		color[name] = gray
		chain = append(chain, name)
		c, ok := v.schema.Classes[name]
		if !ok {
			chain = chain[:len(chain)-1]
			color[name] = black
			return schema.ErrUnknownClass(name)
		}
		if c.IsA != "" {
			if err := visit(c.IsA); err != nil {
				return err
			}
		}
		for _, m := range c.Mixins {
			if err := visit(m); err != nil {
				return err
			}
		}
		chain = chain[:len(chain)-1]
		color[name] = black
		return nil
	}

	for name := range v.schema.Classes {
		if color[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkReferences verifies every is_a/mixin/slot reference a Class
// makes resolves within the Schema unresolved-reference
// invariant.
func (v *View) checkReferences() error {
	for name, c := range v.schema.Classes {
		if c.IsA != "" {
			if _, ok := v.schema.Classes[c.IsA]; !ok {
				return fmt.Errorf("class %q: %w", name, schema.ErrUnknownClass(c.IsA))
			}
		}
		for _, m := range c.Mixins {
			if _, ok := v.schema.Classes[m]; !ok {
				return fmt.Errorf("class %q: %w", name, schema.ErrUnknownClass(m))
			}
		}
		for _, slotName := range c.Slots {
			if _, ok := v.schema.Slots[slotName]; !ok {
				return fmt.Errorf("class %q: %w", name, schema.ErrUnknownSlot(slotName))
			}
		}
		for slotName := range c.SlotUsage {
			if _, ok := v.schema.Slots[slotName]; !ok {
				return fmt.Errorf("class %q slot_usage: %w", name, schema.ErrUnknownSlot(slotName))
			}
		}
	}
	return nil
}

func (v *View) computeAncestors(name string, seen map[string]bool) []string {
	c, ok := v.schema.Classes[name]
	if !ok || c.IsA == "" || seen[c.IsA] {
		return nil
	}
	seen[c.IsA] = true
	return append([]string{c.IsA}, v.computeAncestors(c.IsA, seen)...)
}

// computeOverlayOrder returns the root-first sequence of class names
// whose slot_usage should be overlaid onto an induced slot, ending
// with the class itself. Mixins are processed before the is_a chain
// at every level, so an is_a-ancestor's override wins over a mixin's
// when both target the same attribute.
func (v *View) computeOverlayOrder(name string, seen map[string]bool) []string {
	c, ok := v.schema.Classes[name]
	if !ok {
		return []string{name}
	}
	var order []string
	for _, m := range c.Mixins {
		if seen[m] {
			continue
		}
		seen[m] = true
		order = append(order, v.computeOverlayOrder(m, seen)...)
	}
	if c.IsA != "" && !seen[c.IsA] {
		seen[c.IsA] = true
		order = append(order, v.computeOverlayOrder(c.IsA, seen)...)
	}
	order = append(order, name)
	return order
}

// computeClassSlots returns the declaration-ordered, deduplicated
// union of slots from mixins, then is_a, then the class's own direct
// slots and attributes class_slots contract.
func (v *View) computeClassSlots(name string, seen map[string]bool) []string {
	c, ok := v.schema.Classes[name]
	if !ok {
		return nil
	}
	var ordered []string
	present := map[string]bool{}
	add := func(slots []string) {
		for _, s := range slots {
			if !present[s] {
				present[s] = true
				ordered = append(ordered, s)
			}
		}
	}
	for _, m := range c.Mixins {
		if seen[m] {
			continue
		}
		seen[m] = true
		add(v.computeClassSlots(m, seen))
	}
	if c.IsA != "" && !seen[c.IsA] {
		seen[c.IsA] = true
		add(v.computeClassSlots(c.IsA, seen))
	}
	add(c.Slots)
	add(c.Attributes)
	return ordered
}

func (v *View) computeInducedSlot(className, slotName string) (schema.Slot, error) {
	base, ok := v.schema.Slots[slotName]
	if !ok {
		return schema.Slot{}, fmt.Errorf("class %q: %w", className, schema.ErrUnknownSlot(slotName))
	}
	effective := base.Clone()
	for _, ancName := range v.overlayOrd[className] {
		anc, ok := v.schema.Classes[ancName]
		if !ok {
			continue
		}
		override, ok := anc.SlotUsage[slotName]
		if !ok {
			continue
		}
		overlay(&effective, override)
	}
	return effective, nil
}

// overlay applies every attribute explicitly set on override onto
// base, in place
// invariant.
func overlay(base *schema.Slot, override schema.Slot) {
	if override.IsSet("range") {
		base.Range = override.Range
	}
	if override.IsSet("required") {
		base.Required = override.Required
	}
	if override.IsSet("multivalued") {
		base.Multivalued = override.Multivalued
	}
	if override.IsSet("identifier") {
		base.Identifier = override.Identifier
	}
	if override.IsSet("pattern") {
		base.Pattern = override.Pattern
	}
	if override.IsSet("description") {
		base.Description = override.Description
	}
	if override.IsSet("equals_expression") {
		base.EqualsExpression = override.EqualsExpression
	}
	if override.IsSet("equals_string") {
		base.EqualsString = override.EqualsString
	}
	if override.IsSet("equals_number") {
		base.EqualsNumber = override.EqualsNumber
	}
	if override.IsSet("minimum_value") {
		base.Minimum = override.Minimum
	}
	if override.IsSet("maximum_value") {
		base.Maximum = override.Maximum
	}
	if override.IsSet("permissible_values") {
		base.Permissible = override.Permissible
	}
	if override.IsSet("default") {
		base.Default = override.Default
	}
	if override.IsSet("any_of") {
		base.AnyOf = override.AnyOf
	}
	if override.IsSet("all_of") {
		base.AllOf = override.AllOf
	}
	if override.IsSet("exactly_one_of") {
		base.ExactlyOneOf = override.ExactlyOneOf
	}
	if override.IsSet("none_of") {
		base.NoneOf = override.NoneOf
	}
}

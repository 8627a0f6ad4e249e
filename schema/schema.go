// Package schema holds the parsed, in-memory schema data model:
// Schema, Class, Slot, Enum, Type, Rule and Condition. It performs no
// cross-reference resolution or cycle detection itself (that is
// schemaview's job) — FromMap only builds the structures and reports
// malformed documents.
package schema

import (
	goccyjson "github.com/goccy/go-json"

	"github.com/oarkflow/schemacore/value"
)

// Settings mirrors the nested configuration groups a schema document
// may travel with.
type Settings struct {
	MaxDepth              int
	FailFast              bool
	FailOnWarning         bool
	CheckSlotUsage        bool
	MaxErrors             int
	AllowAdditionalProps  bool
	ExpressionCacheSize   int
	ExpressionTTLSeconds  int
	MaxRecursionDepth     int
}

// Schema is the root of the parsed model, constructed once and
// immutable for the lifetime of a validation/compile session.
type Schema struct {
	ID       string
	Name     string
	Version  string
	Imports  []string
	Prefixes map[string]string
	Settings Settings

	Classes map[string]Class
	Slots   map[string]Slot
	Enums   map[string]Enum
	Types   map[string]Type

	// ClassOrder/SlotOrder/EnumOrder preserve declaration order for
	// operations that must iterate deterministically (e.g. dumping a
	// schema back out), independent of Go's unordered maps.
	ClassOrder []string
	SlotOrder  []string
	EnumOrder  []string
}

// FromJSON decodes a JSON document into the generic map[string]any
// shape FromMap expects, using github.com/goccy/go-json as a faster
// drop-in for encoding/json, then builds a Schema.
func FromJSON(data []byte) (*Schema, error) {
	var m map[string]any
	if err := goccyjson.Unmarshal(data, &m); err != nil {
		return nil, newError(value.CodeSchemaParseError, "invalid schema JSON: %v", err)
	}
	return FromMap(m)
}

// FromMap builds a Schema from the generic decoded-document shape any
// YAML or JSON frontend produces. Split from schemaview.New so the
// data model and its derived index are independently testable.
func FromMap(m map[string]any) (*Schema, error) {
	s := &Schema{
		Prefixes: map[string]string{},
		Classes:  map[string]Class{},
		Slots:    map[string]Slot{},
		Enums:    map[string]Enum{},
		Types:    map[string]Type{},
		Settings: defaultSettings(),
	}

	s.ID, _ = getString(m, "id")
	s.Name, _ = getString(m, "name")
	s.Version, _ = getString(m, "version")
	s.Imports = getStringList(m, "imports")
	if prefixes, ok := getMap(m, "prefixes"); ok {
		for k, v := range prefixes {
			if str, ok := v.(string); ok {
				s.Prefixes[k] = str
			}
		}
	}
	if settings, ok := getMap(m, "settings"); ok {
		applySettings(&s.Settings, settings)
	}

	if types, ok := getMap(m, "types"); ok {
		for name, raw := range types {
			tm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			t := Type{Name: name}
			t.Base, _ = getString(tm, "base")
			t.Pattern, _ = getString(tm, "pattern")
			t.Minimum = getFloatPtr(tm, "minimum")
			t.Maximum = getFloatPtr(tm, "maximum")
			s.Types[name] = t
		}
	}

	if enums, ok := getMap(m, "enums"); ok {
		for name, raw := range enums {
			em, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			e := Enum{Name: name}
			if pvs, ok := getList(em, "permissible_values"); ok {
				for _, pv := range pvs {
					switch t := pv.(type) {
					case string:
						e.PermissibleValues = append(e.PermissibleValues, PermissibleValue{Text: t})
					case map[string]any:
						pvv := PermissibleValue{}
						pvv.Text, _ = getString(t, "text")
						pvv.Description, _ = getString(t, "description")
						pvv.Meaning, _ = getString(t, "meaning")
						e.PermissibleValues = append(e.PermissibleValues, pvv)
					}
				}
			}
			s.Enums[name] = e
			s.EnumOrder = append(s.EnumOrder, name)
		}
	}

	if slots, ok := getMap(m, "slots"); ok {
		for name, raw := range slots {
			sm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			slot := parseSlot(name, sm)
			s.Slots[name] = slot
			s.SlotOrder = append(s.SlotOrder, name)
		}
	}

	if classes, ok := getMap(m, "classes"); ok {
		for name, raw := range classes {
			cm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			c := Class{Name: name}
			c.IsA, _ = getString(cm, "is_a")
			c.Mixins = getStringList(cm, "mixins")
			c.Abstract, _ = getBool(cm, "abstract")
			c.Slots = getStringList(cm, "slots")

			if usage, ok := getMap(cm, "slot_usage"); ok {
				c.SlotUsage = map[string]Slot{}
				for slotName, rawUsage := range usage {
					um, ok := rawUsage.(map[string]any)
					if !ok {
						continue
					}
					c.SlotUsage[slotName] = parseSlot(slotName, um)
				}
			}

			if attrs, ok := getMap(cm, "attributes"); ok {
				for attrName, rawAttr := range attrs {
					am, ok := rawAttr.(map[string]any)
					if !ok {
						continue
					}
					attrSlot := parseSlot(attrName, am)
					s.Slots[attrName] = attrSlot
					c.Attributes = append(c.Attributes, attrName)
				}
			}

			if rules, ok := getList(cm, "rules"); ok {
				for _, rawRule := range rules {
					rm, ok := rawRule.(map[string]any)
					if !ok {
						continue
					}
					c.Rules = append(c.Rules, parseRule(rm))
				}
			}

			if uk, ok := getMap(cm, "unique_keys"); ok {
				c.UniqueKeys = map[string][]string{}
				for keyName, rawSlots := range uk {
					if km, ok := rawSlots.(map[string]any); ok {
						c.UniqueKeys[keyName] = getStringList(km, "unique_key_slots")
					} else if lst, ok := rawSlots.([]any); ok {
						c.UniqueKeys[keyName] = toStringSlice(lst)
					}
				}
			}

			if ro, ok := getMap(cm, "recursion_options"); ok {
				c.Recursion.Recursive, _ = getBool(ro, "recursive")
				if d, ok := getFloat(ro, "max_depth"); ok {
					c.Recursion.MaxDepth = int(d)
				}
				c.Recursion.UseBox, _ = getBool(ro, "use_box")
			}

			s.Classes[name] = c
			s.ClassOrder = append(s.ClassOrder, name)
		}
	}

	return s, nil
}

func defaultSettings() Settings {
	return Settings{
		MaxDepth:             100,
		MaxErrors:            100,
		ExpressionCacheSize:  500,
		ExpressionTTLSeconds: 3600,
		MaxRecursionDepth:    100,
	}
}

func applySettings(s *Settings, m map[string]any) {
	if v, ok := getFloat(m, "max_depth"); ok {
		s.MaxDepth = int(v)
	}
	s.FailFast, _ = getBool(m, "fail_fast")
	s.FailOnWarning, _ = getBool(m, "fail_on_warning")
	s.CheckSlotUsage, _ = getBool(m, "check_slot_usage")
	if v, ok := getFloat(m, "max_errors"); ok {
		s.MaxErrors = int(v)
	}
	s.AllowAdditionalProps, _ = getBool(m, "allow_additional_properties")
	if v, ok := getFloat(m, "expression_cache_size"); ok {
		s.ExpressionCacheSize = int(v)
	}
	if v, ok := getFloat(m, "expression_ttl_seconds"); ok {
		s.ExpressionTTLSeconds = int(v)
	}
	if v, ok := getFloat(m, "max_recursion_depth"); ok {
		s.MaxRecursionDepth = int(v)
	}
}

func parseRule(m map[string]any) Rule {
	r := Rule{}
	r.Description, _ = getString(m, "description")
	if p, ok := getFloat(m, "priority"); ok {
		r.Priority = int(p)
	}
	if pre, ok := getMap(m, "preconditions"); ok {
		r.Preconditions = parseCondition(pre)
	}
	if post, ok := getMap(m, "postconditions"); ok {
		r.Postconditions = parseCondition(post)
	}
	return r
}

func parseCondition(m map[string]any) Condition {
	c := Condition{}
	if sc, ok := getMap(m, "slot_conditions"); ok {
		c.SlotConditions = map[string]SlotCondition{}
		for slotName, raw := range sc {
			if scm, ok := raw.(map[string]any); ok {
				c.SlotConditions[slotName] = parseSlotCondition(scm)
			}
		}
	}
	if exprs, ok := getList(m, "expressions"); ok {
		c.Expressions = toStringSlice(exprs)
	}
	for kind, key := range map[CompositeKind]string{
		CompositeAnyOf:        "any_of",
		CompositeAllOf:        "all_of",
		CompositeExactlyOneOf: "exactly_one_of",
		CompositeNoneOf:       "none_of",
	} {
		if lst, ok := getList(m, key); ok {
			c.Composite.Kind = kind
			for _, raw := range lst {
				if cm, ok := raw.(map[string]any); ok {
					c.Composite.Conditions = append(c.Composite.Conditions, parseCondition(cm))
				}
			}
		}
	}
	return c
}

func parseSlotCondition(m map[string]any) SlotCondition {
	sc := SlotCondition{}
	if v, ok := m["required"]; ok {
		if b, ok := v.(bool); ok {
			sc.Required = &b
		}
	}
	sc.Range, _ = getString(m, "range")
	sc.Pattern, _ = getString(m, "pattern")
	if v, ok := getString(m, "equals_string"); ok {
		sc.EqualsString = &v
	}
	sc.EqualsNumber = getFloatPtr(m, "equals_number")
	sc.EqualsExpression, _ = getString(m, "equals_expression")
	sc.Minimum = getFloatPtr(m, "minimum_value")
	sc.Maximum = getFloatPtr(m, "maximum_value")
	for dst, key := range map[*[]SlotCondition]string{
		&sc.AnyOf: "any_of", &sc.AllOf: "all_of",
		&sc.ExactlyOneOf: "exactly_one_of", &sc.NoneOf: "none_of",
	} {
		if lst, ok := getList(m, key); ok {
			for _, raw := range lst {
				if scm, ok := raw.(map[string]any); ok {
					*dst = append(*dst, parseSlotCondition(scm))
				}
			}
		}
	}
	return sc
}

func parseSlot(name string, m map[string]any) Slot {
	s := Slot{Name: name}
	setIf := func(key string, ok bool) {
		if ok {
			s.markSet(key)
		}
	}

	var ok bool
	s.Range, ok = getString(m, "range")
	setIf("range", ok)
	s.Required, ok = getBool(m, "required")
	setIf("required", ok)
	s.Multivalued, ok = getBool(m, "multivalued")
	setIf("multivalued", ok)
	s.Identifier, ok = getBool(m, "identifier")
	setIf("identifier", ok)
	s.Pattern, ok = getString(m, "pattern")
	setIf("pattern", ok)
	s.Description, ok = getString(m, "description")
	setIf("description", ok)
	s.EqualsExpression, ok = getString(m, "equals_expression")
	setIf("equals_expression", ok)

	if v, ok := getString(m, "equals_string"); ok {
		s.EqualsString = &v
		s.markSet("equals_string")
	}
	if v, exists := m["equals_number"]; exists {
		if f, ok := toFloat(v); ok {
			s.EqualsNumber = &f
			s.markSet("equals_number")
		}
	}
	if v, exists := m["minimum_value"]; exists {
		if f, ok := toFloat(v); ok {
			s.Minimum = &f
			s.markSet("minimum_value")
		}
	}
	if v, exists := m["maximum_value"]; exists {
		if f, ok := toFloat(v); ok {
			s.Maximum = &f
			s.markSet("maximum_value")
		}
	}
	if lst, ok := getList(m, "permissible_values"); ok {
		s.Permissible = toStringSlice(lst)
		s.markSet("permissible_values")
	}
	if v, exists := m["default"]; exists {
		s.Default = v
		s.markSet("default")
	}
	for dst, key := range map[*[]Slot]string{
		&s.AnyOf: "any_of", &s.AllOf: "all_of",
		&s.ExactlyOneOf: "exactly_one_of", &s.NoneOf: "none_of",
	} {
		if lst, ok := getList(m, key); ok {
			s.markSet(key)
			for _, raw := range lst {
				if sm, ok := raw.(map[string]any); ok {
					*dst = append(*dst, parseSlot(name, sm))
				}
			}
		}
	}
	return s
}

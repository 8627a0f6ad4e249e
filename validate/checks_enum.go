package validate

import (
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/schemaview"
	"github.com/oarkflow/schemacore/value"
)

// checkEnum validates v against slot's static permissible values (if
// any are set directly on the slot) and, when slot.Range names an
// Enum, against that enum's permissible values and (if configured and
// available) the observed values among loaded instance data.
//
// The instance-data branch deliberately allows every value through
// when no instances of the enum's owning class(es) are loaded.
func checkEnum(view *schemaview.View, slot schema.Slot, instances InstanceSet, v value.Value, path string) *value.Issue {
	if v.Kind() != value.KindString {
		return nil
	}
	s := v.Str()

	if len(slot.Permissible) > 0 {
		if !containsStr(slot.Permissible, s) {
			return enumIssue(s, path)
		}
	}

	enum, err := view.GetEnum(slot.Range)
	if err != nil {
		return nil // range doesn't name an enum; nothing further to check
	}
	if len(enum.PermissibleValues) > 0 && !enum.Contains(s) {
		return enumIssue(s, path)
	}

	// Instance-data extension: if any instances are loaded anywhere in
	// the supplied set, restrict to the union of string values observed
	// in loaded instances' fields named like this slot; otherwise allow all.
	if len(instances) == 0 {
		return nil
	}
	observed := observedEnumValues(instances, slot.Name)
	if len(observed) == 0 {
		return nil
	}
	if !observed[s] {
		return enumIssue(s, path)
	}
	return nil
}

func enumIssue(value_, path string) *value.Issue {
	return &value.Issue{
		Severity: value.SeverityError,
		Message:  "value " + value_ + " is not a permissible value",
		Path:     path,
		Code:     value.CodeEnumViolation,
	}
}

func containsStr(lst []string, s string) bool {
	for _, x := range lst {
		if x == s {
			return true
		}
	}
	return false
}

// observedEnumValues scans every loaded instance's slotName field
// across every class and collects the distinct string values seen.
func observedEnumValues(instances InstanceSet, slotName string) map[string]bool {
	out := map[string]bool{}
	for _, byID := range instances {
		for _, inst := range byID {
			if fv, ok := inst.Data[slotName]; ok && fv.Kind() == value.KindString {
				out[fv.Str()] = true
			}
		}
	}
	return out
}

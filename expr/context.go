package expr

import "github.com/oarkflow/schemacore/value"

// Context is the variable-name-to-value mapping an expression
// evaluates against. The RuleEngine supplies the full
// instance object as context so sibling-slot expressions resolve
//.
type Context map[string]value.Value

// Lookup resolves a variable by name. ok is false when the variable is
// undefined — the engine never silently substitutes null.
func (c Context) Lookup(name string) (value.Value, bool) {
	v, ok := c[name]
	return v, ok
}

// Package expr implements the ExpressionEngine: a small expression
// mini-language (literals, {variable} references, arithmetic,
// comparison, logical and ternary operators, function calls and field
// access), with a tree-walking evaluator, an optional bytecode
// compiler, a bounded two-tier cache and a builtin + custom function
// registry.
package expr

import "github.com/oarkflow/schemacore/value"

// Node is one AST node produced by Parse. Concrete types: Literal,
// Var, Field, Unary, Binary, Ternary, Call.
type Node interface {
	node()
}

// Literal is an integer, float, string, boolean or null constant.
type Literal struct {
	Value value.Value
}

// Var is a `{name}` variable reference.
type Var struct {
	Name string
}

// Field is `base.name` field access on an object-valued expression.
type Field struct {
	Base Node
	Name string
}

// Unary is `not e` or unary `-e`.
type Unary struct {
	Op   string
	Expr Node
}

// Binary is a two-operand arithmetic, comparison or logical
// expression.
type Binary struct {
	Op          string
	Left, Right Node
}

// Ternary is `then if cond else els`.
type Ternary struct {
	Cond, Then, Else Node
}

// Call is `name(args...)`.
type Call struct {
	Name string
	Args []Node
}

func (Literal) node() {}
func (Var) node()     {}
func (Field) node()   {}
func (Unary) node()   {}
func (Binary) node()  {}
func (Ternary) node() {}
func (Call) node()    {}

// Variables returns the set of free variable names referenced
// anywhere in the AST (including inside field-access bases), used to
// verify that every compiled expression's free variables are slot
// names declared on the owning class.
func Variables(n Node) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		switch t := n.(type) {
		case Var:
			if !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, t.Name)
			}
		case Field:
			walk(t.Base)
		case Unary:
			walk(t.Expr)
		case Binary:
			walk(t.Left)
			walk(t.Right)
		case Ternary:
			walk(t.Cond)
			walk(t.Then)
			walk(t.Else)
		case Call:
			for _, a := range t.Args {
				walk(a)
			}
		}
	}
	walk(n)
	return out
}

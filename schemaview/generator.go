package schemaview

import "github.com/oarkflow/schemacore/schema"

// GeneratorOptions configures a Generator invocation.
type GeneratorOptions struct {
	OutputDir   string
	IncludeDocs bool
	Extra       map[string]any
}

// GeneratedFile is one artifact produced by a Generator.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// Generator is the narrow interface concrete code generators
// implement: a function from a Schema and GeneratorOptions
// to a set of generated files. Concrete generators (per target
// language) are out of scope for this core; this type only
// documents the boundary so a generator can walk View without
// reimplementing inheritance resolution.
type Generator interface {
	Generate(s *schema.Schema, view *View, opts GeneratorOptions) ([]GeneratedFile, error)
}

// Package schemacore ties SchemaView, the ExpressionEngine, the
// RuleEngine and the ValidationEngine together into one entry point: a
// Session loads a schema document once and then parses, validates and
// dumps instance data against it.
//
// Grounded on the root-level json.go package facade: a package-level Marshal
// wired to a swappable backend, and an Unmarshal that optionally
// validates the decoded document against a schema before returning it.
// Here the schema is SchemaView/ValidationEngine rather than a bare
// jsonschema.Schema, and the default backend is goccy/go-json rather
// than encoding/json.
package schemacore

import (
	"context"
	"fmt"

	"github.com/oarkflow/schemacore/config"
	"github.com/oarkflow/schemacore/expr"
	"github.com/oarkflow/schemacore/marshaler"
	"github.com/oarkflow/schemacore/rule"
	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/schemaview"
	"github.com/oarkflow/schemacore/unmarshaler"
	"github.com/oarkflow/schemacore/validate"
	"github.com/oarkflow/schemacore/value"
)

// Session is a loaded schema plus the three engines built over it. It
// is the facade callers reach for instead of wiring schemaview, expr,
// rule and validate by hand.
type Session struct {
	View   *schemaview.View
	Expr   *expr.Engine
	Rules  *rule.Engine
	Valid  *validate.Engine
	Config config.Config
}

// Open builds a Session from a raw schema document (already decoded
// into a map, e.g. via Unmarshal below) and an optional configuration
// override. When no Config argument is passed, config.Default() is used;
// a Config that fails Config.Validate makes Open return that error.
func Open(doc map[string]any, cfg ...config.Config) (*Session, error) {
	s, err := schema.FromMap(doc)
	if err != nil {
		return nil, err
	}
	view, err := schemaview.New(s)
	if err != nil {
		return nil, err
	}

	c := config.Default()
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ee := expr.NewEngine(expr.EngineOptions{
		CacheCapacity: c.Expression.CacheSize,
		Limits:        expr.DefaultLimits(),
	})
	re := rule.New(view, ee)
	ve := validate.New(view, ee, re)

	return &Session{View: view, Expr: ee, Rules: re, Valid: ve, Config: c}, nil
}

// Validate runs the ValidationEngine's per-instance pipeline for
// className against instance, per the standard validate.Options.
func (s *Session) Validate(ctx context.Context, className string, instance value.Value, opts validate.Options) (*value.Report, error) {
	return s.Valid.Validate(ctx, className, instance, opts)
}

// Marshal renders data through the process-wide marshaler backend
// (goccy/go-json by default; see marshaler.SetMarshaler to swap in
// jsonmap.Marshal for the hand-rolled allocation-free encoder).
func Marshal(data any) ([]byte, error) {
	return marshaler.Instance()(data)
}

// Unmarshal decodes data into dst via the process-wide unmarshaler
// backend. When a Session and className are supplied, the populated dst
// is then converted to a value.Value and validated against className; a
// failing validation returns the report's first error, and dst keeps
// the decoded data.
func Unmarshal(data []byte, dst any, className string, s *Session) error {
	if err := unmarshaler.Instance()(data, dst); err != nil {
		return err
	}
	if s == nil || className == "" {
		return nil
	}
	v, err := value.StructToValue(dst)
	if err != nil {
		return err
	}
	report, err := s.Validate(context.Background(), className, v, validate.Options{})
	if err != nil {
		return err
	}
	if errs := report.Errors(); len(errs) > 0 {
		return fmt.Errorf("%s", errs[0].String())
	}
	return nil
}

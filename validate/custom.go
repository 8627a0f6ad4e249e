package validate

import (
	log "github.com/sirupsen/logrus"

	"github.com/oarkflow/schemacore/schema"
	"github.com/oarkflow/schemacore/value"
)

// CustomValidator is a named, registered check executed after the
// built-in per-slot checks for every slot its AppliesTo predicate
// matches. Fn may emit zero or more issues via the same *value.Issue
// reporting path as built-in checks.
type CustomValidator struct {
	Name      string
	AppliesTo func(slot schema.Slot) bool
	Fn        func(slot schema.Slot, v value.Value, path string) []value.Issue
}

// customRegistry is the named-validator table, grounded on the
// teacher's global formatValidators map and RegisterFormatValidator in
// jsonschema/v2/validator.go, generalized from a fixed format-name key
// to an ordered list of predicate-matched validators.
type customRegistry struct {
	validators []CustomValidator
}

func newCustomRegistry() *customRegistry {
	return &customRegistry{}
}

// Register adds v to the registry. Validators run in registration
// order for a given slot.
func (r *customRegistry) Register(v CustomValidator) {
	r.validators = append(r.validators, v)
}

// run executes every registered validator whose AppliesTo matches slot
// against v, recovering from (and logging) any panic so one faulty
// custom validator cannot abort the whole validation run.
func (r *customRegistry) run(slot schema.Slot, v value.Value, path string) []value.Issue {
	var issues []value.Issue
	for _, cv := range r.validators {
		if cv.AppliesTo == nil || !cv.AppliesTo(slot) {
			continue
		}
		issues = append(issues, r.runOne(cv, slot, v, path)...)
	}
	return issues
}

func (r *customRegistry) runOne(cv CustomValidator, slot schema.Slot, v value.Value, path string) (result []value.Issue) {
	defer func() {
		if rec := recover(); rec != nil {
			log.WithFields(log.Fields{
				"validator": cv.Name,
				"path":      path,
				"panic":     rec,
			}).Warn("custom validator panicked, recovered")
			result = nil
		}
	}()
	return cv.Fn(slot, v, path)
}

// RegisterCustomValidator adds a named custom validator to the engine.
func (e *Engine) RegisterCustomValidator(v CustomValidator) {
	e.custom.Register(v)
}

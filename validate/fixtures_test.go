package validate

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/oarkflow/schemacore/value"
)

// randomPerson synthesizes a Person instance guaranteed to satisfy
// personSchemaMap's constraints: a capitalized name, an age within
// range, a permissible status, and zero or more well-formed emails.
func randomPerson() value.Value {
	status := "active"
	if gofakeit.Bool() {
		status = "inactive"
	}
	n := gofakeit.Number(0, 3)
	emails := make([]value.Value, n)
	for i := range emails {
		emails[i] = value.String(gofakeit.Email())
	}
	return value.Object(map[string]value.Value{
		"name":   value.String(gofakeit.FirstName()),
		"age":    value.Int(int64(gofakeit.Number(0, 150))),
		"status": value.String(status),
		"emails": value.Array(emails),
	})
}

// TestValidateRandomizedValidInstancesPass is a property check: every
// fixture synthesized to satisfy the schema's constraints should
// produce a clean report, regardless of which random values gofakeit
// picks.
func TestValidateRandomizedValidInstancesPass(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	gofakeit.Seed(1)
	for i := 0; i < 50; i++ {
		instance := randomPerson()
		report, err := e.Validate(context.Background(), "Person", instance, Options{})
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if !report.Valid() {
			t.Fatalf("fixture %d (%v) unexpectedly failed: %v", i, instance, report.Errors())
		}
	}
}

// TestValidateRandomizedBadNamesFail checks the converse: a name that
// violates the pattern should always be reported, whatever random
// values gofakeit produces for the rest of the instance.
func TestValidateRandomizedBadNamesFail(t *testing.T) {
	e := buildEngine(t, personSchemaMap())
	gofakeit.Seed(2)
	for i := 0; i < 20; i++ {
		instance := randomPerson()
		obj := instance.Obj()
		obj["name"] = value.String("lowercase-start")
		report, err := e.Validate(context.Background(), "Person", value.Object(obj), Options{})
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if report.Valid() {
			t.Fatalf("fixture %d: expected a pattern violation", i)
		}
	}
}

package value

import (
	"fmt"

	"github.com/goccy/go-reflect"
)

// StructToValue converts a Go struct (or pointer to one) into an
// Object Value using its exported fields, honoring a `json:"name"` tag
// for the field name. It is a convenience for callers that keep typed
// instances but want to hand the validation engine a Value, grounded
// on the struct<->map conversion in jsonschema/schema.go and
// jsonschema/common.go, both built on github.com/goccy/go-reflect for
// lower-overhead reflection than the standard library on hot paths.
func StructToValue(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Null(), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return FromAny(v), nil
	}
	rt := rv.Type()
	out := make(map[string]Value, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _ := splitTag(tag)
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fv := rv.Field(i)
		nested, err := StructToValue(fv.Interface())
		if err != nil {
			return Value{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		out[name] = nested
	}
	return Object(out), nil
}

func splitTag(tag string) (name string, opts string) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i], tag[i+1:]
		}
	}
	return tag, ""
}

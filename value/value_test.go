package value

import "testing"

func TestEqualNullOnlyEqualsNull(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null==null", Null(), Null(), true},
		{"null!=false", Null(), Bool(false), false},
		{"null!=zero", Null(), Int(0), false},
		{"int==float", Int(2), Float(2), true},
		{"string==string", String("a"), String("a"), true},
		{"string!=string", String("a"), String("b"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Fatalf("Equal(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"name": "alice",
		"age":  30,
		"tags": []any{"a", "b"},
		"nested": map[string]any{
			"ok": true,
		},
		"missing": nil,
	}
	v := FromAny(in)
	if v.Kind() != KindObject {
		t.Fatalf("expected object kind, got %v", v.Kind())
	}
	name, ok := v.Field("name")
	if !ok || name.Str() != "alice" {
		t.Fatalf("expected name=alice, got %v ok=%v", name, ok)
	}
	out := ToAny(v).(map[string]any)
	if out["name"] != "alice" {
		t.Fatalf("round-trip mismatch: %v", out)
	}
}

func TestPathPushPop(t *testing.T) {
	p := NewPath()
	if p.String() != "$" {
		t.Fatalf("expected root path, got %q", p.String())
	}
	mark := p.Push("children")
	p.PushIndex(2)
	p.Push("name")
	if got, want := p.String(), "$.children[2].name"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	p.Pop(mark)
	if got, want := p.String(), "$.children"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestReportFinalizeOrdersByPath(t *testing.T) {
	r := NewReport()
	r.Add(Issue{Path: "$.b", Message: "second"})
	r.Add(Issue{Path: "$.a", Message: "first"})
	r.Finalize()
	all := r.All()
	if all[0].Path != "$.a" || all[1].Path != "$.b" {
		t.Fatalf("issues not path-ordered: %+v", all)
	}
}

func TestInternerStable(t *testing.T) {
	h1 := Intern("custom_field")
	h2 := Intern("custom_field")
	if h1 != h2 {
		t.Fatalf("expected stable handle, got %v and %v", h1, h2)
	}
	s, ok := Lookup(h1)
	if !ok || s != "custom_field" {
		t.Fatalf("lookup failed: %v %v", s, ok)
	}
}

func TestStructToValue(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
		Skip string `json:"-"`
	}
	v, err := StructToValue(person{Name: "bob", Age: 9, Skip: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.Field("Skip"); ok {
		t.Fatalf("expected skipped field to be excluded")
	}
	name, _ := v.Field("name")
	if name.Str() != "bob" {
		t.Fatalf("expected name=bob, got %v", name)
	}
}

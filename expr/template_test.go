package expr

import "testing"

func TestIsTemplateRecognizesWrapper(t *testing.T) {
	if !IsTemplate("{{ 1 + 1 }}") {
		t.Fatalf("expected template syntax to be recognized")
	}
	if IsTemplate("plain-default") {
		t.Fatalf("did not expect a plain literal to be recognized as a template")
	}
}

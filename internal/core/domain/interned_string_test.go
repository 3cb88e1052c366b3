package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/cathywu/sumosims/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	s1 := "a.net.xml"
	s2 := "a.net.xml"

	is1 := domain.NewInternedString(s1)
	is2 := domain.NewInternedString(s2)

	// Identical strings share a handle
	if is1.Value() != is2.Value() {
		t.Errorf("Expected handles to be equal for identical strings, got %v and %v", is1.Value(), is2.Value())
	}

	if is1.String() != s1 {
		t.Errorf("Expected String() to return %q, got %q", s1, is1.String())
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	if zero.String() != "" {
		t.Errorf("Expected zero value to render as empty string, got %q", zero.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	original := domain.NewInternedString("net")

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal InternedString: %v", err)
	}
	if string(data) != `"net"` {
		t.Errorf(`Expected JSON "net", got %q`, string(data))
	}

	var unmarshaled domain.InternedString
	if err := json.Unmarshal(data, &unmarshaled); err != nil {
		t.Fatalf("Failed to unmarshal InternedString: %v", err)
	}
	if unmarshaled.String() != original.String() {
		t.Errorf("Expected unmarshaled string %q, got %q", original.String(), unmarshaled.String())
	}
	if unmarshaled.Value() != original.Value() {
		t.Error("Expected unmarshaled handle to match the original")
	}
}

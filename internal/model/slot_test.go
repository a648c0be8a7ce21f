package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewSlot(t *testing.T) {
	s := NewSlot("viewer", "label?text=hi")

	if s.ID == "" {
		t.Error("Expected slot ID to be set")
	}
	if !s.Enabled || !s.Selectable || !s.Draggable {
		t.Error("Expected regular slot to be enabled, selectable and draggable")
	}
	if s.IsPlaceholder() {
		t.Error("Regular slot should not be a placeholder")
	}
	if !s.CanEnlarge() {
		t.Error("Regular slot should be enlargeable")
	}
}

func TestSlotIDsAreTimeOrdered(t *testing.T) {
	first := NewSlot("a", "label")
	second := NewSlot("b", "label")

	for _, s := range []*Slot{first, second} {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			t.Fatalf("Slot ID %q is not a UUID: %v", s.ID, err)
		}
		if id.Version() != 7 {
			t.Errorf("Expected UUID version 7, got %d", id.Version())
		}
	}
	if first.ID == second.ID {
		t.Error("Expected distinct slot IDs")
	}
	if second.ID < first.ID {
		t.Errorf("Expected %q to sort after %q", second.ID, first.ID)
	}
}

func TestNewPlaceholderSlot(t *testing.T) {
	p := NewPlaceholderSlot()
	q := NewPlaceholderSlot()

	if !p.IsPlaceholder() {
		t.Error("Expected placeholder slot")
	}
	if p.Enabled || p.Selectable || p.Draggable {
		t.Error("Placeholder must not be enabled, selectable or draggable")
	}
	if p.CanEnlarge() {
		t.Error("Placeholder must not be enlargeable")
	}
	if !IsPlaceholderName(p.Name) {
		t.Errorf("Placeholder name %q should carry the placeholder prefix", p.Name)
	}
	if p.Name == q.Name {
		t.Error("Expected distinct placeholder names")
	}
	if p.GetDisplayTitle() != "" {
		t.Errorf("Placeholder display title should be empty, got %q", p.GetDisplayTitle())
	}
}

func TestSlot_SpecRoundTrip(t *testing.T) {
	spec := SlotSpec{Name: "a", Recipe: "label", OverlayText: "A", OverlayImage: "$HOME/a.png"}
	s := NewSlotFromSpec(spec)

	if s.Spec() != spec {
		t.Errorf("Spec() = %+v, expected %+v", s.Spec(), spec)
	}
}

func TestSlot_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		overlay  string
		expected string
	}{
		{"a", "", "a"},
		{"a", "Alpha", "Alpha"},
		{"a", "   ", "a"},
	}

	for _, test := range tests {
		s := NewSlot(test.name, "")
		s.SetOverlay(test.overlay, "")
		if s.GetDisplayTitle() != test.expected {
			t.Errorf("GetDisplayTitle() with overlay=%q = %q, expected %q", test.overlay, s.GetDisplayTitle(), test.expected)
		}
	}
}

func TestTypedErrorsUnwrap(t *testing.T) {
	var err error = &IndexError{Op: "insert", Index: 5, Max: 2}
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("IndexError should match ErrIndexOutOfRange")
	}

	err = &DuplicateNameError{Name: "a"}
	if !errors.Is(err, ErrDuplicateName) {
		t.Error("DuplicateNameError should match ErrDuplicateName")
	}
	var dup *DuplicateNameError
	if !errors.As(err, &dup) || dup.Name != "a" {
		t.Error("Expected errors.As to extract DuplicateNameError")
	}
}

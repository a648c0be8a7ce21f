package model

import (
	"strings"

	"github.com/google/uuid"
)

// PlaceholderPrefix starts the name of every auto-inserted placeholder slot
const PlaceholderPrefix = "__placeholder__"

// Nameable is implemented by anything with a unique display name
type Nameable interface {
	GetName() string
	SetName(name string)
}

// Overlayable is implemented by anything that shows overlay text or an
// image while collapsed in taskbar modes
type Overlayable interface {
	Overlay() (text, image string)
	SetOverlay(text, image string)
}

// Enlargeable is implemented by anything the enlarge controller may present
// outside the bar's layout flow
type Enlargeable interface {
	CanEnlarge() bool
}

// SlotSpec is the persistable part of a slot
type SlotSpec struct {
	Name         string
	Recipe       string
	OverlayText  string
	OverlayImage string
}

// Slot represents one managed panel shown in a popup bar
type Slot struct {
	ID           string // stable identity, survives renames
	Name         string // unique within a bar
	Recipe       string // opaque build recipe token, resolved by the widget factory
	OverlayText  string
	OverlayImage string
	Index        int // position in the bar, maintained by the bar

	Enabled    bool
	Selectable bool
	Draggable  bool

	placeholder bool
}

// NewSlot creates a regular, fully interactive slot
func NewSlot(name, recipe string) *Slot {
	return &Slot{
		ID:         newSlotID(),
		Name:       name,
		Recipe:     recipe,
		Enabled:    true,
		Selectable: true,
		Draggable:  true,
	}
}

// newSlotID returns a time-ordered UUIDv7, or a random one if the clock
// source fails
func newSlotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewSlotFromSpec creates a slot from persisted data
func NewSlotFromSpec(spec SlotSpec) *Slot {
	s := NewSlot(spec.Name, spec.Recipe)
	s.OverlayText = spec.OverlayText
	s.OverlayImage = spec.OverlayImage
	return s
}

// NewPlaceholderSlot creates a non-interactive filler slot. Placeholders are
// never persisted and cannot be deleted by the user.
func NewPlaceholderSlot() *Slot {
	id := newSlotID()
	return &Slot{
		ID:          id,
		Name:        PlaceholderPrefix + id[:8],
		placeholder: true,
	}
}

// IsPlaceholderName reports whether name was generated for a placeholder
func IsPlaceholderName(name string) bool {
	return strings.HasPrefix(name, PlaceholderPrefix)
}

// IsPlaceholder returns true for auto-inserted filler slots
func (s *Slot) IsPlaceholder() bool {
	return s.placeholder
}

// GetName returns the slot name
func (s *Slot) GetName() string {
	return s.Name
}

// SetName renames the slot. Uniqueness is enforced by the owning bar.
func (s *Slot) SetName(name string) {
	s.Name = name
}

// Overlay returns overlay text and image path
func (s *Slot) Overlay() (string, string) {
	return s.OverlayText, s.OverlayImage
}

// SetOverlay sets overlay text and image path
func (s *Slot) SetOverlay(text, image string) {
	s.OverlayText = text
	s.OverlayImage = image
}

// CanEnlarge returns true if the slot may be presented full size
func (s *Slot) CanEnlarge() bool {
	return !s.placeholder && s.Enabled
}

// Spec returns the persistable part of the slot
func (s *Slot) Spec() SlotSpec {
	return SlotSpec{
		Name:         s.Name,
		Recipe:       s.Recipe,
		OverlayText:  s.OverlayText,
		OverlayImage: s.OverlayImage,
	}
}

// GetDisplayTitle returns overlay text, falling back to the slot name
func (s *Slot) GetDisplayTitle() string {
	if s.placeholder {
		return ""
	}
	if t := strings.TrimSpace(s.OverlayText); t != "" {
		return t
	}
	return s.Name
}

var (
	_ Nameable    = (*Slot)(nil)
	_ Overlayable = (*Slot)(nil)
	_ Enlargeable = (*Slot)(nil)
)

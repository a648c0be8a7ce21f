package bar

import (
	"fmt"
	"log"

	"github.com/ytget/popupbar/internal/model"
)

// MinSlots is the number of entries a bar always shows. Missing real slots
// are filled with placeholders.
const MinSlots = 2

// EventKind identifies a bar change
type EventKind int

const (
	EventInserted EventKind = iota
	EventRemoved
	EventMoved
	EventDetached
	EventReattached
	EventSettingsChanged
)

// String returns a short name for logging
func (k EventKind) String() string {
	switch k {
	case EventInserted:
		return "inserted"
	case EventRemoved:
		return "removed"
	case EventMoved:
		return "moved"
	case EventDetached:
		return "detached"
	case EventReattached:
		return "reattached"
	case EventSettingsChanged:
		return "settings"
	default:
		return "unknown"
	}
}

// Event describes a single change of a bar. Slot is nil for settings changes.
type Event struct {
	Kind EventKind
	Slot *model.Slot
}

// Bar is an ordered container of slots. It exclusively owns its slots and
// keeps their indices contiguous from zero.
type Bar struct {
	slots    []*model.Slot
	settings model.Settings

	// detached is the slot currently presented outside the layout flow; a
	// spacer is drawn at its index
	detached *model.Slot

	// mainHint names the slot that was the main view before a conversion
	// to a mode without a host
	mainHint string

	listeners []func(Event)
}

// New creates an empty bar (holding placeholders) with the given settings
func New(settings model.Settings) *Bar {
	b := &Bar{settings: settings.Normalized()}
	b.ensureMinimum()
	return b
}

// Subscribe registers a listener for bar changes
func (b *Bar) Subscribe(fn func(Event)) {
	if fn != nil {
		b.listeners = append(b.listeners, fn)
	}
}

// Settings returns a copy of the bar settings
func (b *Bar) Settings() model.Settings {
	return b.settings.Clone()
}

// SetSettings replaces the bar settings. The display mode of a bar is fixed
// at construction; use the display mode adapter to change it.
func (b *Bar) SetSettings(s model.Settings) {
	mode := b.settings.DisplayMode
	b.settings = s.Normalized()
	b.settings.DisplayMode = mode
	b.notify(Event{Kind: EventSettingsChanged})
}

// Direction returns the screen edge the bar hugs
func (b *Bar) Direction() model.Direction {
	return b.settings.Direction
}

// DisplayMode returns the rendering strategy of the bar
func (b *Bar) DisplayMode() model.DisplayMode {
	return b.settings.DisplayMode
}

// MainHint returns the name of the slot that should become the main view
// again when converting back to a mode with a host
func (b *Bar) MainHint() string {
	return b.mainHint
}

// SetMainHint records the main view slot name (empty clears it)
func (b *Bar) SetMainHint(name string) {
	b.mainHint = name
}

// Len returns the number of entries including placeholders
func (b *Bar) Len() int {
	return len(b.slots)
}

// RealLen returns the number of non-placeholder slots
func (b *Bar) RealLen() int {
	n := 0
	for _, s := range b.slots {
		if !s.IsPlaceholder() {
			n++
		}
	}
	return n
}

// Widgets returns the ordered entries including placeholders. The returned
// slice is a copy; the slots are not.
func (b *Bar) Widgets() []*model.Slot {
	out := make([]*model.Slot, len(b.slots))
	copy(out, b.slots)
	return out
}

// RealSlots returns the ordered non-placeholder slots
func (b *Bar) RealSlots() []*model.Slot {
	out := make([]*model.Slot, 0, len(b.slots))
	for _, s := range b.slots {
		if !s.IsPlaceholder() {
			out = append(out, s)
		}
	}
	return out
}

// Specs returns the persistable specs of all real slots in order
func (b *Bar) Specs() []model.SlotSpec {
	slots := b.RealSlots()
	specs := make([]model.SlotSpec, 0, len(slots))
	for _, s := range slots {
		specs = append(specs, s.Spec())
	}
	return specs
}

// Find returns the slot with the given name
func (b *Bar) Find(name string) (*model.Slot, bool) {
	for _, s := range b.slots {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// At returns the entry at index i
func (b *Bar) At(i int) (*model.Slot, bool) {
	if i < 0 || i >= len(b.slots) {
		return nil, false
	}
	return b.slots[i], true
}

// Contains reports whether slot is owned by this bar
func (b *Bar) Contains(slot *model.Slot) bool {
	return slot != nil && b.position(slot) >= 0
}

// Insert places slot at index, shifting later slots up by one. Valid indices
// are [0, Len()]; positions past the real slots are clamped in front of the
// placeholders.
func (b *Bar) Insert(index int, slot *model.Slot) error {
	if slot == nil {
		return fmt.Errorf("insert: nil slot")
	}
	if slot.IsPlaceholder() {
		return fmt.Errorf("insert: %w", model.ErrPlaceholderSlot)
	}
	if index < 0 || index > len(b.slots) {
		return &model.IndexError{Op: "insert", Index: index, Max: len(b.slots)}
	}
	if _, exists := b.Find(slot.Name); exists {
		return &model.DuplicateNameError{Name: slot.Name}
	}

	if n := b.RealLen(); index > n {
		index = n
	}

	b.slots = append(b.slots, nil)
	copy(b.slots[index+1:], b.slots[index:])
	b.slots[index] = slot
	b.reindex()
	b.ensureMinimum()

	b.notify(Event{Kind: EventInserted, Slot: slot})
	return nil
}

// Append inserts slot after the last real slot
func (b *Bar) Append(slot *model.Slot) error {
	return b.Insert(b.RealLen(), slot)
}

// Remove takes slot out of the bar and re-indexes the remaining slots.
// Placeholders cannot be removed.
func (b *Bar) Remove(slot *model.Slot) error {
	if slot == nil {
		return fmt.Errorf("remove: nil slot")
	}
	if slot.IsPlaceholder() {
		return fmt.Errorf("remove %q: %w", slot.Name, model.ErrPlaceholderSlot)
	}
	pos := b.position(slot)
	if pos < 0 {
		return fmt.Errorf("remove %q: %w", slot.Name, model.ErrSlotNotFound)
	}

	if b.detached == slot {
		log.Printf("Bar: removing detached slot %q", slot.Name)
		b.detached = nil
	}

	b.slots = append(b.slots[:pos], b.slots[pos+1:]...)
	b.reindex()
	b.ensureMinimum()

	b.notify(Event{Kind: EventRemoved, Slot: slot})
	return nil
}

// RemoveByName removes the slot with the given name
func (b *Bar) RemoveByName(name string) (*model.Slot, error) {
	slot, ok := b.Find(name)
	if !ok {
		return nil, fmt.Errorf("remove %q: %w", name, model.ErrSlotNotFound)
	}
	return slot, b.Remove(slot)
}

// MoveTo moves slot to newIndex among the real slots
func (b *Bar) MoveTo(slot *model.Slot, newIndex int) error {
	if slot == nil {
		return fmt.Errorf("move: nil slot")
	}
	if slot.IsPlaceholder() {
		return fmt.Errorf("move %q: %w", slot.Name, model.ErrPlaceholderSlot)
	}
	pos := b.position(slot)
	if pos < 0 {
		return fmt.Errorf("move %q: %w", slot.Name, model.ErrSlotNotFound)
	}
	n := b.RealLen()
	if newIndex < 0 || newIndex >= n {
		return &model.IndexError{Op: "move", Index: newIndex, Max: n - 1}
	}
	if pos == newIndex {
		return nil
	}

	b.slots = append(b.slots[:pos], b.slots[pos+1:]...)
	b.slots = append(b.slots, nil)
	copy(b.slots[newIndex+1:], b.slots[newIndex:])
	b.slots[newIndex] = slot
	b.reindex()

	b.notify(Event{Kind: EventMoved, Slot: slot})
	return nil
}

// Clear removes every real slot
func (b *Bar) Clear() {
	for _, s := range b.RealSlots() {
		if err := b.Remove(s); err != nil {
			log.Printf("Bar: clear failed for %q: %v", s.Name, err)
		}
	}
}

// Detach marks slot as presented outside the layout flow. At most one slot
// is detached at any time.
func (b *Bar) Detach(slot *model.Slot) error {
	if !b.Contains(slot) {
		return fmt.Errorf("detach: %w", model.ErrSlotNotFound)
	}
	if b.detached == slot {
		return nil
	}
	if b.detached != nil {
		b.Reattach()
	}
	b.detached = slot
	b.notify(Event{Kind: EventDetached, Slot: slot})
	return nil
}

// Reattach returns the detached slot (if any) to the layout flow
func (b *Bar) Reattach() *model.Slot {
	slot := b.detached
	if slot == nil {
		return nil
	}
	b.detached = nil
	b.notify(Event{Kind: EventReattached, Slot: slot})
	return slot
}

// Detached returns the slot currently presented outside the layout flow
func (b *Bar) Detached() *model.Slot {
	return b.detached
}

// IsDetached reports whether slot is the detached slot
func (b *Bar) IsDetached(slot *model.Slot) bool {
	return slot != nil && b.detached == slot
}

func (b *Bar) position(slot *model.Slot) int {
	for i, s := range b.slots {
		if s == slot {
			return i
		}
	}
	return -1
}

// ensureMinimum keeps placeholders at the end so that the bar shows at
// least MinSlots entries, and drops placeholders that are no longer needed
func (b *Bar) ensureMinimum() {
	slots := b.RealSlots()
	want := MinSlots - len(slots)
	if want < 0 {
		want = 0
	}

	placeholders := make([]*model.Slot, 0, want)
	for _, s := range b.slots {
		if s.IsPlaceholder() && len(placeholders) < want {
			placeholders = append(placeholders, s)
		}
	}
	for len(placeholders) < want {
		placeholders = append(placeholders, model.NewPlaceholderSlot())
	}

	b.slots = append(slots, placeholders...)
	b.reindex()
}

func (b *Bar) reindex() {
	for i, s := range b.slots {
		s.Index = i
	}
}

func (b *Bar) notify(ev Event) {
	for _, fn := range b.listeners {
		fn(ev)
	}
}

// Package mainview tracks which slot is shown in the host's main view and
// which one was shown before it.
package mainview

import (
	"fmt"
	"log"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/model"
)

// MaxHotkey is the highest number key that promotes a bar slot
const MaxHotkey = 5

// Controller owns the current and previous main view slots of one bar. The
// current slot lives outside the bar; the previous one is back in the bar.
type Controller struct {
	bar *bar.Bar

	current  *model.Slot
	previous *model.Slot
	// recorded is the bar index current was taken from
	recorded int

	// mutating is set while the controller edits the bar itself so that its
	// own removals are not mistaken for user deletions
	mutating bool

	onChange  func(current, previous *model.Slot)
	onVacated func(old, successor *model.Slot)
}

// NewController creates a controller with no current slot
func NewController(b *bar.Bar) *Controller {
	c := &Controller{}
	c.SetBar(b)
	return c
}

// SetChangeCallback sets the callback invoked whenever current changes
func (c *Controller) SetChangeCallback(fn func(current, previous *model.Slot)) {
	c.onChange = fn
}

// SetVacatedCallback sets the callback invoked when the current slot was
// deleted and a successor was picked
func (c *Controller) SetVacatedCallback(fn func(old, successor *model.Slot)) {
	c.onVacated = fn
}

// SetBar binds the controller to b. The previous slot belonged to the old
// bar and is forgotten; the current slot is kept.
func (c *Controller) SetBar(b *bar.Bar) {
	if c.bar == b {
		return
	}
	c.bar = b
	c.previous = nil
	if b == nil {
		return
	}
	b.Subscribe(func(ev bar.Event) {
		if c.bar != b || c.mutating {
			return
		}
		if ev.Kind == bar.EventRemoved && ev.Slot != nil && ev.Slot == c.previous {
			log.Printf("MainView: previous slot %q was removed", ev.Slot.Name)
			c.previous = nil
		}
	})
}

// Current returns the main view slot, or nil
func (c *Controller) Current() *model.Slot {
	return c.current
}

// Previous returns the slot shown before the current one, or nil
func (c *Controller) Previous() *model.Slot {
	return c.previous
}

// RecordedIndex returns the bar index the current slot returns to
func (c *Controller) RecordedIndex() int {
	return c.recorded
}

// Adopt installs slot as current without touching the bar. It is used when
// a collection is loaded or a bar is converted and the slot is already
// outside of it.
func (c *Controller) Adopt(slot *model.Slot, index int) {
	c.current = slot
	c.previous = nil
	c.recorded = index
	c.changed()
}

// SetCurrent moves slot from the bar into the main view. A current slot is
// put back into the bar at the index it was taken from and becomes the
// previous slot.
func (c *Controller) SetCurrent(slot *model.Slot) error {
	if slot == nil {
		return fmt.Errorf("set current: nil slot")
	}
	if slot == c.current {
		return nil
	}
	if slot.IsPlaceholder() {
		return fmt.Errorf("set current %q: %w", slot.Name, model.ErrPlaceholderSlot)
	}
	if c.bar == nil || !c.bar.Contains(slot) {
		return fmt.Errorf("set current %q: %w", slot.Name, model.ErrSlotNotFound)
	}

	c.mutating = true
	defer func() { c.mutating = false }()

	index := slot.Index
	if err := c.bar.Remove(slot); err != nil {
		return fmt.Errorf("set current %q: %w", slot.Name, err)
	}

	old := c.current
	if old != nil {
		at := c.recorded
		if n := c.bar.RealLen(); at > n {
			at = n
		}
		if at < 0 {
			at = 0
		}
		if err := c.bar.Insert(at, old); err != nil {
			// undo so the bar keeps every slot
			if undoErr := c.bar.Insert(index, slot); undoErr != nil {
				log.Printf("MainView: restoring %q at %d failed: %v", slot.Name, index, undoErr)
			}
			return fmt.Errorf("set current %q: returning %q: %w", slot.Name, old.Name, err)
		}
	}

	c.previous = old
	c.current = slot
	c.recorded = index
	log.Printf("MainView: current=%q previous=%q", slot.Name, nameOf(old))
	c.changed()
	return nil
}

// Swap makes the previous slot current again. It returns false when there
// is nothing to swap with.
func (c *Controller) Swap() bool {
	if c.previous == nil {
		return false
	}
	if err := c.SetCurrent(c.previous); err != nil {
		log.Printf("MainView: swap failed: %v", err)
		return false
	}
	return true
}

// Hotkey promotes the n-th bar slot (1-based). Out of range keys and empty
// positions are ignored.
func (c *Controller) Hotkey(n int) bool {
	if c.bar == nil || n < 1 || n > MaxHotkey {
		return false
	}
	slots := c.bar.RealSlots()
	if n > len(slots) {
		return false
	}
	if err := c.SetCurrent(slots[n-1]); err != nil {
		log.Printf("MainView: hotkey %d: %v", n, err)
		return false
	}
	return true
}

// Vacate drops the current slot (it was deleted) and promotes a successor:
// the previous slot if any, else the first slot of the bar. It returns the
// new current slot, which is nil when the bar holds no real slots.
func (c *Controller) Vacate() *model.Slot {
	old := c.current
	if old == nil {
		return nil
	}
	c.current = nil
	c.recorded = 0

	successor := c.previous
	c.previous = nil
	if successor == nil || !c.bar.Contains(successor) {
		successor = nil
		if slots := c.bar.RealSlots(); len(slots) > 0 {
			successor = slots[0]
		}
	}

	if successor != nil {
		if err := c.SetCurrent(successor); err != nil {
			log.Printf("MainView: promoting successor %q failed: %v", successor.Name, err)
			successor = nil
		}
	}
	if successor == nil {
		c.changed()
	}

	log.Printf("MainView: %q vacated, successor=%q", old.Name, nameOf(successor))
	if c.onVacated != nil {
		c.onVacated(old, successor)
	}
	return successor
}

// Release puts the current slot back into the bar and clears the main view
func (c *Controller) Release() error {
	old := c.current
	if old == nil {
		return nil
	}
	c.mutating = true
	defer func() { c.mutating = false }()

	at := c.recorded
	if n := c.bar.RealLen(); at > n {
		at = n
	}
	if err := c.bar.Insert(at, old); err != nil {
		return fmt.Errorf("release %q: %w", old.Name, err)
	}
	c.current = nil
	c.previous = nil
	c.recorded = 0
	c.changed()
	return nil
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.current, c.previous)
	}
}

func nameOf(s *model.Slot) string {
	if s == nil {
		return ""
	}
	return s.Name
}

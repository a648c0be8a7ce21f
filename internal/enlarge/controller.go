package enlarge

import (
	"log"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/model"
)

// State of the enlarge state machine
type State int

const (
	StateCollapsed State = iota
	StateEnlarging
	StateEnlarged
	StateClosing
)

// String returns the state name for logging
func (s State) String() string {
	switch s {
	case StateCollapsed:
		return "COLLAPSED"
	case StateEnlarging:
		return "ENLARGING"
	case StateEnlarged:
		return "ENLARGED"
	case StateClosing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}

// Presenter performs the toolkit side of a transition
type Presenter interface {
	// ShowSpacer swaps slot for a spacer of the same size in the bar layout
	ShowSpacer(slot *model.Slot)
	// Present shows slot borderless and always on top at rect
	Present(slot *model.Slot, rect Rect)
	// Restore hides the floating presentation and puts slot back in place
	// of its spacer
	Restore(slot *model.Slot)
}

// Scheduler runs fn in a later event loop turn, never synchronously
type Scheduler interface {
	Post(fn func())
}

// Promoter makes a slot the main-viewed slot
type Promoter interface {
	SetCurrent(slot *model.Slot) error
}

// Controller is the enlarge state machine of one bar. All guards live here;
// the toolkit only forwards events.
type Controller struct {
	bar       *bar.Bar
	presenter Presenter
	scheduler Scheduler
	promoter  Promoter

	hostRect func() Rect
	barRect  func() Rect

	state    State
	enlarged *model.Slot

	frozen    bool
	freezeGen int
	dragging  bool
	popupOpen bool

	onChange func(State, *model.Slot)
}

// NewController creates a collapsed controller for b
func NewController(b *bar.Bar, presenter Presenter, scheduler Scheduler) *Controller {
	c := &Controller{
		presenter: presenter,
		scheduler: scheduler,
	}
	c.SetBar(b)
	return c
}

// SetPromoter sets the collaborator used by the swap key
func (c *Controller) SetPromoter(p Promoter) {
	c.promoter = p
}

// SetRects sets the rectangle providers used by the geometry functions
func (c *Controller) SetRects(host, barRect func() Rect) {
	c.hostRect = host
	c.barRect = barRect
}

// SetChangeCallback sets the callback invoked after every settled transition
func (c *Controller) SetChangeCallback(fn func(State, *model.Slot)) {
	c.onChange = fn
}

// SetBar closes any enlargement and binds the controller to b
func (c *Controller) SetBar(b *bar.Bar) {
	if c.bar == b {
		return
	}
	c.Close()
	c.bar = b
	if b == nil {
		return
	}
	b.Subscribe(func(ev bar.Event) {
		if c.bar != b {
			return
		}
		if ev.Kind == bar.EventRemoved && ev.Slot != nil && ev.Slot == c.enlarged {
			c.abandon()
		}
	})
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Enlarged returns the enlarged slot, or nil
func (c *Controller) Enlarged() *model.Slot {
	return c.enlarged
}

// IsFrozen reports whether enter events are currently dropped
func (c *Controller) IsFrozen() bool {
	return c.frozen
}

// IsDragging reports whether a drag is in progress
func (c *Controller) IsDragging() bool {
	return c.dragging
}

// IsPopupOpen reports whether a sub-menu of the enlarged slot is open
func (c *Controller) IsPopupOpen() bool {
	return c.popupOpen
}

// HoverEnter handles the pointer entering a collapsed slot. Hover events
// are dropped while a drag is in progress.
func (c *Controller) HoverEnter(name string) bool {
	if c.dragging {
		return false
	}
	return c.enter(name)
}

// DragStart sets the dragging guard. It stays set until DragEnd.
func (c *Controller) DragStart() {
	c.dragging = true
}

// DragEnter handles a drag entering a collapsed slot
func (c *Controller) DragEnter(name string) bool {
	c.dragging = true
	return c.enter(name)
}

// DragLeave handles a drag leaving the enlarged slot. target names the slot
// under the pointer, empty when none.
func (c *Controller) DragLeave(target string) {
	if c.state != StateEnlarged {
		return
	}
	if c.enlarged != nil && target == c.enlarged.Name {
		return
	}
	if slot, ok := c.bar.Find(target); ok && slot.CanEnlarge() {
		c.DragEnter(target)
		return
	}
	c.Close()
}

// DragEnd clears the dragging guard
func (c *Controller) DragEnd() {
	c.dragging = false
}

// PointerLeave handles the pointer leaving the enlarged slot or the bar.
// The enlargement closes only when the pointer is over neither of them and
// no sub-menu is open.
func (c *Controller) PointerLeave(overEnlarged, overBar bool) {
	if c.state != StateEnlarged {
		return
	}
	if c.popupOpen {
		log.Printf("Enlarge: keeping %q open while sub-menu is shown", c.enlarged.Name)
		return
	}
	if overEnlarged || overBar {
		return
	}
	c.Close()
}

// Escape closes the enlargement
func (c *Controller) Escape() {
	c.Close()
}

// Swap promotes the enlarged slot to the main view. It returns false when
// nothing is enlarged so the caller can fall back to a plain swap.
func (c *Controller) Swap() bool {
	if c.state != StateEnlarged || c.enlarged == nil {
		return false
	}
	slot := c.enlarged
	c.Close()
	if c.promoter == nil {
		return true
	}
	if err := c.promoter.SetCurrent(slot); err != nil {
		log.Printf("Enlarge: promoting %q failed: %v", slot.Name, err)
	}
	return true
}

// PopupOpened suppresses pointer-leave closing until PopupClosed
func (c *Controller) PopupOpened() {
	if c.state == StateEnlarged {
		c.popupOpen = true
	}
}

// PopupClosed re-enables pointer-leave closing
func (c *Controller) PopupClosed() {
	c.popupOpen = false
}

// Close ends the current enlargement. Calling it when nothing is enlarged
// is a no-op.
func (c *Controller) Close() {
	if c.state != StateEnlarged || c.enlarged == nil {
		return
	}
	slot := c.enlarged
	c.state = StateClosing
	c.freeze()

	c.presenter.Restore(slot)
	c.bar.Reattach()

	c.enlarged = nil
	c.popupOpen = false
	c.state = StateCollapsed
	log.Printf("Enlarge: closed %q", slot.Name)
	c.changed()
}

// Relayout recomputes the enlarged geometry, e.g. after a resize
func (c *Controller) Relayout() {
	if c.state != StateEnlarged || c.enlarged == nil {
		return
	}
	c.presenter.Present(c.enlarged, c.geometry())
}

func (c *Controller) enter(name string) bool {
	if c.frozen {
		log.Printf("Enlarge: dropping re-entrant enter for %q", name)
		return false
	}
	if c.state == StateEnlarged {
		if c.enlarged != nil && c.enlarged.Name == name {
			return true
		}
		slot, ok := c.bar.Find(name)
		if !ok || !slot.CanEnlarge() {
			return false
		}
		// direct switch: close and enlarge in the same turn
		c.Close()
	}
	if c.state != StateCollapsed {
		return false
	}
	return c.enlarge(name)
}

func (c *Controller) enlarge(name string) bool {
	c.state = StateEnlarging

	slot, ok := c.bar.Find(name)
	if !ok {
		log.Printf("Enlarge: slot %q not found, aborting", name)
		c.state = StateCollapsed
		return false
	}
	if !slot.CanEnlarge() {
		c.state = StateCollapsed
		return false
	}
	if err := c.bar.Detach(slot); err != nil {
		log.Printf("Enlarge: detaching %q failed: %v", name, err)
		c.state = StateCollapsed
		return false
	}

	c.freeze()
	c.presenter.ShowSpacer(slot)
	c.presenter.Present(slot, c.geometry())

	c.enlarged = slot
	c.state = StateEnlarged
	log.Printf("Enlarge: enlarged %q", name)
	c.changed()
	return true
}

// abandon resets the machine after the enlarged slot was deleted
func (c *Controller) abandon() {
	slot := c.enlarged
	if slot == nil {
		return
	}
	log.Printf("Enlarge: enlarged slot %q was removed", slot.Name)
	c.presenter.Restore(slot)
	c.enlarged = nil
	c.popupOpen = false
	c.state = StateCollapsed
	c.changed()
}

// freeze drops enter events until a later turn. Each freeze schedules its
// own release; only the latest one clears the flag.
func (c *Controller) freeze() {
	c.frozen = true
	c.freezeGen++
	gen := c.freezeGen
	c.scheduler.Post(func() {
		if c.freezeGen == gen {
			c.frozen = false
		}
	})
}

func (c *Controller) geometry() Rect {
	settings := c.bar.Settings()
	var r Rect
	if settings.DisplayMode == model.ModeStandaloneTaskbar {
		if c.barRect != nil {
			r = c.barRect()
		}
	} else if c.hostRect != nil {
		r = c.hostRect()
	}
	return Geometry(settings, r, c.bar.Len())
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.state, c.enlarged)
	}
}

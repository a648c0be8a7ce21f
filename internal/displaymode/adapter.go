// Package displaymode converts a bar between the PIP, PIP TASKBAR and
// STANDALONE TASKBAR rendering strategies.
package displaymode

import (
	"fmt"
	"log"

	"github.com/jinzhu/copier"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/model"
)

// Closer force-closes an enlargement before a conversion
type Closer interface {
	Close()
}

// Result is the outcome of a conversion
type Result struct {
	Bar *bar.Bar
	// Current is the main view slot of the new bar. It is always nil for
	// modes without a host view.
	Current      *model.Slot
	CurrentIndex int
}

// Adapter builds a new bar for a target display mode and migrates slots,
// the main view slot and settings into it
type Adapter struct {
	closer Closer
}

// NewAdapter creates an adapter. closer may be nil.
func NewAdapter(closer Closer) *Adapter {
	return &Adapter{closer: closer}
}

// Convert moves every slot of src into a new bar for mode to. current is
// the slot in the host's main view (if any) and currentIndex the bar index
// it came from. src is left empty.
func (a *Adapter) Convert(src *bar.Bar, current *model.Slot, currentIndex int, from, to model.DisplayMode) (Result, error) {
	if src == nil {
		return Result{}, fmt.Errorf("convert: nil bar")
	}
	if !from.IsValid() || !to.IsValid() {
		return Result{}, fmt.Errorf("convert %q to %q: %w", from, to, model.ErrModeMismatch)
	}
	if src.DisplayMode() != from {
		return Result{}, fmt.Errorf("convert: bar is %q, not %q: %w", src.DisplayMode(), from, model.ErrModeMismatch)
	}

	if a.closer != nil {
		a.closer.Close()
	}
	src.Reattach()

	if from == to {
		return Result{Bar: src, Current: current, CurrentIndex: currentIndex}, nil
	}

	settings, err := copySettings(src.Settings())
	if err != nil {
		return Result{}, fmt.Errorf("convert: %w", err)
	}
	dst := bar.New(settings.ForMode(to))

	for _, slot := range src.RealSlots() {
		if err := src.Remove(slot); err != nil {
			return Result{}, fmt.Errorf("convert: %w", err)
		}
		if err := dst.Append(slot); err != nil {
			return Result{}, fmt.Errorf("convert: %w", err)
		}
	}

	res := Result{Bar: dst}
	switch {
	case from.HasHost() && !to.HasHost():
		// no host view: the main view slot joins the bar and is remembered
		if current != nil {
			at := clamp(currentIndex, dst.RealLen())
			if err := dst.Insert(at, current); err != nil {
				return Result{}, fmt.Errorf("convert: main view slot %q: %w", current.Name, err)
			}
			dst.SetMainHint(current.Name)
		}
	case !from.HasHost() && to.HasHost():
		res.Current, res.CurrentIndex = restoreMain(dst, src.MainHint())
	default:
		res.Current = current
		res.CurrentIndex = currentIndex
	}

	log.Printf("DisplayMode: converted %d slots from %q to %q", dst.RealLen(), from, to)
	return res, nil
}

// restoreMain takes the hinted slot back out of b
func restoreMain(b *bar.Bar, hint string) (*model.Slot, int) {
	if hint == "" {
		return nil, 0
	}
	slot, ok := b.Find(hint)
	if !ok {
		log.Printf("DisplayMode: main view slot %q no longer exists", hint)
		return nil, 0
	}
	index := slot.Index
	if err := b.Remove(slot); err != nil {
		log.Printf("DisplayMode: restoring main view slot %q failed: %v", hint, err)
		return nil, 0
	}
	return slot, index
}

func copySettings(src model.Settings) (model.Settings, error) {
	var dst model.Settings
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		return model.Settings{}, fmt.Errorf("copy settings: %w", err)
	}
	return dst, nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

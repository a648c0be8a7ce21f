package bar

import (
	"fmt"
	"log"

	"github.com/ytget/popupbar/internal/model"
)

// DropPosition says on which side of the target a dragged slot lands
type DropPosition int

const (
	DropBefore DropPosition = iota
	DropAfter
)

// Reorderer recomputes slot indices after a drag-and-drop move
type Reorderer struct {
	bar *Bar
}

// NewReorderer creates a reorder controller for b
func NewReorderer(b *Bar) *Reorderer {
	return &Reorderer{bar: b}
}

// SetBar rebinds the controller after a display mode conversion
func (r *Reorderer) SetBar(b *Bar) {
	r.bar = b
}

// Drop moves the dragged slot next to target. Drops on invalid targets (a
// placeholder, the spacer of the detached slot, the dragged slot itself or
// an unknown name) are ignored and return moved=false without error.
func (r *Reorderer) Drop(dragged, target string, pos DropPosition) (bool, error) {
	src, ok := r.bar.Find(dragged)
	if !ok {
		return false, fmt.Errorf("drop %q: %w", dragged, model.ErrSlotNotFound)
	}
	if !src.Draggable || src.IsPlaceholder() {
		log.Printf("Reorder: slot %q is not draggable", dragged)
		return false, nil
	}

	dst, ok := r.bar.Find(target)
	if !ok || dst == src || dst.IsPlaceholder() || r.bar.IsDetached(dst) {
		log.Printf("Reorder: ignoring drop of %q on invalid target %q", dragged, target)
		return false, nil
	}

	newIndex := dst.Index
	if pos == DropAfter {
		newIndex++
	}
	// removing src first shifts every later slot down by one
	if src.Index < newIndex {
		newIndex--
	}
	if newIndex == src.Index {
		return false, nil
	}

	if err := r.bar.MoveTo(src, newIndex); err != nil {
		return false, err
	}
	log.Printf("Reorder: moved %q to index %d", dragged, newIndex)
	return true, nil
}

// DropAt moves the dragged slot to an absolute index among real slots.
// Indices past the end are clamped to the last position.
func (r *Reorderer) DropAt(dragged string, index int) (bool, error) {
	src, ok := r.bar.Find(dragged)
	if !ok {
		return false, fmt.Errorf("drop %q: %w", dragged, model.ErrSlotNotFound)
	}
	if !src.Draggable || src.IsPlaceholder() {
		return false, nil
	}
	if last := r.bar.RealLen() - 1; index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	if index == src.Index {
		return false, nil
	}
	if err := r.bar.MoveTo(src, index); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyOrder reorders the bar to follow names, the order kept by an
// external item store. Unknown names are skipped; slots missing from names
// keep their relative order after the listed ones.
func (r *Reorderer) ApplyOrder(names []string) error {
	next := 0
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		slot, ok := r.bar.Find(name)
		if !ok || slot.IsPlaceholder() {
			continue
		}
		if err := r.bar.MoveTo(slot, next); err != nil {
			return fmt.Errorf("apply order: %w", err)
		}
		next++
	}
	return nil
}

package ui

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/model"
)

// DragTracker follows one pointer drag over the bar. Fyne delivers every
// Dragged event to the object where the drag began, so the tracker keeps the
// source and resolves targets from absolute positions.
type DragTracker struct {
	threshold float32

	source  string
	start   fyne.Position
	current fyne.Position
	pressed bool
	active  bool
}

// NewDragTracker creates a tracker with the default threshold
func NewDragTracker() *DragTracker {
	return &DragTracker{threshold: DefaultDragThreshold}
}

// Move records a drag step of source at the absolute position pos. It
// returns true exactly once per drag, when the pointer has travelled far
// enough for the press to count as a drag.
func (t *DragTracker) Move(source string, pos fyne.Position) bool {
	if !t.pressed {
		t.pressed = true
		t.source = source
		t.start = pos
	}
	t.current = pos
	if t.active {
		return false
	}

	dx := pos.X - t.start.X
	dy := pos.Y - t.start.Y
	if dx*dx+dy*dy < t.threshold*t.threshold {
		return false
	}
	t.active = true
	return true
}

// Active reports whether a drag passed the threshold and has not ended
func (t *DragTracker) Active() bool {
	return t.active
}

// Source returns the name of the dragged slot
func (t *DragTracker) Source() string {
	return t.source
}

// Position returns the last absolute pointer position
func (t *DragTracker) Position() fyne.Position {
	return t.current
}

// End finishes the drag and reports what it was
func (t *DragTracker) End() (source string, pos fyne.Position, wasActive bool) {
	source, pos, wasActive = t.source, t.current, t.active
	*t = DragTracker{threshold: t.threshold}
	return source, pos, wasActive
}

// tileBounds is the absolute rectangle of one object shown for a slot
type tileBounds struct {
	name string
	pos  fyne.Position
	size fyne.Size
}

func (b tileBounds) contains(p fyne.Position) bool {
	return p.X >= b.pos.X && p.X < b.pos.X+b.size.Width &&
		p.Y >= b.pos.Y && p.Y < b.pos.Y+b.size.Height
}

// hitTest returns the first slot whose bounds contain p
func hitTest(bounds []tileBounds, p fyne.Position) (string, bool) {
	for _, b := range bounds {
		if b.contains(p) {
			return b.name, true
		}
	}
	return "", false
}

// dropPosition decides on which side of target a drop lands, along the
// main axis of a bar on edge dir
func dropPosition(dir model.Direction, target tileBounds, p fyne.Position) bar.DropPosition {
	if dir.IsVertical() {
		if p.Y < target.pos.Y+target.size.Height/2 {
			return bar.DropBefore
		}
		return bar.DropAfter
	}
	if p.X < target.pos.X+target.size.Width/2 {
		return bar.DropBefore
	}
	return bar.DropAfter
}

// gapIndex returns the bar index for a drop that lands inside area but on
// no tile: the number of tiles whose centre lies before p along the main
// axis of a bar on edge dir.
func gapIndex(dir model.Direction, area tileBounds, tiles []tileBounds, p fyne.Position) (int, bool) {
	if !area.contains(p) {
		return 0, false
	}
	if _, hit := hitTest(tiles, p); hit {
		return 0, false
	}
	index := 0
	for _, t := range tiles {
		if dir.IsVertical() {
			if t.pos.Y+t.size.Height/2 < p.Y {
				index++
			}
			continue
		}
		if t.pos.X+t.size.Width/2 < p.X {
			index++
		}
	}
	return index, true
}

package enlarge

import "github.com/ytget/popupbar/internal/model"

// Rect is a screen rectangle in device independent pixels
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a rectangle
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Contains reports whether the point lies inside r
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// DirectionBias is the share of half the negative space by which a PiP
// enlargement is pushed toward the bar's edge
const DirectionBias = 0.5

// DefaultTaskbarMargin is the cross-axis inset of a standalone taskbar
// enlargement
const DefaultTaskbarMargin = 10.0

// PiPRect returns where an enlarged slot is shown in PIP style modes: the
// host rectangle scaled by scale, inset by half the negative space and
// biased toward the bar's direction.
func PiPRect(host Rect, dir model.Direction, scale float64) Rect {
	if scale <= 0 || scale > 1 {
		scale = model.DefaultEnlargedScale
	}
	w := host.W * scale
	h := host.H * scale
	freeX := host.W - w
	freeY := host.H - h

	x := host.X + freeX/2
	y := host.Y + freeY/2
	switch dir {
	case model.DirectionNorth:
		y -= freeY / 2 * DirectionBias
	case model.DirectionSouth:
		y += freeY / 2 * DirectionBias
	case model.DirectionWest:
		x -= freeX / 2 * DirectionBias
	case model.DirectionEast:
		x += freeX / 2 * DirectionBias
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// TaskbarRect returns where an enlarged slot is shown in standalone taskbar
// mode. The enlargement extends size pixels outward from the bar edge that
// faces away from dir, and spans the bar on the cross axis inset by margin.
// It never gets narrower than one slot cell of the bar.
func TaskbarRect(barRect Rect, dir model.Direction, size, margin float64, slotCount int) Rect {
	if size <= 0 {
		size = model.DefaultEnlargedSize
	}
	if margin < 0 {
		margin = 0
	}
	if slotCount < 1 {
		slotCount = 1
	}

	if dir.IsVertical() {
		cell := barRect.H / float64(slotCount)
		cross := barRect.H - 2*margin
		if cross < cell {
			cross = cell
		}
		y := barRect.Y + (barRect.H-cross)/2
		if dir == model.DirectionWest {
			return Rect{X: barRect.X + barRect.W, Y: y, W: size, H: cross}
		}
		return Rect{X: barRect.X - size, Y: y, W: size, H: cross}
	}

	cell := barRect.W / float64(slotCount)
	cross := barRect.W - 2*margin
	if cross < cell {
		cross = cell
	}
	x := barRect.X + (barRect.W-cross)/2
	if dir == model.DirectionNorth {
		return Rect{X: x, Y: barRect.Y + barRect.H, W: cross, H: size}
	}
	return Rect{X: x, Y: barRect.Y - size, W: cross, H: size}
}

// Geometry computes the enlarged rectangle for the bar's current mode.
// host is the host view (PIP modes) or the bar itself (standalone taskbar).
func Geometry(settings model.Settings, host Rect, slotCount int) Rect {
	if settings.DisplayMode == model.ModeStandaloneTaskbar {
		return TaskbarRect(host, settings.Direction, settings.EnlargedSize, DefaultTaskbarMargin, slotCount)
	}
	return PiPRect(host, settings.Direction, settings.EnlargedScale)
}

package ui

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/popupbar/internal/model"
)

// barThickness returns the bar's extent across its edge. PIP bars are a
// share of the window, taskbar bars a fixed pixel size.
func barThickness(s model.Settings, size fyne.Size) float32 {
	if s.DisplayMode.IsTaskbar() {
		return float32(s.TaskbarSize)
	}
	if s.Direction.IsVertical() {
		return size.Width * float32(s.Scale[0])
	}
	return size.Height * float32(s.Scale[1])
}

// barBounds places a bar of the given thickness on edge dir of an area
func barBounds(dir model.Direction, size fyne.Size, thick float32) (fyne.Position, fyne.Size) {
	switch dir {
	case model.DirectionNorth:
		return fyne.NewPos(0, 0), fyne.NewSize(size.Width, thick)
	case model.DirectionEast:
		return fyne.NewPos(size.Width-thick, 0), fyne.NewSize(thick, size.Height)
	case model.DirectionWest:
		return fyne.NewPos(0, 0), fyne.NewSize(thick, size.Height)
	default:
		return fyne.NewPos(0, size.Height-thick), fyne.NewSize(size.Width, thick)
	}
}

// hostBounds returns the main view area. In PIP mode the bar floats over
// the host; in PIP taskbar mode the host gives up the bar's strip.
func hostBounds(s model.Settings, size fyne.Size, thick float32) (fyne.Position, fyne.Size) {
	switch s.DisplayMode {
	case model.ModePiP:
		return fyne.NewPos(0, 0), size
	case model.ModePiPTaskbar:
		switch s.Direction {
		case model.DirectionNorth:
			return fyne.NewPos(0, thick), fyne.NewSize(size.Width, size.Height-thick)
		case model.DirectionEast:
			return fyne.NewPos(0, 0), fyne.NewSize(size.Width-thick, size.Height)
		case model.DirectionWest:
			return fyne.NewPos(thick, 0), fyne.NewSize(size.Width-thick, size.Height)
		default:
			return fyne.NewPos(0, 0), fyne.NewSize(size.Width, size.Height-thick)
		}
	}
	return fyne.NewPos(0, 0), fyne.NewSize(0, 0)
}

// areaLayout arranges the host view and the bar. Objects are host first,
// bar second. Every size change is reported to onResize.
type areaLayout struct {
	settings func() model.Settings
	onResize func(fyne.Size)
	last     fyne.Size
}

// Layout positions host and bar
func (l *areaLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	s := l.settings()
	thick := barThickness(s, size)

	host, barObj := objects[0], objects[1]
	pos, hs := hostBounds(s, size, thick)
	if s.DisplayMode.HasHost() {
		host.Show()
		host.Move(pos)
		host.Resize(hs)
	} else {
		host.Hide()
	}

	pos, bs := barBounds(s.Direction, size, thick)
	barObj.Move(pos)
	barObj.Resize(bs)

	if size != l.last {
		l.last = size
		if l.onResize != nil {
			l.onResize(size)
		}
	}
}

// MinSize returns the minimum area size
func (l *areaLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	s := l.settings()
	if s.DisplayMode.HasHost() {
		return fyne.NewSize(HostMinWidth, HostMinHeight)
	}
	thick := float32(s.TaskbarSize)
	if s.Direction.IsVertical() {
		return fyne.NewSize(thick, HostMinHeight)
	}
	return fyne.NewSize(HostMinWidth, thick)
}

// tileLayout lines tiles up along the bar. A zero cell shares the length
// evenly, otherwise every tile is a cell sized square.
type tileLayout struct {
	vertical bool
	cell     float32
}

// Layout positions the tiles
func (l *tileLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	n := len(objects)
	if n == 0 {
		return
	}

	length := size.Width
	cross := size.Height
	if l.vertical {
		length, cross = size.Height, size.Width
	}
	step := l.cell
	if step <= 0 {
		step = length / float32(n)
	}

	for i, o := range objects {
		offset := float32(i) * step
		if l.vertical {
			o.Move(fyne.NewPos(0, offset))
			o.Resize(fyne.NewSize(cross, step))
		} else {
			o.Move(fyne.NewPos(offset, 0))
			o.Resize(fyne.NewSize(step, cross))
		}
	}
}

// MinSize returns the minimum bar size
func (l *tileLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	cell := l.cell
	if cell <= 0 {
		cell = TileMinSize
	}
	length := cell * float32(len(objects))
	if l.vertical {
		return fyne.NewSize(cell, length)
	}
	return fyne.NewSize(length, cell)
}

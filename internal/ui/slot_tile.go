package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/model"
)

// SlotTile shows one slot in the bar or, while enlarged, above the window.
// Its content is the live panel widget built for the slot.
type SlotTile struct {
	widget.BaseWidget

	slot    *model.Slot
	content fyne.CanvasObject
	overlay fyne.CanvasObject

	// UI components
	background *canvas.Rectangle
	titleLabel *widget.Label
	surface    *tileSurface
	sensor     *hoverArea

	hovered   bool
	enlarged  bool
	compact   bool
	showTitle bool

	// Callbacks
	onHover   func(name string)
	onLeave   func(name string)
	onTap     func(name string)
	onMenu    func(name string, pos fyne.Position)
	onDragged func(name string, ev *fyne.DragEvent)
	onDragEnd func(name string)
}

// NewSlotTile creates a tile showing content for slot
func NewSlotTile(slot *model.Slot, content fyne.CanvasObject) *SlotTile {
	if content == nil {
		log.Printf("Warning: NewSlotTile called without content for slot %s", slot.Name)
		content = widget.NewLabel(slot.GetDisplayTitle())
	}

	t := &SlotTile{
		slot:      slot,
		content:   content,
		showTitle: true,
	}
	t.ExtendBaseWidget(t)
	t.createUI()
	return t
}

// SetCallbacks sets the event callbacks
func (t *SlotTile) SetCallbacks(
	onHover func(name string),
	onLeave func(name string),
	onTap func(name string),
	onMenu func(name string, pos fyne.Position),
	onDragged func(name string, ev *fyne.DragEvent),
	onDragEnd func(name string),
) {
	t.onHover = onHover
	t.onLeave = onLeave
	t.onTap = onTap
	t.onMenu = onMenu
	t.onDragged = onDragged
	t.onDragEnd = onDragEnd
}

// Slot returns the shown slot
func (t *SlotTile) Slot() *model.Slot {
	return t.slot
}

// Content returns the panel widget built for the slot
func (t *SlotTile) Content() fyne.CanvasObject {
	return t.content
}

// Hovered reports whether the pointer is over the tile
func (t *SlotTile) Hovered() bool {
	return t.hovered
}

// Enlarged reports whether the tile is presented above the window
func (t *SlotTile) Enlarged() bool {
	return t.enlarged
}

// Update applies the slot's current overlay and the bar's display options
func (t *SlotTile) Update(overlay fyne.CanvasObject, compact, showTitle bool) {
	t.overlay = overlay
	t.compact = compact
	t.showTitle = showTitle
	t.titleLabel.SetText(t.slot.GetDisplayTitle())
	t.Refresh()
}

// SetEnlarged switches between the collapsed and the enlarged look
func (t *SlotTile) SetEnlarged(enlarged bool) {
	if t.enlarged == enlarged {
		return
	}
	t.enlarged = enlarged
	t.Refresh()
}

// createUI creates the UI components
func (t *SlotTile) createUI() {
	t.background = canvas.NewRectangle(themeColor(ColorNameTile))
	t.background.CornerRadius = 4

	t.titleLabel = widget.NewLabel(t.slot.GetDisplayTitle())
	t.titleLabel.Alignment = fyne.TextAlignCenter
	t.titleLabel.Truncation = fyne.TextTruncateEllipsis

	// Collapsed tiles take every pointer event so the live content stays
	// inert; enlarged tiles only watch hover and let the content work.
	t.surface = newTileSurface(t)
	t.sensor = newHoverArea(canvas.NewRectangle(color.Transparent), t.pointerLeft)
	t.sensor.onEnter = t.pointerEntered
}

// body returns what the tile shows in its current state. Taskbar tiles show
// the overlay until they are enlarged.
func (t *SlotTile) body() fyne.CanvasObject {
	if t.compact && !t.enlarged {
		if t.overlay != nil {
			return t.overlay
		}
		return NewOverlayLabel(t.slot.GetDisplayTitle())
	}
	return t.content
}

// pointerEntered marks the tile hovered. Only collapsed tiles ask for
// enlargement.
func (t *SlotTile) pointerEntered() {
	t.hovered = true
	t.Refresh()
	if !t.enlarged && t.onHover != nil {
		t.onHover(t.slot.Name)
	}
}

// pointerLeft clears the hover mark
func (t *SlotTile) pointerLeft() {
	t.hovered = false
	t.Refresh()
	if t.onLeave != nil {
		t.onLeave(t.slot.Name)
	}
}

// Tapped is called on a primary click
func (t *SlotTile) Tapped(*fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap(t.slot.Name)
	}
}

// TappedSecondary opens the slot's context menu
func (t *SlotTile) TappedSecondary(ev *fyne.PointEvent) {
	if t.onMenu != nil {
		t.onMenu(t.slot.Name, ev.AbsolutePosition)
	}
}

// Dragged is called for every drag step that started on the tile
func (t *SlotTile) Dragged(ev *fyne.DragEvent) {
	if t.onDragged != nil {
		t.onDragged(t.slot.Name, ev)
	}
}

// DragEnd is called when a drag that started on the tile ends
func (t *SlotTile) DragEnd() {
	if t.onDragEnd != nil {
		t.onDragEnd(t.slot.Name)
	}
}

// CreateRenderer creates the widget renderer
func (t *SlotTile) CreateRenderer() fyne.WidgetRenderer {
	return &slotTileRenderer{tile: t}
}

// slotTileRenderer renders the slot tile widget
type slotTileRenderer struct {
	tile   *SlotTile
	layout *fyne.Container
}

// Layout arranges the components
func (r *slotTileRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size. Tiles are sized by the bar, never by
// their content.
func (r *slotTileRenderer) MinSize() fyne.Size {
	return fyne.NewSize(TileMinSize, TileMinSize)
}

// Refresh refreshes the renderer
func (r *slotTileRenderer) Refresh() {
	r.createLayout()
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *slotTileRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *slotTileRenderer) Destroy() {}

// createLayout builds the layout for the tile's current state
func (r *slotTileRenderer) createLayout() {
	t := r.tile

	if t.hovered && !t.enlarged {
		t.background.FillColor = themeColor(ColorNameTileHover)
	} else {
		t.background.FillColor = themeColor(ColorNameTile)
	}
	t.background.Refresh()

	var bottom fyne.CanvasObject
	if t.showTitle && !t.enlarged {
		bottom = t.titleLabel
	}
	main := container.NewBorder(nil, bottom, nil, nil, t.body())

	var top fyne.CanvasObject = t.surface
	if t.enlarged {
		top = t.sensor
	}

	if r.layout == nil {
		r.layout = container.NewStack(t.background, main, top)
		return
	}
	size := r.layout.Size()
	r.layout.Objects = []fyne.CanvasObject{t.background, main, top}
	r.layout.Resize(size)
}

// tileSurface lies over a collapsed tile and forwards its pointer events
type tileSurface struct {
	widget.BaseWidget

	tile *SlotTile
	rect *canvas.Rectangle
}

func newTileSurface(tile *SlotTile) *tileSurface {
	s := &tileSurface{tile: tile, rect: canvas.NewRectangle(color.Transparent)}
	s.ExtendBaseWidget(s)
	return s
}

func (s *tileSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

func (s *tileSurface) MouseIn(*desktop.MouseEvent) { s.tile.pointerEntered() }

func (s *tileSurface) MouseMoved(*desktop.MouseEvent) {}

func (s *tileSurface) MouseOut() { s.tile.pointerLeft() }

func (s *tileSurface) Tapped(ev *fyne.PointEvent) { s.tile.Tapped(ev) }

func (s *tileSurface) TappedSecondary(ev *fyne.PointEvent) { s.tile.TappedSecondary(ev) }

func (s *tileSurface) Dragged(ev *fyne.DragEvent) { s.tile.Dragged(ev) }

func (s *tileSurface) DragEnd() { s.tile.DragEnd() }

// spacerTile keeps the position of the enlarged slot in the bar. Drags that
// start on it act on the enlarged slot.
type spacerTile struct {
	widget.BaseWidget

	name    string
	rect    *canvas.Rectangle
	hovered bool

	onLeave   func()
	onDragged func(name string, ev *fyne.DragEvent)
	onDragEnd func(name string)
}

func newSpacerTile() *spacerTile {
	s := &spacerTile{rect: canvas.NewRectangle(themeColor(ColorNameSpacer))}
	s.rect.CornerRadius = 4
	s.ExtendBaseWidget(s)
	return s
}

func (s *spacerTile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

func (s *spacerTile) MinSize() fyne.Size {
	return fyne.NewSize(TileMinSize, TileMinSize)
}

func (s *spacerTile) MouseIn(*desktop.MouseEvent) { s.hovered = true }

func (s *spacerTile) MouseMoved(*desktop.MouseEvent) {}

func (s *spacerTile) MouseOut() {
	s.hovered = false
	if s.onLeave != nil {
		s.onLeave()
	}
}

func (s *spacerTile) Dragged(ev *fyne.DragEvent) {
	if s.onDragged != nil && s.name != "" {
		s.onDragged(s.name, ev)
	}
}

func (s *spacerTile) DragEnd() {
	if s.onDragEnd != nil && s.name != "" {
		s.onDragEnd(s.name)
	}
}

// hoverArea wraps the bar so that gaps between tiles still count as the bar
type hoverArea struct {
	widget.BaseWidget

	content fyne.CanvasObject
	hovered bool
	onEnter func()
	onLeave func()
}

func newHoverArea(content fyne.CanvasObject, onLeave func()) *hoverArea {
	h := &hoverArea{content: content, onLeave: onLeave}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.content)
}

func (h *hoverArea) MouseIn(*desktop.MouseEvent) {
	h.hovered = true
	if h.onEnter != nil {
		h.onEnter()
	}
}

func (h *hoverArea) MouseMoved(*desktop.MouseEvent) {}

func (h *hoverArea) MouseOut() {
	h.hovered = false
	if h.onLeave != nil {
		h.onLeave()
	}
}

var (
	_ fyne.Draggable         = (*SlotTile)(nil)
	_ fyne.Tappable          = (*SlotTile)(nil)
	_ fyne.SecondaryTappable = (*SlotTile)(nil)
	_ desktop.Hoverable      = (*tileSurface)(nil)
	_ fyne.Tappable          = (*tileSurface)(nil)
	_ fyne.SecondaryTappable = (*tileSurface)(nil)
	_ fyne.Draggable         = (*tileSurface)(nil)
	_ desktop.Hoverable      = (*spacerTile)(nil)
	_ fyne.Draggable         = (*spacerTile)(nil)
	_ desktop.Hoverable      = (*hoverArea)(nil)
)

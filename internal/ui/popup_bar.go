package ui

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/enlarge"
	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/pip"
	"github.com/ytget/popupbar/internal/platform"
)

// PopupBar renders the slots of the active bar and presents the enlarged
// slot on a float layer above the window content. It implements
// enlarge.Presenter.
type PopupBar struct {
	window       fyne.Window
	localization *Localization
	scheduler    enlarge.Scheduler
	manager      *pip.Manager

	// UI components
	box    *fyne.Container
	layout *tileLayout
	area   *hoverArea
	float  *fyne.Container
	spacer *spacerTile

	tiles    map[string]*SlotTile         // bar slots by slot ID
	contents map[string]fyne.CanvasObject // built panels by slot ID
	floating *SlotTile
	drag     *DragTracker

	leavePending bool
	prunePending bool
	onError      func(error)
}

// NewPopupBar creates an empty popup bar. Call Bind once the manager exists.
func NewPopupBar(window fyne.Window, localization *Localization, scheduler enlarge.Scheduler) *PopupBar {
	p := &PopupBar{
		window:       window,
		localization: localization,
		scheduler:    scheduler,
		layout:       &tileLayout{},
		tiles:        make(map[string]*SlotTile),
		contents:     make(map[string]fyne.CanvasObject),
		drag:         NewDragTracker(),
	}

	p.box = container.New(p.layout)
	p.area = newHoverArea(p.box, p.scheduleLeaveCheck)
	p.float = container.NewWithoutLayout()

	p.spacer = newSpacerTile()
	p.spacer.onLeave = p.scheduleLeaveCheck
	p.spacer.onDragged = p.onTileDragged
	p.spacer.onDragEnd = p.onTileDragEnd
	return p
}

// Bind connects the bar to m and renders its slots
func (p *PopupBar) Bind(m *pip.Manager) {
	p.manager = m
	m.Subscribe(p.onChange)
	p.Rebuild()
}

// Object returns the bar widget to place on the window edge
func (p *PopupBar) Object() fyne.CanvasObject {
	return p.area
}

// FloatLayer returns the container that holds the enlarged slot. It must
// cover the same area as the parent of Object.
func (p *PopupBar) FloatLayer() *fyne.Container {
	return p.float
}

// SetErrorHandler sets where failed user actions are reported
func (p *PopupBar) SetErrorHandler(fn func(error)) {
	p.onError = fn
}

// Rect returns the bar rectangle in float layer coordinates
func (p *PopupBar) Rect() enlarge.Rect {
	pos := p.area.Position()
	size := p.area.Size()
	return enlarge.NewRect(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}

// ContentFor returns the panel widget of slot, building it on first use
func (p *PopupBar) ContentFor(slot *model.Slot) fyne.CanvasObject {
	if obj, ok := p.contents[slot.ID]; ok {
		return obj
	}
	obj, err := p.manager.Build(slot)
	if err != nil {
		log.Printf("PopupBar: building %q from %q failed: %v", slot.Name, slot.Recipe, err)
		label := widget.NewLabel(fmt.Sprintf("%s%s%v", slot.Name, MiddleDotSeparator, err))
		label.Wrapping = fyne.TextWrapWord
		obj = label
	}
	p.contents[slot.ID] = obj
	return obj
}

// Tile returns the tile of a bar slot
func (p *PopupBar) Tile(slot *model.Slot) (*SlotTile, bool) {
	t, ok := p.tiles[slot.ID]
	return t, ok
}

// Floating returns the enlarged tile, or nil
func (p *PopupBar) Floating() *SlotTile {
	return p.floating
}

// onChange handles manager notifications
func (p *PopupBar) onChange(c pip.Change) {
	switch c.Kind {
	case pip.ChangeBar, pip.ChangeSlots, pip.ChangeSettings:
		p.Rebuild()
	}
}

// Rebuild renders the bar from the manager's current state
func (p *PopupBar) Rebuild() {
	if p.manager == nil {
		return
	}
	b := p.manager.Bar()
	s := b.Settings()
	compact := s.DisplayMode.IsTaskbar()

	p.layout.vertical = s.Direction.IsVertical()
	p.layout.cell = 0
	if compact {
		p.layout.cell = float32(s.TaskbarSize)
	}

	seen := make(map[string]bool)
	objects := make([]fyne.CanvasObject, 0, b.Len())
	for _, slot := range b.Widgets() {
		if slot.IsPlaceholder() {
			objects = append(objects, canvas.NewRectangle(themeColor(ColorNameSpacer)))
			continue
		}
		seen[slot.ID] = true
		tile := p.tileFor(slot)
		tile.Update(p.overlayFor(slot), compact, s.DisplayTitles)
		if b.IsDetached(slot) && tile == p.floating {
			p.spacer.name = slot.Name
			objects = append(objects, p.spacer)
			continue
		}
		objects = append(objects, tile)
	}

	for id, tile := range p.tiles {
		if seen[id] {
			continue
		}
		if tile == p.floating {
			p.removeFloating()
		}
		delete(p.tiles, id)
	}
	p.schedulePrune()

	p.box.Objects = objects
	p.box.Refresh()
}

// ShowSpacer swaps slot's tile for the spacer
func (p *PopupBar) ShowSpacer(slot *model.Slot) {
	tile, ok := p.tiles[slot.ID]
	if !ok {
		log.Printf("PopupBar: no tile for %q to replace", slot.Name)
		return
	}
	p.spacer.name = slot.Name
	p.spacer.hovered = tile.Hovered()
	p.replace(tile, p.spacer)
}

// Present shows slot's tile on the float layer at rect
func (p *PopupBar) Present(slot *model.Slot, rect enlarge.Rect) {
	tile := p.tileFor(slot)
	if p.floating != tile {
		p.removeFloating()
		p.floating = tile
		p.float.Add(tile)
	}
	tile.SetEnlarged(true)
	tile.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
	tile.Resize(fyne.NewSize(float32(rect.W), float32(rect.H)))
	p.float.Refresh()
}

// Restore takes slot's tile off the float layer and back into the bar
func (p *PopupBar) Restore(slot *model.Slot) {
	tile, ok := p.tiles[slot.ID]
	if ok && tile == p.floating {
		p.removeFloating()
	}
	p.spacer.name = ""
	p.spacer.hovered = false
	if ok {
		p.replace(p.spacer, tile)
	}
}

func (p *PopupBar) tileFor(slot *model.Slot) *SlotTile {
	if tile, ok := p.tiles[slot.ID]; ok {
		return tile
	}
	tile := NewSlotTile(slot, p.ContentFor(slot))
	tile.SetCallbacks(
		p.onTileHovered,
		p.onTileLeft,
		p.onTileTapped,
		p.onTileMenu,
		p.onTileDragged,
		p.onTileDragEnd,
	)
	p.tiles[slot.ID] = tile
	return tile
}

// overlayFor returns the overlay image of slot when it resolves to an image
// file, nil otherwise
func (p *PopupBar) overlayFor(slot *model.Slot) fyne.CanvasObject {
	if slot.OverlayImage == "" {
		return nil
	}
	path, err := p.manager.OverlayImagePath(slot)
	if err != nil {
		log.Printf("PopupBar: overlay image of %q: %v", slot.Name, err)
		return nil
	}
	return NewOverlayImage(path)
}

// schedulePrune forgets panels of slots that are neither in the bar nor in
// the main view. It waits for the next turn because promoting a slot takes
// it out of the bar before it becomes current.
func (p *PopupBar) schedulePrune() {
	if p.prunePending {
		return
	}
	p.prunePending = true
	p.scheduler.Post(func() {
		p.prunePending = false
		p.pruneContents()
	})
}

func (p *PopupBar) pruneContents() {
	current := p.manager.Current()
	for id := range p.contents {
		if _, ok := p.tiles[id]; ok {
			continue
		}
		if current != nil && current.ID == id {
			continue
		}
		delete(p.contents, id)
	}
}

func (p *PopupBar) removeFloating() {
	if p.floating == nil {
		return
	}
	p.float.Remove(p.floating)
	p.floating.SetEnlarged(false)
	p.floating = nil
	p.float.Refresh()
}

func (p *PopupBar) replace(old, obj fyne.CanvasObject) {
	for i, o := range p.box.Objects {
		if o == old {
			p.box.Objects[i] = obj
			p.box.Refresh()
			return
		}
	}
}

func (p *PopupBar) onTileHovered(name string) {
	p.manager.Enlarge().HoverEnter(name)
}

func (p *PopupBar) onTileLeft(string) {
	p.scheduleLeaveCheck()
}

// onTileTapped shows the slot in the main view
func (p *PopupBar) onTileTapped(name string) {
	if !p.manager.Bar().DisplayMode().HasHost() {
		return
	}
	if err := p.manager.Promote(name); err != nil {
		p.report(err)
	}
}

// onTileMenu shows the slot's context menu. While it is open the
// enlargement stays up even if the pointer leaves it.
func (p *PopupBar) onTileMenu(name string, pos fyne.Position) {
	slot, ok := p.manager.Find(name)
	if !ok {
		return
	}

	var items []*fyne.MenuItem
	if p.manager.Bar().DisplayMode().HasHost() {
		items = append(items, fyne.NewMenuItem(p.localization.GetText(KeyPromote), func() {
			p.onTileTapped(name)
		}))
	}
	items = append(items,
		fyne.NewMenuItem(p.localization.GetText(KeyEditOverlay), func() {
			p.showOverlayDialog(slot)
		}),
	)
	if slot.OverlayImage != "" {
		items = append(items, fyne.NewMenuItem(p.localization.GetText(KeyOpenOverlayImage), func() {
			p.openOverlayImage(slot)
		}))
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(p.localization.GetText(KeyRemoveSlot), func() {
			if err := p.manager.DeleteSlot(name); err != nil {
				p.report(err)
			}
		}),
	)

	ctrl := p.manager.Enlarge()
	ctrl.PopupOpened()

	menu := widget.NewPopUpMenu(fyne.NewMenu("", items...), p.window.Canvas())
	dismiss := menu.OnDismiss
	menu.OnDismiss = func() {
		if dismiss != nil {
			dismiss()
		} else {
			menu.Hide()
		}
		ctrl.PopupClosed()
		p.scheduleLeaveCheck()
	}
	menu.ShowAtPosition(pos)
}

// openOverlayImage shows the slot's overlay image in the system viewer
func (p *PopupBar) openOverlayImage(slot *model.Slot) {
	path, err := p.manager.OverlayImagePath(slot)
	if err == nil {
		err = platform.OpenWithDefaultApp(path)
	}
	if err != nil {
		p.report(err)
	}
}

func (p *PopupBar) showOverlayDialog(slot *model.Slot) {
	textEntry := widget.NewEntry()
	textEntry.SetText(slot.OverlayText)
	imageEntry := widget.NewEntry()
	imageEntry.SetText(slot.OverlayImage)
	imageEntry.SetPlaceHolder("$HOME/icons/panel.png")

	items := []*widget.FormItem{
		widget.NewFormItem(p.localization.GetText(KeyOverlayText), textEntry),
		widget.NewFormItem(p.localization.GetText(KeyOverlayImage), imageEntry),
	}
	d := dialog.NewForm(slot.Name, p.localization.GetText(KeySave), p.localization.GetText(KeyCancel), items, func(ok bool) {
		if !ok {
			return
		}
		if err := p.manager.SetOverlay(slot.Name, textEntry.Text, imageEntry.Text); err != nil {
			p.report(err)
		}
	}, p.window)
	d.Resize(fyne.NewSize(SlotDialogWidth, SlotDialogHeight))
	d.Show()
}

// onTileDragged follows a drag. Entering another slot enlarges it, leaving
// the enlarged slot for nothing closes it.
func (p *PopupBar) onTileDragged(name string, ev *fyne.DragEvent) {
	started := p.drag.Move(name, ev.AbsolutePosition)
	if !p.drag.Active() {
		return
	}

	ctrl := p.manager.Enlarge()
	if started {
		ctrl.DragStart()
	}
	target, _ := hitTest(p.bounds(), p.drag.Position())
	if ctrl.State() == enlarge.StateEnlarged {
		ctrl.DragLeave(target)
		return
	}
	if target != "" {
		ctrl.DragEnter(target)
	}
}

// onTileDragEnd drops the dragged slot next to the slot under the pointer,
// or into the gap of the bar it was dropped on
func (p *PopupBar) onTileDragEnd(string) {
	source, pos, active := p.drag.End()
	ctrl := p.manager.Enlarge()
	defer ctrl.DragEnd()
	if !active {
		return
	}

	bounds := p.bounds()
	target, ok := hitTest(bounds, pos)
	if !ok {
		p.dropInGap(source, pos)
		return
	}
	if target == source {
		return
	}
	var tb tileBounds
	for _, b := range bounds {
		if b.name == target {
			tb = b
			break
		}
	}
	where := dropPosition(p.manager.Bar().Direction(), tb, pos)
	if _, err := p.manager.Drop(source, target, where); err != nil {
		p.report(err)
	}
}

// dropInGap moves source to the gap under pos when the drop landed on the
// bar but between or after its tiles
func (p *PopupBar) dropInGap(source string, pos fyne.Position) {
	index, ok := gapIndex(p.manager.Bar().Direction(), absBounds("", p.area), p.barBounds(), pos)
	if !ok {
		return
	}
	if _, err := p.manager.DropAt(source, index); err != nil {
		p.report(err)
	}
}

// bounds returns the absolute rectangles of the enlarged tile and the bar
// tiles, topmost first
func (p *PopupBar) bounds() []tileBounds {
	var out []tileBounds
	if p.floating != nil {
		out = append(out, absBounds(p.floating.Slot().Name, p.floating))
	}
	return append(out, p.barBounds()...)
}

// barBounds returns the absolute rectangles of the tiles laid out in the bar
func (p *PopupBar) barBounds() []tileBounds {
	var out []tileBounds
	for _, o := range p.box.Objects {
		var name string
		switch obj := o.(type) {
		case *SlotTile:
			name = obj.Slot().Name
		case *spacerTile:
			name = obj.name
		default:
			continue
		}
		out = append(out, absBounds(name, o))
	}
	return out
}

func absBounds(name string, o fyne.CanvasObject) tileBounds {
	return tileBounds{
		name: name,
		pos:  fyne.CurrentApp().Driver().AbsolutePositionForObject(o),
		size: o.Size(),
	}
}

// scheduleLeaveCheck asks the state machine to close once the events of the
// current pointer move have all been delivered
func (p *PopupBar) scheduleLeaveCheck() {
	if p.leavePending || p.manager == nil {
		return
	}
	p.leavePending = true
	p.scheduler.Post(func() {
		p.leavePending = false
		if p.drag.Active() {
			return
		}
		p.manager.Enlarge().PointerLeave(p.overEnlarged(), p.overBar())
	})
}

func (p *PopupBar) overEnlarged() bool {
	return p.floating != nil && p.floating.Hovered()
}

func (p *PopupBar) overBar() bool {
	if p.area.hovered || p.spacer.hovered {
		return true
	}
	for _, t := range p.tiles {
		if t != p.floating && t.Hovered() {
			return true
		}
	}
	return false
}

func (p *PopupBar) report(err error) {
	if errors.Is(err, model.ErrGroupLocked) {
		err = fmt.Errorf("%s: %w", p.localization.GetText(KeyGroupLocked), err)
	}
	log.Printf("PopupBar: %v", err)
	if p.onError != nil {
		p.onError(err)
		return
	}
	dialog.ShowError(err, p.window)
}

var _ enlarge.Presenter = (*PopupBar)(nil)

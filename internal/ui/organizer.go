package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/popupbar/internal/persist"
	"github.com/ytget/popupbar/internal/pip"
)

// Organizer lists the groups of the group directory, the collections of
// the open group and the slot order of the bar
type Organizer struct {
	window       fyne.Window
	localization *Localization
	manager      *pip.Manager
	store        *persist.Store

	groups      []string
	collections []string
	slots       []string

	selectedGroup      int
	selectedCollection int
	selectedSlot       int

	// UI components
	groupList      *widget.List
	collectionList *widget.List
	slotList       *widget.List
	lockCheck      *widget.Check
	dialog         dialog.Dialog
	refreshing     bool

	// Callbacks
	onOpenGroup func(path string)
	onError     func(error)
	onLoaded    func(name string)
}

// NewOrganizer creates an organizer for the groups of store
func NewOrganizer(window fyne.Window, localization *Localization, manager *pip.Manager, store *persist.Store) *Organizer {
	o := &Organizer{
		window:             window,
		localization:       localization,
		manager:            manager,
		store:              store,
		selectedGroup:      -1,
		selectedCollection: -1,
		selectedSlot:       -1,
	}
	o.createUI()
	o.Refresh()
	return o
}

// SetCallbacks sets the event callbacks
func (o *Organizer) SetCallbacks(onOpenGroup func(path string), onError func(error), onLoaded func(name string)) {
	o.onOpenGroup = onOpenGroup
	o.onError = onError
	o.onLoaded = onLoaded
}

// SetStore switches to another group directory
func (o *Organizer) SetStore(store *persist.Store) {
	o.store = store
	o.Refresh()
}

// Show shows the organizer dialog
func (o *Organizer) Show() {
	o.Refresh()
	o.dialog.Show()
}

// Refresh reloads groups, collections and slots
func (o *Organizer) Refresh() {
	paths, err := o.store.Scan()
	if err != nil {
		log.Printf("Organizer: %v", err)
	}
	o.groups = paths

	o.collections = nil
	if g := o.manager.Group(); g != nil {
		o.collections = g.Names()
	}

	o.slots = o.slots[:0]
	for _, s := range o.manager.Bar().RealSlots() {
		o.slots = append(o.slots, s.Name)
	}

	o.selectedGroup = clampIndex(o.selectedGroup, len(o.groups))
	o.selectedCollection = clampIndex(o.selectedCollection, len(o.collections))
	o.selectedSlot = clampIndex(o.selectedSlot, len(o.slots))

	o.refreshing = true
	if g := o.manager.Group(); g != nil {
		o.lockCheck.SetChecked(g.Locked)
		o.lockCheck.Enable()
	} else {
		o.lockCheck.SetChecked(false)
		o.lockCheck.Disable()
	}
	o.refreshing = false

	o.groupList.Refresh()
	o.collectionList.Refresh()
	o.slotList.Refresh()
}

// createUI creates the three organizer columns
func (o *Organizer) createUI() {
	loc := o.localization

	o.groupList = o.newList(&o.groups, &o.selectedGroup, func(path string) string {
		return persist.NewGroup(path).Name()
	})
	openBtn := widget.NewButton(loc.GetText(KeyOpenGroup), o.onOpen)

	o.collectionList = o.newList(&o.collections, &o.selectedCollection, nil)
	loadBtn := widget.NewButton(loc.GetText(KeyLoad), o.onLoad)
	renameBtn := widget.NewButton(loc.GetText(KeyRename), o.onRename)
	deleteBtn := widget.NewButton(loc.GetText(KeyDelete), o.onDelete)
	deleteBtn.Importance = widget.DangerImportance
	o.lockCheck = widget.NewCheck(loc.GetText(KeyLockGroup), o.onLockChanged)

	o.slotList = o.newList(&o.slots, &o.selectedSlot, nil)
	upBtn := widget.NewButton(IconUp, func() { o.onMove(-1) })
	downBtn := widget.NewButton(IconDown, func() { o.onMove(1) })

	column := func(titleKey string, list *widget.List, buttons ...fyne.CanvasObject) fyne.CanvasObject {
		title := widget.NewLabel(loc.GetText(titleKey))
		title.TextStyle = fyne.TextStyle{Bold: true}
		return container.NewBorder(title, container.NewVBox(buttons...), nil, nil, list)
	}

	content := container.NewGridWithColumns(3,
		column(KeyGroups, o.groupList, openBtn),
		column(KeyCollections, o.collectionList,
			container.NewGridWithColumns(3, loadBtn, renameBtn, deleteBtn), o.lockCheck),
		column(KeySlots, o.slotList, container.NewGridWithColumns(2, upBtn, downBtn)),
	)

	o.dialog = dialog.NewCustom(loc.GetText(KeyOrganizer), loc.GetText(KeyCancel), content, o.window)
	o.dialog.Resize(fyne.NewSize(OrganizerWidth, OrganizerHeight))
}

// newList creates a selectable list over items. label formats an item; nil
// shows it unchanged.
func (o *Organizer) newList(items *[]string, selected *int, label func(string) string) *widget.List {
	list := widget.NewList(
		func() int { return len(*items) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			text := (*items)[id]
			if label != nil {
				text = label(text)
			}
			obj.(*widget.Label).SetText(text)
		},
	)
	list.OnSelected = func(id widget.ListItemID) { *selected = id }
	list.OnUnselected = func(id widget.ListItemID) {
		if *selected == id {
			*selected = -1
		}
	}
	return list
}

func (o *Organizer) onOpen() {
	if o.selectedGroup < 0 || o.onOpenGroup == nil {
		return
	}
	o.onOpenGroup(o.groups[o.selectedGroup])
}

func (o *Organizer) onLoad() {
	name, ok := o.selectedCollectionName()
	if !ok {
		return
	}
	if err := o.manager.Load(name); err != nil {
		o.report(err)
		return
	}
	if o.onLoaded != nil {
		o.onLoaded(name)
	}
}

func (o *Organizer) onRename() {
	oldName, ok := o.selectedCollectionName()
	if !ok {
		return
	}
	entry := widget.NewEntry()
	entry.SetText(oldName)
	entry.Validator = persist.ValidateName
	items := []*widget.FormItem{widget.NewFormItem(o.localization.GetText(KeyCollectionName), entry)}
	dialog.ShowForm(o.localization.GetText(KeyRename), o.localization.GetText(KeySave), o.localization.GetText(KeyCancel), items, func(confirmed bool) {
		if !confirmed || entry.Text == oldName {
			return
		}
		if err := o.manager.RenameCollection(oldName, entry.Text); err != nil {
			o.report(err)
		}
	}, o.window)
}

func (o *Organizer) onDelete() {
	name, ok := o.selectedCollectionName()
	if !ok {
		return
	}
	msg := fmt.Sprintf("%s %q?", o.localization.GetText(KeyDelete), name)
	dialog.ShowConfirm(o.localization.GetText(KeyDelete), msg, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := o.manager.DeleteCollection(name); err != nil {
			o.report(err)
			return
		}
		o.collectionList.UnselectAll()
	}, o.window)
}

func (o *Organizer) onLockChanged(locked bool) {
	if o.refreshing || o.manager.Group() == nil {
		return
	}
	if err := o.manager.SetLocked(locked); err != nil {
		o.report(err)
	}
}

// onMove moves the selected slot by delta places and applies the new order
func (o *Organizer) onMove(delta int) {
	order, index, ok := moveName(o.slots, o.selectedSlot, delta)
	if !ok {
		return
	}
	if err := o.manager.ApplyOrder(order); err != nil {
		o.report(err)
		return
	}
	o.selectedSlot = index
	o.slotList.Select(index)
}

func (o *Organizer) selectedCollectionName() (string, bool) {
	if o.selectedCollection < 0 || o.selectedCollection >= len(o.collections) {
		return "", false
	}
	return o.collections[o.selectedCollection], true
}

func (o *Organizer) report(err error) {
	log.Printf("Organizer: %v", err)
	if o.onError != nil {
		o.onError(err)
		return
	}
	dialog.ShowError(err, o.window)
}

// moveName returns names with the item at i moved by delta places and the
// item's new index. It reports false when the move is not possible.
func moveName(names []string, i, delta int) ([]string, int, bool) {
	j := i + delta
	if i < 0 || i >= len(names) || j < 0 || j >= len(names) || delta == 0 {
		return nil, i, false
	}
	out := make([]string, len(names))
	copy(out, names)
	out[i], out[j] = out[j], out[i]
	return out, j, true
}

// clampIndex keeps a list selection inside n items, -1 meaning none
func clampIndex(i, n int) int {
	if i >= n {
		return -1
	}
	return i
}

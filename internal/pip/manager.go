// Package pip wires the popup bar, its enlarge state machine, the main
// view, display mode conversion and persistence into one object the user
// interface talks to.
package pip

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/displaymode"
	"github.com/ytget/popupbar/internal/enlarge"
	"github.com/ytget/popupbar/internal/factory"
	"github.com/ytget/popupbar/internal/mainview"
	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/persist"
)

// ErrNoGroup is returned by persistence operations before a group is open
var ErrNoGroup = errors.New("no collection group open")

// ChangeKind identifies what a Change notification is about
type ChangeKind int

const (
	// ChangeBar means the bar was replaced (conversion or load)
	ChangeBar ChangeKind = iota
	// ChangeSlots means slots of the bar were added, removed or moved
	ChangeSlots
	// ChangeSettings means the bar settings changed
	ChangeSettings
	// ChangeCurrent means the main view slot changed
	ChangeCurrent
	// ChangeEnlarge means a slot was enlarged or closed
	ChangeEnlarge
	// ChangeGroup means the open group or the selected collection changed
	ChangeGroup
)

// Change is sent to subscribers after every state change
type Change struct {
	Kind ChangeKind
	Slot *model.Slot
}

// Options configures a Manager
type Options struct {
	Settings  model.Settings
	Presenter enlarge.Presenter
	Scheduler enlarge.Scheduler
	Factory   *factory.Registry
}

// Manager is the context object shared by every part of the popup bar UI
type Manager struct {
	bar     *bar.Bar
	enlarge *enlarge.Controller
	main    *mainview.Controller
	reorder *bar.Reorderer
	adapter *displaymode.Adapter
	factory *factory.Registry

	group      *persist.Group
	collection string

	listeners []func(Change)
}

// NewManager creates a manager with an empty bar
func NewManager(opts Options) *Manager {
	if opts.Factory == nil {
		opts.Factory = factory.NewDefaultRegistry()
	}
	b := bar.New(opts.Settings)

	m := &Manager{factory: opts.Factory}
	m.main = mainview.NewController(nil)
	m.enlarge = enlarge.NewController(nil, opts.Presenter, opts.Scheduler)
	m.enlarge.SetPromoter(m.main)
	m.reorder = bar.NewReorderer(nil)
	m.adapter = displaymode.NewAdapter(m.enlarge)

	m.main.SetChangeCallback(func(current, _ *model.Slot) {
		m.notify(Change{Kind: ChangeCurrent, Slot: current})
	})
	m.main.SetVacatedCallback(func(old, successor *model.Slot) {
		log.Printf("Manager: main view slot %q deleted, showing %q", old.Name, nameOf(successor))
	})
	m.enlarge.SetChangeCallback(func(_ enlarge.State, slot *model.Slot) {
		m.notify(Change{Kind: ChangeEnlarge, Slot: slot})
	})

	m.setBar(b)
	return m
}

// Subscribe registers a listener for changes
func (m *Manager) Subscribe(fn func(Change)) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// Bar returns the active bar
func (m *Manager) Bar() *bar.Bar {
	return m.bar
}

// Enlarge returns the enlarge state machine of the active bar
func (m *Manager) Enlarge() *enlarge.Controller {
	return m.enlarge
}

// MainView returns the main view controller
func (m *Manager) MainView() *mainview.Controller {
	return m.main
}

// Current returns the main view slot, or nil
func (m *Manager) Current() *model.Slot {
	return m.main.Current()
}

// Factory returns the widget registry
func (m *Manager) Factory() *factory.Registry {
	return m.factory
}

// SetRects sets the rectangle providers for enlarge geometry
func (m *Manager) SetRects(host, barRect func() enlarge.Rect) {
	m.enlarge.SetRects(host, barRect)
}

// Find returns the slot called name, whether in the bar or the main view
func (m *Manager) Find(name string) (*model.Slot, bool) {
	if cur := m.main.Current(); cur != nil && cur.Name == name {
		return cur, true
	}
	return m.bar.Find(name)
}

// AddSlot creates a slot from spec and inserts it at index; a negative
// index appends
func (m *Manager) AddSlot(spec model.SlotSpec, index int) (*model.Slot, error) {
	if err := persist.ValidateName(spec.Name); err != nil {
		return nil, fmt.Errorf("add slot: %w", err)
	}
	if model.IsPlaceholderName(spec.Name) {
		return nil, fmt.Errorf("add slot %q: %w", spec.Name, model.ErrPlaceholderSlot)
	}
	if !m.factory.Has(spec.Recipe) {
		return nil, fmt.Errorf("add slot %q: recipe %q: %w", spec.Name, spec.Recipe, model.ErrUnknownWidgetType)
	}
	if cur := m.main.Current(); cur != nil && cur.Name == spec.Name {
		return nil, &model.DuplicateNameError{Name: spec.Name}
	}

	slot := model.NewSlotFromSpec(spec)
	if index < 0 {
		index = m.bar.RealLen()
	}
	if err := m.bar.Insert(index, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteSlot removes the named slot. Deleting the main view slot promotes
// a successor.
func (m *Manager) DeleteSlot(name string) error {
	if cur := m.main.Current(); cur != nil && cur.Name == name {
		m.main.Vacate()
		return nil
	}
	_, err := m.bar.RemoveByName(name)
	return err
}

// SetOverlay updates overlay text and image of the named slot
func (m *Manager) SetOverlay(name, text, image string) error {
	slot, ok := m.Find(name)
	if !ok {
		return fmt.Errorf("overlay %q: %w", name, model.ErrSlotNotFound)
	}
	if slot.IsPlaceholder() {
		return fmt.Errorf("overlay %q: %w", name, model.ErrPlaceholderSlot)
	}
	slot.SetOverlay(text, image)
	m.notify(Change{Kind: ChangeSlots, Slot: slot})
	return nil
}

// Build creates the widget for slot from its recipe
func (m *Manager) Build(slot *model.Slot) (fyne.CanvasObject, error) {
	return m.factory.Create(slot.Recipe)
}

// OverlayImagePath resolves the overlay image of slot against the open
// group file
func (m *Manager) OverlayImagePath(slot *model.Slot) (string, error) {
	groupPath := ""
	if m.group != nil {
		groupPath = m.group.Path
	}
	return persist.ResolveOverlayImage(groupPath, slot.OverlayImage)
}

// Drop reorders the bar after a drag and drop
func (m *Manager) Drop(dragged, target string, pos bar.DropPosition) (bool, error) {
	m.enlarge.Close()
	return m.reorder.Drop(dragged, target, pos)
}

// DropAt moves a dragged slot to index among the real slots
func (m *Manager) DropAt(dragged string, index int) (bool, error) {
	m.enlarge.Close()
	return m.reorder.DropAt(dragged, index)
}

// ApplyOrder reorders the bar to match names
func (m *Manager) ApplyOrder(names []string) error {
	m.enlarge.Close()
	return m.reorder.ApplyOrder(names)
}

// Promote moves the named bar slot into the main view
func (m *Manager) Promote(name string) error {
	slot, ok := m.bar.Find(name)
	if !ok {
		return fmt.Errorf("promote %q: %w", name, model.ErrSlotNotFound)
	}
	if !m.bar.DisplayMode().HasHost() {
		return fmt.Errorf("promote %q: %s has no main view", name, m.bar.DisplayMode())
	}
	m.enlarge.Close()
	return m.main.SetCurrent(slot)
}

// ReleaseMain puts the main view slot back into the bar at the index it
// came from and leaves the host empty
func (m *Manager) ReleaseMain() error {
	if m.main.Current() == nil {
		return nil
	}
	m.enlarge.Close()
	return m.main.Release()
}

// Swap promotes the enlarged slot, or swaps current and previous when
// nothing is enlarged
func (m *Manager) Swap() bool {
	if !m.bar.DisplayMode().HasHost() {
		return false
	}
	if m.enlarge.Swap() {
		return true
	}
	return m.main.Swap()
}

// Hotkey promotes the n-th bar slot (1-based)
func (m *Manager) Hotkey(n int) bool {
	if !m.bar.DisplayMode().HasHost() {
		return false
	}
	m.enlarge.Close()
	return m.main.Hotkey(n)
}

// Escape closes any enlargement
func (m *Manager) Escape() {
	m.enlarge.Escape()
}

// UpdateSettings replaces the bar settings. The display mode is changed
// with Convert only.
func (m *Manager) UpdateSettings(s model.Settings) {
	m.bar.SetSettings(s)
	m.enlarge.Relayout()
}

// SetDirection moves the bar to another screen edge
func (m *Manager) SetDirection(d model.Direction) {
	s := m.bar.Settings()
	s.Direction = d
	m.UpdateSettings(s)
}

// Convert switches the bar to another display mode
func (m *Manager) Convert(to model.DisplayMode) error {
	res, err := m.adapter.Convert(m.bar, m.main.Current(), m.main.RecordedIndex(), m.bar.DisplayMode(), to)
	if err != nil {
		return err
	}
	if res.Bar == m.bar {
		return nil
	}
	m.setBar(res.Bar)
	m.main.Adopt(res.Current, res.CurrentIndex)
	m.notify(Change{Kind: ChangeBar})
	return nil
}

// Clear removes all slots and the main view slot
func (m *Manager) Clear() {
	b := bar.New(m.bar.Settings())
	m.setBar(b)
	m.main.Adopt(nil, 0)
	m.notify(Change{Kind: ChangeBar})
}

// Group returns the open group, or nil
func (m *Manager) Group() *persist.Group {
	return m.group
}

// CollectionName returns the selected collection, empty when none
func (m *Manager) CollectionName() string {
	return m.collection
}

// OpenGroup loads the group file at path. A missing file opens an empty
// group that is created on the first save.
func (m *Manager) OpenGroup(path string) error {
	g, err := persist.LoadGroup(path)
	if err != nil {
		return err
	}
	m.SetGroup(g)
	return nil
}

// SetGroup makes g the open group
func (m *Manager) SetGroup(g *persist.Group) {
	m.group = g
	m.collection = ""
	m.notify(Change{Kind: ChangeGroup})
}

// ReloadGroup reads the open group file again after it changed on disk.
// The selected collection stays selected while it still exists.
func (m *Manager) ReloadGroup() error {
	if m.group == nil {
		return ErrNoGroup
	}
	g, err := persist.LoadGroup(m.group.Path)
	if err != nil {
		return err
	}
	m.group = g
	if _, ok := g.Collection(m.collection); !ok {
		m.collection = ""
	}
	m.notify(Change{Kind: ChangeGroup})
	return nil
}

// Specs returns the slots to persist: the bar slots with the main view
// slot at the index it came from
func (m *Manager) Specs() []model.SlotSpec {
	specs := m.bar.Specs()
	cur := m.main.Current()
	if cur == nil {
		return specs
	}
	at := m.main.RecordedIndex()
	if at > len(specs) {
		at = len(specs)
	}
	specs = append(specs, model.SlotSpec{})
	copy(specs[at+1:], specs[at:])
	specs[at] = cur.Spec()
	return specs
}

// Save stores the bar as collection name in the open group and selects it
func (m *Manager) Save(name string) error {
	if m.group == nil {
		return ErrNoGroup
	}
	if _, err := persist.Save(m.group, name, m.Specs(), m.bar.Settings()); err != nil {
		return err
	}
	m.collection = name
	m.notify(Change{Kind: ChangeGroup})
	return nil
}

// Load replaces the bar with collection name of the open group
func (m *Manager) Load(name string) error {
	if m.group == nil {
		return ErrNoGroup
	}
	specs, settings, err := persist.Load(m.group, name)
	if err != nil {
		return err
	}

	b := bar.New(settings)
	for _, spec := range specs {
		if model.IsPlaceholderName(spec.Name) {
			continue
		}
		if !m.factory.Has(spec.Recipe) {
			log.Printf("Manager: slot %q has unknown recipe %q", spec.Name, spec.Recipe)
		}
		if err := b.Append(model.NewSlotFromSpec(spec)); err != nil {
			log.Printf("Manager: skipping slot %q of %q: %v", spec.Name, name, err)
		}
	}

	m.enlarge.Close()
	m.setBar(b)
	m.main.Adopt(nil, 0)
	m.collection = name
	log.Printf("Manager: loaded %q with %d slots", name, b.RealLen())
	m.notify(Change{Kind: ChangeBar})
	m.notify(Change{Kind: ChangeGroup})
	return nil
}

// DeleteCollection removes collection name from the open group
func (m *Manager) DeleteCollection(name string) error {
	if m.group == nil {
		return ErrNoGroup
	}
	if err := persist.DeleteCollection(m.group, name); err != nil {
		return err
	}
	if m.collection == name {
		m.collection = ""
	}
	m.notify(Change{Kind: ChangeGroup})
	return nil
}

// RenameCollection renames a collection of the open group
func (m *Manager) RenameCollection(oldName, newName string) error {
	if m.group == nil {
		return ErrNoGroup
	}
	if err := persist.RenameCollection(m.group, oldName, newName); err != nil {
		return err
	}
	if m.collection == oldName {
		m.collection = newName
	}
	m.notify(Change{Kind: ChangeGroup})
	return nil
}

// SetLocked locks or unlocks the open group
func (m *Manager) SetLocked(locked bool) error {
	if m.group == nil {
		return ErrNoGroup
	}
	if err := persist.SetLocked(m.group, locked); err != nil {
		return err
	}
	m.notify(Change{Kind: ChangeGroup})
	return nil
}

func (m *Manager) setBar(b *bar.Bar) {
	m.enlarge.SetBar(b)
	m.main.SetBar(b)
	m.reorder.SetBar(b)
	m.bar = b
	b.Subscribe(func(ev bar.Event) {
		if m.bar != b {
			return
		}
		switch ev.Kind {
		case bar.EventInserted, bar.EventRemoved, bar.EventMoved:
			m.notify(Change{Kind: ChangeSlots, Slot: ev.Slot})
		case bar.EventSettingsChanged:
			m.notify(Change{Kind: ChangeSettings})
		}
	})
}

func (m *Manager) notify(c Change) {
	for _, fn := range m.listeners {
		fn(c)
	}
}

func nameOf(s *model.Slot) string {
	if s == nil {
		return ""
	}
	return s.Name
}

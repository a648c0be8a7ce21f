package ui

import (
	"testing"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/popupbar/internal/enlarge"
	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/pip"
)

// queueScheduler runs posted functions only when flushed
type queueScheduler struct{ queue []func() }

func (s *queueScheduler) Post(fn func()) { s.queue = append(s.queue, fn) }

func (s *queueScheduler) Flush() {
	for len(s.queue) > 0 {
		q := s.queue
		s.queue = nil
		for _, fn := range q {
			fn()
		}
	}
}

func newTestPopupBar(t *testing.T, names ...string) (*PopupBar, *pip.Manager, *queueScheduler) {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	sched := &queueScheduler{}
	p := NewPopupBar(w, NewLocalization(), sched)
	p.SetErrorHandler(func(err error) { t.Errorf("unexpected error: %v", err) })
	m := pip.NewManager(pip.Options{
		Settings:  model.DefaultSettings(),
		Presenter: p,
		Scheduler: sched,
	})
	p.Bind(m)
	m.SetRects(func() enlarge.Rect { return enlarge.NewRect(0, 0, 800, 600) }, p.Rect)
	w.SetContent(container.NewStack(p.Object(), p.FloatLayer()))

	for _, n := range names {
		if _, err := m.AddSlot(model.SlotSpec{Name: n, Recipe: "label?text=" + n}, -1); err != nil {
			t.Fatalf("AddSlot(%s): %v", n, err)
		}
	}
	sched.Flush()
	return p, m, sched
}

func TestPopupBarFollowsSlots(t *testing.T) {
	p, m, sched := newTestPopupBar(t, "a", "b", "c")

	if len(p.box.Objects) != 3 || len(p.tiles) != 3 {
		t.Fatalf("Expected 3 tiles, got %d objects and %d tiles", len(p.box.Objects), len(p.tiles))
	}

	if err := m.DeleteSlot("b"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteSlot("c"); err != nil {
		t.Fatal(err)
	}
	sched.Flush()

	if len(p.box.Objects) != 2 {
		t.Errorf("Bar should be padded to 2 entries, got %d", len(p.box.Objects))
	}
	if len(p.tiles) != 1 {
		t.Errorf("Removed slots should lose their tiles, got %d", len(p.tiles))
	}
}

func TestPopupBarPresentsEnlargedTile(t *testing.T) {
	p, m, sched := newTestPopupBar(t, "a", "b")

	if !m.Enlarge().HoverEnter("a") {
		t.Fatal("Hovering a collapsed slot should enlarge it")
	}
	sched.Flush()

	floating := p.Floating()
	if floating == nil || floating.Slot().Name != "a" || !floating.Enlarged() {
		t.Fatalf("Expected a floating, enlarged tile for a, got %v", floating)
	}
	if len(p.float.Objects) != 1 || p.float.Objects[0] != floating {
		t.Error("Enlarged tile should sit on the float layer")
	}
	if p.box.Objects[0] != p.spacer || p.spacer.name != "a" {
		t.Error("Spacer should keep the enlarged slot's place")
	}
	if floating.Size().Width <= 0 || floating.Size().Height <= 0 {
		t.Errorf("Enlarged tile should be sized, got %v", floating.Size())
	}

	m.Escape()
	sched.Flush()

	if p.Floating() != nil || len(p.float.Objects) != 0 {
		t.Error("Escape should take the tile off the float layer")
	}
	tile, ok := p.Tile(floating.Slot())
	if !ok || p.box.Objects[0] != tile || tile.Enlarged() {
		t.Error("Tile should be back in the bar, collapsed")
	}
}

func TestPopupBarDirectSwitch(t *testing.T) {
	p, m, sched := newTestPopupBar(t, "a", "b")

	m.Enlarge().HoverEnter("a")
	sched.Flush()
	m.Enlarge().HoverEnter("b")
	sched.Flush()

	if f := p.Floating(); f == nil || f.Slot().Name != "b" {
		t.Fatalf("Expected b to be enlarged, got %v", f)
	}
	if len(p.float.Objects) != 1 {
		t.Errorf("Only one tile may float, got %d", len(p.float.Objects))
	}
}

func TestContentForKeepsPromotedPanel(t *testing.T) {
	p, m, sched := newTestPopupBar(t, "a", "b", "c")

	slot, _ := m.Find("b")
	content := p.ContentFor(slot)
	if p.ContentFor(slot) != content {
		t.Error("ContentFor should cache built panels")
	}

	if err := m.Promote("b"); err != nil {
		t.Fatal(err)
	}
	sched.Flush()

	if cur := m.Current(); cur == nil || cur.Name != "b" {
		t.Fatalf("b should be the main view slot, got %v", cur)
	}
	if p.ContentFor(slot) != content {
		t.Error("The main view slot should keep its panel")
	}
	if _, ok := p.Tile(slot); ok {
		t.Error("The main view slot should not have a bar tile")
	}
}

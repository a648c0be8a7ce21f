package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/model"
)

func TestDragTrackerThreshold(t *testing.T) {
	tr := NewDragTracker()

	if tr.Move("a", fyne.NewPos(10, 10)) {
		t.Error("First step should not start a drag")
	}
	if tr.Move("b", fyne.NewPos(12, 11)) {
		t.Error("Small movement should stay below the threshold")
	}
	if tr.Active() {
		t.Error("Tracker should not be active yet")
	}
	if !tr.Move("b", fyne.NewPos(30, 10)) {
		t.Error("Crossing the threshold should start the drag")
	}
	if tr.Move("b", fyne.NewPos(40, 10)) {
		t.Error("Drag start should be reported only once")
	}
	if tr.Source() != "a" {
		t.Errorf("Source should stay the slot where the drag began, got %q", tr.Source())
	}

	source, pos, active := tr.End()
	if source != "a" || pos != fyne.NewPos(40, 10) || !active {
		t.Errorf("Unexpected end result: %q %v %v", source, pos, active)
	}
	if tr.Active() || tr.Source() != "" {
		t.Error("End should reset the tracker")
	}
}

func TestDragTrackerPressWithoutDrag(t *testing.T) {
	tr := NewDragTracker()
	tr.Move("a", fyne.NewPos(0, 0))
	tr.Move("a", fyne.NewPos(1, 1))

	_, _, active := tr.End()
	if active {
		t.Error("A press that never crossed the threshold is not a drag")
	}
}

func TestHitTest(t *testing.T) {
	bounds := []tileBounds{
		{name: "floating", pos: fyne.NewPos(50, 0), size: fyne.NewSize(200, 200)},
		{name: "a", pos: fyne.NewPos(0, 0), size: fyne.NewSize(100, 40)},
		{name: "b", pos: fyne.NewPos(100, 0), size: fyne.NewSize(100, 40)},
	}

	tests := []struct {
		p    fyne.Position
		want string
		ok   bool
	}{
		{fyne.NewPos(10, 10), "a", true},
		{fyne.NewPos(60, 10), "floating", true},
		{fyne.NewPos(260, 10), "", false},
		{fyne.NewPos(10, 40), "", false},
	}

	for _, tt := range tests {
		got, ok := hitTest(bounds, tt.p)
		if got != tt.want || ok != tt.ok {
			t.Errorf("hitTest(%v) = %q, %v; want %q, %v", tt.p, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDropPosition(t *testing.T) {
	target := tileBounds{name: "t", pos: fyne.NewPos(100, 100), size: fyne.NewSize(40, 40)}

	tests := []struct {
		dir  model.Direction
		p    fyne.Position
		want bar.DropPosition
	}{
		{model.DirectionSouth, fyne.NewPos(110, 139), bar.DropBefore},
		{model.DirectionSouth, fyne.NewPos(130, 101), bar.DropAfter},
		{model.DirectionEast, fyne.NewPos(139, 110), bar.DropBefore},
		{model.DirectionWest, fyne.NewPos(101, 130), bar.DropAfter},
	}

	for _, tt := range tests {
		if got := dropPosition(tt.dir, target, tt.p); got != tt.want {
			t.Errorf("dropPosition(%s, %v) = %v, want %v", tt.dir, tt.p, got, tt.want)
		}
	}
}

func TestGapIndex(t *testing.T) {
	area := tileBounds{pos: fyne.NewPos(0, 0), size: fyne.NewSize(400, 40)}
	tiles := []tileBounds{
		{name: "a", pos: fyne.NewPos(20, 0), size: fyne.NewSize(80, 40)},
		{name: "b", pos: fyne.NewPos(110, 0), size: fyne.NewSize(80, 40)},
	}

	tests := []struct {
		name string
		p    fyne.Position
		want int
		ok   bool
	}{
		{"leading gap", fyne.NewPos(5, 20), 0, true},
		{"between tiles", fyne.NewPos(105, 20), 1, true},
		{"tail", fyne.NewPos(300, 20), 2, true},
		{"on a tile", fyne.NewPos(50, 20), 0, false},
		{"outside the bar", fyne.NewPos(300, 60), 0, false},
	}

	for _, tt := range tests {
		got, ok := gapIndex(model.DirectionSouth, area, tiles, tt.p)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s: gapIndex(%v) = %d, %v; want %d, %v", tt.name, tt.p, got, ok, tt.want, tt.ok)
		}
	}

	vertical := []tileBounds{{name: "a", pos: fyne.NewPos(0, 0), size: fyne.NewSize(40, 80)}}
	column := tileBounds{pos: fyne.NewPos(0, 0), size: fyne.NewSize(40, 400)}
	if got, ok := gapIndex(model.DirectionEast, column, vertical, fyne.NewPos(20, 200)); got != 1 || !ok {
		t.Errorf("vertical tail: got %d, %v; want 1, true", got, ok)
	}
}

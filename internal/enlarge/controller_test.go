package enlarge

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/popupbar/internal/bar"
	"github.com/ytget/popupbar/internal/model"
)

type manualScheduler struct {
	queue []func()
}

func (s *manualScheduler) Post(fn func()) {
	s.queue = append(s.queue, fn)
}

// Flush runs everything posted so far, simulating the next loop turn
func (s *manualScheduler) Flush() {
	q := s.queue
	s.queue = nil
	for _, fn := range q {
		fn()
	}
}

type recordingPresenter struct {
	calls     []string
	presented map[string]Rect
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{presented: make(map[string]Rect)}
}

func (p *recordingPresenter) ShowSpacer(slot *model.Slot) {
	p.calls = append(p.calls, "spacer:"+slot.Name)
}

func (p *recordingPresenter) Present(slot *model.Slot, rect Rect) {
	p.calls = append(p.calls, "present:"+slot.Name)
	p.presented[slot.Name] = rect
}

func (p *recordingPresenter) Restore(slot *model.Slot) {
	p.calls = append(p.calls, "restore:"+slot.Name)
	delete(p.presented, slot.Name)
}

type recordingPromoter struct {
	promoted []string
	err      error
}

func (p *recordingPromoter) SetCurrent(slot *model.Slot) error {
	p.promoted = append(p.promoted, slot.Name)
	return p.err
}

type fixture struct {
	bar       *bar.Bar
	presenter *recordingPresenter
	scheduler *manualScheduler
	ctrl      *Controller
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	settings := model.DefaultSettings()
	settings.Direction = model.DirectionSouth
	settings.Scale = [2]float64{0.3, 0.3}
	b := bar.New(settings)
	for _, n := range names {
		require.NoError(t, b.Append(model.NewSlot(n, "label")))
	}
	f := &fixture{
		bar:       b,
		presenter: newRecordingPresenter(),
		scheduler: &manualScheduler{},
	}
	f.ctrl = NewController(b, f.presenter, f.scheduler)
	f.ctrl.SetRects(
		func() Rect { return NewRect(0, 0, 1000, 800) },
		func() Rect { return NewRect(0, 750, 1000, 50) },
	)
	return f
}

func TestHoverThenEscape(t *testing.T) {
	f := newFixture(t, "a", "b")

	require.True(t, f.ctrl.HoverEnter("b"))
	assert.Equal(t, StateEnlarged, f.ctrl.State())
	require.NotNil(t, f.ctrl.Enlarged())
	assert.Equal(t, "b", f.ctrl.Enlarged().Name)
	assert.True(t, f.bar.IsDetached(f.ctrl.Enlarged()))
	assert.Equal(t, []string{"spacer:b", "present:b"}, f.presenter.calls)

	f.ctrl.Escape()

	assert.Equal(t, StateCollapsed, f.ctrl.State())
	assert.Nil(t, f.ctrl.Enlarged())
	assert.Nil(t, f.bar.Detached())
	sb, ok := f.bar.Find("b")
	require.True(t, ok)
	assert.Equal(t, 1, sb.Index, "b is restored to bar index 1")
}

func TestFrozenDropsReentrantHover(t *testing.T) {
	f := newFixture(t, "a", "b")

	require.True(t, f.ctrl.HoverEnter("a"))
	assert.True(t, f.ctrl.IsFrozen())
	assert.False(t, f.ctrl.HoverEnter("b"), "re-entrant hover is dropped while frozen")
	assert.Equal(t, "a", f.ctrl.Enlarged().Name)

	f.scheduler.Flush()
	assert.False(t, f.ctrl.IsFrozen())
}

func TestCloseUnfreezesOnNextTick(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.HoverEnter("a")
	f.scheduler.Flush()

	f.ctrl.Close()
	assert.True(t, f.ctrl.IsFrozen(), "unfreeze is deferred, never synchronous")
	assert.False(t, f.ctrl.HoverEnter("a"))

	f.scheduler.Flush()
	assert.False(t, f.ctrl.IsFrozen())
	assert.True(t, f.ctrl.HoverEnter("a"))
}

func TestDirectSwitch(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	f.ctrl.HoverEnter("a")
	f.scheduler.Flush()
	f.presenter.calls = nil

	var states []State
	f.ctrl.SetChangeCallback(func(s State, _ *model.Slot) { states = append(states, s) })

	require.True(t, f.ctrl.HoverEnter("c"))

	assert.Equal(t, "c", f.ctrl.Enlarged().Name)
	assert.Equal(t, []string{"restore:a", "spacer:c", "present:c"}, f.presenter.calls)
	assert.Equal(t, []State{StateCollapsed, StateEnlarged}, states)
	assert.Len(t, f.presenter.presented, 1)
}

func TestHoverSameSlotIsNoop(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.HoverEnter("a")
	f.scheduler.Flush()
	f.presenter.calls = nil

	assert.True(t, f.ctrl.HoverEnter("a"))
	assert.Empty(t, f.presenter.calls)
}

func TestEnlargeMissingSlotAborts(t *testing.T) {
	f := newFixture(t, "a", "b")

	assert.False(t, f.ctrl.HoverEnter("gone"))
	assert.Equal(t, StateCollapsed, f.ctrl.State())
	assert.Empty(t, f.presenter.calls)
}

func TestEnlargePlaceholderIsRefused(t *testing.T) {
	f := newFixture(t, "a")
	placeholder := f.bar.Widgets()[1]

	assert.False(t, f.ctrl.HoverEnter(placeholder.Name))
	assert.Equal(t, StateCollapsed, f.ctrl.State())
}

func TestHoverInvalidTargetKeepsCurrent(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.HoverEnter("a")
	f.scheduler.Flush()

	assert.False(t, f.ctrl.HoverEnter("gone"))
	assert.Equal(t, "a", f.ctrl.Enlarged().Name)
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.HoverEnter("a")
	f.scheduler.Flush()

	f.ctrl.Close()
	calls := append([]string(nil), f.presenter.calls...)
	f.ctrl.Close()

	assert.Equal(t, calls, f.presenter.calls)
	assert.Equal(t, StateCollapsed, f.ctrl.State())
}

func TestPointerLeave(t *testing.T) {
	tests := []struct {
		overEnlarged bool
		overBar      bool
		popupOpen    bool
		expected     State
	}{
		{false, false, false, StateCollapsed},
		{true, false, false, StateEnlarged},
		{false, true, false, StateEnlarged},
		{false, false, true, StateEnlarged},
	}

	for _, test := range tests {
		f := newFixture(t, "a", "b")
		f.ctrl.HoverEnter("a")
		if test.popupOpen {
			f.ctrl.PopupOpened()
		}

		f.ctrl.PointerLeave(test.overEnlarged, test.overBar)
		assert.Equal(t, test.expected, f.ctrl.State(), "%+v", test)
	}
}

func TestPopupClosedReenablesLeave(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.HoverEnter("a")
	f.ctrl.PopupOpened()
	assert.True(t, f.ctrl.IsPopupOpen())

	f.ctrl.PointerLeave(false, false)
	assert.Equal(t, StateEnlarged, f.ctrl.State())

	f.ctrl.PopupClosed()
	f.ctrl.PointerLeave(false, false)
	assert.Equal(t, StateCollapsed, f.ctrl.State())
	assert.False(t, f.ctrl.IsPopupOpen())
}

func TestDragLeave(t *testing.T) {
	f := newFixture(t, "a", "b", "c")

	require.True(t, f.ctrl.DragEnter("a"))
	assert.True(t, f.ctrl.IsDragging())
	f.scheduler.Flush()

	f.ctrl.DragLeave("a")
	assert.Equal(t, "a", f.ctrl.Enlarged().Name, "leaving onto itself keeps it")

	f.ctrl.DragLeave("c")
	assert.Equal(t, "c", f.ctrl.Enlarged().Name, "landing on another slot switches")
	f.scheduler.Flush()

	f.ctrl.DragLeave("")
	assert.Equal(t, StateCollapsed, f.ctrl.State(), "landing nowhere closes")
	assert.True(t, f.ctrl.IsDragging(), "the drag itself is still going")

	f.ctrl.DragEnd()
	assert.False(t, f.ctrl.IsDragging())
}

func TestHoverIgnoredWhileDragging(t *testing.T) {
	f := newFixture(t, "a", "b")

	f.ctrl.DragStart()
	assert.False(t, f.ctrl.HoverEnter("a"))
	assert.Equal(t, StateCollapsed, f.ctrl.State())

	require.True(t, f.ctrl.DragEnter("a"))
	f.scheduler.Flush()
	assert.False(t, f.ctrl.HoverEnter("b"))
	assert.Equal(t, "a", f.ctrl.Enlarged().Name)

	f.ctrl.Escape()
	f.scheduler.Flush()
	assert.False(t, f.ctrl.HoverEnter("b"), "closing does not end the drag")

	f.ctrl.DragEnd()
	assert.True(t, f.ctrl.HoverEnter("b"))
}

func TestSwapPromotesEnlarged(t *testing.T) {
	f := newFixture(t, "a", "b")
	promoter := &recordingPromoter{}
	f.ctrl.SetPromoter(promoter)

	assert.False(t, f.ctrl.Swap(), "nothing enlarged")

	f.ctrl.HoverEnter("b")
	assert.True(t, f.ctrl.Swap())
	assert.Equal(t, StateCollapsed, f.ctrl.State())
	assert.Equal(t, []string{"b"}, promoter.promoted)
}

func TestSwapPromoterErrorIsLogged(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.SetPromoter(&recordingPromoter{err: errors.New("boom")})
	f.ctrl.HoverEnter("a")

	assert.True(t, f.ctrl.Swap())
	assert.Equal(t, StateCollapsed, f.ctrl.State())
}

func TestRemovingEnlargedSlotResets(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	f.ctrl.HoverEnter("b")

	_, err := f.bar.RemoveByName("b")
	require.NoError(t, err)

	assert.Equal(t, StateCollapsed, f.ctrl.State())
	assert.Nil(t, f.ctrl.Enlarged())
	assert.Empty(t, f.presenter.presented)
}

func TestSetBarClosesAndRebinds(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.HoverEnter("a")
	f.scheduler.Flush()

	other := bar.New(model.DefaultSettings())
	require.NoError(t, other.Append(model.NewSlot("x", "label")))
	f.ctrl.SetBar(other)
	f.scheduler.Flush()

	assert.Equal(t, StateCollapsed, f.ctrl.State())
	assert.Nil(t, f.bar.Detached())
	assert.True(t, f.ctrl.HoverEnter("x"))
}

func TestRelayoutPresentsAgain(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.ctrl.Relayout()
	assert.Empty(t, f.presenter.calls)

	f.ctrl.HoverEnter("a")
	f.presenter.calls = nil
	f.ctrl.Relayout()
	assert.Equal(t, []string{"present:a"}, f.presenter.calls)
}

func TestAtMostOneEnlarged(t *testing.T) {
	f := newFixture(t, "a", "b", "c", "d")
	rng := rand.New(rand.NewSource(7))
	targets := []string{"a", "b", "c", "d", "gone", ""}

	for i := 0; i < 500; i++ {
		target := targets[rng.Intn(len(targets))]
		switch rng.Intn(7) {
		case 0:
			f.ctrl.HoverEnter(target)
		case 1:
			f.ctrl.DragEnter(target)
		case 2:
			f.ctrl.DragLeave(target)
		case 3:
			f.ctrl.Escape()
		case 4:
			f.ctrl.PointerLeave(rng.Intn(2) == 0, rng.Intn(2) == 0)
		case 5:
			f.scheduler.Flush()
		case 6:
			f.ctrl.DragEnd()
		}

		require.LessOrEqual(t, len(f.presenter.presented), 1, fmt.Sprintf("step %d", i))
		if f.ctrl.State() == StateEnlarged {
			require.NotNil(t, f.ctrl.Enlarged())
			require.Equal(t, f.ctrl.Enlarged(), f.bar.Detached())
		} else {
			require.Equal(t, StateCollapsed, f.ctrl.State())
			require.Nil(t, f.bar.Detached())
		}
	}
}

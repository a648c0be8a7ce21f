package bar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/popupbar/internal/model"
)

// assertContiguous checks that indices are exactly 0..Len()-1
func assertContiguous(t *testing.T, b *Bar) {
	t.Helper()
	for i, s := range b.Widgets() {
		assert.Equal(t, i, s.Index, "slot %q has index %d at position %d", s.Name, s.Index, i)
	}
}

func names(slots []*model.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Name)
	}
	return out
}

func newBar(t *testing.T, slotNames ...string) *Bar {
	t.Helper()
	b := New(model.DefaultSettings())
	for _, n := range slotNames {
		require.NoError(t, b.Append(model.NewSlot(n, "label")))
	}
	return b
}

func TestNewBarHoldsPlaceholders(t *testing.T) {
	b := New(model.DefaultSettings())

	assert.Equal(t, MinSlots, b.Len())
	assert.Equal(t, 0, b.RealLen())
	for _, s := range b.Widgets() {
		assert.True(t, s.IsPlaceholder())
	}
	assertContiguous(t, b)
}

func TestPlaceholderAutoRemoved(t *testing.T) {
	b := newBar(t, "a")

	require.Equal(t, 2, b.Len(), "one real slot plus a placeholder")
	assert.False(t, b.Widgets()[0].IsPlaceholder())
	assert.True(t, b.Widgets()[1].IsPlaceholder())

	require.NoError(t, b.Append(model.NewSlot("b", "label")))

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"a", "b"}, names(b.Widgets()))
	assertContiguous(t, b)
}

func TestInsert(t *testing.T) {
	b := newBar(t, "a", "b", "c")

	require.NoError(t, b.Insert(1, model.NewSlot("x", "label")))
	assert.Equal(t, []string{"a", "x", "b", "c"}, names(b.Widgets()))
	assertContiguous(t, b)

	require.NoError(t, b.Insert(0, model.NewSlot("y", "label")))
	require.NoError(t, b.Insert(b.Len(), model.NewSlot("z", "label")))
	assert.Equal(t, []string{"y", "a", "x", "b", "c", "z"}, names(b.Widgets()))
	assertContiguous(t, b)
}

func TestInsertClampsInFrontOfPlaceholders(t *testing.T) {
	b := New(model.DefaultSettings())

	require.NoError(t, b.Insert(2, model.NewSlot("a", "label")))
	assert.Equal(t, "a", b.Widgets()[0].Name)
	assert.True(t, b.Widgets()[1].IsPlaceholder())
	assertContiguous(t, b)
}

func TestInsertErrors(t *testing.T) {
	b := newBar(t, "a", "b")

	err := b.Insert(5, model.NewSlot("c", "label"))
	var idxErr *model.IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)

	err = b.Insert(-1, model.NewSlot("c", "label"))
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)

	err = b.Insert(0, model.NewSlot("a", "label"))
	var dupErr *model.DuplicateNameError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "a", dupErr.Name)

	err = b.Insert(0, model.NewPlaceholderSlot())
	assert.ErrorIs(t, err, model.ErrPlaceholderSlot)

	assert.Equal(t, []string{"a", "b"}, names(b.Widgets()), "failed inserts leave the bar unchanged")
}

func TestRemove(t *testing.T) {
	b := newBar(t, "a", "b", "c")
	sb, _ := b.Find("b")

	require.NoError(t, b.Remove(sb))
	assert.Equal(t, []string{"a", "c"}, names(b.Widgets()))
	assertContiguous(t, b)

	assert.ErrorIs(t, b.Remove(sb), model.ErrSlotNotFound)

	_, err := b.RemoveByName("a")
	require.NoError(t, err)
	assert.Equal(t, 1, b.RealLen())
	assert.Equal(t, 2, b.Len(), "placeholder fills the bar back to two entries")
	assertContiguous(t, b)

	assert.ErrorIs(t, b.Remove(b.Widgets()[1]), model.ErrPlaceholderSlot)
}

func TestMoveTo(t *testing.T) {
	b := newBar(t, "a", "b", "c", "d")
	sa, _ := b.Find("a")

	require.NoError(t, b.MoveTo(sa, 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, names(b.Widgets()))
	assertContiguous(t, b)

	sd, _ := b.Find("d")
	require.NoError(t, b.MoveTo(sd, 0))
	assert.Equal(t, []string{"d", "b", "c", "a"}, names(b.Widgets()))
	assertContiguous(t, b)

	assert.ErrorIs(t, b.MoveTo(sd, 4), model.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.MoveTo(sd, -1), model.ErrIndexOutOfRange)
}

func TestIndicesStayContiguous(t *testing.T) {
	b := New(model.DefaultSettings())
	steps := []func(){
		func() { _ = b.Append(model.NewSlot("a", "")) },
		func() { _ = b.Insert(0, model.NewSlot("b", "")) },
		func() { _ = b.Insert(1, model.NewSlot("c", "")) },
		func() { _, _ = b.RemoveByName("b") },
		func() { s, _ := b.Find("a"); _ = b.MoveTo(s, 0) },
		func() { _, _ = b.RemoveByName("c") },
		func() { _, _ = b.RemoveByName("a") },
		func() { _ = b.Append(model.NewSlot("d", "")) },
	}
	for _, step := range steps {
		step()
		assertContiguous(t, b)
		assert.GreaterOrEqual(t, b.Len(), MinSlots)
	}
}

func TestDetachAtMostOne(t *testing.T) {
	b := newBar(t, "a", "b")
	sa, _ := b.Find("a")
	sb, _ := b.Find("b")

	require.NoError(t, b.Detach(sa))
	require.NoError(t, b.Detach(sb))

	assert.False(t, b.IsDetached(sa))
	assert.True(t, b.IsDetached(sb))
	assert.Equal(t, sb, b.Reattach())
	assert.Nil(t, b.Detached())
	assert.Nil(t, b.Reattach(), "second reattach is a no-op")
}

func TestRemoveDetachedClearsSpacer(t *testing.T) {
	b := newBar(t, "a", "b")
	sa, _ := b.Find("a")
	require.NoError(t, b.Detach(sa))

	require.NoError(t, b.Remove(sa))
	assert.Nil(t, b.Detached())
}

func TestSubscribeReceivesEvents(t *testing.T) {
	b := New(model.DefaultSettings())
	var kinds []EventKind
	b.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	sa := model.NewSlot("a", "")
	require.NoError(t, b.Append(sa))
	require.NoError(t, b.Append(model.NewSlot("b", "")))
	require.NoError(t, b.MoveTo(sa, 1))
	require.NoError(t, b.Remove(sa))

	assert.Equal(t, []EventKind{EventInserted, EventInserted, EventMoved, EventRemoved}, kinds)
}

func TestSetSettingsKeepsDisplayMode(t *testing.T) {
	b := New(model.DefaultSettings())
	s := model.DefaultSettings()
	s.DisplayMode = model.ModeStandaloneTaskbar
	s.Direction = model.DirectionEast

	b.SetSettings(s)

	assert.Equal(t, model.ModePiP, b.DisplayMode())
	assert.Equal(t, model.DirectionEast, b.Direction())
}

func TestSpecsSkipPlaceholders(t *testing.T) {
	b := newBar(t, "a")

	specs := b.Specs()
	require.Len(t, specs, 1)
	assert.Equal(t, "a", specs[0].Name)
}

package callbacks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

type counter struct {
	calls []string
}

func record(name string) Func[*counter] {
	return func(c *counter) {
		c.calls = append(c.calls, name)
	}
}

func TestRegistry_DispatchInRegistrationOrder(t *testing.T) {
	r := NewRegistry[*counter]()
	c := &counter{}

	for _, name := range []string{"first", "second", "third"} {
		_, err := r.Register(event.CategoryWindow, Single(state.Held, space), record(name))
		require.NoError(t, err)
	}
	// Duplicate triggers are allowed and both fire
	_, err := r.Register(event.CategoryWindow, Single(state.Held, space), record("first"))
	require.NoError(t, err)

	tr := input.NewTracker()
	tr.Press(space)

	fired := r.Dispatch(event.CategoryWindow, event.Key(element.KeySpace, true), tr, c)
	assert.Equal(t, 4, fired)
	assert.Equal(t, []string{"first", "second", "third", "first"}, c.calls)
}

func TestRegistry_PartitionsByCategory(t *testing.T) {
	r := NewRegistry[*counter]()
	c := &counter{}

	_, err := r.Register(event.CategoryWindow, Single(state.Pressed, space), record("window"))
	require.NoError(t, err)
	_, err = r.Register(event.CategoryDevice, Single(state.Pressed, space), record("device"))
	require.NoError(t, err)

	tr := input.NewTracker()
	tr.Press(space)

	r.Dispatch(event.CategoryDevice, none, tr, c)
	assert.Equal(t, []string{"device"}, c.calls)

	assert.Equal(t, 1, r.Len(event.CategoryWindow))
	assert.Equal(t, 0, r.Len(event.CategoryGeneral))
	assert.Zero(t, r.Dispatch(event.CategoryNone, none, tr, c), "unknown categories are ignored")
}

func TestRegistry_SpacePressedFiresOnce(t *testing.T) {
	r := NewRegistry[*counter]()
	c := &counter{}
	_, err := r.Register(event.CategoryWindow, Single(state.Pressed, space), record("space"))
	require.NoError(t, err)

	tr := input.NewTracker()

	ev := event.Key(element.KeySpace, true)
	tr.Record(ev)
	r.Dispatch(event.CategoryWindow, ev, tr, c)
	assert.Len(t, c.calls, 1)

	tr.Advance(time.Millisecond)
	ev = event.Key(element.KeyA, true)
	tr.Record(ev)
	r.Dispatch(event.CategoryWindow, ev, tr, c)
	assert.Len(t, c.calls, 1, "unrelated press must not fire the space callback")
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry[*counter]()
	c := &counter{}

	h1, err := r.Register(event.CategoryWindow, Single(state.Held, space), record("one"))
	require.NoError(t, err)
	_, err = r.Register(event.CategoryWindow, Single(state.Held, space), record("two"))
	require.NoError(t, err)

	assert.True(t, r.Remove(h1))
	assert.False(t, r.Remove(h1), "second removal is a no-op")

	tr := input.NewTracker()
	tr.Press(space)
	r.Dispatch(event.CategoryWindow, none, tr, c)
	assert.Equal(t, []string{"two"}, c.calls)
}

func TestRegistry_ChangesDuringDispatch(t *testing.T) {
	r := NewRegistry[*counter]()
	c := &counter{}
	trig := Single(state.Held, space)

	var second Handle
	_, err := r.Register(event.CategoryWindow, trig, func(c *counter) {
		c.calls = append(c.calls, "first")
		r.Remove(second)
		_, _ = r.Register(event.CategoryWindow, trig, record("late"))
	})
	require.NoError(t, err)
	second, err = r.Register(event.CategoryWindow, trig, record("second"))
	require.NoError(t, err)

	tr := input.NewTracker()
	tr.Press(space)

	r.Dispatch(event.CategoryWindow, none, tr, c)
	assert.Equal(t, []string{"first", "second"}, c.calls, "the running dispatch keeps its snapshot")

	c.calls = nil
	r.Dispatch(event.CategoryWindow, none, tr, c)
	assert.Equal(t, []string{"first", "late"}, c.calls)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := NewRegistry[*counter]()
	fn := record("x")

	_, err := r.Register(event.CategoryNone, Single(state.Held, space), fn)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = r.Register(event.CategoryWindow, nil, fn)
	assert.ErrorIs(t, err, ErrNilTrigger)

	_, err = r.Register(event.CategoryWindow, Single(state.Held, space), nil)
	assert.ErrorIs(t, err, ErrNilCallback)

	_, err = r.Register(event.CategoryWindow, All(state.Held), fn)
	assert.ErrorIs(t, err, ErrEmptyElements)

	_, err = r.Register(event.CategoryWindow, OnEvent(event.Resumed), fn)
	assert.ErrorIs(t, err, ErrCategoryMismatch)

	assert.Zero(t, r.Len(event.CategoryWindow))
}

func TestRegistry_GeneralRejectsEdgeTriggers(t *testing.T) {
	r := NewRegistry[*counter]()
	fn := record("x")

	for _, trig := range []Trigger{
		Single(state.Pressed, space),
		Single(state.Released, space),
		Any(state.Pressed, space, keyA),
		All(state.Released, space, keyA),
		Chord(state.Pressed, element.ModCtrl, keyS),
		Chord(state.Released, element.ModShift),
	} {
		_, err := r.Register(event.CategoryGeneral, trig, fn)
		assert.ErrorIs(t, err, ErrEdgeOnGeneral, trig.String())

		_, err = r.Register(event.CategoryWindow, trig, fn)
		assert.NoError(t, err, trig.String())
	}
	assert.Zero(t, r.Len(event.CategoryGeneral))

	_, err := r.Register(event.CategoryGeneral, Single(state.Held, space), fn)
	require.NoError(t, err)
	_, err = r.Register(event.CategoryGeneral, Chord(state.Held, element.ModCtrl), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len(event.CategoryGeneral))
}

func TestRegistry_PanicsPropagate(t *testing.T) {
	r := NewRegistry[*counter]()
	_, err := r.Register(event.CategoryGeneral, OnEvent(event.Resumed), func(*counter) {
		panic("boom")
	})
	require.NoError(t, err)

	assert.PanicsWithValue(t, "boom", func() {
		r.Dispatch(event.CategoryGeneral, event.Of(event.Resumed), input.NewTracker(), &counter{})
	})
}

func TestRegistry_DispatchDoesNotMutateTracker(t *testing.T) {
	r := NewRegistry[*counter]()
	for _, trig := range []Trigger{
		Single(state.Pressed, space),
		All(state.Held, space, keyA),
		Any(state.Released, space),
		Chord(state.Held, element.ModCtrl, space),
	} {
		_, err := r.Register(event.CategoryWindow, trig, record(trig.String()))
		require.NoError(t, err)
	}

	tr := input.NewTracker()
	tr.Press(space)
	tr.Press(keyA)

	r.Dispatch(event.CategoryWindow, none, tr, &counter{})

	assert.Equal(t, state.Pressed, tr.State(space))
	assert.Equal(t, state.Pressed, tr.State(keyA))
	assert.True(t, tr.JustPressed(space))
}

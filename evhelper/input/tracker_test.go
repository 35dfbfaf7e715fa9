package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

var (
	space = element.Key(element.KeySpace)
	keyA  = element.Key(element.KeyA)
	left  = element.Mouse(element.ButtonLeft)
)

func TestTracker_PressDecaysToHeld(t *testing.T) {
	for _, e := range []element.Element{space, left, element.Scan(42)} {
		t.Run(e.String(), func(t *testing.T) {
			tr := NewTracker()

			tr.Press(e)
			assert.Equal(t, state.Pressed, tr.State(e))
			assert.True(t, tr.JustPressed(e))

			tr.Advance(time.Millisecond)
			assert.Equal(t, state.Held, tr.State(e), "Pressed must not survive an advance")
			assert.False(t, tr.JustPressed(e))
		})
	}
}

func TestTracker_ReleaseClearsDuration(t *testing.T) {
	tests := []struct {
		name  string
		setup func(tr *Tracker)
	}{
		{"from released", func(tr *Tracker) {}},
		{"from pressed", func(tr *Tracker) { tr.Press(space) }},
		{"from held", func(tr *Tracker) {
			tr.Press(space)
			tr.Advance(10 * time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tt.setup(tr)

			tr.Release(space)

			d, ok := tr.HeldFor(space)
			assert.False(t, ok)
			assert.Zero(t, d)
			assert.Equal(t, state.Released, tr.State(space))
			assert.True(t, tr.JustReleased(space))
		})
	}
}

func TestTracker_DurationAccumulates(t *testing.T) {
	tr := NewTracker()
	tr.Press(left)

	d, ok := tr.HeldFor(left)
	assert.True(t, ok, "pressed elements report a duration")
	assert.Zero(t, d)

	tr.Advance(16 * time.Millisecond)
	tr.Advance(17 * time.Millisecond)

	d, ok = tr.HeldFor(left)
	assert.True(t, ok)
	assert.Equal(t, 33*time.Millisecond, d)
}

func TestTracker_RepeatPressKeepsDuration(t *testing.T) {
	tr := NewTracker()
	tr.Press(keyA)
	tr.Advance(5 * time.Millisecond)

	// OS key repeat
	tr.Press(keyA)
	assert.Equal(t, state.Held, tr.State(keyA))
	assert.False(t, tr.JustPressed(keyA))

	d, _ := tr.HeldFor(keyA)
	assert.Equal(t, 5*time.Millisecond, d)

	// A second press within the same cycle goes straight to Held
	tr2 := NewTracker()
	tr2.Press(keyA)
	tr2.Press(keyA)
	assert.Equal(t, state.Held, tr2.State(keyA))
	assert.True(t, tr2.JustPressed(keyA))
}

func TestTracker_PressAndReleaseInOneCycle(t *testing.T) {
	tr := NewTracker()
	tr.Press(space)
	tr.Release(space)

	assert.Equal(t, state.Released, tr.State(space))
	assert.True(t, tr.JustPressed(space))
	assert.True(t, tr.JustReleased(space))

	tr.Advance(time.Millisecond)
	assert.False(t, tr.JustPressed(space))
	assert.False(t, tr.JustReleased(space))
}

func TestTracker_Record(t *testing.T) {
	tr := NewTracker()

	assert.True(t, tr.Record(event.Key(element.KeySpace, true)))
	assert.Equal(t, state.Pressed, tr.State(space))

	ev := event.Key(element.KeyA, true)
	ev.Scancode = 30
	assert.True(t, tr.Record(ev))
	assert.Equal(t, state.Pressed, tr.State(keyA))
	assert.Equal(t, state.Pressed, tr.State(element.Scan(30)))

	assert.True(t, tr.Record(event.DeviceInput(left, true)))
	assert.Equal(t, state.Pressed, tr.State(left))

	assert.True(t, tr.Record(event.Mods(element.ModCtrl|element.ModShift)))
	assert.Equal(t, element.ModCtrl|element.ModShift, tr.Modifiers())

	assert.False(t, tr.Record(event.Cursor(1, 2)))
	assert.False(t, tr.Record(event.FrameEnd()))
	assert.False(t, tr.Record(event.Event{Type: event.KeyboardInput, Pressed: true}), "no element and no scancode")

	assert.True(t, tr.Record(event.Key(element.KeySpace, false)))
	assert.Equal(t, state.Released, tr.State(space))
}

func TestTracker_Down(t *testing.T) {
	tr := NewTracker()
	tr.Press(left)
	tr.Press(keyA)
	tr.Press(space)
	tr.Release(space)

	assert.Equal(t, []element.Element{keyA, left}, tr.Down())
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Press(keyA)
	tr.Record(event.Mods(element.ModAlt))

	tr.Reset()

	assert.Equal(t, state.Released, tr.State(keyA))
	assert.False(t, tr.JustPressed(keyA))
	assert.False(t, tr.JustReleased(keyA))
	assert.Empty(t, tr.Down())
	assert.True(t, tr.Modifiers().IsEmpty())
}

func TestTracker_UnseenElement(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, state.Released, tr.State(keyA))
	_, ok := tr.HeldFor(keyA)
	assert.False(t, ok)
	assert.False(t, tr.JustPressed(keyA))

	tr.Advance(-time.Second)
	assert.Equal(t, state.Released, tr.State(keyA))
}

func TestTracker_ImplementsReader(t *testing.T) {
	var _ Reader = NewTracker()
}

package terminal

import (
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/source"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newSimSource(t *testing.T) (*Source, tcell.SimulationScreen, *fakeClock) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	screen := tcell.NewSimulationScreen("UTF-8")
	clock := &fakeClock{now: time.Unix(0, 0)}

	s := NewWithScreen(screen, slog.LevelDebug)
	s.now = clock.Now
	require.NoError(t, s.Init(source.Config{Title: "test", KeyTimeout: 100 * time.Millisecond}))
	t.Cleanup(func() { _ = s.Close() })

	// drop anything the screen posted during init
	_, err := s.Poll()
	require.NoError(t, err)
	return s, screen, clock
}

func ofType(events []event.Event, types ...event.Type) []event.Event {
	var out []event.Event
	for _, ev := range events {
		for _, t := range types {
			if ev.Type == t {
				out = append(out, ev)
			}
		}
	}
	return out
}

func TestSource_KeyPressAndTimeout(t *testing.T) {
	s, screen, clock := newSimSource(t)

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	events, err := s.Poll()
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.True(t, events[len(events)-1].IsFrameEnd())

	keys := ofType(events, event.KeyboardInput)
	require.Len(t, keys, 1)
	assert.Equal(t, element.Key(element.KeyA), keys[0].Element)
	assert.True(t, keys[0].Pressed)
	assert.Equal(t, []event.Event{event.Char('a')}, ofType(events, event.ReceivedCharacter))

	// a repeat inside the timeout keeps the key down without a second press
	clock.now = clock.now.Add(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	events, err = s.Poll()
	require.NoError(t, err)
	assert.Empty(t, ofType(events, event.KeyboardInput))
	assert.Len(t, ofType(events, event.ReceivedCharacter), 1)

	clock.now = clock.now.Add(99 * time.Millisecond)
	events, err = s.Poll()
	require.NoError(t, err)
	assert.Empty(t, ofType(events, event.KeyboardInput))

	clock.now = clock.now.Add(time.Millisecond)
	events, err = s.Poll()
	require.NoError(t, err)
	keys = ofType(events, event.KeyboardInput)
	require.Len(t, keys, 1)
	assert.Equal(t, element.Key(element.KeyA), keys[0].Element)
	assert.False(t, keys[0].Pressed)
}

func TestSource_ModifiersAndSpecialKeys(t *testing.T) {
	s, screen, clock := newSimSource(t)

	screen.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	events, err := s.Poll()
	require.NoError(t, err)

	mods := ofType(events, event.ModifiersChanged)
	require.Len(t, mods, 2)
	assert.Equal(t, element.ModCtrl, mods[0].Modifiers)
	assert.Equal(t, element.ModNone, mods[1].Modifiers)

	keys := ofType(events, event.KeyboardInput)
	require.Len(t, keys, 2)
	assert.Equal(t, element.Key(element.KeyS), keys[0].Element)
	assert.Equal(t, element.ModCtrl, keys[0].Modifiers)
	assert.Equal(t, element.Key(element.KeyEscape), keys[1].Element)
	assert.Empty(t, ofType(events, event.ReceivedCharacter))

	clock.now = clock.now.Add(time.Second)
	events, err = s.Poll()
	require.NoError(t, err)
	assert.Len(t, ofType(events, event.KeyboardInput), 2, "both keys time out")
}

func TestSource_Mouse(t *testing.T) {
	s, screen, _ := newSimSource(t)

	screen.InjectMouse(3, 4, tcell.ButtonPrimary, tcell.ModNone)
	events, err := s.Poll()
	require.NoError(t, err)

	assert.Len(t, ofType(events, event.CursorEntered), 1)
	assert.Equal(t, []event.Event{event.Cursor(3, 4)}, ofType(events, event.CursorMoved))
	buttons := ofType(events, event.MouseInput)
	require.Len(t, buttons, 1)
	assert.Equal(t, element.Mouse(element.ButtonLeft), buttons[0].Element)
	assert.True(t, buttons[0].Pressed)

	screen.InjectMouse(3, 4, tcell.ButtonNone, tcell.ModNone)
	events, err = s.Poll()
	require.NoError(t, err)
	assert.Empty(t, ofType(events, event.CursorMoved), "same position")
	buttons = ofType(events, event.MouseInput)
	require.Len(t, buttons, 1)
	assert.False(t, buttons[0].Pressed)

	screen.InjectMouse(3, 4, tcell.WheelUp, tcell.ModNone)
	events, err = s.Poll()
	require.NoError(t, err)
	assert.Equal(t, []event.Event{event.Wheel(0, 1)}, ofType(events, event.MouseWheel))
}

func TestSource_RenderShowsLogs(t *testing.T) {
	s, screen, _ := newSimSource(t)
	screen.SetSize(80, 24)

	slog.Info("Bound trigger fired")
	s.Render([]string{"frame 1"})

	assert.Positive(t, s.LogBuffer().Len())

	cells, width, _ := screen.GetContents()
	var row []rune
	for x := 0; x < width; x++ {
		row = append(row, cells[width+x].Runes...)
	}
	assert.Contains(t, string(row), "frame 1")
}

func TestFitText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"fits", "key A", 10, "key A"},
		{"ascii", "pressed Space", 10, "pressed..."},
		{"multibyte", "héllo wörld ünïcode", 10, "héllo w..."},
		{"wide", "日本語のログ行", 9, "日本語..."},
		{"narrow", "résumé", 3, "rés"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitText(tt.text, tt.width)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.width)
		})
	}
}

func TestSource_RenderCutsLongLogLines(t *testing.T) {
	s, screen, _ := newSimSource(t)
	screen.SetSize(minTermWidth, minTermHeight)
	s.LogBuffer().Clear()

	slog.Info(strings.Repeat("é", 2*minTermWidth))
	s.Render(nil)

	cells, width, height := screen.GetContents()
	found := false
	for y := 0; y < height; y++ {
		var row []rune
		for x := 0; x < width; x++ {
			row = append(row, cells[y*width+x].Runes...)
		}
		if strings.Contains(string(row), "éé...") {
			found = true
			assert.NotContains(t, string(row), string(utf8.RuneError))
		}
	}
	assert.True(t, found, "the long line ends in an ellipsis")
}

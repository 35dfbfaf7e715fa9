package input

import (
	"log/slog"
	"sort"
	"time"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

// Reader is the read-only view of tracked input handed to triggers and callbacks
type Reader interface {
	State(e element.Element) state.State
	HeldFor(e element.Element) (time.Duration, bool)
	JustPressed(e element.Element) bool
	JustReleased(e element.Element) bool
	Modifiers() element.Modifiers
	Down() []element.Element
}

type tracked struct {
	state state.State
	held  time.Duration
}

// Tracker keeps press state and held duration for every element it has seen.
// Elements are created on first observation and never forgotten.
type Tracker struct {
	elements     map[element.Element]*tracked
	justPressed  map[element.Element]struct{}
	justReleased map[element.Element]struct{}
	modifiers    element.Modifiers
}

func NewTracker() *Tracker {
	return &Tracker{
		elements:     make(map[element.Element]*tracked),
		justPressed:  make(map[element.Element]struct{}),
		justReleased: make(map[element.Element]struct{}),
	}
}

// Record applies ev to the tracked state. It returns false when ev does not
// describe a press, release or modifier change.
func (t *Tracker) Record(ev event.Event) bool {
	switch ev.Type {
	case event.KeyboardInput, event.DeviceKey:
		if !ev.Element.Valid() && ev.Scancode == 0 {
			return false
		}
		if ev.Element.Valid() {
			t.Update(ev.Element, ev.Pressed)
		}
		if ev.Scancode != 0 {
			t.Update(element.Scan(ev.Scancode), ev.Pressed)
		}
		return true
	case event.MouseInput, event.DeviceButton:
		if !ev.Element.Valid() {
			return false
		}
		t.Update(ev.Element, ev.Pressed)
		return true
	case event.ModifiersChanged:
		t.modifiers = ev.Modifiers
		return true
	default:
		return false
	}
}

// Update registers e as pressed or released.
func (t *Tracker) Update(e element.Element, pressed bool) {
	if pressed {
		t.Press(e)
	} else {
		t.Release(e)
	}
}

// Press registers e as pressed. A press on an element that is already down
// moves it to Held and keeps its duration.
func (t *Tracker) Press(e element.Element) {
	el := t.get(e)
	switch el.state {
	case state.Released:
		el.state = state.Pressed
		el.held = 0
		t.justPressed[e] = struct{}{}
	case state.Pressed, state.Held:
		el.state = state.Held
	}
}

// Release registers e as released. The just-pressed mark is kept so a press
// and release inside one update cycle still counts as a press.
func (t *Tracker) Release(e element.Element) {
	el := t.get(e)
	el.state = state.Released
	el.held = 0
	t.justReleased[e] = struct{}{}
}

// Advance ends the current update cycle: Pressed decays to Held and every
// Held element accumulates dt.
func (t *Tracker) Advance(dt time.Duration) {
	clear(t.justPressed)
	clear(t.justReleased)

	if dt < 0 {
		slog.Debug("Negative advance clamped", "dt", dt)
		dt = 0
	}

	for _, el := range t.elements {
		if el.state == state.Pressed {
			el.state = state.Held
		}
		if el.state == state.Held {
			el.held += dt
		}
	}
}

// State returns the current state of e. Unseen elements are Released.
func (t *Tracker) State(e element.Element) state.State {
	if el, ok := t.elements[e]; ok {
		return el.state
	}
	return state.Released
}

// HeldFor returns how long e has been down, and false if it is released.
// An element pressed during the current cycle reports zero.
func (t *Tracker) HeldFor(e element.Element) (time.Duration, bool) {
	el, ok := t.elements[e]
	if !ok || !el.state.Down() {
		return 0, false
	}
	return el.held, true
}

// JustPressed reports whether e went down during the current cycle.
func (t *Tracker) JustPressed(e element.Element) bool {
	_, ok := t.justPressed[e]
	return ok
}

// JustReleased reports whether e was released during the current cycle.
func (t *Tracker) JustReleased(e element.Element) bool {
	_, ok := t.justReleased[e]
	return ok
}

// Modifiers returns the modifier set from the last ModifiersChanged event.
func (t *Tracker) Modifiers() element.Modifiers {
	return t.modifiers
}

// Down returns every pressed or held element, ordered by kind and code.
func (t *Tracker) Down() []element.Element {
	var down []element.Element
	for e, el := range t.elements {
		if el.state.Down() {
			down = append(down, e)
		}
	}
	sort.Slice(down, func(i, j int) bool { return down[i].Less(down[j]) })
	return down
}

// Reset releases everything without marking anything as just released.
func (t *Tracker) Reset() {
	for _, el := range t.elements {
		el.state = state.Released
		el.held = 0
	}
	clear(t.justPressed)
	clear(t.justReleased)
	t.modifiers = element.ModNone
}

func (t *Tracker) get(e element.Element) *tracked {
	el, ok := t.elements[e]
	if !ok {
		el = &tracked{state: state.Released}
		t.elements[e] = el
	}
	return el
}

package callbacks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

// Configuration errors returned at registration time
var (
	ErrEmptyElements    = errors.New("trigger has no elements")
	ErrInvalidElement   = errors.New("trigger has an invalid element")
	ErrInvalidState     = errors.New("trigger has an invalid state")
	ErrInvalidEventType = errors.New("trigger has an invalid event type")
)

// Trigger decides whether a callback fires for the current update.
// Match must not modify the tracked input.
type Trigger interface {
	Match(ev event.Event, in input.Reader) bool
	Validate() error
	String() string
}

// matchState applies the per-element rule: Held also matches Pressed, and an
// element pressed and released within one cycle still counts as pressed.
func matchState(in input.Reader, e element.Element, want state.State) bool {
	switch want {
	case state.Pressed:
		return in.JustPressed(e)
	case state.Held:
		return in.State(e).Down() || in.JustPressed(e)
	case state.Released:
		return in.JustReleased(e)
	default:
		return false
	}
}

// modifiersDown reports whether every bit of mods is active, either from the
// platform modifier state or because one of its keys is down.
func modifiersDown(in input.Reader, mods element.Modifiers) bool {
	ok := true
	mods.Each(func(mod element.Modifiers) {
		if !ok || in.Modifiers().Has(mod) {
			return
		}
		for _, k := range mod.Keys() {
			if in.State(k).Down() {
				return
			}
		}
		ok = false
	})
	return ok
}

func validateElements(elems []element.Element, allowEmpty bool) error {
	if len(elems) == 0 && !allowEmpty {
		return ErrEmptyElements
	}
	for _, e := range elems {
		if !e.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidElement, e)
		}
	}
	return nil
}

func validateState(s state.State) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return nil
}

// StateOf returns the element state t waits for. Event triggers and unknown
// implementations report false.
func StateOf(t Trigger) (state.State, bool) {
	switch t := t.(type) {
	case SingleTrigger:
		return t.State, true
	case AllTrigger:
		return t.State, true
	case AnyTrigger:
		return t.State, true
	case ChordTrigger:
		return t.State, true
	default:
		return 0, false
	}
}

func joinElements(elems []element.Element) string {
	names := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.String()
	}
	return strings.Join(names, ",")
}

// SingleTrigger fires when one element is in the configured state
type SingleTrigger struct {
	State   state.State
	Element element.Element
}

// Single returns a trigger for one element.
func Single(s state.State, e element.Element) SingleTrigger {
	return SingleTrigger{State: s, Element: e}
}

func (t SingleTrigger) Match(_ event.Event, in input.Reader) bool {
	return matchState(in, t.Element, t.State)
}

func (t SingleTrigger) Validate() error {
	if err := validateState(t.State); err != nil {
		return err
	}
	return validateElements([]element.Element{t.Element}, false)
}

func (t SingleTrigger) String() string {
	return fmt.Sprintf("%s:%s", t.State, t.Element)
}

// AllTrigger fires when every element is in the configured state
type AllTrigger struct {
	State    state.State
	Elements []element.Element
}

// All returns a trigger that needs every element at once.
func All(s state.State, elems ...element.Element) AllTrigger {
	return AllTrigger{State: s, Elements: elems}
}

func (t AllTrigger) Match(_ event.Event, in input.Reader) bool {
	for _, e := range t.Elements {
		if !matchState(in, e, t.State) {
			return false
		}
	}
	return len(t.Elements) > 0
}

func (t AllTrigger) Validate() error {
	if err := validateState(t.State); err != nil {
		return err
	}
	return validateElements(t.Elements, false)
}

func (t AllTrigger) String() string {
	return fmt.Sprintf("%s-all:%s", t.State, joinElements(t.Elements))
}

// AnyTrigger fires when at least one element is in the configured state
type AnyTrigger struct {
	State    state.State
	Elements []element.Element
}

// Any returns a trigger that needs one of the elements.
func Any(s state.State, elems ...element.Element) AnyTrigger {
	return AnyTrigger{State: s, Elements: elems}
}

func (t AnyTrigger) Match(_ event.Event, in input.Reader) bool {
	for _, e := range t.Elements {
		if matchState(in, e, t.State) {
			return true
		}
	}
	return false
}

func (t AnyTrigger) Validate() error {
	if err := validateState(t.State); err != nil {
		return err
	}
	return validateElements(t.Elements, false)
}

func (t AnyTrigger) String() string {
	return fmt.Sprintf("%s-any:%s", t.State, joinElements(t.Elements))
}

// ChordTrigger is an all-trigger that also requires modifiers to be down.
// With no elements it fires on the modifiers alone: Held while they are down,
// Pressed on a modifier change or modifier key press that leaves them
// satisfied, Released when one of their keys is released.
type ChordTrigger struct {
	State     state.State
	Modifiers element.Modifiers
	Elements  []element.Element
}

// Chord returns a modifier-qualified trigger.
func Chord(s state.State, mods element.Modifiers, elems ...element.Element) ChordTrigger {
	return ChordTrigger{State: s, Modifiers: mods, Elements: elems}
}

func (t ChordTrigger) Match(ev event.Event, in input.Reader) bool {
	if len(t.Elements) == 0 {
		return t.matchModifiersOnly(ev, in)
	}
	if !modifiersDown(in, t.Modifiers) {
		return false
	}
	return All(t.State, t.Elements...).Match(ev, in)
}

func (t ChordTrigger) matchModifiersOnly(ev event.Event, in input.Reader) bool {
	changed := ev.Type == event.ModifiersChanged
	switch t.State {
	case state.Held:
		return modifiersDown(in, t.Modifiers)
	case state.Pressed:
		if !modifiersDown(in, t.Modifiers) {
			return false
		}
		return changed || modifierKeyEdge(in, t.Modifiers, in.JustPressed)
	case state.Released:
		return modifierKeyEdge(in, t.Modifiers, in.JustReleased)
	default:
		return false
	}
}

func modifierKeyEdge(in input.Reader, mods element.Modifiers, edge func(element.Element) bool) bool {
	found := false
	mods.Each(func(mod element.Modifiers) {
		for _, k := range mod.Keys() {
			if edge(k) {
				found = true
			}
		}
	})
	return found
}

func (t ChordTrigger) Validate() error {
	if err := validateState(t.State); err != nil {
		return err
	}
	return validateElements(t.Elements, !t.Modifiers.IsEmpty())
}

func (t ChordTrigger) String() string {
	parts := []string{}
	if !t.Modifiers.IsEmpty() {
		parts = append(parts, t.Modifiers.String())
	}
	for _, e := range t.Elements {
		parts = append(parts, e.String())
	}
	return fmt.Sprintf("%s:%s", t.State, strings.Join(parts, "+"))
}

// EventTrigger fires for every event of one type
type EventTrigger struct {
	Type event.Type
}

// OnEvent returns a trigger for an event type.
func OnEvent(t event.Type) EventTrigger {
	return EventTrigger{Type: t}
}

func (t EventTrigger) Match(ev event.Event, _ input.Reader) bool {
	return ev.Type == t.Type
}

func (t EventTrigger) Validate() error {
	if !t.Type.Category().Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidEventType, t.Type)
	}
	return nil
}

func (t EventTrigger) String() string {
	return "on:" + t.Type.String()
}

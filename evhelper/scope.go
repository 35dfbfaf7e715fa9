package evhelper

import (
	"github.com/valerio/go-evhelper/evhelper/callbacks"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

// Scope registers callbacks under one category
type Scope[D any] struct {
	category event.Category
	helper   *Helper[D]
}

// General returns the scope for loop-level events.
func (h *Helper[D]) General() Scope[D] {
	return Scope[D]{category: event.CategoryGeneral, helper: h}
}

// Window returns the scope for window events.
func (h *Helper[D]) Window() Scope[D] {
	return Scope[D]{category: event.CategoryWindow, helper: h}
}

// Device returns the scope for raw device events.
func (h *Helper[D]) Device() Scope[D] {
	return Scope[D]{category: event.CategoryDevice, helper: h}
}

// Register adds fn with an arbitrary trigger.
func (s Scope[D]) Register(trig callbacks.Trigger, fn Callback[D]) (callbacks.Handle, error) {
	var wrapped callbacks.Func[*Context[D]]
	if fn != nil {
		wrapped = callbacks.Func[*Context[D]](fn)
	}
	return s.helper.registry.Register(s.category, trig, wrapped)
}

// On fires fn for every event of type t, which must belong to this scope.
func (s Scope[D]) On(t event.Type, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.OnEvent(t), fn)
}

// Pressed fires fn on the update where e goes down.
func (s Scope[D]) Pressed(e element.Element, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.Single(state.Pressed, e), fn)
}

// Held fires fn on every update while e is down, including the press update.
func (s Scope[D]) Held(e element.Element, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.Single(state.Held, e), fn)
}

// Released fires fn on the update where e is released.
func (s Scope[D]) Released(e element.Element, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.Single(state.Released, e), fn)
}

// All fires fn when every element is in state st at once.
func (s Scope[D]) All(st state.State, elems []element.Element, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.All(st, elems...), fn)
}

// Any fires fn when at least one element is in state st.
func (s Scope[D]) Any(st state.State, elems []element.Element, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.Any(st, elems...), fn)
}

// Chord fires fn when every element is in state st and mods are down.
func (s Scope[D]) Chord(st state.State, mods element.Modifiers, elems []element.Element, fn Callback[D]) (callbacks.Handle, error) {
	return s.Register(callbacks.Chord(st, mods, elems...), fn)
}

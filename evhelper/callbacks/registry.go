package callbacks

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

// Registration errors
var (
	ErrInvalidCategory  = errors.New("invalid callback category")
	ErrNilTrigger       = errors.New("nil trigger")
	ErrNilCallback      = errors.New("nil callback")
	ErrCategoryMismatch = errors.New("event type belongs to another category")
	ErrEdgeOnGeneral    = errors.New("pressed and released triggers never fire in the general category")
)

// Func is a registered closure. T is whatever the owner passes on dispatch,
// usually a pointer to a context holding the application data.
type Func[T any] func(T)

// Handle identifies a registered entry for removal
type Handle struct {
	Category event.Category
	id       uint64
}

type entry[T any] struct {
	id      uint64
	trigger Trigger
	fn      Func[T]
}

// Registry holds callbacks partitioned by category. Entries in a category fire
// in registration order.
type Registry[T any] struct {
	entries map[event.Category][]entry[T]
	nextID  uint64
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		entries: make(map[event.Category][]entry[T]),
	}
}

// Register appends a callback under cat. Duplicate triggers are allowed and
// all of them fire.
func (r *Registry[T]) Register(cat event.Category, trig Trigger, fn Func[T]) (Handle, error) {
	if !cat.Valid() {
		return Handle{}, fmt.Errorf("%w: %s", ErrInvalidCategory, cat)
	}
	if trig == nil {
		return Handle{}, ErrNilTrigger
	}
	if fn == nil {
		return Handle{}, ErrNilCallback
	}
	if err := trig.Validate(); err != nil {
		return Handle{}, fmt.Errorf("register %s callback %s: %w", cat, trig, err)
	}
	if et, ok := trig.(EventTrigger); ok && et.Type.Category() != cat {
		return Handle{}, fmt.Errorf("%w: %s is a %s event, not %s", ErrCategoryMismatch, et.Type, et.Type.Category(), cat)
	}
	// General callbacks run after the tracker has advanced past every edge
	if s, ok := StateOf(trig); ok && cat == event.CategoryGeneral && s != state.Held {
		return Handle{}, fmt.Errorf("%w: %s", ErrEdgeOnGeneral, trig)
	}

	r.nextID++
	// Copy on write so a dispatch in progress keeps iterating its own slice
	current := r.entries[cat]
	next := make([]entry[T], len(current), len(current)+1)
	copy(next, current)
	r.entries[cat] = append(next, entry[T]{id: r.nextID, trigger: trig, fn: fn})

	slog.Debug("Callback registered", "category", cat, "trigger", trig.String())
	return Handle{Category: cat, id: r.nextID}, nil
}

// Remove deletes the entry for h. It returns false if h is unknown.
func (r *Registry[T]) Remove(h Handle) bool {
	current := r.entries[h.Category]
	for i, e := range current {
		if e.id != h.id {
			continue
		}
		next := make([]entry[T], 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		r.entries[h.Category] = next
		return true
	}
	return false
}

// Len returns the number of entries under cat.
func (r *Registry[T]) Len(cat event.Category) int {
	return len(r.entries[cat])
}

// Dispatch invokes every entry under cat whose trigger matches, passing arg.
// It returns the number of callbacks invoked. Panics in callbacks are not
// recovered.
func (r *Registry[T]) Dispatch(cat event.Category, ev event.Event, in input.Reader, arg T) int {
	entries := r.entries[cat]
	fired := 0
	for _, e := range entries {
		if !e.trigger.Match(ev, in) {
			continue
		}
		e.fn(arg)
		fired++
	}
	return fired
}

package evhelper

import (
	"log/slog"
	"strings"
	"time"

	"github.com/valerio/go-evhelper/evhelper/callbacks"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input"
)

// Callback is the closure type stored in the registry
type Callback[D any] func(ctx *Context[D])

// Config holds optional settings for a Helper
type Config struct {
	// Clock returns the current time. Defaults to time.Now; tests inject a fake.
	Clock func() time.Time
}

// Quit is a set of quit requests observed so far. The helper only records
// them; stopping the event loop is up to the caller.
type Quit uint8

const (
	QuitUserRequested Quit = 1 << iota
	QuitLoopDestroyed
	QuitCloseRequested
	QuitWindowDestroyed
)

// Has reports whether q contains every bit of flag.
func (q Quit) Has(flag Quit) bool {
	return q&flag == flag
}

var quitNames = []struct {
	flag Quit
	name string
}{
	{QuitUserRequested, "user"},
	{QuitLoopDestroyed, "loop-destroyed"},
	{QuitCloseRequested, "close-requested"},
	{QuitWindowDestroyed, "window-destroyed"},
}

func (q Quit) String() string {
	if q == 0 {
		return "none"
	}
	var parts []string
	for _, n := range quitNames {
		if q.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Helper owns the input trackers and callback registry and feeds events
// through both. Window and device input are tracked apart. It is not safe
// for concurrent use.
type Helper[D any] struct {
	data     D
	window   *inputSet
	device   *inputSet
	registry *callbacks.Registry[*Context[D]]
	frame    FrameData
	clock    func() time.Time

	clearFrame bool
	callAfter  []Callback[D]

	started     time.Time
	lastUpdate  time.Time
	lastSteps   [2]time.Time
	updateCount int
	quit        Quit
}

// New creates a Helper around the application data.
func New[D any](data D, cfg Config) *Helper[D] {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	now := clock()

	return &Helper[D]{
		data:       data,
		window:     newInputSet(),
		device:     newInputSet(),
		registry:   callbacks.NewRegistry[*Context[D]](),
		frame:      newFrameData(),
		clock:      clock,
		started:    now,
		lastUpdate: now,
		lastSteps:  [2]time.Time{now, now},
	}
}

// Update processes one event. State is updated before any callback runs.
// It returns true when ev is the frame boundary, meaning a step has passed
// and the caller can run its per-frame logic.
func (h *Helper[D]) Update(ev event.Event) bool {
	h.runCallAfter(ev)

	if h.clearFrame {
		h.clearFrame = false
		h.frame.reset()
	}

	now := h.clock()
	dt := now.Sub(h.lastUpdate)
	h.window.advance(dt)
	h.device.advance(dt)
	h.lastUpdate = now

	switch ev.Category() {
	case event.CategoryWindow:
		h.window.record(ev, ev.WindowID)
	case event.CategoryDevice:
		h.device.record(ev, ev.DeviceID)
	}
	h.frame.record(ev)
	h.recordQuit(ev)

	if ev.IsFrameEnd() {
		h.updateCount++
		h.lastSteps = [2]time.Time{h.lastSteps[1], now}

		fired := 0
		for _, cat := range event.Categories {
			fired += h.dispatch(cat, ev)
		}
		h.clearFrame = true

		if h.updateCount%600 == 0 {
			slog.Debug("Step completed", "step", h.updateCount, "callbacks", fired)
		}
		return true
	}

	cat := ev.Category()
	if !cat.Valid() {
		return false
	}
	h.dispatch(cat, ev)
	return false
}

func (h *Helper[D]) dispatch(cat event.Category, ev event.Event) int {
	in := h.inputs(cat)
	return h.registry.Dispatch(cat, ev, in.merged, h.newContext(ev, in))
}

// inputs returns the trackers callbacks of cat read from. General callbacks
// see window input.
func (h *Helper[D]) inputs(cat event.Category) *inputSet {
	if cat == event.CategoryDevice {
		return h.device
	}
	return h.window
}

func (h *Helper[D]) runCallAfter(ev event.Event) {
	if len(h.callAfter) == 0 {
		return
	}
	pending := h.callAfter
	h.callAfter = nil

	ctx := h.newContext(ev, h.inputs(ev.Category()))
	for _, fn := range pending {
		fn(ctx)
	}
}

func (h *Helper[D]) recordQuit(ev event.Event) {
	switch ev.Type {
	case event.LoopDestroyed:
		h.quit |= QuitLoopDestroyed
	case event.CloseRequested:
		h.quit |= QuitCloseRequested
	case event.Destroyed:
		h.quit |= QuitWindowDestroyed
	}
}

func (h *Helper[D]) newContext(ev event.Event, in *inputSet) *Context[D] {
	return &Context[D]{
		Data:   &h.data,
		Event:  ev,
		Input:  in.merged,
		inputs: in,
		helper: h,
	}
}

// Remove unregisters a callback. It returns false if h is unknown.
func (h *Helper[D]) Remove(handle callbacks.Handle) bool {
	return h.registry.Remove(handle)
}

// Data returns a pointer to the application data.
func (h *Helper[D]) Data() *D {
	return &h.data
}

// Input returns the window input merged across every window.
func (h *Helper[D]) Input() input.Reader {
	return h.window.merged
}

// DeviceInput returns the raw device input merged across every device.
func (h *Helper[D]) DeviceInput() input.Reader {
	return h.device.merged
}

// WindowInputOf returns the input seen by one window, and false if that
// window has not reported any input yet.
func (h *Helper[D]) WindowInputOf(id uint64) (input.Reader, bool) {
	return h.window.of(id)
}

// DeviceInputOf returns the input of one device, and false if that device
// has not reported any input yet.
func (h *Helper[D]) DeviceInputOf(id uint64) (input.Reader, bool) {
	return h.device.of(id)
}

// Windows returns the ids of the windows that reported input, in order.
func (h *Helper[D]) Windows() []uint64 {
	return h.window.ids()
}

// Devices returns the ids of the devices that reported input, in order.
func (h *Helper[D]) Devices() []uint64 {
	return h.device.ids()
}

// Frame returns the data accumulated since the previous frame boundary.
func (h *Helper[D]) Frame() FrameData {
	return h.frame.clone()
}

// UpdateCount returns the number of steps that have passed so far.
func (h *Helper[D]) UpdateCount() int {
	return h.updateCount
}

// CallAfter queues fn to run before the next event is handled.
func (h *Helper[D]) CallAfter(fn Callback[D]) {
	h.callAfter = append(h.callAfter, fn)
}

// TimeSinceStart returns the time since the Helper was created.
func (h *Helper[D]) TimeSinceStart() time.Duration {
	return h.clock().Sub(h.started)
}

// TimeSincePreviousStep returns the time since the step before the latest one.
func (h *Helper[D]) TimeSincePreviousStep() time.Duration {
	return h.clock().Sub(h.lastSteps[0])
}

// RequestQuit records a user quit request.
func (h *Helper[D]) RequestQuit() {
	h.quit |= QuitUserRequested
}

// Quit returns the quit requests seen so far.
func (h *Helper[D]) Quit() Quit {
	return h.quit
}

package evhelper

import (
	"time"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input"
	"github.com/valerio/go-evhelper/evhelper/input/element"
)

// Context is passed to every callback. Data points at the application data
// owned by the Helper. Input is the read-only input of the callback's
// category: device callbacks see raw device input, the others window input.
type Context[D any] struct {
	Data  *D
	Event event.Event
	Input input.Reader

	inputs *inputSet
	helper *Helper[D]
}

// HeldFor returns how long e has been down, and false if it is released.
func (c *Context[D]) HeldFor(e element.Element) (time.Duration, bool) {
	return c.Input.HeldFor(e)
}

// SourceInput returns the input of the window or device that sent the
// current event, and false for events without a tracked source.
func (c *Context[D]) SourceInput() (input.Reader, bool) {
	switch c.Event.Category() {
	case event.CategoryWindow:
		return c.inputs.of(c.Event.WindowID)
	case event.CategoryDevice:
		return c.inputs.of(c.Event.DeviceID)
	default:
		return nil, false
	}
}

// Frame returns the data accumulated since the previous frame boundary.
func (c *Context[D]) Frame() FrameData {
	return c.helper.Frame()
}

// UpdateCount returns the number of steps that have passed so far.
func (c *Context[D]) UpdateCount() int {
	return c.helper.UpdateCount()
}

// CallAfter queues fn to run before the next event is handled.
func (c *Context[D]) CallAfter(fn Callback[D]) {
	c.helper.CallAfter(fn)
}

// RequestQuit records a user quit request on the owning Helper.
func (c *Context[D]) RequestQuit() {
	c.helper.RequestQuit()
}

package event

import "github.com/valerio/go-evhelper/evhelper/input/element"

// Key returns a window keyboard event for a virtual key.
func Key(k element.KeyCode, pressed bool) Event {
	return Event{Type: KeyboardInput, Element: element.Key(k), Pressed: pressed}
}

// Button returns a window mouse button event.
func Button(b element.Button, pressed bool) Event {
	return Event{Type: MouseInput, Element: element.Mouse(b), Pressed: pressed}
}

// DeviceInput returns a raw device event for e.
func DeviceInput(e element.Element, pressed bool) Event {
	t := DeviceKey
	if e.Kind == element.KindMouse {
		t = DeviceButton
	}
	return Event{Type: t, Element: e, Pressed: pressed}
}

// Mods returns a ModifiersChanged event.
func Mods(m element.Modifiers) Event {
	return Event{Type: ModifiersChanged, Modifiers: m}
}

// Char returns a ReceivedCharacter event.
func Char(r rune) Event {
	return Event{Type: ReceivedCharacter, Char: r}
}

// Cursor returns a CursorMoved event.
func Cursor(x, y float64) Event {
	return Event{Type: CursorMoved, X: x, Y: y}
}

// Wheel returns a MouseWheel event measured in lines.
func Wheel(dx, dy float64) Event {
	return Event{Type: MouseWheel, X: dx, Y: dy}
}

// Focus returns a Focused event.
func Focus(focused bool) Event {
	return Event{Type: Focused, Focused: focused}
}

// Resize returns a Resized event.
func Resize(width, height uint32) Event {
	return Event{Type: Resized, Width: width, Height: height}
}

// Of returns an event carrying only its type, for the variants without payload.
func Of(t Type) Event {
	return Event{Type: t}
}

// FrameEnd returns the frame boundary event.
func FrameEnd() Event {
	return Event{Type: MainEventsCleared}
}

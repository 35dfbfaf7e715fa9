//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/source"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
)

// Source reads events from an SDL2 window.
// Note: building this requires SDL2 development libraries installed.
// Default builds use a stub, see build tags (sdl2)
type Source struct {
	window *sdl.Window
	config source.Config
	mods   element.Modifiers
}

func New() *Source {
	return &Source{}
}

func (s *Source) Init(config source.Config) error {
	s.config = config.WithDefaults()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	w, h := int32(s.config.Width), int32(s.config.Height)
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}

	window, err := sdl.CreateWindow(
		s.config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		w, h,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window
	sdl.StartTextInput()

	slog.Info("SDL2 source initialized", "width", w, "height", h)
	return nil
}

// Poll drains the SDL event queue.
func (s *Source) Poll() ([]event.Event, error) {
	var events []event.Event
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		events = s.translate(events, ev)
	}
	return append(events, event.FrameEnd()), nil
}

func (s *Source) translate(events []event.Event, ev sdl.Event) []event.Event {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return append(events, event.Of(event.CloseRequested))

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return events
		}
		if mods := modifiers(e.Keysym.Mod); mods != s.mods {
			s.mods = mods
			events = append(events, event.Mods(mods))
		}
		out := event.Event{
			Type:      event.KeyboardInput,
			WindowID:  uint64(e.WindowID),
			Scancode:  uint32(e.Keysym.Scancode),
			Pressed:   e.Type == sdl.KEYDOWN,
			Modifiers: s.mods,
		}
		if code, ok := keyMapping[e.Keysym.Sym]; ok {
			out.Element = element.Key(code)
		}
		return append(events, out)

	case *sdl.TextInputEvent:
		for _, r := range e.GetText() {
			events = append(events, event.Event{Type: event.ReceivedCharacter, WindowID: uint64(e.WindowID), Char: r})
		}
		return events

	case *sdl.MouseButtonEvent:
		b, ok := mouseButton(e.Button)
		if !ok {
			return events
		}
		return append(events, event.Event{
			Type:      event.MouseInput,
			WindowID:  uint64(e.WindowID),
			Element:   element.Mouse(b),
			Pressed:   e.Type == sdl.MOUSEBUTTONDOWN,
			Modifiers: s.mods,
		})

	case *sdl.MouseMotionEvent:
		return append(events,
			event.Event{Type: event.CursorMoved, WindowID: uint64(e.WindowID), X: float64(e.X), Y: float64(e.Y)},
			event.Event{Type: event.MouseMotion, X: float64(e.XRel), Y: float64(e.YRel)},
		)

	case *sdl.MouseWheelEvent:
		return append(events, event.Event{Type: event.MouseWheel, WindowID: uint64(e.WindowID), X: float64(e.X), Y: float64(e.Y)})

	case *sdl.DropEvent:
		if e.Type == sdl.DROPFILE {
			return append(events, event.Event{Type: event.DroppedFile, WindowID: uint64(e.WindowID), Path: e.File})
		}

	case *sdl.WindowEvent:
		return s.windowEvent(events, e)
	}
	return events
}

func (s *Source) windowEvent(events []event.Event, e *sdl.WindowEvent) []event.Event {
	id := uint64(e.WindowID)
	switch e.Event {
	case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
		return append(events, event.Event{Type: event.Resized, WindowID: id, Width: uint32(e.Data1), Height: uint32(e.Data2)})
	case sdl.WINDOWEVENT_MOVED:
		return append(events, event.Event{Type: event.Moved, WindowID: id, X: float64(e.Data1), Y: float64(e.Data2)})
	case sdl.WINDOWEVENT_FOCUS_GAINED, sdl.WINDOWEVENT_FOCUS_LOST:
		return append(events, event.Event{Type: event.Focused, WindowID: id, Focused: e.Event == sdl.WINDOWEVENT_FOCUS_GAINED})
	case sdl.WINDOWEVENT_ENTER:
		return append(events, event.Event{Type: event.CursorEntered, WindowID: id})
	case sdl.WINDOWEVENT_LEAVE:
		return append(events, event.Event{Type: event.CursorLeft, WindowID: id})
	case sdl.WINDOWEVENT_CLOSE:
		return append(events, event.Event{Type: event.CloseRequested, WindowID: id})
	}
	return events
}

func modifiers(m uint16) element.Modifiers {
	var mods element.Modifiers
	if m&sdl.KMOD_SHIFT != 0 {
		mods = mods.With(element.ModShift)
	}
	if m&sdl.KMOD_CTRL != 0 {
		mods = mods.With(element.ModCtrl)
	}
	if m&sdl.KMOD_ALT != 0 {
		mods = mods.With(element.ModAlt)
	}
	if m&sdl.KMOD_GUI != 0 {
		mods = mods.With(element.ModLogo)
	}
	return mods
}

func mouseButton(b uint8) (element.Button, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return element.ButtonLeft, true
	case sdl.BUTTON_RIGHT:
		return element.ButtonRight, true
	case sdl.BUTTON_MIDDLE:
		return element.ButtonMiddle, true
	case sdl.BUTTON_X1:
		return element.Button(3), true
	case sdl.BUTTON_X2:
		return element.Button(4), true
	}
	return 0, false
}

// keyMapping maps SDL2 keycodes to key codes
var keyMapping = buildKeyMapping()

func buildKeyMapping() map[sdl.Keycode]element.KeyCode {
	mapping := map[sdl.Keycode]element.KeyCode{
		sdl.K_SPACE:      element.KeySpace,
		sdl.K_RETURN:     element.KeyEnter,
		sdl.K_ESCAPE:     element.KeyEscape,
		sdl.K_TAB:        element.KeyTab,
		sdl.K_BACKSPACE:  element.KeyBackspace,
		sdl.K_INSERT:     element.KeyInsert,
		sdl.K_DELETE:     element.KeyDelete,
		sdl.K_HOME:       element.KeyHome,
		sdl.K_END:        element.KeyEnd,
		sdl.K_PAGEUP:     element.KeyPageUp,
		sdl.K_PAGEDOWN:   element.KeyPageDown,
		sdl.K_UP:         element.KeyUp,
		sdl.K_DOWN:       element.KeyDown,
		sdl.K_LEFT:       element.KeyLeft,
		sdl.K_RIGHT:      element.KeyRight,
		sdl.K_MINUS:      element.KeyMinus,
		sdl.K_EQUALS:     element.KeyEquals,
		sdl.K_PLUS:       element.KeyPlus,
		sdl.K_UNDERSCORE: element.KeyUnderscore,
		sdl.K_COMMA:      element.KeyComma,
		sdl.K_PERIOD:     element.KeyPeriod,
		sdl.K_SLASH:      element.KeySlash,
		sdl.K_SEMICOLON:  element.KeySemicolon,
		sdl.K_LSHIFT:     element.KeyLShift,
		sdl.K_RSHIFT:     element.KeyRShift,
		sdl.K_LCTRL:      element.KeyLControl,
		sdl.K_RCTRL:      element.KeyRControl,
		sdl.K_LALT:       element.KeyLAlt,
		sdl.K_RALT:       element.KeyRAlt,
		sdl.K_LGUI:       element.KeyLSuper,
		sdl.K_RGUI:       element.KeyRSuper,
	}
	for i := 0; i < 26; i++ {
		mapping[sdl.K_a+sdl.Keycode(i)] = element.KeyA + element.KeyCode(i)
	}
	for i := 0; i < 10; i++ {
		mapping[sdl.K_0+sdl.Keycode(i)] = element.Key0 + element.KeyCode(i)
	}
	for i := 0; i < 12; i++ {
		mapping[sdl.K_F1+sdl.Keycode(i)] = element.KeyF1 + element.KeyCode(i)
	}
	return mapping
}

func (s *Source) Close() error {
	slog.Info("Cleaning up SDL2 source")
	sdl.StopTextInput()
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}

package headless

import (
	"errors"
	"log/slog"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/source"
)

// ErrExhausted is returned by Poll once every frame has been produced.
var ErrExhausted = errors.New("headless source exhausted")

// Source replays a scripted event sequence for a fixed number of frames,
// for automated testing and batch runs.
type Source struct {
	config     source.Config
	script     Script
	frameCount int
	maxFrames  int
	modKeys    map[element.KeyCode]struct{}
	mods       element.Modifiers
}

// New creates a source producing maxFrames frames. script may be nil.
func New(maxFrames int, script Script) *Source {
	return &Source{
		maxFrames: maxFrames,
		script:    script,
		modKeys:   make(map[element.KeyCode]struct{}),
	}
}

func (h *Source) Init(config source.Config) error {
	h.config = config.WithDefaults()

	slog.Info("Running headless mode", "frames", h.maxFrames, "scripted_frames", len(h.script))
	for frame := range h.script {
		if frame > h.maxFrames {
			slog.Warn("Scripted frame is past the last frame and will not run", "frame", frame, "total", h.maxFrames)
		}
	}
	return nil
}

// Poll returns the scripted events for the next frame followed by the frame
// boundary. The final frame also carries LoopDestroyed.
func (h *Source) Poll() ([]event.Event, error) {
	if h.frameCount >= h.maxFrames {
		return nil, ErrExhausted
	}
	h.frameCount++

	var events []event.Event
	for _, ev := range h.script[h.frameCount] {
		events = h.appendWithModifiers(events, ev)
	}

	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.frameCount == h.maxFrames {
		slog.Info("Headless execution completed", "frames", h.maxFrames)
		events = append(events, event.Of(event.LoopDestroyed))
	}
	return append(events, event.FrameEnd()), nil
}

// appendWithModifiers stamps input events with the current modifier set and
// follows modifier key changes with a ModifiersChanged event.
func (h *Source) appendWithModifiers(events []event.Event, ev event.Event) []event.Event {
	if ev.Type != event.KeyboardInput && ev.Type != event.MouseInput {
		return append(events, ev)
	}

	code, ok := ev.Element.KeyCode()
	if !ok || element.ModifierOf(code).IsEmpty() {
		ev.Modifiers = h.mods
		return append(events, ev)
	}

	if ev.Pressed {
		h.modKeys[code] = struct{}{}
	} else {
		delete(h.modKeys, code)
	}
	// A bit stays set while either of its keys is down
	h.mods = element.ModNone
	for k := range h.modKeys {
		h.mods = h.mods.With(element.ModifierOf(k))
	}
	ev.Modifiers = h.mods
	return append(events, ev, event.Mods(h.mods))
}

// Frame returns the number of frames produced so far.
func (h *Source) Frame() int {
	return h.frameCount
}

func (h *Source) Close() error {
	return nil
}

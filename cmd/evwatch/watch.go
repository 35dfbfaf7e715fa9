package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/urfave/cli"
	"github.com/valerio/go-evhelper/evhelper"
	"github.com/valerio/go-evhelper/evhelper/callbacks"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
	"github.com/valerio/go-evhelper/evhelper/source"
	"github.com/valerio/go-evhelper/evhelper/source/headless"
	"github.com/valerio/go-evhelper/evhelper/source/sdl2"
	"github.com/valerio/go-evhelper/evhelper/source/terminal"
	"github.com/valerio/go-evhelper/evhelper/timing"
)

// heldLogInterval limits how often a held binding is logged
const heldLogInterval = 250 * time.Millisecond

// watchState is the application data handed to every callback
type watchState struct {
	fired    map[string]int
	lastSeen string
	status   statusRenderer
}

type statusRenderer interface {
	Render(lines []string)
}

func runWatch(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	src, limiter, err := newSource(c, level)
	if err != nil {
		return err
	}
	if ts, ok := limiter.(*timing.TickerLimiter); ok {
		defer ts.Stop()
	}

	if err := src.Init(source.Config{Title: "evwatch", KeyTimeout: c.Duration("key-timeout")}); err != nil {
		return err
	}
	defer src.Close()

	h, err := newWatcher(c.StringSlice("bind"))
	if err != nil {
		return err
	}
	if r, ok := src.(statusRenderer); ok {
		h.Data().status = r
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := evhelper.Run(ctx, src, h, limiter); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	for spec, n := range h.Data().fired {
		slog.Info("Binding summary", "trigger", spec, "fired", n)
	}
	return nil
}

func newSource(c *cli.Context, level slog.Level) (source.Source, timing.Limiter, error) {
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, nil, errors.New("headless mode requires --frames option with a positive value")
		}

		var script headless.Script
		if path := c.String("script"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return nil, nil, fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			if script, err = headless.ParseScript(f); err != nil {
				return nil, nil, err
			}
		}

		setTextLogger(level)
		return headless.New(frames, script), timing.NewNoOpLimiter(), nil
	}

	var limiter timing.Limiter
	if c.Bool("precise") {
		limiter = timing.NewAdaptiveLimiter(c.Float64("fps"))
	} else {
		limiter = timing.NewTickerLimiter(c.Float64("fps"))
	}

	if c.Bool("sdl2") {
		setTextLogger(level)
		return sdl2.New(), limiter, nil
	}
	return terminal.New(level), limiter, nil
}

func setTextLogger(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: %w", name, err)
	}
	return level, nil
}

// newWatcher builds a helper with the quit keys, the status view and one
// logging callback per binding spec.
func newWatcher(binds []string) (*evhelper.Helper[watchState], error) {
	h := evhelper.New(watchState{fired: make(map[string]int)}, evhelper.Config{})
	win := h.Window()

	quit := func(c *evhelper.Context[watchState]) {
		slog.Info("Quit requested", "key", c.Event.Element)
		c.RequestQuit()
	}
	for _, code := range []element.KeyCode{element.KeyEscape, element.KeyQ} {
		if _, err := win.Pressed(element.Key(code), quit); err != nil {
			return nil, err
		}
	}

	if _, err := win.On(event.CloseRequested, func(c *evhelper.Context[watchState]) {
		slog.Info("Close requested")
	}); err != nil {
		return nil, err
	}

	if _, err := h.General().On(event.MainEventsCleared, drawStatus); err != nil {
		return nil, err
	}

	for _, spec := range binds {
		if err := bind(h, spec); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func bind(h *evhelper.Helper[watchState], spec string) error {
	trig, err := callbacks.ParseTrigger(spec)
	if err != nil {
		return fmt.Errorf("--bind %q: %w", spec, err)
	}

	name := trig.String()
	fn := evhelper.Callback[watchState](func(c *evhelper.Context[watchState]) {
		c.Data.fired[name]++
		c.Data.lastSeen = name
		slog.Info("Binding fired", "trigger", name, "event", c.Event.Type, "down", downSummary(c))
	})

	if st, ok := callbacks.StateOf(trig); ok && st == state.Held {
		fn = evhelper.Callback[watchState](callbacks.Debounce(heldLogInterval, nil, callbacks.Func[*evhelper.Context[watchState]](fn)))
	}

	if _, err := h.Window().Register(trig, fn); err != nil {
		return fmt.Errorf("--bind %q: %w", spec, err)
	}
	slog.Debug("Binding registered", "trigger", name)
	return nil
}

// downSummary lists every element that is down with its held duration.
func downSummary(c *evhelper.Context[watchState]) string {
	var parts []string
	for _, e := range c.Input.Down() {
		d, _ := c.HeldFor(e)
		parts = append(parts, fmt.Sprintf("%s=%s", e, d.Round(time.Millisecond)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func drawStatus(c *evhelper.Context[watchState]) {
	if c.Data.status == nil {
		return
	}

	frame := c.Frame()
	mods := c.Input.Modifiers().String()
	if mods == "" {
		mods = "none"
	}
	c.Data.status.Render([]string{
		fmt.Sprintf("Step: %d", c.UpdateCount()),
		fmt.Sprintf("Down: %s", downSummary(c)),
		fmt.Sprintf("Modifiers: %s", mods),
		fmt.Sprintf("Cursor: %.0f,%.0f  Wheel: %.0f,%.0f", frame.Cursor.X, frame.Cursor.Y, frame.Wheel.X, frame.Wheel.Y),
		fmt.Sprintf("Text: %q", string(frame.Text)),
		fmt.Sprintf("Last binding: %s", c.Data.lastSeen),
	})
}

package headless

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
)

// ErrInvalidScript is wrapped by every ParseScript error.
var ErrInvalidScript = errors.New("invalid script")

// Script maps a frame number, starting at 1, to the events produced in it.
type Script map[int][]event.Event

// Add appends events to frame.
func (s Script) Add(frame int, events ...event.Event) {
	s[frame] = append(s[frame], events...)
}

// ParseScript reads one event per line:
//
//	<frame> <action> [arg]
//
// Actions are press and release (an element name), text (the rest of the
// line), cursor and wheel ("x,y"), resize ("WxH"), focus (on or off) and
// close. Blank lines and lines starting with # are skipped.
func ParseScript(r io.Reader) (Script, error) {
	script := make(Script)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		frame, events, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidScript, lineNo, err)
		}
		script.Add(frame, events...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return script, nil
}

func parseLine(line string) (int, []event.Event, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("expected <frame> <action> [arg], got %q", line)
	}

	frame, err := strconv.Atoi(fields[0])
	if err != nil || frame < 1 {
		return 0, nil, fmt.Errorf("frame must be a positive number, got %q", fields[0])
	}

	action := strings.ToLower(fields[1])
	arg := ""
	if len(fields) == 3 {
		arg = fields[2]
	}
	if action != "text" {
		arg = strings.TrimSpace(arg)
	}

	switch action {
	case "press", "release":
		ev, err := inputEvent(arg, action == "press")
		if err != nil {
			return 0, nil, err
		}
		return frame, []event.Event{ev}, nil
	case "text":
		if arg == "" {
			return 0, nil, errors.New("text needs an argument")
		}
		var events []event.Event
		for _, r := range arg {
			events = append(events, event.Char(r))
		}
		return frame, events, nil
	case "cursor", "wheel":
		x, y, err := parsePair(arg, ",")
		if err != nil {
			return 0, nil, err
		}
		if action == "cursor" {
			return frame, []event.Event{event.Cursor(x, y)}, nil
		}
		return frame, []event.Event{event.Wheel(x, y)}, nil
	case "resize":
		w, h, err := parsePair(arg, "x")
		if err != nil || w < 0 || h < 0 {
			return 0, nil, fmt.Errorf("resize needs WxH, got %q", arg)
		}
		return frame, []event.Event{event.Resize(uint32(w), uint32(h))}, nil
	case "focus":
		focused, err := parseSwitch(arg)
		if err != nil {
			return 0, nil, err
		}
		return frame, []event.Event{event.Focus(focused)}, nil
	case "close":
		return frame, []event.Event{event.Of(event.CloseRequested)}, nil
	default:
		return 0, nil, fmt.Errorf("unknown action %q", fields[1])
	}
}

func inputEvent(name string, pressed bool) (event.Event, error) {
	e, err := element.Parse(name)
	if err != nil {
		return event.Event{}, err
	}

	switch e.Kind {
	case element.KindMouse:
		return event.Event{Type: event.MouseInput, Element: e, Pressed: pressed}, nil
	case element.KindScan:
		return event.Event{Type: event.KeyboardInput, Scancode: e.Code, Pressed: pressed}, nil
	default:
		return event.Event{Type: event.KeyboardInput, Element: e, Pressed: pressed}, nil
	}
}

func parsePair(arg, sep string) (float64, float64, error) {
	a, b, ok := strings.Cut(arg, sep)
	if !ok {
		return 0, 0, fmt.Errorf("expected two values separated by %q, got %q", sep, arg)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", a)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", b)
	}
	return x, y, nil
}

func parseSwitch(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "true", "1", "in":
		return true, nil
	case "off", "false", "0", "out":
		return false, nil
	default:
		return false, fmt.Errorf("focus needs on or off, got %q", arg)
	}
}

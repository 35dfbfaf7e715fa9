package callbacks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/input/state"
)

// ErrInvalidSpec is returned for malformed trigger specifications
var ErrInvalidSpec = errors.New("invalid trigger specification")

// ParseTrigger parses a trigger specification.
//
// Formats:
//
//	<pressed|held|released>:<chord>
//	<pressed|held|released>-all:<element>[,<element>...]
//	<pressed|held|released>-any:<element>[,<element>...]
//
// A chord is one element or a "+" joined combination with modifiers. List
// items are plain element names; the comma key is written "Comma" there.
//
//   - "pressed:Space"           single element
//   - "held:Ctrl+Shift+S"       chord with modifiers
//   - "released-any:A,B,C"      any of the elements
//   - "pressed-all:A,MouseLeft" all of the elements at once
func ParseTrigger(spec string) (Trigger, error) {
	head, body, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok || body == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}

	stateName, mode, _ := strings.Cut(strings.ToLower(head), "-")
	s, err := parseState(stateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSpec, spec, err)
	}

	var trig Trigger
	switch mode {
	case "":
		mods, elems, err := element.ParseChord(body)
		if err != nil {
			if strings.Contains(body, ",") {
				return nil, fmt.Errorf("%w: %q: element lists need -all or -any: %w", ErrInvalidSpec, spec, err)
			}
			return nil, err
		}
		if mods.IsEmpty() && len(elems) == 1 {
			trig = Single(s, elems[0])
		} else {
			trig = Chord(s, mods, elems...)
		}
	case "all", "any":
		var elems []element.Element
		for _, name := range strings.Split(body, ",") {
			e, err := element.Parse(name)
			if err != nil {
				if strings.Contains(name, "+") && name != "+" {
					return nil, fmt.Errorf("%w: %q: chords are not allowed in element lists: %w", ErrInvalidSpec, spec, err)
				}
				return nil, err
			}
			elems = append(elems, e)
		}
		if mode == "all" {
			trig = All(s, elems...)
		} else {
			trig = Any(s, elems...)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSpec, mode)
	}

	if err := trig.Validate(); err != nil {
		return nil, err
	}
	return trig, nil
}

func parseState(name string) (state.State, error) {
	switch name {
	case "pressed", "press":
		return state.Pressed, nil
	case "held", "hold":
		return state.Held, nil
	case "released", "release":
		return state.Released, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidState, name)
	}
}

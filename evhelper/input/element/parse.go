package element

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrEmptyName   = errors.New("empty element name")
	ErrUnknownName = errors.New("unknown element name")
)

var namedKeys = buildNameLookup()

// buildNameLookup creates the lowercase name -> key table from keyNames and keyAliases
func buildNameLookup() map[string]KeyCode {
	lookup := make(map[string]KeyCode, len(keyNames)+len(keyAliases))
	for code, name := range keyNames {
		lookup[strings.ToLower(name)] = code
	}
	for alias, code := range keyAliases {
		lookup[alias] = code
	}
	return lookup
}

// Parse parses a single element name.
//
// Supported formats:
//   - Key names: "A", "space", "Enter", "F5", "LShift", "-"
//   - Mouse buttons: "MouseLeft", "MouseRight", "MouseMiddle", "Mouse4"
//   - Scancodes: "Scan30"
func Parse(name string) (Element, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Element{}, ErrEmptyName
	}

	lower := strings.ToLower(name)
	if code, ok := namedKeys[lower]; ok {
		return Key(code), nil
	}

	switch lower {
	case "mouseleft":
		return Mouse(ButtonLeft), nil
	case "mouseright":
		return Mouse(ButtonRight), nil
	case "mousemiddle":
		return Mouse(ButtonMiddle), nil
	}

	if n, ok := numberAfter(lower, "mouse"); ok && n > 0 {
		return Mouse(Button(n - 1)), nil
	}
	if n, ok := numberAfter(lower, "scan"); ok {
		return Scan(uint32(n)), nil
	}

	return Element{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

func numberAfter(s, prefix string) (uint64, bool) {
	if !strings.HasPrefix(s, prefix) || len(s) == len(prefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[len(prefix):], 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseChord parses a modifier-qualified combination such as "Ctrl+Shift+S",
// "Alt+MouseLeft" or a bare modifier "Ctrl". A literal plus key is written
// "Plus", or "+" when it is the last part ("Ctrl++").
func ParseChord(spec string) (Modifiers, []Element, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ModNone, nil, ErrEmptyName
	}

	var parts []string
	if spec == "+" {
		parts = []string{"+"}
	} else if strings.HasSuffix(spec, "++") {
		parts = append(strings.Split(strings.TrimSuffix(spec, "++"), "+"), "+")
	} else {
		parts = strings.Split(spec, "+")
	}

	var mods Modifiers
	var elems []Element
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return ModNone, nil, fmt.Errorf("%w in %q", ErrEmptyName, spec)
		}
		if mod, ok := parseModifier(part); ok {
			mods = mods.With(mod)
			continue
		}
		e, err := Parse(part)
		if err != nil {
			return ModNone, nil, err
		}
		elems = append(elems, e)
	}

	return mods, elems, nil
}

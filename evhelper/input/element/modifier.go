package element

import "strings"

// Modifiers is a set of keyboard modifiers.
type Modifiers uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifiers = 0

	// ModShift indicates either Shift key.
	ModShift Modifiers = 1 << (iota - 1)

	// ModCtrl indicates either Control key.
	ModCtrl

	// ModAlt indicates either Alt key (Option on macOS).
	ModAlt

	// ModLogo indicates the Super key (Cmd on macOS, Win on Windows).
	ModLogo
)

// allModifiers lists the single-bit modifiers in display order.
var allModifiers = []Modifiers{ModCtrl, ModAlt, ModShift, ModLogo}

// Has returns true if m contains every bit of mod.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// With returns m with mod added.
func (m Modifiers) With(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// Each calls fn for every single modifier bit set in m.
func (m Modifiers) Each(fn func(Modifiers)) {
	for _, mod := range allModifiers {
		if m.Has(mod) {
			fn(mod)
		}
	}
}

// Keys returns the physical keys that produce a single modifier bit.
func (m Modifiers) Keys() []Element {
	switch m {
	case ModShift:
		return []Element{Key(KeyLShift), Key(KeyRShift)}
	case ModCtrl:
		return []Element{Key(KeyLControl), Key(KeyRControl)}
	case ModAlt:
		return []Element{Key(KeyLAlt), Key(KeyRAlt)}
	case ModLogo:
		return []Element{Key(KeyLSuper), Key(KeyRSuper)}
	default:
		return nil
	}
}

// String returns a representation like "Ctrl+Shift".
func (m Modifiers) String() string {
	if m.IsEmpty() {
		return ""
	}

	var parts []string
	m.Each(func(mod Modifiers) {
		switch mod {
		case ModCtrl:
			parts = append(parts, "Ctrl")
		case ModAlt:
			parts = append(parts, "Alt")
		case ModShift:
			parts = append(parts, "Shift")
		case ModLogo:
			parts = append(parts, "Logo")
		}
	})
	return strings.Join(parts, "+")
}

func parseModifier(name string) (Modifiers, bool) {
	switch strings.ToLower(name) {
	case "shift":
		return ModShift, true
	case "ctrl", "control":
		return ModCtrl, true
	case "alt", "option":
		return ModAlt, true
	case "logo", "super", "cmd", "meta", "win":
		return ModLogo, true
	default:
		return ModNone, false
	}
}

// ModifierOf returns the modifier bit produced by k, or ModNone.
func ModifierOf(k KeyCode) Modifiers {
	switch k {
	case KeyLShift, KeyRShift:
		return ModShift
	case KeyLControl, KeyRControl:
		return ModCtrl
	case KeyLAlt, KeyRAlt:
		return ModAlt
	case KeyLSuper, KeyRSuper:
		return ModLogo
	default:
		return ModNone
	}
}

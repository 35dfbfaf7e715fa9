package element

import "fmt"

// KeyCode is a layout-independent virtual key
type KeyCode uint32

const (
	KeyUnknown KeyCode = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyMinus
	KeyEquals
	KeyPlus
	KeyUnderscore
	KeyComma
	KeyPeriod
	KeySlash
	KeySemicolon

	KeyLShift
	KeyRShift
	KeyLControl
	KeyRControl
	KeyLAlt
	KeyRAlt
	KeyLSuper
	KeyRSuper
)

// keyNames holds the canonical name of every key. Parse accepts these
// case-insensitively, plus the aliases below.
var keyNames = withAlphanumerics(map[KeyCode]string{
	KeyF1:  "F1",
	KeyF2:  "F2",
	KeyF3:  "F3",
	KeyF4:  "F4",
	KeyF5:  "F5",
	KeyF6:  "F6",
	KeyF7:  "F7",
	KeyF8:  "F8",
	KeyF9:  "F9",
	KeyF10: "F10",
	KeyF11: "F11",
	KeyF12: "F12",

	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",

	KeyMinus:      "-",
	KeyEquals:     "=",
	KeyPlus:       "Plus",
	KeyUnderscore: "_",
	KeyComma:      ",",
	KeyPeriod:     ".",
	KeySlash:      "/",
	KeySemicolon:  ";",

	KeyLShift:   "LShift",
	KeyRShift:   "RShift",
	KeyLControl: "LControl",
	KeyRControl: "RControl",
	KeyLAlt:     "LAlt",
	KeyRAlt:     "RAlt",
	KeyLSuper:   "LSuper",
	KeyRSuper:   "RSuper",
})

var keyAliases = map[string]KeyCode{
	"return": KeyEnter,
	"esc":    KeyEscape,
	"del":    KeyDelete,
	"bs":     KeyBackspace,
	"pgup":   KeyPageUp,
	"pgdn":   KeyPageDown,
	"lctrl":  KeyLControl,
	"rctrl":  KeyRControl,
	"lwin":   KeyLSuper,
	"rwin":   KeyRSuper,
	"+":      KeyPlus,
	"comma":  KeyComma,
	"period": KeyPeriod,
}

func withAlphanumerics(names map[KeyCode]string) map[KeyCode]string {
	for k := KeyA; k <= KeyZ; k++ {
		names[k] = string(rune('A' + (k - KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		names[k] = string(rune('0' + (k - Key0)))
	}
	return names
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyUnknown {
		return "Unknown"
	}
	return fmt.Sprintf("Key(%d)", uint32(k))
}

// KeyFromRune maps a printable rune to its key code. Shifted symbols map to the
// key that produces them on a US layout where one exists in this table.
func KeyFromRune(r rune) (KeyCode, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + KeyCode(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + KeyCode(r-'A'), true
	case r >= '0' && r <= '9':
		return Key0 + KeyCode(r-'0'), true
	}

	switch r {
	case ' ':
		return KeySpace, true
	case '-':
		return KeyMinus, true
	case '=':
		return KeyEquals, true
	case '+':
		return KeyPlus, true
	case '_':
		return KeyUnderscore, true
	case ',':
		return KeyComma, true
	case '.':
		return KeyPeriod, true
	case '/':
		return KeySlash, true
	case ';':
		return KeySemicolon, true
	}
	return KeyUnknown, false
}

package element

import "fmt"

// Kind identifies the family an element belongs to
type Kind uint8

const (
	KindNone  Kind = iota
	KindKey        // Virtual key code
	KindMouse      // Mouse button
	KindScan       // Raw scancode, the generic input identifier
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindScan:
		return "scan"
	default:
		return "none"
	}
}

// Element is any discrete input source that can be pressed and released.
// The zero value is not a valid element.
type Element struct {
	Kind Kind
	Code uint32
}

// Key returns the element for a virtual key code.
func Key(k KeyCode) Element {
	return Element{Kind: KindKey, Code: uint32(k)}
}

// Mouse returns the element for a mouse button.
func Mouse(b Button) Element {
	return Element{Kind: KindMouse, Code: uint32(b)}
}

// Scan returns the element for a platform scancode.
func Scan(code uint32) Element {
	return Element{Kind: KindScan, Code: code}
}

// Valid reports whether e identifies a real input.
func (e Element) Valid() bool {
	switch e.Kind {
	case KindKey:
		return KeyCode(e.Code) != KeyUnknown
	case KindMouse, KindScan:
		return true
	default:
		return false
	}
}

// KeyCode returns the key code and true if e is a key.
func (e Element) KeyCode() (KeyCode, bool) {
	if e.Kind != KindKey {
		return KeyUnknown, false
	}
	return KeyCode(e.Code), true
}

// Button returns the mouse button and true if e is a mouse button.
func (e Element) Button() (Button, bool) {
	if e.Kind != KindMouse {
		return 0, false
	}
	return Button(e.Code), true
}

// Less orders elements by kind, then code. Used to give callers a stable order.
func (e Element) Less(o Element) bool {
	if e.Kind != o.Kind {
		return e.Kind < o.Kind
	}
	return e.Code < o.Code
}

func (e Element) String() string {
	switch e.Kind {
	case KindKey:
		return KeyCode(e.Code).String()
	case KindMouse:
		return Button(e.Code).String()
	case KindScan:
		return fmt.Sprintf("Scan%d", e.Code)
	default:
		return "None"
	}
}

// Button is a mouse button. Buttons past ButtonMiddle are numbered
// in the order the platform reports them.
type Button uint32

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "MouseLeft"
	case ButtonRight:
		return "MouseRight"
	case ButtonMiddle:
		return "MouseMiddle"
	default:
		return fmt.Sprintf("Mouse%d", uint32(b)+1)
	}
}

package event

import (
	"fmt"

	"github.com/valerio/go-evhelper/evhelper/input/element"
)

// Category partitions events and the callbacks registered for them
type Category int

const (
	CategoryNone Category = iota
	CategoryGeneral
	CategoryWindow
	CategoryDevice
)

// Categories lists the dispatchable categories in dispatch order.
var Categories = []Category{CategoryGeneral, CategoryWindow, CategoryDevice}

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryWindow:
		return "window"
	case CategoryDevice:
		return "device"
	default:
		return "none"
	}
}

// Valid reports whether c is a dispatchable category.
func (c Category) Valid() bool {
	return c >= CategoryGeneral && c <= CategoryDevice
}

// Type identifies the variant of an event record
type Type int

const (
	TypeNone Type = iota

	// Window events
	KeyboardInput     // Element, Scancode, Pressed, Modifiers
	MouseInput        // Element, Pressed, Modifiers
	ModifiersChanged  // Modifiers
	CursorMoved       // X, Y
	CursorEntered     //
	CursorLeft        //
	MouseWheel        // X, Y (lines)
	Focused           // Focused
	Resized           // Width, Height
	Moved             // X, Y
	ReceivedCharacter // Char
	CloseRequested    //
	Destroyed         //
	DroppedFile       // Path
	HoveredFile       // Path

	// Device events
	DeviceKey     // Element, Scancode, Pressed
	DeviceButton  // Element, Pressed
	MouseMotion   // X, Y (deltas)
	DeviceWheel   // X, Y (lines)
	DeviceText    // Char
	DeviceAdded   //
	DeviceRemoved //

	// General events
	NewEvents           //
	MainEventsCleared   // Frame boundary
	RedrawRequested     // WindowID
	RedrawEventsCleared //
	Suspended           //
	Resumed             //
	LoopDestroyed       //
)

var typeNames = map[Type]string{
	KeyboardInput:       "KeyboardInput",
	MouseInput:          "MouseInput",
	ModifiersChanged:    "ModifiersChanged",
	CursorMoved:         "CursorMoved",
	CursorEntered:       "CursorEntered",
	CursorLeft:          "CursorLeft",
	MouseWheel:          "MouseWheel",
	Focused:             "Focused",
	Resized:             "Resized",
	Moved:               "Moved",
	ReceivedCharacter:   "ReceivedCharacter",
	CloseRequested:      "CloseRequested",
	Destroyed:           "Destroyed",
	DroppedFile:         "DroppedFile",
	HoveredFile:         "HoveredFile",
	DeviceKey:           "DeviceKey",
	DeviceButton:        "DeviceButton",
	MouseMotion:         "MouseMotion",
	DeviceWheel:         "DeviceWheel",
	DeviceText:          "DeviceText",
	DeviceAdded:         "DeviceAdded",
	DeviceRemoved:       "DeviceRemoved",
	NewEvents:           "NewEvents",
	MainEventsCleared:   "MainEventsCleared",
	RedrawRequested:     "RedrawRequested",
	RedrawEventsCleared: "RedrawEventsCleared",
	Suspended:           "Suspended",
	Resumed:             "Resumed",
	LoopDestroyed:       "LoopDestroyed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Category returns the category t is dispatched under.
func (t Type) Category() Category {
	switch {
	case t >= KeyboardInput && t <= HoveredFile:
		return CategoryWindow
	case t >= DeviceKey && t <= DeviceRemoved:
		return CategoryDevice
	case t >= NewEvents && t <= LoopDestroyed:
		return CategoryGeneral
	default:
		return CategoryNone
	}
}

// Event is one discrete record from an event source. Only the fields listed
// next to each Type are meaningful.
type Event struct {
	Type     Type
	WindowID uint64
	DeviceID uint64

	Element   element.Element
	Scancode  uint32
	Pressed   bool
	Modifiers element.Modifiers

	X, Y          float64
	Width, Height uint32
	Focused       bool
	Char          rune
	Path          string
}

// Category returns the category the event is dispatched under.
func (e Event) Category() Category {
	return e.Type.Category()
}

// IsFrameEnd reports whether e marks the frame boundary.
func (e Event) IsFrameEnd() bool {
	return e.Type == MainEventsCleared
}

func (e Event) String() string {
	switch e.Type {
	case KeyboardInput, MouseInput, DeviceKey, DeviceButton:
		verb := "release"
		if e.Pressed {
			verb = "press"
		}
		return fmt.Sprintf("%s(%s %s)", e.Type, verb, e.Element)
	case ReceivedCharacter, DeviceText:
		return fmt.Sprintf("%s(%q)", e.Type, e.Char)
	case CursorMoved, MouseWheel, MouseMotion, DeviceWheel, Moved:
		return fmt.Sprintf("%s(%g, %g)", e.Type, e.X, e.Y)
	default:
		return e.Type.String()
	}
}

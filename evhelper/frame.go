package evhelper

import (
	"slices"

	"github.com/valerio/go-evhelper/evhelper/event"
)

// Point is a position or delta in window coordinates
type Point struct {
	X, Y float64
}

// FrameData accumulates per-frame values between two frame boundaries.
// It is cleared on the first update after a boundary.
type FrameData struct {
	Text          []rune
	Wheel         Point // Window wheel lines
	Motion        Point // Raw device motion
	Cursor        Point // Last known cursor position, kept across frames
	CursorMoved   bool
	CursorInside  bool
	Focused       bool // Last known focus, kept across frames
	FocusChanged  bool
	Width, Height uint32 // Last known size, kept across frames
	Resized       bool
	DroppedFiles  []string
	HoveredFiles  []string
}

func newFrameData() FrameData {
	return FrameData{Focused: true}
}

func (f *FrameData) record(ev event.Event) {
	switch ev.Type {
	case event.ReceivedCharacter, event.DeviceText:
		f.Text = append(f.Text, ev.Char)
	case event.MouseWheel:
		f.Wheel.X += ev.X
		f.Wheel.Y += ev.Y
	case event.MouseMotion:
		f.Motion.X += ev.X
		f.Motion.Y += ev.Y
	case event.CursorMoved:
		f.Cursor = Point{X: ev.X, Y: ev.Y}
		f.CursorMoved = true
	case event.CursorEntered:
		f.CursorInside = true
	case event.CursorLeft:
		f.CursorInside = false
	case event.Focused:
		f.Focused = ev.Focused
		f.FocusChanged = true
	case event.Resized:
		f.Width, f.Height = ev.Width, ev.Height
		f.Resized = true
	case event.DroppedFile:
		f.DroppedFiles = append(f.DroppedFiles, ev.Path)
	case event.HoveredFile:
		f.HoveredFiles = append(f.HoveredFiles, ev.Path)
	}
}

// reset clears the per-frame values and keeps the last known ones.
func (f *FrameData) reset() {
	*f = FrameData{
		Cursor:       f.Cursor,
		CursorInside: f.CursorInside,
		Focused:      f.Focused,
		Width:        f.Width,
		Height:       f.Height,
	}
}

func (f FrameData) clone() FrameData {
	f.Text = slices.Clone(f.Text)
	f.DroppedFiles = slices.Clone(f.DroppedFiles)
	f.HoveredFiles = slices.Clone(f.HoveredFiles)
	return f
}

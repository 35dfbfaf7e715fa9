package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input/element"
	"github.com/valerio/go-evhelper/evhelper/source"
	"github.com/valerio/go-evhelper/evhelper/source/terminal/render"
)

const (
	logCapacity   = 200
	minTermWidth  = 40
	minTermHeight = 10
)

// Source reads keyboard, mouse and window events from a tcell screen.
// Terminals report no key-up, so a key counts as released once no repeat
// arrived for Config.KeyTimeout.
type Source struct {
	screen    tcell.Screen
	config    source.Config
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	signals   chan os.Signal
	now       func() time.Time

	keys    map[element.Element]time.Time // last press or repeat per key
	mods    element.Modifiers
	buttons tcell.ButtonMask
	cursor  [2]int
	title   string
}

// New creates a terminal source that installs a log handler at logLevel.
func New(logLevel slog.Level) *Source {
	return &Source{
		logLevel: logLevel,
		now:      time.Now,
		cursor:   [2]int{-1, -1},
	}
}

// NewWithScreen creates a source on an existing screen, such as a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen, logLevel slog.Level) *Source {
	s := New(logLevel)
	s.screen = screen
	return s
}

func (s *Source) Init(config source.Config) error {
	s.config = config.WithDefaults()
	s.keys = make(map[element.Element]time.Time)

	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		s.screen = screen
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	s.screen.EnableMouse(tcell.MouseMotionEvents)
	s.screen.EnableFocus()
	s.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.screen.Clear()

	s.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewHandler(s.logBuffer, s.logLevel)))

	s.signals = make(chan os.Signal, 1)
	signal.Notify(s.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	slog.Info("Terminal source initialized", "key_timeout", s.config.KeyTimeout)
	return nil
}

// Poll drains pending terminal events and expires keys that stopped repeating.
func (s *Source) Poll() ([]event.Event, error) {
	now := s.now()
	var events []event.Event

	for s.screen.HasPendingEvent() {
		switch ev := s.screen.PollEvent().(type) {
		case *tcell.EventKey:
			events = s.keyEvent(events, ev, now)
		case *tcell.EventMouse:
			events = s.mouseEvent(events, ev)
		case *tcell.EventResize:
			s.screen.Sync()
			w, h := ev.Size()
			events = append(events, event.Resize(uint32(w), uint32(h)))
		case *tcell.EventFocus:
			events = append(events, event.Focus(ev.Focused))
		}
	}

	select {
	case sig := <-s.signals:
		slog.Info("Received signal", "signal", sig)
		events = append(events, event.Of(event.CloseRequested))
	default:
	}

	events = s.expireKeys(events, now)
	return append(events, event.FrameEnd()), nil
}

// specialKeys maps non-rune tcell keys to key codes
var specialKeys = map[tcell.Key]element.KeyCode{
	tcell.KeyEnter:      element.KeyEnter,
	tcell.KeyEscape:     element.KeyEscape,
	tcell.KeyTab:        element.KeyTab,
	tcell.KeyBacktab:    element.KeyTab,
	tcell.KeyBackspace:  element.KeyBackspace,
	tcell.KeyBackspace2: element.KeyBackspace,
	tcell.KeyInsert:     element.KeyInsert,
	tcell.KeyDelete:     element.KeyDelete,
	tcell.KeyHome:       element.KeyHome,
	tcell.KeyEnd:        element.KeyEnd,
	tcell.KeyPgUp:       element.KeyPageUp,
	tcell.KeyPgDn:       element.KeyPageDown,
	tcell.KeyUp:         element.KeyUp,
	tcell.KeyDown:       element.KeyDown,
	tcell.KeyLeft:       element.KeyLeft,
	tcell.KeyRight:      element.KeyRight,
	tcell.KeyF1:         element.KeyF1,
	tcell.KeyF2:         element.KeyF2,
	tcell.KeyF3:         element.KeyF3,
	tcell.KeyF4:         element.KeyF4,
	tcell.KeyF5:         element.KeyF5,
	tcell.KeyF6:         element.KeyF6,
	tcell.KeyF7:         element.KeyF7,
	tcell.KeyF8:         element.KeyF8,
	tcell.KeyF9:         element.KeyF9,
	tcell.KeyF10:        element.KeyF10,
	tcell.KeyF11:        element.KeyF11,
	tcell.KeyF12:        element.KeyF12,
}

func keyCode(ev *tcell.EventKey) (element.KeyCode, bool) {
	k := ev.Key()
	if k == tcell.KeyRune {
		return element.KeyFromRune(ev.Rune())
	}
	if code, ok := specialKeys[k]; ok {
		return code, true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return element.KeyA + element.KeyCode(k-tcell.KeyCtrlA), true
	}
	return element.KeyUnknown, false
}

func modifiers(m tcell.ModMask) element.Modifiers {
	var mods element.Modifiers
	if m&tcell.ModShift != 0 {
		mods = mods.With(element.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(element.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(element.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(element.ModLogo)
	}
	return mods
}

func (s *Source) keyEvent(events []event.Event, ev *tcell.EventKey, now time.Time) []event.Event {
	if mods := modifiers(ev.Modifiers()); mods != s.mods {
		s.mods = mods
		events = append(events, event.Mods(mods))
	}

	if code, ok := keyCode(ev); ok {
		e := element.Key(code)
		if _, down := s.keys[e]; !down {
			slog.Debug("Key press", "key", code)
			events = append(events, event.Event{
				Type:      event.KeyboardInput,
				Element:   e,
				Pressed:   true,
				Modifiers: s.mods,
			})
		}
		s.keys[e] = now
	}

	if ev.Key() == tcell.KeyRune {
		events = append(events, event.Char(ev.Rune()))
	}
	return events
}

func (s *Source) expireKeys(events []event.Event, now time.Time) []event.Event {
	var expired []element.Element
	for e, last := range s.keys {
		if now.Sub(last) >= s.config.KeyTimeout {
			expired = append(expired, e)
		}
	}
	slices.SortFunc(expired, func(a, b element.Element) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})

	for _, e := range expired {
		delete(s.keys, e)
		slog.Debug("Key release", "key", e)
		events = append(events, event.Event{Type: event.KeyboardInput, Element: e, Modifiers: s.mods})
	}

	// modifiers only arrive with keys, so they lapse with the last key
	if len(s.keys) == 0 && !s.mods.IsEmpty() {
		s.mods = element.ModNone
		events = append(events, event.Mods(element.ModNone))
	}
	return events
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button element.Button
}{
	{tcell.ButtonPrimary, element.ButtonLeft},
	{tcell.ButtonSecondary, element.ButtonRight},
	{tcell.ButtonMiddle, element.ButtonMiddle},
}

func (s *Source) mouseEvent(events []event.Event, ev *tcell.EventMouse) []event.Event {
	x, y := ev.Position()
	if s.cursor != [2]int{x, y} {
		if s.cursor[0] < 0 {
			events = append(events, event.Of(event.CursorEntered))
		}
		s.cursor = [2]int{x, y}
		events = append(events, event.Cursor(float64(x), float64(y)))
	}

	mask := ev.Buttons()
	for _, mb := range mouseButtons {
		was, is := s.buttons&mb.mask != 0, mask&mb.mask != 0
		if was == is {
			continue
		}
		events = append(events, event.Event{
			Type:      event.MouseInput,
			Element:   element.Mouse(mb.button),
			Pressed:   is,
			Modifiers: modifiers(ev.Modifiers()),
		})
	}
	s.buttons = mask & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	switch {
	case mask&tcell.WheelUp != 0:
		events = append(events, event.Wheel(0, 1))
	case mask&tcell.WheelDown != 0:
		events = append(events, event.Wheel(0, -1))
	case mask&tcell.WheelLeft != 0:
		events = append(events, event.Wheel(-1, 0))
	case mask&tcell.WheelRight != 0:
		events = append(events, event.Wheel(1, 0))
	}
	return events
}

// LogBuffer returns the buffer backing the installed log handler.
func (s *Source) LogBuffer() *render.LogBuffer {
	return s.logBuffer
}

// SetLogLevel changes the minimum level shown by Render.
func (s *Source) SetLogLevel(level slog.Level) {
	if level != s.logLevel {
		slog.Info("Log filter changed", "from", s.logLevel, "to", level)
		s.logLevel = level
	}
}

// Render draws the status lines at the top of the screen and the most recent
// log entries below them.
func (s *Source) Render(lines []string) {
	termWidth, termHeight := s.screen.Size()
	s.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		s.drawText(0, termHeight/2, termWidth, fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight), style)
		s.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	s.drawText(1, 0, termWidth-1, " "+s.config.Title+" ", titleStyle)

	y := 1
	for _, line := range lines {
		if y >= termHeight/2 {
			break
		}
		s.drawText(1, y, termWidth-1, line, statusStyle)
		y++
	}

	for x := 0; x < termWidth; x++ {
		s.screen.SetContent(x, y, '─', nil, borderStyle)
	}
	s.drawText(2, y, termWidth-2, fmt.Sprintf(" Logs [%s] ", s.logLevel), titleStyle)

	s.drawLogs(1, y+1, termWidth-1, termHeight-1)
	s.drawText(0, termHeight-1, termWidth, " Esc/q=quit ", borderStyle)
	s.screen.Show()
}

func (s *Source) drawLogs(startX, startY, width, endY int) {
	available := endY - startY
	if available <= 0 || width <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range s.logBuffer.Recent(available, s.logLevel) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		s.drawText(startX, startY+i, width, fitText(render.FormatEntry(entry), width), style)
	}
}

// fitText cuts text to width terminal cells, marking the cut with "..."
// when there is room for it.
func fitText(text string, width int) string {
	if width <= 3 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "...")
}

func (s *Source) drawText(x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		w := max(runewidth.RuneWidth(ch), 1)
		if col+w > width {
			break
		}
		s.screen.SetContent(x+col, y, ch, nil, style)
		col += w
	}
}

func (s *Source) Close() error {
	if s.signals != nil {
		signal.Stop(s.signals)
	}
	if s.screen != nil {
		slog.Info("Cleaning up terminal source")
		s.screen.Fini()
	}
	return nil
}

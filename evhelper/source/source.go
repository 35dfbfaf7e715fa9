package source

import (
	"time"

	"github.com/valerio/go-evhelper/evhelper/event"
)

// DefaultKeyTimeout is how long a terminal key stays down without a repeat.
// Slightly longer than a typical key repeat interval.
const DefaultKeyTimeout = 100 * time.Millisecond

// Source produces windowing events for the helper.
// Sources are responsible for:
// - Polling platform events (keyboard, mouse, window)
// - Translating them to event.Event values
// - Ending every poll with exactly one frame boundary
type Source interface {
	// Init configures the source. This is a required step before calling Poll.
	Init(config Config) error

	// Poll returns the events gathered since the previous call. The last event
	// is always a MainEventsCleared.
	Poll() ([]event.Event, error)

	// Close releases platform resources
	Close() error
}

// Config holds configuration for sources
type Config struct {
	Title      string
	Width      int
	Height     int
	KeyTimeout time.Duration // Sources with real key-up events ignore this
}

// WithDefaults returns c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Title == "" {
		c.Title = "evwatch"
	}
	if c.KeyTimeout <= 0 {
		c.KeyTimeout = DefaultKeyTimeout
	}
	return c
}

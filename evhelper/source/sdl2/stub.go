//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/source"
)

// ErrUnavailable is returned when the binary was built without SDL2.
var ErrUnavailable = errors.New("SDL2 source not available - build with -tags sdl2 to enable")

// Source stub for when SDL2 is not available
type Source struct{}

func New() *Source {
	return &Source{}
}

func (s *Source) Init(config source.Config) error {
	return ErrUnavailable
}

func (s *Source) Poll() ([]event.Event, error) {
	return nil, ErrUnavailable
}

func (s *Source) Close() error {
	return nil
}

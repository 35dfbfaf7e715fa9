package evhelper

import (
	"slices"
	"time"

	"github.com/valerio/go-evhelper/evhelper/event"
	"github.com/valerio/go-evhelper/evhelper/input"
)

// inputSet tracks the input of one category, merged across sources and
// split by window or device id.
type inputSet struct {
	merged *input.Tracker
	byID   map[uint64]*input.Tracker
}

func newInputSet() *inputSet {
	return &inputSet{
		merged: input.NewTracker(),
		byID:   make(map[uint64]*input.Tracker),
	}
}

func (s *inputSet) advance(dt time.Duration) {
	s.merged.Advance(dt)
	for _, t := range s.byID {
		t.Advance(dt)
	}
}

// record applies ev to the merged tracker and to the tracker of id. Sources
// only get a tracker once they report an input event.
func (s *inputSet) record(ev event.Event, id uint64) {
	if !s.merged.Record(ev) {
		return
	}
	t, ok := s.byID[id]
	if !ok {
		t = input.NewTracker()
		s.byID[id] = t
	}
	t.Record(ev)
}

func (s *inputSet) of(id uint64) (input.Reader, bool) {
	t, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return t, true
}

func (s *inputSet) ids() []uint64 {
	ids := make([]uint64, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

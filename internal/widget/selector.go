package widget

import (
	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/roster"
)

// Selector tracks which contact the thread and composer address.
type Selector struct {
	roster *roster.Roster
	bus    *bus.Bus
	active int64
	has    bool
}

// NewSelector starts on the roster's first contact, or none when it is empty.
func NewSelector(r *roster.Roster, b *bus.Bus) *Selector {
	s := &Selector{roster: r, bus: b}
	if c, ok := r.First(); ok {
		s.active, s.has = c.ID, true
	}
	return s
}

// Active returns the active contact id.
func (s *Selector) Active() (int64, bool) {
	return s.active, s.has
}

// Select makes id the active contact. Re-selecting the active contact
// succeeds without publishing.
func (s *Selector) Select(id int64) error {
	if !s.roster.Contains(id) {
		return &roster.NotFoundError{ID: id}
	}
	if s.has && s.active == id {
		return nil
	}
	s.active, s.has = id, true
	s.bus.Emit(bus.KindSelected, id)
	return nil
}

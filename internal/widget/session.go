package widget

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
	"go.uber.org/zap"
)

// Deps are the collaborators a Session is built from.
type Deps struct {
	Identity roster.Identity
	Roster   *roster.Roster
	Store    store.Store
	Notifier notify.Notifier // nil means notify.Nop
	Bus      *bus.Bus        // nil disables events
	Logger   *zap.Logger     // nil means zap.NewNop
	Clock    func() time.Time
	// ToastDuration is passed along with delivery notifications.
	ToastDuration time.Duration
}

// Session is one mounted chat widget: the roster, the message log, the
// window, the active conversation and the draft. Methods are serialized so
// UI callbacks on different goroutines see a consistent widget.
type Session struct {
	mu       sync.Mutex
	identity roster.Identity
	roster   *roster.Roster
	store    store.Store
	window   *Window
	selector *Selector
	composer *Composer
	pipeline *Pipeline
	logger   *zap.Logger
}

// New mounts a widget session.
func New(d Deps) (*Session, error) {
	if d.Identity.ID == 0 {
		return nil, errors.New("widget: current user id must be non-zero")
	}
	if d.Roster == nil || d.Store == nil {
		return nil, errors.New("widget: roster and store are required")
	}
	if d.Roster.Contains(d.Identity.ID) {
		return nil, fmt.Errorf("widget: current user %d is also in the roster", d.Identity.ID)
	}
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.ToastDuration <= 0 {
		d.ToastDuration = notify.DefaultDuration
	}

	s := &Session{
		identity: d.Identity,
		roster:   d.Roster,
		store:    d.Store,
		window:   NewWindow(d.Bus),
		selector: NewSelector(d.Roster, d.Bus),
		composer: &Composer{},
		logger:   d.Logger,
	}
	s.pipeline = &Pipeline{
		identity: d.Identity,
		roster:   d.Roster,
		store:    d.Store,
		composer: s.composer,
		selector: s.selector,
		notifier: d.Notifier,
		bus:      d.Bus,
		logger:   d.Logger,
		clock:    d.Clock,
		newID:    newClientID,
		toastFor: d.ToastDuration,
	}
	return s, nil
}

// Identity returns the current user.
func (s *Session) Identity() roster.Identity {
	return s.identity
}

// Contacts returns the roster in display order.
func (s *Session) Contacts() []roster.Contact {
	return s.roster.List()
}

// ContactAt returns the i-th contact in display order.
func (s *Session) ContactAt(i int) (roster.Contact, bool) {
	return s.roster.At(i)
}

// Window returns the panel state.
func (s *Session) Window() State {
	return s.window.Current()
}

// ToggleOpen opens or fully closes the panel.
func (s *Session) ToggleOpen() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.window.ToggleOpen()
	s.logger.Debug("window toggled", zap.String("state", string(st)))
	return st
}

// ToggleMinimize minimizes or restores an open panel.
func (s *Session) ToggleMinimize() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.window.ToggleMinimize()
	s.logger.Debug("window minimize toggled", zap.String("state", string(st)))
	return st
}

// Select switches the active conversation. The draft is kept as is.
func (s *Session) Select(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.Select(id)
}

// Active returns the contact the composer addresses.
func (s *Session) Active() (roster.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() (roster.Contact, bool) {
	id, ok := s.selector.Active()
	if !ok {
		return roster.Contact{}, false
	}
	c, err := s.roster.Get(id)
	return c, err == nil
}

// SetDraft replaces the composer text.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.SetText(text)
}

// Draft returns the composer text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.Text()
}

// Send runs the send pipeline on the current draft.
func (s *Session) Send() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Send()
}

// Thread returns the conversation with the active contact.
func (s *Session) Thread() ([]store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.selector.Active()
	if !ok {
		return nil, nil
	}
	return store.Collect(s.store.ThreadFor(s.identity.ID, id))
}

// ThreadWith returns the conversation with contact id without changing the
// active conversation.
func (s *Session) ThreadWith(id int64) ([]store.Message, error) {
	if !s.roster.Contains(id) {
		return nil, &roster.NotFoundError{ID: id}
	}
	return store.Collect(s.store.ThreadFor(s.identity.ID, id))
}

// MessageCount returns the size of the message log.
func (s *Session) MessageCount() (int, error) {
	return s.store.Len()
}

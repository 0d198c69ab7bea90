package widget

import (
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
)

// MinimizedTitle is the header text of a minimized panel.
const MinimizedTitle = "Community Chat"

// ContactRow is one entry of the contacts sidebar.
type ContactRow struct {
	Contact roster.Contact
	Active  bool
	Status  string
}

// MessageRow is one bubble of the thread.
type MessageRow struct {
	Message  store.Message
	Outgoing bool
	Time     string
}

// View is a render snapshot of the widget. Contacts, Thread and Draft are
// only filled while ShowContent is true.
type View struct {
	State       State
	ShowChrome  bool
	ShowContent bool
	Title       string
	Subtitle    string
	Contacts    []ContactRow
	Thread      []MessageRow
	Draft       string
	CanSend     bool
}

// View builds the current render snapshot.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.window.Current()
	v := View{
		State:       st,
		ShowChrome:  st.ShowsChrome(),
		ShowContent: st.ShowsContent(),
	}
	switch st {
	case Closed:
		return v, nil
	case Minimized:
		v.Title = MinimizedTitle
		return v, nil
	}

	active, hasActive := s.activeLocked()
	if hasActive {
		v.Title = active.DisplayName
		v.Subtitle = active.StatusLabel()
	}

	for _, c := range s.roster.List() {
		v.Contacts = append(v.Contacts, ContactRow{
			Contact: c,
			Active:  hasActive && c.ID == active.ID,
			Status:  c.StatusLabel(),
		})
	}

	if hasActive {
		for m, err := range s.store.ThreadFor(s.identity.ID, active.ID) {
			if err != nil {
				return View{}, err
			}
			v.Thread = append(v.Thread, MessageRow{
				Message:  m,
				Outgoing: m.SenderID == s.identity.ID,
				Time:     TimeLabel(m),
			})
		}
	}

	v.Draft = s.composer.Text()
	v.CanSend = hasActive && !s.composer.Empty()
	return v, nil
}

// TimeLabel formats a message time the way the thread shows it, e.g. "10:30 AM".
func TimeLabel(m store.Message) string {
	if m.SentAt.IsZero() {
		return ""
	}
	return m.SentAt.Format("03:04 PM")
}

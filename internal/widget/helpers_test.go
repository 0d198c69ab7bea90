package widget

import (
	"testing"
	"time"

	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
)

var (
	me    = roster.Identity{ID: 1, DisplayName: "Current User"}
	alice = roster.Contact{ID: 2, DisplayName: "Alice", Presence: roster.Online, LastSeenLabel: "Just now"}
	bob   = roster.Contact{ID: 3, DisplayName: "Bob", Presence: roster.Offline, LastSeenLabel: "2 hours ago"}
)

// recorder is a Notifier that remembers every notification.
type recorder struct {
	got []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) { r.got = append(r.got, n) }

type fixture struct {
	session *Session
	store   store.Store
	notes   *recorder
	bus     *bus.Bus
	now     time.Time
}

// newFixture mounts a session with roster [Alice, Bob] and two seeded
// messages between the current user and Alice.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	r, err := roster.New([]roster.Contact{alice, bob})
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemory()
	now := time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)
	seed := []store.Message{
		{SenderID: alice.ID, ReceiverID: me.ID, Body: "coming to the garden event?", SentAt: now},
		{SenderID: me.ID, ReceiverID: alice.ID, Body: "yes, what time?", SentAt: now.Add(2 * time.Minute)},
	}
	if _, err := Seed(st, r, me, seed); err != nil {
		t.Fatal(err)
	}

	f := &fixture{store: st, notes: &recorder{}, bus: bus.New(), now: now.Add(time.Hour)}
	f.session, err = New(Deps{
		Identity: me,
		Roster:   r,
		Store:    st,
		Notifier: f.notes,
		Bus:      f.bus,
		Clock:    func() time.Time { return f.now },
	})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) storeLen(t *testing.T) int {
	t.Helper()
	n, err := f.store.Len()
	if err != nil {
		t.Fatal(err)
	}
	return n
}

package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

const (
	me    int64 = 1
	alice int64 = 2
	bob   int64 = 3
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory("test-" + uuid.NewString())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// backends runs fn against every Store implementation.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	cases := []struct {
		name string
		new  func(t *testing.T) Store
	}{
		{"memory", func(*testing.T) Store { return NewMemory() }},
		{"memory-indexed", func(*testing.T) Store { return NewMemory(WithPairIndex()) }},
		{"sqlite", func(t *testing.T) Store { return testDB(t) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn(t, c.new(t))
		})
	}
}

func msg(from, to int64, body string) Message {
	return Message{SenderID: from, ReceiverID: to, Body: body, SentAt: time.Now()}
}

func mustAppend(t *testing.T, s Store, m Message) Message {
	t.Helper()
	got, err := s.Append(m)
	if err != nil {
		t.Fatalf("Append(%q) error = %v", m.Body, err)
	}
	return got
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		first := mustAppend(t, s, msg(alice, me, "hi"))
		second := mustAppend(t, s, msg(me, alice, "hello"))
		if first.ID != 1 || second.ID != 2 {
			t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
		}
		n, err := s.Len()
		if err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Errorf("Len() = %d, want 2", n)
		}
	})
}

func TestAppendRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		m     Message
		field string
	}{
		{"empty body", msg(me, alice, ""), "body"},
		{"whitespace body", msg(me, alice, " \t\n "), "body"},
		{"no sender", msg(0, alice, "x"), "sender_id"},
		{"no receiver", msg(me, 0, "x"), "receiver_id"},
	}
	backends(t, func(t *testing.T, s Store) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := s.Append(tt.m)
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Append() error = %v, want *ValidationError", err)
				}
				if ve.Field != tt.field {
					t.Errorf("field = %q, want %q", ve.Field, tt.field)
				}
			})
		}
		if n, _ := s.Len(); n != 0 {
			t.Errorf("Len() = %d after rejected appends, want 0", n)
		}
	})
}

func TestThreadForFiltersBothDirections(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		mustAppend(t, s, msg(alice, me, "a1"))
		mustAppend(t, s, msg(me, bob, "b1"))
		mustAppend(t, s, msg(me, alice, "a2"))
		mustAppend(t, s, msg(bob, alice, "x"))
		mustAppend(t, s, msg(alice, me, "a3"))

		thread, err := Collect(s.ThreadFor(me, alice))
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"a1", "a2", "a3"}
		if len(thread) != len(want) {
			t.Fatalf("got %d messages, want %d", len(thread), len(want))
		}
		for i, m := range thread {
			if m.Body != want[i] {
				t.Errorf("thread[%d] = %q, want %q", i, m.Body, want[i])
			}
			if i > 0 && m.ID <= thread[i-1].ID {
				t.Errorf("thread not in id order at %d: %d <= %d", i, m.ID, thread[i-1].ID)
			}
		}

		// Argument order does not matter.
		reversed, err := Collect(s.ThreadFor(alice, me))
		if err != nil {
			t.Fatal(err)
		}
		if len(reversed) != len(thread) {
			t.Errorf("ThreadFor(alice, me) len = %d, want %d", len(reversed), len(thread))
		}
	})
}

func TestThreadForIsRestartable(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		mustAppend(t, s, msg(me, alice, "one"))
		seq := s.ThreadFor(me, alice)

		first, _ := Collect(seq)
		second, _ := Collect(seq)
		if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
			t.Errorf("iterations differ: %v vs %v", first, second)
		}

		// The same sequence observes later appends.
		mustAppend(t, s, msg(alice, me, "two"))
		third, _ := Collect(seq)
		if len(third) != 2 || third[1].Body != "two" {
			t.Errorf("after append got %v, want [one two]", third)
		}
	})
}

func TestThreadForEarlyStop(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		for range 3 {
			mustAppend(t, s, msg(me, alice, "m"))
		}
		count := 0
		for _, err := range s.ThreadFor(me, alice) {
			if err != nil {
				t.Fatal(err)
			}
			count++
			if count == 2 {
				break
			}
		}
		if count != 2 {
			t.Errorf("count = %d, want 2", count)
		}
	})
}

func TestThreadForEmpty(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		mustAppend(t, s, msg(me, alice, "hi"))
		thread, err := Collect(s.ThreadFor(me, bob))
		if err != nil {
			t.Fatal(err)
		}
		if len(thread) != 0 {
			t.Errorf("got %d messages, want 0", len(thread))
		}
	})
}

func TestAppendDuringIteration(t *testing.T) {
	s := NewMemory()
	mustAppend(t, s, msg(me, alice, "one"))
	for m, err := range s.ThreadFor(me, alice) {
		if err != nil {
			t.Fatal(err)
		}
		// Must not deadlock on the store lock.
		mustAppend(t, s, msg(alice, me, "re: "+m.Body))
	}
	if n, _ := s.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestPairIndexMatchesScan(t *testing.T) {
	plain := NewMemory()
	indexed := NewMemory(WithPairIndex())
	pairs := [][2]int64{{me, alice}, {bob, me}, {alice, bob}, {alice, me}, {me, bob}, {me, alice}}
	for _, p := range pairs {
		m := msg(p[0], p[1], "x")
		mustAppend(t, plain, m)
		mustAppend(t, indexed, m)
	}
	for _, q := range [][2]int64{{me, alice}, {me, bob}, {alice, bob}, {bob, 99}} {
		a, _ := Collect(plain.ThreadFor(q[0], q[1]))
		b, _ := Collect(indexed.ThreadFor(q[0], q[1]))
		if len(a) != len(b) {
			t.Fatalf("pair %v: plain %d vs indexed %d", q, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("pair %v [%d]: %+v vs %+v", q, i, a[i], b[i])
			}
		}
	}
}

func TestDBKeepsClientIDAndTime(t *testing.T) {
	db := testDB(t)
	sent := time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)
	stored := mustAppend(t, db, Message{ClientID: "c-1", SenderID: me, ReceiverID: alice, Body: "hey", SentAt: sent})

	thread, err := Collect(db.ThreadFor(me, alice))
	if err != nil {
		t.Fatal(err)
	}
	if len(thread) != 1 {
		t.Fatalf("got %d messages, want 1", len(thread))
	}
	got := thread[0]
	if got.ClientID != "c-1" {
		t.Errorf("client_id = %q, want c-1", got.ClientID)
	}
	if !got.SentAt.Equal(sent) {
		t.Errorf("sent_at = %v, want %v", got.SentAt, sent)
	}
	if got.ID != stored.ID {
		t.Errorf("id = %d, want %d", got.ID, stored.ID)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already migrated; a second run must be a no-op.
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 2 {
		t.Errorf("version = %d, want 2 (messages + pair index)", result.Version)
	}
	if result.Dirty {
		t.Error("migration left the schema dirty")
	}
}

func TestMemoryDatabasesAreIsolated(t *testing.T) {
	a := testDB(t)
	b := testDB(t)
	mustAppend(t, a, msg(me, alice, "only in a"))
	if n, _ := b.Len(); n != 0 {
		t.Errorf("second database Len() = %d, want 0", n)
	}
}

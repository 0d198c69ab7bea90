package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/chatwidget/internal/bus"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recorder is a Notifier that remembers what it was given.
type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) { r.got = append(r.got, n) }

func TestToastPublishesOnBus(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("notify.", 4)
	defer unsub()

	NewToast(b).Notify(Notification{Title: "Message Sent", Description: "Message sent to Alice"})

	select {
	case evt := <-ch:
		n, ok := evt.Payload.(Notification)
		if !ok {
			t.Fatalf("payload type = %T, want Notification", evt.Payload)
		}
		if n.Title != "Message Sent" {
			t.Errorf("title = %q", n.Title)
		}
		if n.Duration != DefaultDuration {
			t.Errorf("duration = %v, want default %v", n.Duration, DefaultDuration)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for toast event")
	}
}

func TestFanoutDeliversToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Fanout{a, b, Nop{}}.Notify(Notification{Title: "x"})
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Errorf("deliveries = %d, %d; want 1, 1", len(a.got), len(b.got))
	}
}

func TestFuncAdapter(t *testing.T) {
	var seen string
	Func(func(n Notification) { seen = n.Description }).Notify(Notification{Description: "d"})
	if seen != "d" {
		t.Errorf("seen = %q, want d", seen)
	}
}

func TestLogWritesEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	NewLog(zap.New(core)).Notify(Notification{Title: "Message Sent", Description: "to Bob"})

	entries := logs.FilterMessage("notification").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0].ContextMap()["description"] != "to Bob" {
		t.Errorf("description field = %v", entries[0].ContextMap()["description"])
	}
}

func TestDesktopSendsWithAppName(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	d := NewDesktop("Community", zap.NewNop())
	d.send = func(title, message string, _ any) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, title+"|"+message)
		return nil
	}

	d.Notify(Notification{Title: "Message Sent", Description: "Message sent to Alice"})
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}
	if calls[0] != "Community: Message Sent|Message sent to Alice" {
		t.Errorf("call = %q", calls[0])
	}
}

func TestDesktopFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewDesktop("", zap.New(core))
	d.send = func(string, string, any) error { return errors.New("no dbus") }

	d.Notify(Notification{Title: "Message Sent"})
	d.Wait()

	if logs.FilterMessage("desktop notification failed").Len() != 1 {
		t.Errorf("expected one warning, got %d entries", logs.Len())
	}
}

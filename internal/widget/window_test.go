package widget

import (
	"testing"
	"time"

	"github.com/matheus3301/chatwidget/internal/bus"
)

func TestWindowInitialState(t *testing.T) {
	w := NewWindow(nil)
	if w.Current() != Closed {
		t.Errorf("initial state = %s, want CLOSED", w.Current())
	}
}

func TestWindowTransitions(t *testing.T) {
	tests := []struct {
		from State
		ev   WindowEvent
		to   State
	}{
		{Closed, ToggleOpen, Open},
		{Closed, ToggleMinimize, Closed},
		{Open, ToggleOpen, Closed},
		{Open, ToggleMinimize, Minimized},
		{Minimized, ToggleOpen, Closed},
		{Minimized, ToggleMinimize, Open},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"+"+string(tt.ev), func(t *testing.T) {
			w := NewWindow(nil)
			walkTo(t, w, tt.from)
			got, err := w.Fire(tt.ev)
			if err != nil {
				t.Fatalf("Fire(%s) error = %v", tt.ev, err)
			}
			if got != tt.to || w.Current() != tt.to {
				t.Errorf("Fire(%s) from %s = %s (current %s), want %s", tt.ev, tt.from, got, w.Current(), tt.to)
			}
		})
	}
}

func TestWindowTableIsTotal(t *testing.T) {
	for _, s := range []State{Closed, Open, Minimized} {
		for _, ev := range []WindowEvent{ToggleOpen, ToggleMinimize} {
			if _, ok := windowTransitions[s][ev]; !ok {
				t.Errorf("no transition for %s + %s", s, ev)
			}
		}
	}
}

func TestWindowUnknownEvent(t *testing.T) {
	w := NewWindow(nil)
	if _, err := w.Fire("explode"); err == nil {
		t.Error("Fire(explode) should fail")
	}
	if w.Current() != Closed {
		t.Errorf("state = %s, want CLOSED (unchanged)", w.Current())
	}
}

// TestCloseFromMinimizedCollapses verifies that closing a minimized panel
// does not leave it minimized for the next open.
func TestCloseFromMinimizedCollapses(t *testing.T) {
	w := NewWindow(nil)
	w.ToggleOpen()
	w.ToggleMinimize()
	if got := w.ToggleOpen(); got != Closed {
		t.Fatalf("ToggleOpen from MINIMIZED = %s, want CLOSED", got)
	}
	if got := w.ToggleOpen(); got != Open {
		t.Errorf("reopen = %s, want OPEN (not MINIMIZED)", got)
	}
}

func TestWindowEmitsOnChangeOnly(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("window.", 10)
	defer unsub()

	w := NewWindow(b)
	w.ToggleMinimize() // no-op while closed
	w.ToggleOpen()

	select {
	case evt := <-ch:
		change, ok := evt.Payload.(StateChange)
		if !ok {
			t.Fatalf("payload type = %T, want StateChange", evt.Payload)
		}
		if change.From != Closed || change.To != Open {
			t.Errorf("change = %s -> %s, want CLOSED -> OPEN", change.From, change.To)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for window event")
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected extra event: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStateRendering(t *testing.T) {
	tests := []struct {
		s               State
		chrome, content bool
	}{
		{Closed, false, false},
		{Open, true, true},
		{Minimized, true, false},
	}
	for _, tt := range tests {
		if tt.s.ShowsChrome() != tt.chrome || tt.s.ShowsContent() != tt.content {
			t.Errorf("%s: chrome=%v content=%v, want %v %v",
				tt.s, tt.s.ShowsChrome(), tt.s.ShowsContent(), tt.chrome, tt.content)
		}
	}
}

// walkTo moves a fresh window to target.
func walkTo(t *testing.T, w *Window, target State) {
	t.Helper()
	paths := map[State][]WindowEvent{
		Closed:    {},
		Open:      {ToggleOpen},
		Minimized: {ToggleOpen, ToggleMinimize},
	}
	for _, ev := range paths[target] {
		if _, err := w.Fire(ev); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
	if w.Current() != target {
		t.Fatalf("walkTo(%s) ended in %s", target, w.Current())
	}
}

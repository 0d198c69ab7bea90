package widget

import (
	"fmt"
	"sync"

	"github.com/matheus3301/chatwidget/internal/bus"
)

// State is the visibility of the chat panel.
type State string

const (
	Closed    State = "CLOSED"
	Open      State = "OPEN"
	Minimized State = "MINIMIZED"
)

// ShowsChrome reports whether the panel header is drawn.
func (s State) ShowsChrome() bool { return s != Closed }

// ShowsContent reports whether the contacts, thread and composer are drawn.
func (s State) ShowsContent() bool { return s == Open }

// WindowEvent is a user action on the panel chrome.
type WindowEvent string

const (
	ToggleOpen     WindowEvent = "toggle_open"
	ToggleMinimize WindowEvent = "toggle_minimize"
)

// windowTransitions is total over states and events. Closing always
// collapses the panel fully, including from Minimized.
var windowTransitions = map[State]map[WindowEvent]State{
	Closed: {
		ToggleOpen:     Open,
		ToggleMinimize: Closed,
	},
	Open: {
		ToggleOpen:     Closed,
		ToggleMinimize: Minimized,
	},
	Minimized: {
		ToggleOpen:     Closed,
		ToggleMinimize: Open,
	},
}

// StateChange is the payload for window state events.
type StateChange struct {
	From State
	To   State
}

// Window tracks the panel state. It starts Closed.
type Window struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewWindow creates a closed window. b may be nil.
func NewWindow(b *bus.Bus) *Window {
	return &Window{current: Closed, bus: b}
}

// Current returns the current state.
func (w *Window) Current() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Fire applies ev and returns the resulting state. An event that leaves the
// state unchanged publishes nothing.
func (w *Window) Fire(ev WindowEvent) (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	to, ok := windowTransitions[w.current][ev]
	if !ok {
		return w.current, fmt.Errorf("unknown window event %q in state %s", ev, w.current)
	}
	from := w.current
	if from == to {
		return to, nil
	}
	w.current = to
	w.bus.Emit(bus.KindWindowChanged, StateChange{From: from, To: to})
	return to, nil
}

// ToggleOpen opens a closed panel and closes an open or minimized one.
func (w *Window) ToggleOpen() State {
	s, _ := w.Fire(ToggleOpen)
	return s
}

// ToggleMinimize flips between Open and Minimized. It does nothing while Closed.
func (w *Window) ToggleMinimize() State {
	s, _ := w.Fire(ToggleMinimize)
	return s
}

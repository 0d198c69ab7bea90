package bus

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds published by the widget.
const (
	KindWindowChanged   = "window.state_changed"
	KindSelected        = "conversation.selected"
	KindMessageAppended = "message.appended"
	KindScrollLatest    = "thread.scroll_latest"
	KindToast           = "notify.toast"
)

// Event represents a widget event published on the bus.
type Event struct {
	ID        string
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent stamps a fresh event with an id and the current time.
func NewEvent(kind string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

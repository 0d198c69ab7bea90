// Package notify holds the notification collaborators the send pipeline
// reports delivery to. Every Notifier is fire-and-forget: Notify never
// returns an error and must not block the caller on slow I/O.
package notify

import (
	"time"

	"github.com/matheus3301/chatwidget/internal/bus"
	"go.uber.org/zap"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 2 * time.Second

// Notification is a short piece of user-facing feedback.
type Notification struct {
	Title       string
	Description string
	Duration    time.Duration
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to Notifier.
type Func func(Notification)

// Notify implements Notifier.
func (f Func) Notify(n Notification) { f(n) }

// Nop discards every notification.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(Notification) {}

// Toast publishes notifications on the bus for the terminal flash bar.
type Toast struct {
	bus *bus.Bus
}

// NewToast creates a toast notifier publishing on b.
func NewToast(b *bus.Bus) *Toast {
	return &Toast{bus: b}
}

// Notify implements Notifier.
func (t *Toast) Notify(n Notification) {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	t.bus.Emit(bus.KindToast, n)
}

// Log writes notifications to the structured log.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a log notifier.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

// Notify implements Notifier.
func (l *Log) Notify(n Notification) {
	l.logger.Info("notification", zap.String("title", n.Title), zap.String("description", n.Description))
}

// Fanout delivers each notification to all of its notifiers in order.
type Fanout []Notifier

// Notify implements Notifier.
func (f Fanout) Notify(n Notification) {
	for _, nt := range f {
		nt.Notify(n)
	}
}

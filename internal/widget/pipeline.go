package widget

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
	"go.uber.org/zap"
)

// ErrNoActiveContact is returned by Send when the roster is empty.
var ErrNoActiveContact = errors.New("no active contact")

// Result describes the outcome of a send. Sent is false when the draft was
// blank and nothing happened.
type Result struct {
	Message store.Message
	Sent    bool
}

// Pipeline turns the composer draft into a stored message.
type Pipeline struct {
	identity roster.Identity
	roster   *roster.Roster
	store    store.Store
	composer *Composer
	selector *Selector
	notifier notify.Notifier
	bus      *bus.Bus
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() string
	toastFor time.Duration
}

// Send runs the pipeline once:
//  1. a blank draft is ignored (no error, nothing changes)
//  2. the active contact is resolved
//  3. the message is appended to the store
//  4. the draft is cleared
//  5. the notifier is told, best effort
//  6. the view is told to scroll to the new message
func (p *Pipeline) Send() (Result, error) {
	text := p.composer.Text()
	if p.composer.Empty() {
		return Result{}, nil
	}

	id, ok := p.selector.Active()
	if !ok {
		return Result{}, fmt.Errorf("send: %w", ErrNoActiveContact)
	}
	contact, err := p.roster.Get(id)
	if err != nil {
		return Result{}, fmt.Errorf("send: %w", err)
	}

	stored, err := p.store.Append(store.Message{
		ClientID:   p.newID(),
		SenderID:   p.identity.ID,
		ReceiverID: contact.ID,
		Body:       text,
		SentAt:     p.clock(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("send: append: %w", err)
	}
	p.composer.Clear()

	p.logger.Info("message sent",
		zap.Int64("id", stored.ID),
		zap.String("client_id", stored.ClientID),
		zap.Int64("receiver_id", contact.ID))
	p.bus.Emit(bus.KindMessageAppended, stored)

	p.notify(notify.Notification{
		Title:       "Message Sent",
		Description: "Message sent to " + contact.DisplayName,
		Duration:    p.toastFor,
	})

	p.bus.Emit(bus.KindScrollLatest, stored.ID)
	return Result{Message: stored, Sent: true}, nil
}

// notify shields the pipeline from a misbehaving notifier; the message is
// already stored at this point.
func (p *Pipeline) notify(n notify.Notification) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("notifier panicked", zap.Any("panic", r))
		}
	}()
	p.notifier.Notify(n)
}

func newClientID() string {
	return uuid.NewString()
}

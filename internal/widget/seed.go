package widget

import (
	"fmt"

	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
)

// Seed appends pre-existing history to st. Every message must be between
// the current user and a roster contact. It returns how many were stored.
func Seed(st store.Store, r *roster.Roster, me roster.Identity, msgs []store.Message) (int, error) {
	for i, m := range msgs {
		var other int64
		switch me.ID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			return i, fmt.Errorf("seed message %d: not addressed to or from user %d", i, me.ID)
		}
		if !r.Contains(other) {
			return i, fmt.Errorf("seed message %d: %w", i, &roster.NotFoundError{ID: other})
		}
		if _, err := st.Append(m); err != nil {
			return i, fmt.Errorf("seed message %d: %w", i, err)
		}
	}
	return len(msgs), nil
}

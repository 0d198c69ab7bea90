package store

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Message is one entry in the append-only message log.
type Message struct {
	ID         int64     `json:"id"`
	ClientID   string    `json:"client_id,omitempty"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

// Between reports whether m was exchanged between a and b, in either direction.
func (m Message) Between(a, b int64) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// Store is the message log. Append is the only write path, so every
// message, seeded or sent, is ordered by the id Append assigns.
type Store interface {
	// Append assigns the next id and stores m at the end of the log.
	Append(m Message) (Message, error)
	// ThreadFor yields the messages between a and b in id order. Each
	// iteration reads the log again.
	ThreadFor(a, b int64) iter.Seq2[Message, error]
	// Len returns the number of stored messages.
	Len() (int, error)
	Close() error
}

// ValidationError is returned by Append for a message that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid message %s: %s", e.Field, e.Reason)
}

func validate(m Message) error {
	if strings.TrimSpace(m.Body) == "" {
		return &ValidationError{Field: "body", Reason: "empty or whitespace-only"}
	}
	if m.SenderID == 0 {
		return &ValidationError{Field: "sender_id", Reason: "must be non-zero"}
	}
	if m.ReceiverID == 0 {
		return &ValidationError{Field: "receiver_id", Reason: "must be non-zero"}
	}
	return nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Message, error]) ([]Message, error) {
	var out []Message
	for m, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

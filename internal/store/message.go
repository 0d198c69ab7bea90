package store

import (
	"iter"
	"time"
)

// Append implements Store.
func (db *DB) Append(m Message) (Message, error) {
	if err := validate(m); err != nil {
		return Message{}, err
	}
	res, err := db.Exec(`
		INSERT INTO messages (client_id, sender_id, receiver_id, body, sent_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ClientID, m.SenderID, m.ReceiverID, m.Body, m.SentAt.UnixMilli())
	if err != nil {
		return Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, err
	}
	m.ID = id
	m.SentAt = time.UnixMilli(m.SentAt.UnixMilli())
	return m, nil
}

// ThreadFor implements Store. The query runs when iteration starts and the
// rows are read fully before the first yield.
func (db *DB) ThreadFor(a, b int64) iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		msgs, err := db.listThread(a, b)
		if err != nil {
			yield(Message{}, err)
			return
		}
		for _, m := range msgs {
			if !yield(m, nil) {
				return
			}
		}
	}
}

func (db *DB) listThread(a, b int64) ([]Message, error) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	rows, err := db.Query(`
		SELECT id, client_id, sender_id, receiver_id, body, sent_at
		FROM messages
		WHERE min(sender_id, receiver_id) = ? AND max(sender_id, receiver_id) = ?
		ORDER BY id ASC`, lo, hi)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []Message
	for rows.Next() {
		var (
			m      Message
			sentAt int64
		)
		if err := rows.Scan(&m.ID, &m.ClientID, &m.SenderID, &m.ReceiverID, &m.Body, &sentAt); err != nil {
			return nil, err
		}
		m.SentAt = time.UnixMilli(sentAt)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Len implements Store.
func (db *DB) Len() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}

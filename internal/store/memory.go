package store

import (
	"iter"
	"sync"
)

type pairKey struct{ lo, hi int64 }

func keyFor(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Memory is a slice-backed Store.
type Memory struct {
	mu     sync.RWMutex
	msgs   []Message
	pairs  map[pairKey][]int // positions in msgs; nil unless indexed
	nextID int64
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithPairIndex keeps a per-pair position list so ThreadFor does not scan
// the whole log. Output is identical to the unindexed scan.
func WithPairIndex() MemoryOption {
	return func(m *Memory) {
		m.pairs = make(map[pairKey][]int)
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{nextID: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Append implements Store.
func (s *Memory) Append(m Message) (Message, error) {
	if err := validate(m); err != nil {
		return Message{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextID
	s.nextID++
	s.msgs = append(s.msgs, m)
	if s.pairs != nil {
		k := keyFor(m.SenderID, m.ReceiverID)
		s.pairs[k] = append(s.pairs[k], len(s.msgs)-1)
	}
	return m, nil
}

// ThreadFor implements Store. The matching messages are copied under the
// read lock and yielded after it is released, so a consumer may Append
// while iterating.
func (s *Memory) ThreadFor(a, b int64) iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		for _, m := range s.snapshot(a, b) {
			if !yield(m, nil) {
				return
			}
		}
	}
}

func (s *Memory) snapshot(a, b int64) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pairs != nil {
		positions := s.pairs[keyFor(a, b)]
		out := make([]Message, 0, len(positions))
		for _, p := range positions {
			out = append(out, s.msgs[p])
		}
		return out
	}

	var out []Message
	for _, m := range s.msgs {
		if m.Between(a, b) {
			out = append(out, m)
		}
	}
	return out
}

// Len implements Store.
func (s *Memory) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.msgs), nil
}

// Close implements Store.
func (s *Memory) Close() error { return nil }

package roster

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a contact id is not in the roster.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contact %d not found in roster", e.ID)
}

// Roster is the fixed, ordered set of contacts for one widget session.
type Roster struct {
	contacts []Contact
	index    map[int64]int
}

// New builds a roster, keeping the given order.
func New(contacts []Contact) (*Roster, error) {
	r := &Roster{
		contacts: make([]Contact, 0, len(contacts)),
		index:    make(map[int64]int, len(contacts)),
	}
	for _, c := range contacts {
		if c.ID == 0 {
			return nil, fmt.Errorf("contact %q: id must be non-zero", c.DisplayName)
		}
		if strings.TrimSpace(c.DisplayName) == "" {
			return nil, fmt.Errorf("contact %d: display name is empty", c.ID)
		}
		if _, dup := r.index[c.ID]; dup {
			return nil, fmt.Errorf("contact %d: duplicate id", c.ID)
		}
		r.index[c.ID] = len(r.contacts)
		r.contacts = append(r.contacts, c)
	}
	return r, nil
}

// List returns the contacts in initialization order.
func (r *Roster) List() []Contact {
	out := make([]Contact, len(r.contacts))
	copy(out, r.contacts)
	return out
}

// Get looks up a contact by id.
func (r *Roster) Get(id int64) (Contact, error) {
	i, ok := r.index[id]
	if !ok {
		return Contact{}, &NotFoundError{ID: id}
	}
	return r.contacts[i], nil
}

// Contains reports whether id is in the roster.
func (r *Roster) Contains(id int64) bool {
	_, ok := r.index[id]
	return ok
}

// Len returns the number of contacts.
func (r *Roster) Len() int {
	return len(r.contacts)
}

// First returns the first contact, if any.
func (r *Roster) First() (Contact, bool) {
	if len(r.contacts) == 0 {
		return Contact{}, false
	}
	return r.contacts[0], true
}

// At returns the contact at position i (0-based), if any.
func (r *Roster) At(i int) (Contact, bool) {
	if i < 0 || i >= len(r.contacts) {
		return Contact{}, false
	}
	return r.contacts[i], true
}

package widget

import "strings"

// Composer holds the unsent draft. It does not validate; the send pipeline
// decides what an empty draft means.
type Composer struct {
	text string
}

// SetText replaces the draft.
func (c *Composer) SetText(s string) { c.text = s }

// Clear empties the draft.
func (c *Composer) Clear() { c.text = "" }

// Text returns the draft as typed.
func (c *Composer) Text() string { return c.text }

// Empty reports whether the draft has nothing but whitespace.
func (c *Composer) Empty() bool { return strings.TrimSpace(c.text) == "" }

package roster

import "fmt"

// Presence is a contact's availability snapshot.
type Presence int

const (
	Offline Presence = iota
	Online
)

func (p Presence) String() string {
	if p == Online {
		return "online"
	}
	return "offline"
}

// MarshalText implements encoding.TextMarshaler.
func (p Presence) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Presence) UnmarshalText(text []byte) error {
	switch string(text) {
	case "online":
		*p = Online
	case "offline", "":
		*p = Offline
	default:
		return fmt.Errorf("unknown presence %q: want online or offline", text)
	}
	return nil
}

// Contact is a counterpart the current user can message.
type Contact struct {
	ID            int64    `toml:"id" json:"id"`
	DisplayName   string   `toml:"display_name" json:"display_name"`
	AvatarRef     string   `toml:"avatar,omitempty" json:"avatar,omitempty"`
	Presence      Presence `toml:"presence" json:"presence"`
	LastSeenLabel string   `toml:"last_seen,omitempty" json:"last_seen,omitempty"`
}

// StatusLabel is what the widget shows under a contact's name.
func (c Contact) StatusLabel() string {
	if c.Presence == Online {
		return "Online"
	}
	return c.LastSeenLabel
}

// Identity is the signed-in user. It is supplied once per session.
type Identity struct {
	ID          int64  `toml:"id" json:"id"`
	DisplayName string `toml:"display_name" json:"display_name"`
	AvatarRef   string `toml:"avatar,omitempty" json:"avatar,omitempty"`
}

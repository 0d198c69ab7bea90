package config

import (
	"time"

	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/matheus3301/chatwidget/internal/roster"
)

// Default returns the community site's stock widget: three neighbours and
// a short conversation about the garden event that ends at the current
// minute, so anything sent afterwards sorts after it by time as well as id.
func Default() *Widget {
	now := time.Now().Truncate(time.Minute)
	ago := func(minutes int) time.Time {
		return now.Add(-time.Duration(minutes) * time.Minute)
	}

	return &Widget{
		User: roster.Identity{
			ID:          1,
			DisplayName: "Current User",
			AvatarRef:   "https://randomuser.me/api/portraits/lego/1.jpg",
		},
		Contacts: []roster.Contact{
			{
				ID:            2,
				DisplayName:   "Sarah Johnson",
				AvatarRef:     "https://randomuser.me/api/portraits/women/12.jpg",
				Presence:      roster.Online,
				LastSeenLabel: "Just now",
			},
			{
				ID:            3,
				DisplayName:   "Michael Chen",
				AvatarRef:     "https://randomuser.me/api/portraits/men/22.jpg",
				Presence:      roster.Offline,
				LastSeenLabel: "2 hours ago",
			},
			{
				ID:            4,
				DisplayName:   "Emma Rodriguez",
				AvatarRef:     "https://randomuser.me/api/portraits/women/33.jpg",
				Presence:      roster.Online,
				LastSeenLabel: "Just now",
			},
		},
		Messages: []SeedMessage{
			{SenderID: 2, ReceiverID: 1, SentAt: ago(5),
				Body: "Hi there! Just wanted to check if you're coming to the community garden event this weekend?"},
			{SenderID: 1, ReceiverID: 2, SentAt: ago(3),
				Body: "Yes, I'm planning to be there! What time does it start again?"},
			{SenderID: 2, ReceiverID: 1, SentAt: ago(2),
				Body: "It starts at 10 AM. I'll be bringing some extra gardening tools if you need any."},
			{SenderID: 1, ReceiverID: 2, SentAt: ago(0),
				Body: "Perfect! I'll bring some refreshments for everyone."},
		},
		Notifications: Notifications{
			Toast:    true,
			Log:      true,
			Duration: notify.DefaultDuration,
		},
		Store: StoreConfig{
			Backend:   BackendMemory,
			PairIndex: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

package views

import (
	"fmt"

	"github.com/matheus3301/chatwidget/internal/tui/ui"
	"github.com/matheus3301/chatwidget/internal/widget"
	"github.com/rivo/tview"
)

// Thread displays the conversation with the active contact, oldest first.
type Thread struct {
	*tview.TextView
	theme *ui.Theme
}

// NewThread creates the message thread view.
func NewThread(theme *ui.Theme) *Thread {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	return &Thread{TextView: tv, theme: theme}
}

// Update redraws the thread. peer names the sender of incoming messages.
func (t *Thread) Update(peer string, rows []widget.MessageRow) {
	t.Clear()
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(t, "[%s]No messages yet. Say hello![-]", ui.Tag(t.theme.MutedColor))
		return
	}

	peer = tview.Escape(sanitizeForTerminal(peer))
	for _, r := range rows {
		sender, color := peer, t.theme.IncomingColor
		if r.Outgoing {
			sender, color = "You", t.theme.OutgoingColor
		}
		_, _ = fmt.Fprintf(t, "[%s::b]%s[-:-:-] [::d]%s[-:-:-]\n%s\n\n",
			ui.Tag(color), sender, r.Time,
			tview.Escape(sanitizeForTerminal(r.Message.Body)))
	}
	t.ScrollToEnd()
}

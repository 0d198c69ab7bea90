package views

import (
	"fmt"

	"github.com/matheus3301/chatwidget/internal/tui/ui"
	"github.com/matheus3301/chatwidget/internal/widget"
	"github.com/rivo/tview"
)

// Header is the panel's title bar: the active contact and its status, or
// the minimized title.
type Header struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHeader creates a panel header.
func NewHeader(theme *ui.Theme) *Header {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.AccentColor)
	tv.SetTextColor(theme.AccentFgColor)
	return &Header{TextView: tv, theme: theme}
}

// Update renders the title part of v.
func (h *Header) Update(v widget.View) {
	h.Clear()
	title := tview.Escape(sanitizeForTerminal(v.Title))
	controls := "m:minimize c:close"
	if v.State == widget.Minimized {
		controls = "m:restore c:close"
	}
	if v.Subtitle != "" {
		_, _ = fmt.Fprintf(h, " [::b]%s[::-] [::d]%s[::-]  [::d]%s", title, tview.Escape(v.Subtitle), controls)
		return
	}
	_, _ = fmt.Fprintf(h, " [::b]%s[::-]  [::d]%s", title, controls)
}

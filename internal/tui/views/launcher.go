package views

import (
	"fmt"

	"github.com/matheus3301/chatwidget/internal/tui/ui"
	"github.com/rivo/tview"
)

// LauncherWidth is the width of the closed-state launcher button.
const LauncherWidth = 20

// Launcher is the floating button shown while the panel is closed.
type Launcher struct {
	*tview.TextView
}

// NewLauncher creates the launcher button.
func NewLauncher(theme *ui.Theme) *Launcher {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	tv.SetBackgroundColor(theme.BgColor)
	_, _ = fmt.Fprintf(tv, "[%s:%s:b] Chat [-:-:-] [%s]c:open[-]",
		ui.Tag(theme.AccentFgColor), ui.Tag(theme.AccentColor), ui.Tag(theme.MutedColor))
	return &Launcher{TextView: tv}
}

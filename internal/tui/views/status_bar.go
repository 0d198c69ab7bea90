package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/chatwidget/internal/widget"
	"github.com/rivo/tview"
)

// StatusBar displays the profile, the signed-in user and the window state.
type StatusBar struct {
	*tview.TextView
	profile string
	user    string
	state   widget.State
	count   int
	now     func() time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, now: time.Now}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetUser updates the signed-in user display.
func (sb *StatusBar) SetUser(name string) {
	sb.user = name
	sb.render()
}

// SetState updates the window state and message count.
func (sb *StatusBar) SetState(st widget.State, messages int) {
	sb.state = st
	sb.count = messages
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	clock := sb.now().Format("15:04")
	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s | %s | %d msgs | %s",
		tview.Escape(sb.profile), tview.Escape(sb.user), sb.state, sb.count, clock)
	_, _ = fmt.Fprint(sb, line)
}

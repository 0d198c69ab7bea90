package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/rivo/tview"
)

// FlashLevel represents the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// FlashMessage is a toast with a level and expiry.
type FlashMessage struct {
	Title   string
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel holds the toast currently on screen.
type FlashModel struct {
	mu      sync.RWMutex
	current FlashMessage
	now     func() time.Time
}

// NewFlashModel creates an empty flash model.
func NewFlashModel() *FlashModel {
	return &FlashModel{now: time.Now}
}

// Show displays a delivery notification for its duration.
func (f *FlashModel) Show(n notify.Notification) {
	d := n.Duration
	if d <= 0 {
		d = notify.DefaultDuration
	}
	f.set(FlashMessage{Title: n.Title, Text: n.Description, Level: FlashInfo}, d)
}

// Warn sets a warn-level flash message.
func (f *FlashModel) Warn(msg string) {
	f.set(FlashMessage{Text: msg, Level: FlashWarn}, 5*time.Second)
}

// Err sets an error-level flash message.
func (f *FlashModel) Err(err error) {
	f.set(FlashMessage{Text: err.Error(), Level: FlashErr}, 8*time.Second)
}

func (f *FlashModel) set(fm FlashMessage, d time.Duration) {
	fm.Expires = f.now().Add(d)
	f.mu.Lock()
	f.current = fm
	f.mu.Unlock()
}

// Current returns the visible flash message, or nil once it has expired.
func (f *FlashModel) Current() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.now().Before(f.current.Expires) {
		return nil
	}
	m := f.current
	return &m
}

// FlashBar is the one-line toast area under the panel.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates a new flash bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{TextView: tv, theme: theme}
}

// Update renders msg, or clears the bar when msg is nil.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}

	var color string
	switch msg.Level {
	case FlashInfo:
		color = Tag(fb.theme.FlashInfoColor)
	case FlashWarn:
		color = Tag(fb.theme.FlashWarnColor)
	case FlashErr:
		color = Tag(fb.theme.FlashErrColor)
	}
	text := tview.Escape(msg.Text)
	if msg.Title != "" {
		text = fmt.Sprintf("[::b]%s[::-]  %s", tview.Escape(msg.Title), text)
	}
	_, _ = fmt.Fprintf(fb, "[%s]%s[-] ", color, text)
}

package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatwidget/internal/tui/ui"
	"github.com/rivo/tview"
)

// Composer is the text input for sending messages.
type Composer struct {
	*tview.InputField
	onChange func(text string)
	onSend   func()
	onLeave  func()
	syncing  bool
}

// NewComposer creates a new message composer.
func NewComposer(theme *ui.Theme) *Composer {
	input := tview.NewInputField().
		SetLabel(" > ").
		SetPlaceholder("Type a message...").
		SetFieldWidth(0)
	input.SetBorder(true)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.HintKeyColor)
	input.SetTitle(" i:compose ")

	c := &Composer{InputField: input}

	input.SetChangedFunc(func(text string) {
		if !c.syncing && c.onChange != nil {
			c.onChange(text)
		}
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if c.onSend != nil {
				c.onSend()
			}
		case tcell.KeyEscape:
			if c.onLeave != nil {
				c.onLeave()
			}
		}
	})

	return c
}

// SetOnChange sets the callback run on every edit.
func (c *Composer) SetOnChange(fn func(text string)) { c.onChange = fn }

// SetOnSend sets the callback run on Enter.
func (c *Composer) SetOnSend(fn func()) { c.onSend = fn }

// SetOnLeave sets the callback run on Esc.
func (c *Composer) SetOnLeave(fn func()) { c.onLeave = fn }

// Sync shows draft without reporting it back as an edit.
func (c *Composer) Sync(draft string) {
	if c.GetText() == draft {
		return
	}
	c.syncing = true
	c.SetText(draft)
	c.syncing = false
}

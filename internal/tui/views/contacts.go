package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/tui/ui"
	"github.com/matheus3301/chatwidget/internal/widget"
	"github.com/rivo/tview"
)

// ContactsWidth is the width of the contacts sidebar.
const ContactsWidth = 26

// ContactList is the contacts sidebar.
type ContactList struct {
	*tview.Table
	theme    *ui.Theme
	rows     []widget.ContactRow
	onSelect func(id int64)
}

// NewContactList creates the contacts sidebar.
func NewContactList(theme *ui.Theme) *ContactList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Contacts ")
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Background(theme.ActiveRowBg).
		Foreground(theme.ActiveRowFg))

	cl := &ContactList{Table: table, theme: theme}
	table.SetSelectedFunc(func(row, _ int) {
		if id, ok := cl.contactAt(row); ok && cl.onSelect != nil {
			cl.onSelect(id)
		}
	})
	return cl
}

// SetOnSelect sets the callback run when a contact row is chosen.
func (cl *ContactList) SetOnSelect(fn func(id int64)) {
	cl.onSelect = fn
}

// Update refreshes the sidebar and moves the cursor to the active contact.
func (cl *ContactList) Update(rows []widget.ContactRow) {
	cl.rows = rows
	cl.Clear()

	active := -1
	for i, r := range rows {
		dot := tview.NewTableCell(" ●").SetTextColor(cl.theme.OfflineColor)
		if r.Contact.Presence == roster.Online {
			dot.SetTextColor(cl.theme.OnlineColor)
		}
		name := tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(r.Contact.DisplayName))).
			SetTextColor(cl.theme.FgColor).
			SetExpansion(1).
			SetMaxWidth(ContactsWidth - 4)
		status := tview.NewTableCell(" " + tview.Escape(r.Status)).
			SetTextColor(cl.theme.MutedColor)

		cl.SetCell(2*i, 0, dot)
		cl.SetCell(2*i, 1, name)
		cl.SetCell(2*i+1, 0, tview.NewTableCell("").SetSelectable(false))
		cl.SetCell(2*i+1, 1, status.SetSelectable(false))
		if r.Active {
			active = i
		}
	}
	if active >= 0 {
		cl.Select(2*active, 0)
	}
}

// SelectedContact returns the id under the cursor.
func (cl *ContactList) SelectedContact() (int64, bool) {
	row, _ := cl.GetSelection()
	return cl.contactAt(row)
}

func (cl *ContactList) contactAt(row int) (int64, bool) {
	if row < 0 || row%2 != 0 {
		return 0, false
	}
	idx := row / 2
	if idx >= len(cl.rows) {
		return 0, false
	}
	return cl.rows[idx].Contact.ID, true
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/matheus3301/chatwidget/internal/tui/keys"
	"github.com/matheus3301/chatwidget/internal/tui/ui"
	"github.com/matheus3301/chatwidget/internal/tui/views"
	"github.com/matheus3301/chatwidget/internal/widget"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	panelWidth  = 64
	panelHeight = 24
	headerRows  = 3
	composeRows = 3
)

// App is the terminal rendition of the floating chat panel.
type App struct {
	app      *tview.Application
	session  *widget.Session
	bus      *bus.Bus
	logger   *zap.Logger
	theme    *ui.Theme
	registry *keys.Registry
	flash    *ui.FlashModel

	root      *tview.Flex
	dock      *tview.Flex
	panel     *tview.Flex
	body      *tview.Flex
	launcher  *views.Launcher
	header    *views.Header
	contacts  *views.ContactList
	thread    *views.Thread
	composer  *views.Composer
	menu      *ui.Menu
	flashBar  *ui.FlashBar
	statusBar *views.StatusBar

	view   widget.View
	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application for session.
func NewApp(session *widget.Session, b *bus.Bus, logger *zap.Logger, profile string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:       tview.NewApplication(),
		session:   session,
		bus:       b,
		logger:    logger,
		theme:     theme,
		registry:  keys.NewRegistry(),
		flash:     ui.NewFlashModel(),
		launcher:  views.NewLauncher(theme),
		header:    views.NewHeader(theme),
		contacts:  views.NewContactList(theme),
		thread:    views.NewThread(theme),
		composer:  views.NewComposer(theme),
		menu:      ui.NewMenu(theme),
		flashBar:  ui.NewFlashBar(theme),
		statusBar: views.NewStatusBar(),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetProfile(profile)
	a.statusBar.SetUser(session.Identity().DisplayName)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	a.refresh()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'q',
		Description: "Quit", Visible: true,
		Handler: a.Stop,
	})

	closed, open, minimized := string(widget.Closed), string(widget.Open), string(widget.Minimized)

	a.registry.Add(closed, &keys.Action{
		Key: tcell.KeyRune, Rune: 'c',
		Description: "Open chat", Visible: true,
		Handler: a.toggleOpen,
	})

	a.registry.Add(open, &keys.Action{
		Key: tcell.KeyRune, Rune: 'i',
		Description: "Compose", Visible: true,
		Handler: a.focusComposer,
	})
	a.registry.Add(open, &keys.Action{
		Key:         tcell.KeyTab,
		Description: "Next contact", Visible: true,
		Handler: a.nextContact,
	})
	for i := 1; i <= 9; i++ {
		a.registry.Add(open, &keys.Action{
			Key: tcell.KeyRune, Rune: rune('0' + i),
			Label: "1-9", Description: "Select", Visible: i == 1,
			Handler: func() { a.selectIndex(i - 1) },
		})
	}
	a.registry.Add(open, &keys.Action{
		Key: tcell.KeyRune, Rune: 'm',
		Description: "Minimize", Visible: true,
		Handler: a.toggleMinimize,
	})
	a.registry.Add(open, &keys.Action{
		Key: tcell.KeyRune, Rune: 'c',
		Description: "Close", Visible: true,
		Handler: a.toggleOpen,
	})

	a.registry.Add(minimized, &keys.Action{
		Key: tcell.KeyRune, Rune: 'm',
		Description: "Restore", Visible: true,
		Handler: a.toggleMinimize,
	})
	a.registry.Add(minimized, &keys.Action{
		Key: tcell.KeyRune, Rune: 'c',
		Description: "Close", Visible: true,
		Handler: a.toggleOpen,
	})
}

func (a *App) setupCallbacks() {
	a.contacts.SetOnSelect(a.selectContact)
	a.composer.SetOnChange(a.session.SetDraft)
	a.composer.SetOnSend(a.send)
	a.composer.SetOnLeave(a.leaveComposer)
}

func (a *App) setupLayout() {
	a.body = tview.NewFlex().
		AddItem(a.contacts, views.ContactsWidth, 0, true).
		AddItem(a.thread, 0, 1, false)

	a.panel = tview.NewFlex().SetDirection(tview.FlexRow)

	a.dock = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(a.panel, panelWidth, 0, true)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(a.dock, panelHeight, 0, true).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.handleKey)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	// The composer handles its own keys, including Esc.
	if _, ok := a.app.GetFocus().(*tview.InputField); ok {
		return event
	}
	if a.registry.HandleEvent(string(a.view.State), event) {
		return nil
	}
	return event
}

func (a *App) toggleOpen() {
	a.session.ToggleOpen()
	a.refresh()
}

func (a *App) toggleMinimize() {
	a.session.ToggleMinimize()
	a.refresh()
}

func (a *App) selectContact(id int64) {
	if err := a.session.Select(id); err != nil {
		a.showErr(err)
	}
	a.refresh()
}

func (a *App) selectIndex(i int) {
	c, ok := a.session.ContactAt(i)
	if !ok {
		return
	}
	a.selectContact(c.ID)
}

func (a *App) nextContact() {
	contacts := a.session.Contacts()
	if len(contacts) == 0 {
		return
	}
	next := 0
	if active, ok := a.session.Active(); ok {
		for i, c := range contacts {
			if c.ID == active.ID {
				next = (i + 1) % len(contacts)
				break
			}
		}
	}
	a.selectContact(contacts[next].ID)
}

func (a *App) focusComposer() {
	a.app.SetFocus(a.composer.InputField)
}

func (a *App) leaveComposer() {
	a.app.SetFocus(a.contacts)
}

func (a *App) send() {
	res, err := a.session.Send()
	if err != nil {
		a.logger.Warn("send failed", zap.Error(err))
		a.showErr(fmt.Errorf("send failed: %w", err))
	}
	if res.Sent {
		a.thread.ScrollToEnd()
	}
	a.refresh()
}

func (a *App) showErr(err error) {
	a.flash.Err(err)
	a.flashBar.Update(a.flash.Current())
}

// refresh re-renders from a fresh session snapshot.
func (a *App) refresh() {
	v, err := a.session.View()
	if err != nil {
		a.logger.Error("render failed", zap.Error(err))
		a.showErr(err)
		return
	}
	a.render(v)
}

func (a *App) render(v widget.View) {
	a.view = v
	a.panel.Clear()

	var width, height int
	switch v.State {
	case widget.Closed:
		width, height = views.LauncherWidth, 1
		a.panel.AddItem(a.launcher, 1, 0, true)
	case widget.Minimized:
		width, height = panelWidth, headerRows
		a.header.Update(v)
		a.panel.AddItem(a.header, headerRows, 0, true)
	case widget.Open:
		width, height = panelWidth, panelHeight
		a.header.Update(v)
		a.contacts.Update(v.Contacts)
		a.thread.Update(v.Title, v.Thread)
		a.composer.Sync(v.Draft)
		a.panel.
			AddItem(a.header, headerRows, 0, false).
			AddItem(a.body, 0, 1, true).
			AddItem(a.composer, composeRows, 0, false)
	}
	a.dock.ResizeItem(a.panel, width, 0)
	a.root.ResizeItem(a.dock, height, 0)

	if _, composing := a.app.GetFocus().(*tview.InputField); !composing || v.State != widget.Open {
		a.app.SetFocus(a.panel)
	}

	count, err := a.session.MessageCount()
	if err != nil {
		a.logger.Warn("count messages", zap.Error(err))
	}
	a.statusBar.SetState(v.State, count)

	var hints []ui.MenuHint
	for _, h := range a.registry.Hints(string(v.State)) {
		hints = append(hints, ui.MenuHint{Key: h.KeyLabel(), Description: h.Description})
	}
	a.menu.Update(hints)
	a.flashBar.Update(a.flash.Current())
}

// apply handles one bus event on the UI goroutine.
func (a *App) apply(evt bus.Event) {
	switch evt.Kind {
	case bus.KindToast:
		n, ok := evt.Payload.(notify.Notification)
		if !ok {
			return
		}
		a.flash.Show(n)
		a.flashBar.Update(a.flash.Current())
		d := n.Duration
		if d <= 0 {
			d = notify.DefaultDuration
		}
		time.AfterFunc(d, func() {
			if a.ctx.Err() != nil {
				return
			}
			a.app.QueueUpdateDraw(func() {
				a.flashBar.Update(a.flash.Current())
			})
		})
	case bus.KindScrollLatest:
		a.thread.ScrollToEnd()
	default:
		a.refresh()
	}
}

func (a *App) watch(events <-chan bus.Event) {
	for {
		select {
		case evt := <-events:
			a.app.QueueUpdateDraw(func() { a.apply(evt) })
		case <-a.ctx.Done():
			return
		}
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	events, unsubscribe := a.bus.Subscribe("", 64)
	defer unsubscribe()
	go a.watch(events)

	a.logger.Info("tui started", zap.String("window", string(a.view.State)))
	err := a.app.Run()
	a.cancel()
	return err
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

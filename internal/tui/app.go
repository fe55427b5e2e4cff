// Package tui is the terminal shell around the chat core.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/qshare/internal/attach"
	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/clock"
	"github.com/matheus3301/qshare/internal/config"
	"github.com/matheus3301/qshare/internal/store"
	"github.com/matheus3301/qshare/internal/textfmt"
	"github.com/matheus3301/qshare/internal/tui/keys"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/matheus3301/qshare/internal/tui/views"
	"github.com/matheus3301/qshare/internal/typing"
	"github.com/rivo/tview"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	pageChat    = "chat"
	pageHelp    = "help"
	pageConfirm = "confirm"
)

var errNoActive = errors.New("no active chat")

// Deps is what the shell needs from the core.
type Deps struct {
	fx.In

	Store    *store.Store
	Tray     *attach.Tray
	Animator *typing.Animator
	Bus      *bus.Bus
	Clock    clock.Clock
	Config   *config.Config
	Logger   *zap.Logger
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	deps     Deps
	theme    *ui.Theme
	pages    *ui.Pages
	registry *keys.Registry
	flash    *ui.FlashModel

	crumbs   *ui.Crumbs
	info     *ui.SessionInfo
	menu     *ui.Menu
	sidebar  *views.SessionList
	thread   *views.Thread
	trayBar  *views.TrayBar
	composer *views.Composer
	status   *views.StatusBar
	help     *views.HelpView
	confirm  *tview.Modal

	pendingDelete string

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the TUI application.
func New(d Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:      tview.NewApplication(),
		deps:     d,
		theme:    theme,
		pages:    ui.NewPages(),
		registry: keys.NewRegistry(),
		flash:    ui.NewFlashModel(d.Clock),
		crumbs:   ui.NewCrumbs(theme),
		info:     ui.NewSessionInfo(theme),
		menu:     ui.NewMenu(theme),
		sidebar:  views.NewSessionList(theme),
		thread:   views.NewThread(theme),
		trayBar:  views.NewTrayBar(theme),
		composer: views.NewComposer(theme),
		status:   views.NewStatusBar(theme),
		help:     views.NewHelpView(theme),
		confirm:  tview.NewModal(),
		ctx:      ctx,
		cancel:   cancel,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	a.refresh()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("new", &keys.Action{
		Key: tcell.KeyCtrlN, Label: "Ctrl-N", Description: "New", Visible: true,
		Handler: func() { a.run(Command{Name: CmdNew}) },
	})
	a.registry.AddGlobal("pin", &keys.Action{
		Key: tcell.KeyCtrlP, Label: "Ctrl-P", Description: "Pin",
		Handler: func() { a.run(Command{Name: CmdPin}) },
	})
	a.registry.AddGlobal("retry", &keys.Action{
		Key: tcell.KeyCtrlR, Label: "Ctrl-R", Description: "Retry",
		Handler: func() { a.run(Command{Name: CmdRetry}) },
	})
	a.registry.AddGlobal("help", &keys.Action{
		Key: tcell.KeyF1, Label: "F1", Description: "Help", Visible: true,
		Handler: func() { a.run(Command{Name: CmdHelp}) },
	})
	a.registry.AddGlobal("quit", &keys.Action{
		Key: tcell.KeyCtrlC, Label: "Ctrl-C", Description: "Quit", Visible: true,
		Handler: a.Stop,
	})
	a.registry.AddView(pageChat, "focus", &keys.Action{
		Key: tcell.KeyTab, Label: "Tab", Description: "Switch", Visible: true,
		Handler: a.toggleFocus,
	})
	a.registry.AddView(pageHelp, "back", &keys.Action{
		Key: tcell.KeyEscape, Label: "Esc", Description: "Back", Visible: true,
		Handler: a.back,
	})
}

func (a *App) setupCallbacks() {
	a.sidebar.SetOnOpen(func(id string) {
		if _, err := a.deps.Store.OpenSession(id); err != nil {
			a.flash.Err(err)
		}
		a.refresh()
		a.app.SetFocus(a.composer)
	})

	a.composer.SetOnSubmit(a.submit)

	a.confirm.
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(index int, _ string) {
			if index == 0 {
				a.confirmDelete()
			} else {
				a.pendingDelete = ""
			}
			a.back()
		})

	a.pages.SetOnChange(func(stack []string) {
		names := make([]string, 0, len(stack))
		for _, n := range stack {
			names = append(names, a.pageTitle(n))
		}
		a.crumbs.Update(names)
		a.menu.Update(a.registry.Hints(a.pages.Current()))
	})

	a.deps.Animator.OnFrame(func(typing.Frame) {
		// Frames arrive on timer goroutines.
		if a.ctx.Err() == nil {
			a.app.QueueUpdateDraw(a.refreshThread)
		}
	})
}

func (a *App) setupLayout() {
	header := tview.NewFlex().
		AddItem(a.crumbs, 0, 1, false).
		AddItem(a.info, 0, 3, false).
		AddItem(ui.NewLogo(a.theme), 22, 0, false)

	main := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.thread, 0, 1, false).
		AddItem(a.trayBar, 1, 0, false).
		AddItem(a.composer, 3, 0, true)

	body := tview.NewFlex().
		AddItem(a.sidebar, 38, 0, false).
		AddItem(main, 0, 1, true)

	a.pages.AddPage(pageChat, body, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.AddPage(pageConfirm, a.confirm, false, false)
	a.pages.Reset(pageChat)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.status, 1, 0, false)

	a.app.SetRoot(root, true).SetFocus(a.composer)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// The modal owns the keyboard while it is up.
		if a.pages.Current() == pageConfirm {
			return event
		}
		if a.registry.HandleEvent(a.pages.Current(), event) {
			return nil
		}
		return event
	})
}

func (a *App) pageTitle(name string) string {
	switch name {
	case pageChat:
		return a.thread.Name()
	case pageHelp:
		return a.help.Name()
	default:
		return "Confirm"
	}
}

// submit handles one line from the composer: a slash command, or a message
// carrying the queued attachments.
func (a *App) submit(text string) {
	if IsCommand(text) {
		cmd, err := ParseCommand(text)
		if err != nil {
			a.flash.Err(err)
		} else {
			a.run(cmd)
		}
		a.refresh()
		return
	}

	d := store.Draft{Text: Unescape(text), Attachments: a.deps.Tray.Attachments()}
	if d.Empty() {
		return
	}
	if _, err := a.deps.Store.Send(d); err != nil {
		a.flash.Err(err)
		return
	}
	a.deps.Tray.Clear()
	a.refresh()
}

func (a *App) run(cmd Command) {
	if err := a.execute(cmd); err != nil {
		a.deps.Logger.Debug("command failed", zap.String("command", cmd.Name), zap.Error(err))
		a.flash.Err(err)
	}
	a.refresh()
}

func (a *App) execute(cmd Command) error {
	s := a.deps.Store
	switch cmd.Name {
	case CmdNew:
		s.CreateSession()

	case CmdRename:
		active, err := a.active()
		if err != nil {
			return err
		}
		if _, err := s.RenameSession(active.ID, cmd.Args); err != nil {
			return err
		}

	case CmdDelete:
		active, err := a.active()
		if err != nil {
			return err
		}
		a.askDelete(active)

	case CmdPin:
		active, err := a.active()
		if err != nil {
			return err
		}
		if _, err := s.SetPinned(active.ID, !active.Pinned); err != nil {
			return err
		}
		if active.Pinned {
			a.flash.Info("Unpinned")
		} else {
			a.flash.Info("Pinned")
		}

	case CmdAttach:
		src, err := attach.Probe(cmd.Args)
		if err != nil {
			return err
		}
		if a.deps.Tray.Add(src) == 0 {
			a.flash.Warn(src.Name + " is already attached")
			return nil
		}
		a.flash.Info(fmt.Sprintf("Attached %s (%s)", textfmt.TruncateName(src.Name), textfmt.FormatBytes(src.Size)))

	case CmdDetach:
		i, err := cmd.Index()
		if err != nil {
			return err
		}
		if !a.deps.Tray.RemoveAt(i) {
			return fmt.Errorf("no attachment #%d", i+1)
		}

	case CmdClear:
		a.deps.Tray.Clear()

	case CmdRetry:
		active, err := a.active()
		if err != nil {
			return err
		}
		id := lastFailed(active)
		if id == "" {
			a.flash.Warn("Nothing to retry")
			return nil
		}
		if _, err := s.RetryMessage(active.ID, id); err != nil {
			return err
		}

	case CmdHelp:
		if a.pages.Current() != pageHelp {
			a.pages.Push(pageHelp)
			a.app.SetFocus(a.help)
		}

	case CmdQuit:
		a.Stop()

	default:
		return fmt.Errorf("%w: /%s", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

func (a *App) active() (chat.Session, error) {
	active, ok := a.deps.Store.Active()
	if !ok {
		return chat.Session{}, errNoActive
	}
	return active, nil
}

func (a *App) askDelete(sess chat.Session) {
	a.pendingDelete = sess.ID
	a.confirm.SetText(fmt.Sprintf("Delete %q?\n%d message(s) will be lost.", sess.Title, len(sess.Messages)))
	a.pages.Overlay(pageConfirm)
	a.app.SetFocus(a.confirm)
}

func (a *App) confirmDelete() {
	id := a.pendingDelete
	a.pendingDelete = ""
	if id == "" {
		return
	}
	if err := a.deps.Store.DeleteSession(id); err != nil {
		a.flash.Err(err)
		return
	}
	a.flash.Info("Chat deleted")
}

func (a *App) back() {
	a.pages.Pop()
	a.app.SetFocus(a.composer)
	a.refresh()
}

func (a *App) toggleFocus() {
	if a.sidebar.HasFocus() {
		a.app.SetFocus(a.composer)
		return
	}
	a.app.SetFocus(a.sidebar)
}

// lastFailed returns the id of the newest failed message, or "".
func lastFailed(sess chat.Session) string {
	for i := len(sess.Messages) - 1; i >= 0; i-- {
		if sess.Messages[i].Status == chat.StatusFailed {
			return sess.Messages[i].ID
		}
	}
	return ""
}

func deliveryCounts(msgs []chat.Message) (sending, failed int) {
	for _, m := range msgs {
		switch m.Status {
		case chat.StatusSending:
			sending++
		case chat.StatusFailed:
			failed++
		}
	}
	return sending, failed
}

// refresh redraws everything from a fresh store snapshot.
func (a *App) refresh() {
	sessions := a.deps.Store.Sessions()
	active, _ := a.deps.Store.Active()

	a.sidebar.Update(sessions, active.ID)
	files := a.deps.Tray.Files()
	a.trayBar.Update(files)
	a.info.Update(ui.SessionData{
		Title:        active.Title,
		Pinned:       active.Pinned,
		SessionCount: len(sessions),
		MessageCount: len(active.Messages),
		TrayCount:    len(files),
		TraySize:     a.deps.Tray.TotalSize(),
	})
	a.refreshThread()

	sending, failed := deliveryCounts(active.Messages)
	a.status.SetDelivery(sending, failed)
	a.refreshStatus()
	a.menu.Update(a.registry.Hints(a.pages.Current()))
}

func (a *App) refreshThread() {
	active, ok := a.deps.Store.Active()
	if !ok {
		a.thread.SetSessionTitle(chat.DefaultTitle)
		a.thread.ShowHero(a.deps.Animator.Frame())
		return
	}
	a.thread.SetSessionTitle(active.Title)
	if active.Empty() {
		a.thread.ShowHero(a.deps.Animator.Frame())
		return
	}
	a.thread.ShowGroups(chat.Group(active.Messages, a.deps.Config.Thread.GroupWindow()))
}

func (a *App) refreshStatus() {
	a.status.SetTime(a.deps.Clock.Now())
	a.status.SetFlash(a.flash.Current())
}

// Run starts the TUI and blocks until it exits.
func (a *App) Run() error {
	events, unsubscribe := a.deps.Bus.Subscribe("", 256)
	ticker := time.NewTicker(time.Second)

	go func() {
		defer unsubscribe()
		defer ticker.Stop()
		for {
			select {
			case evt := <-events:
				if evt.Kind == bus.TypingFrame {
					continue
				}
				a.app.QueueUpdateDraw(a.refresh)
			case <-a.flash.Watch():
				a.app.QueueUpdateDraw(a.refreshStatus)
			case <-ticker.C:
				a.app.QueueUpdateDraw(a.refreshStatus)
			case <-a.ctx.Done():
				return
			}
		}
	}()

	a.deps.Logger.Info("tui started")
	return a.app.Run()
}

// Stop shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/qshare/internal/attach"
	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/clock"
	"github.com/matheus3301/qshare/internal/config"
	"github.com/matheus3301/qshare/internal/outbox"
	"github.com/matheus3301/qshare/internal/store"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/matheus3301/qshare/internal/typing"
	"go.uber.org/zap"
)

const sendDelay = 400 * time.Millisecond

type shell struct {
	*App
	store *store.Store
	tray  *attach.Tray
	clock *clock.Fake
}

func newShell(t *testing.T, d outbox.Deliverer) *shell {
	t.Helper()
	c := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	b := bus.New()
	logger := zap.NewNop()
	s := store.New(c, outbox.NewSimulator(c, sendDelay, d, logger), b, logger)
	tray := &attach.Tray{}

	a := New(Deps{
		Store:    s,
		Tray:     tray,
		Animator: typing.New(typing.DefaultConfig(), c, b, logger),
		Bus:      b,
		Clock:    c,
		Config:   config.Default(),
		Logger:   logger,
	})
	t.Cleanup(a.cancel)
	return &shell{App: a, store: s, tray: tray, clock: c}
}

func (sh *shell) active(t *testing.T) chat.Session {
	t.Helper()
	sess, ok := sh.store.Active()
	if !ok {
		t.Fatal("no active session")
	}
	return sess
}

func (sh *shell) wantFlash(t *testing.T, level ui.FlashLevel) {
	t.Helper()
	m := sh.flash.Current()
	if m == nil || m.Level != level {
		t.Errorf("flash = %+v, want level %d", m, level)
	}
}

func TestSubmitSendsMessage(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("hello")

	sess := sh.active(t)
	if len(sess.Messages) != 1 || sess.Messages[0].Text != "hello" {
		t.Fatalf("messages = %+v", sess.Messages)
	}
	if sess.Title != "hello" {
		t.Errorf("Title = %q, want hello", sess.Title)
	}

	sh.clock.Advance(sendDelay)
	if got := sh.active(t).Messages[0].Status; got != chat.StatusSent {
		t.Errorf("status = %v, want sent", got)
	}
}

func TestSubmitIgnoresBlank(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("   ")
	if got := len(sh.store.Sessions()); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestSubmitEscapedSlash(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("//etc/hosts is a file")
	if got := sh.active(t).Messages[0].Text; got != "/etc/hosts is a file" {
		t.Errorf("Text = %q", got)
	}
}

func TestRenameAndPinCommands(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("/rename Trip")
	sh.wantFlash(t, ui.FlashErr) // nothing active yet

	sh.submit("/new")
	sh.submit("/rename Trip plans")
	if got := sh.active(t).Title; got != "Trip plans" {
		t.Errorf("Title = %q, want Trip plans", got)
	}

	sh.submit("/pin")
	if !sh.active(t).Pinned {
		t.Error("expected pinned")
	}
	sh.submit("/pin")
	if sh.active(t).Pinned {
		t.Error("expected unpinned")
	}
}

func TestAttachDetachAndSend(t *testing.T) {
	sh := newShell(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("attachment body"), 0600); err != nil {
		t.Fatal(err)
	}

	sh.submit("/attach " + path)
	sh.submit("/attach " + path)
	if got := sh.tray.Count(); got != 1 {
		t.Fatalf("tray count = %d, want 1 after duplicate attach", got)
	}
	sh.wantFlash(t, ui.FlashWarn)

	sh.submit("/detach 5")
	sh.wantFlash(t, ui.FlashErr)

	sh.submit("/attach " + filepath.Join(dir, "missing.txt"))
	sh.wantFlash(t, ui.FlashErr)

	sh.submit("")
	msg := sh.active(t).Messages[0]
	if len(msg.Attachments) != 1 || msg.Attachments[0].Name != "notes.txt" || msg.Attachments[0].Size != 15 {
		t.Errorf("attachments = %+v", msg.Attachments)
	}
	if msg.Text != "" {
		t.Errorf("Text = %q, want empty", msg.Text)
	}
	if sh.tray.Count() != 0 {
		t.Error("tray should be cleared after send")
	}

	sh.submit("/attach " + path)
	sh.submit("/detach 1")
	if sh.tray.Count() != 0 {
		t.Error("detach should empty the tray")
	}
	sh.submit("/attach " + path)
	sh.submit("/clear")
	if sh.tray.Count() != 0 {
		t.Error("clear should empty the tray")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("first")
	id := sh.active(t).ID

	sh.submit("/delete")
	if sh.pages.Current() != pageConfirm {
		t.Fatalf("page = %q, want confirm", sh.pages.Current())
	}
	if _, err := sh.store.Session(id); err != nil {
		t.Fatal("session deleted before confirmation")
	}

	sh.confirmDelete()
	sh.back()
	if _, err := sh.store.Session(id); !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("Session() error = %v, want ErrSessionNotFound", err)
	}
	if sh.pages.Current() != pageChat {
		t.Errorf("page = %q, want chat", sh.pages.Current())
	}
}

func TestDeleteCancelled(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("keep me")
	id := sh.active(t).ID

	sh.submit("/delete")
	sh.pendingDelete = ""
	sh.confirmDelete()
	if _, err := sh.store.Session(id); err != nil {
		t.Errorf("Session() error = %v, want kept", err)
	}
}

func TestRetryCommand(t *testing.T) {
	calls := 0
	sh := newShell(t, outbox.DelivererFunc(func(context.Context, chat.Message) error {
		calls++
		if calls == 1 {
			return errors.New("offline")
		}
		return nil
	}))

	sh.submit("/retry")
	sh.wantFlash(t, ui.FlashErr)

	sh.submit("hello")
	sh.clock.Advance(sendDelay)
	if got := sh.active(t).Messages[0].Status; got != chat.StatusFailed {
		t.Fatalf("status = %v, want failed", got)
	}

	sh.submit("/retry")
	if got := sh.active(t).Messages[0].Status; got != chat.StatusSending {
		t.Fatalf("status after retry = %v, want sending", got)
	}
	sh.clock.Advance(sendDelay)
	if got := sh.active(t).Messages[0].Status; got != chat.StatusSent {
		t.Errorf("status = %v, want sent", got)
	}

	sh.submit("/retry")
	sh.wantFlash(t, ui.FlashWarn)
}

func TestUnknownCommandFlashes(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("/frobnicate")
	sh.wantFlash(t, ui.FlashErr)
	if len(sh.store.Sessions()) != 0 {
		t.Error("unknown command must not send")
	}
}

func TestHelpPage(t *testing.T) {
	sh := newShell(t, nil)
	sh.submit("/help")
	if sh.pages.Current() != pageHelp {
		t.Fatalf("page = %q, want help", sh.pages.Current())
	}
	sh.back()
	if sh.pages.Current() != pageChat {
		t.Errorf("page = %q, want chat", sh.pages.Current())
	}
}

func TestDeliveryCounts(t *testing.T) {
	sending, failed := deliveryCounts([]chat.Message{
		{Status: chat.StatusSending},
		{Status: chat.StatusFailed},
		{Status: chat.StatusSending},
		{Status: chat.StatusSent},
	})
	if sending != 2 || failed != 1 {
		t.Errorf("deliveryCounts() = %d, %d; want 2, 1", sending, failed)
	}
}

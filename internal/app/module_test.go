package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/clock"
	"github.com/matheus3301/qshare/internal/config"
	"github.com/matheus3301/qshare/internal/lock"
	"github.com/matheus3301/qshare/internal/store"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModuleWiresCore(t *testing.T) {
	base := t.TempDir()
	fake := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	var (
		s    *store.Store
		hero *Hero
		cfg  *config.Config
	)
	app := fxtest.New(t,
		Module(Params{BaseDir: base, Clock: fake}),
		fx.Populate(&s, &hero, &cfg),
	)
	app.RequireStart()

	if cfg.Send.Delay.Duration != 400*time.Millisecond {
		t.Errorf("Send.Delay = %v, want default 400ms", cfg.Send.Delay.Duration)
	}
	if _, err := os.Stat(filepath.Join(base, lock.FileName)); err != nil {
		t.Errorf("lock file missing: %v", err)
	}

	active, ok := s.Active()
	if !ok || !active.Empty() {
		t.Fatalf("Active() = %+v, %v; want an empty session", active, ok)
	}
	if !hero.Showing() {
		t.Error("hero not showing on start")
	}

	msg, err := s.Send(store.Draft{Text: "hello"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	fake.Advance(cfg.Send.Delay.Duration)

	sess, err := s.Session(active.ID)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got := sess.Messages[0].Status; got != chat.StatusSent || sess.Messages[0].ID != msg.ID {
		t.Errorf("status = %v, want sent", got)
	}

	app.RequireStop()

	if _, err := os.Stat(filepath.Join(base, lock.FileName)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("lock file still present after stop: %v", err)
	}
}

func TestModuleSecondInstanceFails(t *testing.T) {
	base := t.TempDir()
	first := fxtest.New(t, Module(Params{BaseDir: base}))
	first.RequireStart()
	defer first.RequireStop()

	second := fx.New(Module(Params{BaseDir: base}), fx.NopLogger)
	err := second.Err()
	if err == nil || !strings.Contains(err.Error(), "already running") {
		t.Fatalf("second instance Err() = %v, want lock held error", err)
	}
}

func TestModuleReadsConfig(t *testing.T) {
	base := t.TempDir()
	cfgPath := filepath.Join(base, "custom.toml")
	if err := os.WriteFile(cfgPath, []byte("[send]\ndelay = \"1s\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var cfg *config.Config
	app := fxtest.New(t,
		Module(Params{BaseDir: base, ConfigPath: cfgPath}),
		fx.Populate(&cfg),
	)
	app.RequireStart()
	defer app.RequireStop()

	if cfg.Send.Delay.Duration != time.Second {
		t.Errorf("Send.Delay = %v, want 1s", cfg.Send.Delay.Duration)
	}
}

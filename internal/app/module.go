// Package app wires the chat core together with fx.
package app

import (
	"context"

	"github.com/matheus3301/qshare/internal/attach"
	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/clock"
	"github.com/matheus3301/qshare/internal/config"
	"github.com/matheus3301/qshare/internal/lock"
	"github.com/matheus3301/qshare/internal/logging"
	"github.com/matheus3301/qshare/internal/outbox"
	"github.com/matheus3301/qshare/internal/paths"
	"github.com/matheus3301/qshare/internal/store"
	"github.com/matheus3301/qshare/internal/typing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds what the command line resolved before fx takes over.
type Params struct {
	BaseDir    string
	ConfigPath string // optional override; empty = BaseDir/config.toml
	Console    bool   // also log to stderr

	// Clock and Deliverer are test seams; nil means real time and local delivery.
	Clock     clock.Clock
	Deliverer outbox.Deliverer
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("qshare",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideLock,
			provideBus,
			provideClock,
			provideSimulator,
			provideStore,
			provideAnimator,
			provideHero,
			provideTray,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	return config.LoadOrDefault(paths.Resolve(p.ConfigPath, p.BaseDir))
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	if err := paths.EnsureDir(p.BaseDir); err != nil {
		return nil, err
	}
	path := cfg.Log.Path
	if path == "" {
		path = paths.LogPath(p.BaseDir)
	}
	return logging.New(logging.Options{Path: path, Level: cfg.Log.Level, Console: p.Console})
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	l, err := lock.Acquire(p.BaseDir)
	if err != nil {
		return nil, err
	}
	logger.Info("instance lock acquired", zap.String("dir", p.BaseDir))
	return l, nil
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideClock(p Params) clock.Clock {
	if p.Clock != nil {
		return p.Clock
	}
	return clock.Real()
}

func provideSimulator(p Params, cfg *config.Config, clk clock.Clock, logger *zap.Logger) *outbox.Simulator {
	return outbox.NewSimulator(clk, cfg.Send.Delay.Duration, p.Deliverer, logger)
}

func provideStore(clk clock.Clock, sim *outbox.Simulator, b *bus.Bus, logger *zap.Logger) *store.Store {
	return store.New(clk, sim, b, logger)
}

func provideAnimator(cfg *config.Config, clk clock.Clock, b *bus.Bus, logger *zap.Logger) *typing.Animator {
	return typing.New(typing.Config{
		BaseDelay:        cfg.Hero.BaseDelay.Duration,
		PunctuationPause: cfg.Hero.PunctuationPause.Duration,
		StartupDelay:     cfg.Hero.StartupDelay.Duration,
		SettleDelay:      cfg.Hero.SettleDelay.Duration,
	}, clk, b, logger)
}

func provideHero(cfg *config.Config, s *store.Store, a *typing.Animator, b *bus.Bus, logger *zap.Logger) *Hero {
	return NewHero(s, a, b, cfg.Hero.Title, logger)
}

func provideTray() *attach.Tray {
	return &attach.Tray{}
}

func registerLifecycle(lc fx.Lifecycle, s *store.Store, hero *Hero, anim *typing.Animator, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.CreateSession()
			hero.Start(context.Background())
			logger.Info("qshare started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			hero.Stop()
			anim.Stop()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("qshare stopped")
			_ = logger.Sync()
			return nil
		},
	})
}

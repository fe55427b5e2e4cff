package app

import (
	"context"
	"sync"

	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/store"
	"github.com/matheus3301/qshare/internal/typing"
	"go.uber.org/zap"
)

// Hero runs the typing headline while the active session is empty and puts
// it away as soon as the conversation has messages.
type Hero struct {
	mu      sync.Mutex
	store   *store.Store
	anim    *typing.Animator
	bus     *bus.Bus
	title   string
	logger  *zap.Logger
	cancel  context.CancelFunc
	showing bool
	shownID string
}

// NewHero creates a hero coordinator.
func NewHero(s *store.Store, a *typing.Animator, b *bus.Bus, title string, logger *zap.Logger) *Hero {
	return &Hero{
		store:  s,
		anim:   a,
		bus:    b,
		title:  title,
		logger: logger,
	}
}

// Start syncs once and then follows session and message events.
func (h *Hero) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)
	sessions, unsubSessions := h.bus.Subscribe("session.", 64)
	messages, unsubMessages := h.bus.Subscribe("message.", 64)
	h.Sync()

	go func() {
		defer unsubSessions()
		defer unsubMessages()
		for {
			select {
			case <-sessions:
				h.Sync()
			case <-messages:
				h.Sync()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops following events.
func (h *Hero) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
}

// Showing reports whether the headline is currently up.
func (h *Hero) Showing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.showing
}

// Sync starts or dismisses the animation to match the active session.
func (h *Hero) Sync() {
	h.mu.Lock()
	defer h.mu.Unlock()

	active, ok := h.store.Active()
	if ok && !active.Empty() {
		if h.showing {
			h.logger.Debug("hero dismissed", zap.String("session_id", active.ID))
			h.anim.Dismiss()
			h.showing = false
		}
		return
	}

	id := ""
	if ok {
		id = active.ID
	}
	if h.showing && h.shownID == id {
		return
	}
	h.logger.Debug("hero started", zap.String("session_id", id))
	h.anim.Restart(h.title)
	h.showing = true
	h.shownID = id
}

// Package typing reveals a headline one character at a time with a blinking
// caret, the way the empty-session hero greets the user.
package typing

import (
	"strings"
	"sync"
	"time"

	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/clock"
	"go.uber.org/zap"
)

// State is the animator lifecycle state.
type State string

const (
	Idle     State = "idle"
	Typing   State = "typing"
	Finished State = "finished"
)

// punctuation gets an extra pause after it is revealed.
const punctuation = ".,!?"

// Config holds the animation timings.
type Config struct {
	BaseDelay        time.Duration
	PunctuationPause time.Duration
	StartupDelay     time.Duration
	SettleDelay      time.Duration
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		BaseDelay:        55 * time.Millisecond,
		PunctuationPause: 220 * time.Millisecond,
		StartupDelay:     50 * time.Millisecond,
		SettleDelay:      600 * time.Millisecond,
	}
}

// Frame is a snapshot of what should be on screen.
type Frame struct {
	Rendered     string
	Cursor       int
	CaretVisible bool
	State        State
}

// Animator drives a single typing animation. Every scheduled tick carries the
// generation it was started under; Stop bumps the generation so a tick that
// was already in flight is discarded instead of applied.
type Animator struct {
	mu      sync.Mutex
	cfg     Config
	clock   clock.Clock
	bus     *bus.Bus
	logger  *zap.Logger
	onFrame func(Frame)

	target []rune
	frame  Frame
	gen    uint64
	timer  clock.Timer
}

// New creates an idle animator.
func New(cfg Config, clk clock.Clock, b *bus.Bus, logger *zap.Logger) *Animator {
	return &Animator{
		cfg:    cfg,
		clock:  clk,
		bus:    b,
		logger: logger,
		frame:  Frame{State: Idle},
	}
}

// OnFrame registers fn to be called after every frame change.
func (a *Animator) OnFrame(fn func(Frame)) {
	a.mu.Lock()
	a.onFrame = fn
	a.mu.Unlock()
}

// Frame returns the current frame.
func (a *Animator) Frame() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

// Target returns the text being typed.
func (a *Animator) Target() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.target)
}

// Start resets the frame and begins typing text after the startup delay.
// A running animation is cancelled first.
func (a *Animator) Start(text string) {
	a.mu.Lock()
	a.cancelLocked()
	a.target = []rune(text)
	a.frame = Frame{CaretVisible: true, State: Typing}
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.cfg.StartupDelay, func() { a.tick(gen) })
	f := a.frame
	a.mu.Unlock()

	a.emit(f)
}

// Stop cancels any pending tick and returns to Idle. It is safe to call at
// any time, any number of times.
func (a *Animator) Stop() {
	a.mu.Lock()
	a.cancelLocked()
	changed := a.frame.State != Idle
	a.frame.State = Idle
	f := a.frame
	a.mu.Unlock()

	if changed {
		a.emit(f)
	}
}

// Restart is Stop followed by Start.
func (a *Animator) Restart(text string) {
	a.Stop()
	a.Start(text)
}

// Dismiss stops the animation and hides the caret, used once the user has
// moved into a conversation.
func (a *Animator) Dismiss() {
	a.mu.Lock()
	a.cancelLocked()
	changed := a.frame.State != Idle || a.frame.CaretVisible
	a.frame.State = Idle
	a.frame.CaretVisible = false
	f := a.frame
	a.mu.Unlock()

	if changed {
		a.emit(f)
	}
}

// cancelLocked stops the pending timer and invalidates in-flight callbacks.
func (a *Animator) cancelLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
}

func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		a.logger.Debug("stale typing tick discarded", zap.Uint64("gen", gen))
		return
	}

	if a.frame.Cursor > len(a.target) {
		a.frame.State = Finished
		a.timer = a.clock.AfterFunc(a.cfg.SettleDelay, func() { a.settle(gen) })
		f := a.frame
		a.mu.Unlock()
		a.emit(f)
		return
	}

	a.frame.Rendered = string(a.target[:a.frame.Cursor])
	a.frame.Cursor++

	delay := a.cfg.BaseDelay
	if a.frame.Cursor >= 2 && strings.ContainsRune(punctuation, a.target[a.frame.Cursor-2]) {
		delay += a.cfg.PunctuationPause
	}
	a.timer = a.clock.AfterFunc(delay, func() { a.tick(gen) })
	f := a.frame
	a.mu.Unlock()

	a.emit(f)
}

func (a *Animator) settle(gen uint64) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		a.logger.Debug("stale caret settle discarded", zap.Uint64("gen", gen))
		return
	}
	a.timer = nil
	a.frame.CaretVisible = false
	f := a.frame
	a.mu.Unlock()

	a.emit(f)
}

func (a *Animator) emit(f Frame) {
	a.mu.Lock()
	fn := a.onFrame
	a.mu.Unlock()
	if fn != nil {
		fn(f)
	}
	a.bus.Publish(bus.Event{Kind: bus.TypingFrame, Timestamp: a.clock.Now(), Payload: f})
}

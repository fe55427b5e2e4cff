package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/matheus3301/qshare/internal/clock"
	"github.com/rivo/tview"
)

// FlashLevel represents the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// FlashMessage is a flash notification with a level and expiry.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel holds the current transient notification. Expiry is measured
// on the injected clock.
type FlashModel struct {
	mu      sync.RWMutex
	clock   clock.Clock
	current FlashMessage
	watchCh chan FlashMessage
}

// NewFlashModel creates a flash model. A nil clock means real time.
func NewFlashModel(clk clock.Clock) *FlashModel {
	if clk == nil {
		clk = clock.Real()
	}
	return &FlashModel{
		clock:   clk,
		watchCh: make(chan FlashMessage, 8),
	}
}

// Info sets an info-level flash message.
func (f *FlashModel) Info(msg string) {
	f.set(msg, FlashInfo, 5*time.Second)
}

// Warn sets a warn-level flash message.
func (f *FlashModel) Warn(msg string) {
	f.set(msg, FlashWarn, 8*time.Second)
}

// Err sets an error-level flash message.
func (f *FlashModel) Err(err error) {
	f.set(err.Error(), FlashErr, 10*time.Second)
}

func (f *FlashModel) set(msg string, level FlashLevel, d time.Duration) {
	fm := FlashMessage{
		Text:    msg,
		Level:   level,
		Expires: f.clock.Now().Add(d),
	}
	f.mu.Lock()
	f.current = fm
	f.mu.Unlock()
	select {
	case f.watchCh <- fm:
	default:
	}
}

// Current returns the live flash message, or nil once it has expired.
func (f *FlashModel) Current() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current.Text == "" || !f.clock.Now().Before(f.current.Expires) {
		return nil
	}
	m := f.current
	return &m
}

// Watch returns a channel that receives every new flash message.
func (f *FlashModel) Watch() <-chan FlashMessage {
	return f.watchCh
}

// FlashBar is the UI component that displays flash notifications.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates a new flash notification bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders a flash message on the bar; nil clears it.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}
	_, _ = fmt.Fprint(fb, FormatFlash(fb.theme, msg))
}

// FormatFlash returns the tview markup for msg.
func FormatFlash(theme *Theme, msg *FlashMessage) string {
	color := theme.FlashInfoColor
	switch msg.Level {
	case FlashWarn:
		color = theme.FlashWarnColor
	case FlashErr:
		color = theme.FlashErrColor
	}
	return fmt.Sprintf(" [%s]%s[-]", ColorName(color), tview.Escape(msg.Text))
}

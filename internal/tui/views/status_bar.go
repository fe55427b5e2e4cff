package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/qshare/internal/textfmt"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar shows delivery state, the clock and the current flash message.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	sending int
	failed  int
	now     time.Time
	flash   *ui.FlashMessage
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme}
}

// SetDelivery updates the sending and failed counters for the active session.
func (sb *StatusBar) SetDelivery(sending, failed int) {
	sb.sending, sb.failed = sending, failed
	sb.render()
}

// SetTime updates the clock.
func (sb *StatusBar) SetTime(t time.Time) {
	sb.now = t
	sb.render()
}

// SetFlash sets the flash message; nil clears it.
func (sb *StatusBar) SetFlash(msg *ui.FlashMessage) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()
	_, _ = fmt.Fprint(sb, FormatStatus(sb.theme, sb.sending, sb.failed, sb.now, sb.flash))
}

// FormatStatus returns the status bar markup.
func FormatStatus(theme *ui.Theme, sending, failed int, now time.Time, flash *ui.FlashMessage) string {
	state := "[::b]ready[-:-:-]"
	switch {
	case failed > 0:
		state = fmt.Sprintf("[%s::b]%d failed[-:-:-]", ui.ColorName(theme.FailedColor), failed)
	case sending > 0:
		state = fmt.Sprintf("[%s]sending %d[-]", ui.ColorName(theme.SendingColor), sending)
	}
	line := " " + state
	if !now.IsZero() {
		line += " | " + textfmt.TimeOfDay(now)
	}
	if flash != nil {
		line += " |" + ui.FormatFlash(theme, flash)
	}
	return line
}

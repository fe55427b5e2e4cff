package ui

import (
	"fmt"

	"github.com/matheus3301/qshare/internal/textfmt"
	"github.com/rivo/tview"
)

// SessionData holds what the header shows about the active session.
type SessionData struct {
	Title        string
	Pinned       bool
	SessionCount int
	MessageCount int
	TrayCount    int
	TraySize     uint64
}

// SessionInfo displays session metadata in the header.
type SessionInfo struct {
	*tview.TextView
	theme *Theme
}

// NewSessionInfo creates a new session info panel.
func NewSessionInfo(theme *Theme) *SessionInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &SessionInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the session info.
func (si *SessionInfo) Update(data SessionData) {
	si.Clear()
	_, _ = fmt.Fprint(si, FormatSessionInfo(si.theme, data))
}

// FormatSessionInfo returns the header markup for data.
func FormatSessionInfo(theme *Theme, data SessionData) string {
	fg := ColorName(theme.FgColor)
	counter := ColorName(theme.CounterColor)

	title := data.Title
	if title == "" {
		title = "-"
	}
	pin := ""
	if data.Pinned {
		pin = fmt.Sprintf(" [%s]*[-]", ColorName(theme.PinColor))
	}

	return fmt.Sprintf(
		"[%s::b]Chat:[-:-:-] [%s]%s[-]%s  "+
			"[%s::b]Sessions:[-:-:-] [%s]%d[-]  "+
			"[%s::b]Msgs:[-:-:-] [%s]%d[-]  "+
			"[%s::b]Tray:[-:-:-] [%s]%d (%s)[-]",
		fg, counter, tview.Escape(textfmt.TruncateName(title)), pin,
		fg, counter, data.SessionCount,
		fg, counter, data.MessageCount,
		fg, counter, data.TrayCount, textfmt.FormatBytes(data.TraySize),
	)
}

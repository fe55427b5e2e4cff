package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/textfmt"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/rivo/tview"
)

const sessionTitleWidth = 28

// SessionList is the sidebar of sessions, most recently updated first.
type SessionList struct {
	*tview.Table
	theme    *ui.Theme
	sessions []chat.Session
	onOpen   func(id string)
}

// NewSessionList creates the sidebar table.
func NewSessionList(theme *ui.Theme) *SessionList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Chats ")
	table.SetTitleColor(theme.TitleColor)

	sl := &SessionList{Table: table, theme: theme}
	table.SetSelectedFunc(func(row, _ int) {
		if id := sl.SessionAt(row); id != "" && sl.onOpen != nil {
			sl.onOpen(id)
		}
	})
	return sl
}

// Name implements ui.Component.
func (sl *SessionList) Name() string { return "Chats" }

// Hints implements ui.Component.
func (sl *SessionList) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "Enter", Description: "Open"}}
}

// SetOnOpen sets the callback when a session is chosen.
func (sl *SessionList) SetOnOpen(fn func(id string)) {
	sl.onOpen = fn
}

// Update redraws the list and moves the cursor to the active session.
func (sl *SessionList) Update(sessions []chat.Session, activeID string) {
	sl.sessions = sessions
	sl.Clear()

	selected := -1
	for i, s := range sessions {
		marker, title, when := SessionRow(s)
		color := sl.theme.FgColor
		if s.ID == activeID {
			color = sl.theme.TableHeaderFg
			selected = i
		}
		sl.SetCell(i, 0, tview.NewTableCell(marker).SetTextColor(sl.theme.PinColor))
		sl.SetCell(i, 1, tview.NewTableCell(title).SetTextColor(color).SetExpansion(1))
		sl.SetCell(i, 2, tview.NewTableCell(when).SetTextColor(sl.theme.MutedColor).SetAlign(tview.AlignRight))
	}
	if selected >= 0 {
		sl.Select(selected, 0)
	}
}

// SessionAt returns the session id shown at row, or "".
func (sl *SessionList) SessionAt(row int) string {
	if row < 0 || row >= len(sl.sessions) {
		return ""
	}
	return sl.sessions[row].ID
}

// SessionRow returns the pin marker, display title and update time for one
// sidebar row.
func SessionRow(s chat.Session) (marker, title, when string) {
	marker = " "
	if s.Pinned {
		marker = "*"
	}
	title = display(textfmt.Truncate(s.Title, sessionTitleWidth))
	return marker, title, textfmt.TimeOfDay(s.UpdatedAt)
}

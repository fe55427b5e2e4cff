package views

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/textfmt"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/matheus3301/qshare/internal/typing"
	"github.com/rivo/tview"
)

const caret = "▌"

var (
	_ ui.Component = (*Thread)(nil)
	_ ui.Component = (*SessionList)(nil)
	_ ui.Component = (*HelpView)(nil)
)

// Thread renders the active session: grouped messages, or the typing
// headline while the session is empty.
type Thread struct {
	*tview.TextView
	theme *ui.Theme
	title string
}

// NewThread creates a new thread view.
func NewThread(theme *ui.Theme) *Thread {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)
	tv.SetTitle(" " + chat.DefaultTitle + " ")

	return &Thread{TextView: tv, theme: theme}
}

// Name implements ui.Component.
func (th *Thread) Name() string {
	if th.title != "" {
		return th.title
	}
	return "Chat"
}

// Hints implements ui.Component.
func (th *Thread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Send"},
		{Key: "/", Description: "Command"},
	}
}

// SetSessionTitle updates the border title.
func (th *Thread) SetSessionTitle(title string) {
	th.title = title
	th.SetTitle(fmt.Sprintf(" %s ", escape(textfmt.TruncateName(title))))
}

// ShowGroups renders message groups and scrolls to the newest.
func (th *Thread) ShowGroups(groups []chat.DisplayGroup) {
	th.Clear()
	_, _ = fmt.Fprint(th, RenderThread(th.theme, groups))
	th.ScrollToEnd()
}

// ShowHero renders the typing headline.
func (th *Thread) ShowHero(f typing.Frame) {
	th.Clear()
	_, _ = fmt.Fprint(th, RenderHero(th.theme, f))
	th.ScrollToBeginning()
}

// RenderThread returns the markup for a list of display groups. Groups are
// separated by a blank line; assistant, system and peer groups get a
// name and time header, the client's own groups do not.
func RenderThread(theme *ui.Theme, groups []chat.DisplayGroup) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		color := ui.ColorName(roleColor(theme, g.Role))
		if g.ShowHeader {
			fmt.Fprintf(&b, "[%s::b]%s[-:-:-] [%s]%s[-]\n",
				color, display(senderName(g)), ui.ColorName(theme.MutedColor), g.HeaderTime)
		}
		for _, m := range g.Messages {
			renderMessage(&b, theme, color, m)
		}
	}
	return b.String()
}

func renderMessage(b *strings.Builder, theme *ui.Theme, color string, m chat.Message) {
	gutter := "  "
	if m.Role == chat.RoleClient {
		gutter = fmt.Sprintf("[%s]>[-] ", color)
	}
	if m.Text != "" {
		for _, line := range strings.Split(m.Text, "\n") {
			fmt.Fprintf(b, "%s%s\n", gutter, display(line))
		}
	}
	muted := ui.ColorName(theme.MutedColor)
	for _, a := range m.Attachments {
		fmt.Fprintf(b, "%s[%s]+ %s (%s)[-]\n", gutter, muted,
			display(textfmt.TruncateName(a.Name)), textfmt.FormatBytes(a.Size))
	}
	switch m.Status {
	case chat.StatusSending:
		fmt.Fprintf(b, "%s[%s::i]sending...[-:-:-]\n", gutter, ui.ColorName(theme.SendingColor))
	case chat.StatusFailed:
		fmt.Fprintf(b, "%s[%s::b]failed, /retry to resend[-:-:-]\n", gutter, ui.ColorName(theme.FailedColor))
	}
}

// RenderHero returns the markup for one frame of the typing headline.
func RenderHero(theme *ui.Theme, f typing.Frame) string {
	out := fmt.Sprintf("\n\n  [%s::b]%s[-:-:-]", ui.ColorName(theme.TitleColor), display(f.Rendered))
	if f.CaretVisible {
		out += fmt.Sprintf("[%s]%s[-]", ui.ColorName(theme.CaretColor), caret)
	}
	return out
}

func roleColor(theme *ui.Theme, r chat.Role) tcell.Color {
	switch r {
	case chat.RoleClient:
		return theme.ClientColor
	case chat.RoleAssistant:
		return theme.AssistantColor
	case chat.RolePeer:
		return theme.PeerColor
	default:
		return theme.SystemColor
	}
}

func senderName(g chat.DisplayGroup) string {
	if g.Name != "" || g.Role == "" {
		return g.Name
	}
	r, size := utf8.DecodeRuneInString(string(g.Role))
	return string(unicode.ToUpper(r)) + string(g.Role)[size:]
}

func escape(s string) string {
	return tview.Escape(s)
}

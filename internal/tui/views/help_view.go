package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView lists key bindings and composer commands.
type HelpView struct {
	*tview.TextView
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	_, _ = fmt.Fprint(tv, renderHelp(ui.ColorName(theme.MenuKeyColor)))
	return &HelpView{TextView: tv}
}

// Name implements ui.Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements ui.Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "Esc", Description: "Back"}}
}

var helpSections = []struct {
	title string
	rows  [][2]string
}{
	{"Keys", [][2]string{
		{"Tab", "Switch between chats and composer"},
		{"Ctrl-N", "New chat"},
		{"Ctrl-P", "Pin or unpin the active chat"},
		{"Ctrl-R", "Retry the last failed message"},
		{"F1", "This help"},
		{"Esc", "Back"},
		{"Ctrl-C", "Quit"},
	}},
	{"Commands", [][2]string{
		{"/new", "Start a new chat"},
		{"/rename <title>", "Rename the active chat"},
		{"/delete", "Delete the active chat (asks first)"},
		{"/pin", "Pin or unpin the active chat"},
		{"/attach <path>", "Queue a file for the next message"},
		{"/detach <n>", "Remove queued file n"},
		{"/clear", "Remove all queued files"},
		{"/retry", "Resend the last failed message"},
		{"/help", "This help"},
		{"/quit", "Quit"},
		{"//text", "Send text starting with a slash"},
	}},
}

func renderHelp(keyColor string) string {
	var b strings.Builder
	for _, s := range helpSections {
		fmt.Fprintf(&b, "\n  [::b]%s[-:-:-]\n\n", s.title)
		for _, r := range s.rows {
			fmt.Fprintf(&b, "  [%s]%-18s[-] %s\n", keyColor, tview.Escape(r[0]), r[1])
		}
	}
	return b.String()
}

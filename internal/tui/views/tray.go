package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/qshare/internal/attach"
	"github.com/matheus3301/qshare/internal/textfmt"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/rivo/tview"
)

// TrayBar lists the attachments queued for the next message.
type TrayBar struct {
	*tview.TextView
	theme *ui.Theme
}

// NewTrayBar creates the attachment tray line.
func NewTrayBar(theme *ui.Theme) *TrayBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	tv.SetBackgroundColor(theme.BgColor)
	return &TrayBar{TextView: tv, theme: theme}
}

// Update redraws the tray.
func (tb *TrayBar) Update(files []attach.Source) {
	tb.Clear()
	_, _ = fmt.Fprint(tb, RenderTray(tb.theme, files))
}

// RenderTray returns the markup for queued files: a numbered list usable
// with /detach, followed by the total size. Empty when nothing is queued.
func RenderTray(theme *ui.Theme, files []attach.Source) string {
	if len(files) == 0 {
		return ""
	}
	key := ui.ColorName(theme.MenuKeyColor)

	var total uint64
	parts := make([]string, 0, len(files))
	for i, f := range files {
		total += f.Size
		parts = append(parts, fmt.Sprintf("[%s]%d.[-] %s (%s)",
			key, i+1, display(textfmt.TruncateName(f.Name)), textfmt.FormatBytes(f.Size)))
	}
	return fmt.Sprintf(" %s  [%s]total %s[-]",
		strings.Join(parts, "  "), ui.ColorName(theme.CounterColor), textfmt.FormatBytes(total))
}

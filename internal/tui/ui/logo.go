package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Logo is the compact wordmark in the header.
type Logo struct {
	*tview.TextView
}

// NewLogo creates a new logo component.
func NewLogo(theme *Theme) *Logo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 0, 1)

	_, _ = fmt.Fprintf(tv, "[%s::b]q[%s::b]share[-:-:-] [%s]quick-share[-:-:-]",
		ColorName(theme.CrumbActiveBg), ColorName(theme.TitleColor), ColorName(theme.MutedColor))
	return &Logo{TextView: tv}
}

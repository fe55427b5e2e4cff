package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/qshare/internal/tui/ui"
	"github.com/rivo/tview"
)

// Composer is the text input for messages and slash commands.
type Composer struct {
	*tview.InputField
	onSubmit func(text string)
}

// NewComposer creates a new message composer.
func NewComposer(theme *ui.Theme) *Composer {
	input := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0).
		SetPlaceholder("Message, or /help")
	input.SetBorder(true)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	c := &Composer{InputField: input}
	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter || c.onSubmit == nil {
			return
		}
		text := c.GetText()
		c.SetText("")
		c.onSubmit(text)
	})
	return c
}

// SetOnSubmit sets the callback run on Enter. The field is cleared first;
// empty input is passed through so attachments alone can be sent.
func (c *Composer) SetOnSubmit(fn func(text string)) {
	c.onSubmit = fn
}

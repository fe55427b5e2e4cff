package chat

import "strings"

const (
	titleMaxRunes  = 40
	titleKeepRunes = 37
)

// TitleFromMessage derives a session title from its first message: the
// trimmed text, else the first attachment name, else "Untitled". Titles over
// 40 runes are cut to 37 plus an ellipsis; an empty result falls back to
// DefaultTitle.
func TitleFromMessage(m Message) string {
	base := strings.TrimSpace(m.Text)
	if base == "" {
		if len(m.Attachments) > 0 {
			base = m.Attachments[0].Name
		} else {
			base = "Untitled"
		}
	}
	base = strings.TrimSpace(base)

	r := []rune(base)
	if len(r) > titleMaxRunes {
		return string(r[:titleKeepRunes]) + "…"
	}
	if base == "" {
		return DefaultTitle
	}
	return base
}

package views

import "strings"

// sanitizeForTerminal drops codepoints that tcell renders with the wrong
// width: skin tone modifiers, zero width joiners and variation selectors.
// A thumbs up with a skin tone becomes a plain two-cell thumbs up.
func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if isProblematicRune(r) {
			return -1
		}
		return r
	}, s)
}

func isProblematicRune(r rune) bool {
	return (r >= 0x1F3FB && r <= 0x1F3FF) || // skin tones
		r == 0x200D || // ZWJ
		(r >= 0xFE00 && r <= 0xFE0F) ||
		(r >= 0xE0100 && r <= 0xE01EF)
}

// display prepares user text for a dynamic-color TextView.
func display(s string) string {
	return escape(sanitizeForTerminal(s))
}

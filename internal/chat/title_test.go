package chat

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTitleFromMessage(t *testing.T) {
	fifty := strings.Repeat("abcde", 10)
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"plain text", Message{Text: "hello"}, "hello"},
		{"text is trimmed", Message{Text: "  hello  "}, "hello"},
		{"blank text uses attachment", Message{Text: "   ", Attachments: []Attachment{{Name: "report.pdf"}}}, "report.pdf"},
		{"no text no attachment", Message{}, "Untitled"},
		{"blank attachment name", Message{Attachments: []Attachment{{Name: "   "}}}, DefaultTitle},
		{"exactly forty kept", Message{Text: strings.Repeat("x", 40)}, strings.Repeat("x", 40)},
		{"long text truncated", Message{Text: fifty}, fifty[:37] + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromMessage(tt.msg); got != tt.want {
				t.Errorf("TitleFromMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleFromMessageRunes(t *testing.T) {
	got := TitleFromMessage(Message{Text: strings.Repeat("ñ", 45)})
	if n := utf8.RuneCountInString(got); n != 38 {
		t.Errorf("title length = %d runes, want 38", n)
	}
}

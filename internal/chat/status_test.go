package chat

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusSending, StatusSent, true},
		{StatusSending, StatusFailed, true},
		{StatusFailed, StatusSending, true},
		{StatusSent, StatusSending, false},
		{StatusSent, StatusFailed, false},
		{StatusFailed, StatusSent, false},
		{StatusSending, StatusSending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := Session{
		ID:       "s1",
		Messages: []Message{{ID: "m1", Attachments: []Attachment{{Name: "a.txt"}}}},
	}
	c := s.Clone()
	c.Messages[0].Status = StatusFailed
	c.Messages[0].Attachments[0].Name = "changed"
	if s.Messages[0].Status == StatusFailed || s.Messages[0].Attachments[0].Name != "a.txt" {
		t.Error("Clone shares state with the original")
	}
}

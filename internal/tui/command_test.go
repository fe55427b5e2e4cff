package tui

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"/new", Command{Name: CmdNew}},
		{"  /NEW  ", Command{Name: CmdNew}},
		{"/rename Trip plans ", Command{Name: CmdRename, Args: "Trip plans"}},
		{"/attach /tmp/report final.pdf", Command{Name: CmdAttach, Args: "/tmp/report final.pdf"}},
		{"/detach 2", Command{Name: CmdDetach, Args: "2"}},
		{"/rm", Command{Name: CmdDelete}},
		{"/q", Command{Name: CmdQuit}},
		{"/help me", Command{Name: CmdHelp, Args: "me"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"/bogus", ErrUnknownCommand},
		{"/", ErrUnknownCommand},
		{"/rename", ErrMissingArg},
		{"/attach   ", ErrMissingArg},
		{"/detach", ErrMissingArg},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCommand(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseCommand(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/new", true},
		{"  /pin", true},
		{"hello", false},
		{"//not a command", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCommand(tt.input); got != tt.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape("//etc/hosts"); got != "/etc/hosts" {
		t.Errorf("Unescape() = %q, want %q", got, "/etc/hosts")
	}
	if got := Unescape("plain"); got != "plain" {
		t.Errorf("Unescape() = %q, want %q", got, "plain")
	}
}

func TestCommandIndex(t *testing.T) {
	if i, err := (Command{Name: CmdDetach, Args: "3"}).Index(); err != nil || i != 2 {
		t.Errorf("Index() = %d, %v; want 2, nil", i, err)
	}
	for _, bad := range []string{"0", "-1", "x", ""} {
		if _, err := (Command{Name: CmdDetach, Args: bad}).Index(); err == nil {
			t.Errorf("Index(%q) expected error", bad)
		}
	}
}

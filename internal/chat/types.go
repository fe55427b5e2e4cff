// Package chat defines the conversation model: sessions, messages and the
// display groups derived from them.
package chat

import (
	"slices"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleClient    Role = "client"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RolePeer      Role = "peer"
)

// DefaultTitle is the title of a session that has no messages yet.
const DefaultTitle = "New chat"

// Attachment is a file carried by a message. URL is an opaque reference the
// front end knows how to open.
type Attachment struct {
	Name string
	Size uint64
	Type string
	URL  string
}

// Message is a single entry in a session thread.
type Message struct {
	ID          string
	Role        Role
	Text        string
	Attachments []Attachment
	Time        time.Time
	Status      Status
	Name        string
	AvatarURL   string
}

// Clone returns a deep copy of m.
func (m Message) Clone() Message {
	m.Attachments = slices.Clone(m.Attachments)
	return m
}

// Session is a conversation thread.
type Session struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
	Pinned    bool
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	if s.Messages != nil {
		msgs := make([]Message, len(s.Messages))
		for i, m := range s.Messages {
			msgs[i] = m.Clone()
		}
		s.Messages = msgs
	}
	return s
}

// Empty reports whether the session has no messages.
func (s Session) Empty() bool {
	return len(s.Messages) == 0
}

// DisplayGroup is a run of consecutive messages from the same role that are
// close in time. Groups are derived for rendering and never stored.
type DisplayGroup struct {
	Role       Role
	Name       string
	AvatarURL  string
	ShowHeader bool
	HeaderTime string
	Messages   []Message
}

package bus

import "time"

// Event kinds published by the core. Subscribers filter by prefix, so
// "session." receives every session change.
const (
	SessionCreated  = "session.created"
	SessionOpened   = "session.opened"
	SessionRenamed  = "session.renamed"
	SessionDeleted  = "session.deleted"
	SessionPinned   = "session.pinned"
	MessageAppended = "message.appended"
	MessageStatus   = "message.status_changed"
	TypingFrame     = "typing.frame"
)

// Event represents a state change published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Change identifies what a session or message event touched.
type Change struct {
	SessionID string
	MessageID string
}

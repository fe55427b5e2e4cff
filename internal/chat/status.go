package chat

import "slices"

// Status is the delivery state of a message.
type Status string

const (
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// validTransitions defines allowed delivery state transitions.
var validTransitions = map[Status][]Status{
	StatusSending: {StatusSent, StatusFailed},
	StatusFailed:  {StatusSending},
}

// CanTransition reports whether a message in status s may move to to.
func (s Status) CanTransition(to Status) bool {
	return slices.Contains(validTransitions[s], to)
}

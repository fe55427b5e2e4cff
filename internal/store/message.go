package store

import (
	"slices"
	"strings"

	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/outbox"
	"go.uber.org/zap"
)

// ClientName is the display name on the local user's messages.
const ClientName = "You"

// Draft is what the composer holds when the user presses send.
type Draft struct {
	Text        string
	Attachments []chat.Attachment
}

// Empty reports whether the draft has no text and no attachments.
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Text) == "" && len(d.Attachments) == 0
}

// AppendMessage adds a client message built from d to the session. The
// message starts in the sending state and is handed to the outbox. The first
// message of a session also names it.
func (s *Store) AppendMessage(sessionID string, d Draft) (chat.Message, error) {
	if d.Empty() {
		return chat.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	sess, i := s.findLocked(sessionID)
	if sess == nil {
		s.mu.Unlock()
		return chat.Message{}, ErrSessionNotFound
	}
	msg := s.appendLocked(sess, i, d)
	s.mu.Unlock()

	s.publish(bus.MessageAppended, bus.Change{SessionID: sessionID, MessageID: msg.ID})
	s.dispatch(sessionID, msg)
	return msg, nil
}

// Send appends d to the active session, creating one first if nothing is
// active.
func (s *Store) Send(d Draft) (chat.Message, error) {
	if d.Empty() {
		return chat.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	sess, i := s.findLocked(s.activeID)
	created := false
	if sess == nil {
		sess, i = s.createLocked(), 0
		created = true
	}
	sessionID := sess.ID
	msg := s.appendLocked(sess, i, d)
	s.mu.Unlock()

	if created {
		s.publish(bus.SessionCreated, bus.Change{SessionID: sessionID})
	}
	s.publish(bus.MessageAppended, bus.Change{SessionID: sessionID, MessageID: msg.ID})
	s.dispatch(sessionID, msg)
	return msg, nil
}

// appendLocked returns a copy of the appended message.
func (s *Store) appendLocked(sess *chat.Session, i int, d Draft) chat.Message {
	now := s.clock.Now()
	msg := chat.Message{
		ID:          s.newID(),
		Role:        chat.RoleClient,
		Text:        strings.TrimSpace(d.Text),
		Attachments: slices.Clone(d.Attachments),
		Time:        now,
		Status:      chat.StatusSending,
		Name:        ClientName,
	}
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = now
	if len(sess.Messages) == 1 {
		sess.Title = chat.TitleFromMessage(msg)
	}
	s.reorderOnTouch(i)
	return msg.Clone()
}

// RetryMessage puts a failed message back into the sending state and hands
// it to the outbox again.
func (s *Store) RetryMessage(sessionID, messageID string) (chat.Message, error) {
	s.mu.Lock()
	sess, _ := s.findLocked(sessionID)
	if sess == nil {
		s.mu.Unlock()
		return chat.Message{}, ErrSessionNotFound
	}
	m := findMessage(sess, messageID)
	if m == nil {
		s.mu.Unlock()
		return chat.Message{}, ErrMessageNotFound
	}
	if !m.Status.CanTransition(chat.StatusSending) {
		s.mu.Unlock()
		return chat.Message{}, ErrNotRetryable
	}
	m.Status = chat.StatusSending
	msg := m.Clone()
	s.mu.Unlock()

	s.publish(bus.MessageStatus, bus.Change{SessionID: sessionID, MessageID: messageID})
	s.dispatch(sessionID, msg)
	return msg, nil
}

func (s *Store) dispatch(sessionID string, msg chat.Message) {
	s.outbox.Dispatch(sessionID, msg, s.applyDelivery)
}

// applyDelivery records the outcome of a delivery attempt. The session or
// message may be gone by now; such results are dropped.
func (s *Store) applyDelivery(res outbox.Result) {
	to := res.Status()

	s.mu.Lock()
	sess, _ := s.findLocked(res.SessionID)
	if sess == nil {
		s.mu.Unlock()
		s.logger.Debug("stale delivery result: session gone",
			zap.String("session_id", res.SessionID), zap.String("message_id", res.MessageID))
		return
	}
	m := findMessage(sess, res.MessageID)
	if m == nil || !m.Status.CanTransition(to) {
		s.mu.Unlock()
		s.logger.Debug("stale delivery result: message gone or settled",
			zap.String("session_id", res.SessionID), zap.String("message_id", res.MessageID))
		return
	}
	m.Status = to
	s.mu.Unlock()

	s.publish(bus.MessageStatus, bus.Change{SessionID: res.SessionID, MessageID: res.MessageID})
}

func findMessage(sess *chat.Session, id string) *chat.Message {
	for i := range sess.Messages {
		if sess.Messages[i].ID == id {
			return &sess.Messages[i]
		}
	}
	return nil
}

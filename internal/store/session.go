package store

import (
	"slices"
	"strings"

	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/chat"
	"go.uber.org/zap"
)

// CreateSession starts a new empty session at the front of the list and
// makes it active. If the active session is still empty it is returned
// instead, so empty sessions never pile up.
func (s *Store) CreateSession() chat.Session {
	s.mu.Lock()
	if active, _ := s.findLocked(s.activeID); active != nil && active.Empty() {
		snap := active.Clone()
		s.mu.Unlock()
		return snap
	}
	sess := s.createLocked()
	snap := sess.Clone()
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session_id", snap.ID))
	s.publish(bus.SessionCreated, bus.Change{SessionID: snap.ID})
	return snap
}

func (s *Store) createLocked() *chat.Session {
	now := s.clock.Now()
	sess := &chat.Session{
		ID:        s.newID(),
		Title:     chat.DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions = append([]*chat.Session{sess}, s.sessions...)
	s.activeID = sess.ID
	return sess
}

// OpenSession makes the session with the given id active.
func (s *Store) OpenSession(id string) (chat.Session, error) {
	s.mu.Lock()
	sess, _ := s.findLocked(id)
	if sess == nil {
		s.mu.Unlock()
		return chat.Session{}, ErrSessionNotFound
	}
	s.activeID = id
	snap := sess.Clone()
	s.mu.Unlock()

	s.publish(bus.SessionOpened, bus.Change{SessionID: id})
	return snap, nil
}

// RenameSession sets a new title. Blank titles and titles equal to the
// current one are ignored.
func (s *Store) RenameSession(id, title string) (chat.Session, error) {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	sess, i := s.findLocked(id)
	if sess == nil {
		s.mu.Unlock()
		return chat.Session{}, ErrSessionNotFound
	}
	if title == "" || title == sess.Title {
		snap := sess.Clone()
		s.mu.Unlock()
		return snap, nil
	}
	sess.Title = title
	sess.UpdatedAt = s.clock.Now()
	s.reorderOnTouch(i)
	snap := sess.Clone()
	s.mu.Unlock()

	s.publish(bus.SessionRenamed, bus.Change{SessionID: id})
	return snap, nil
}

// DeleteSession removes the session. When it was active, the session now at
// the front becomes active, or none if the list is empty. Confirmation is
// the caller's business.
func (s *Store) DeleteSession(id string) error {
	s.mu.Lock()
	sess, i := s.findLocked(id)
	if sess == nil {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.sessions = slices.Delete(s.sessions, i, i+1)
	if s.activeID == id {
		s.activeID = ""
		if len(s.sessions) > 0 {
			s.activeID = s.sessions[0].ID
		}
	}
	s.mu.Unlock()

	s.logger.Debug("session deleted", zap.String("session_id", id), zap.Int("messages", len(sess.Messages)))
	s.publish(bus.SessionDeleted, bus.Change{SessionID: id})
	return nil
}

// SetPinned flags or unflags a session. Pinning does not count as an update
// and leaves the order alone.
func (s *Store) SetPinned(id string, pinned bool) (chat.Session, error) {
	s.mu.Lock()
	sess, _ := s.findLocked(id)
	if sess == nil {
		s.mu.Unlock()
		return chat.Session{}, ErrSessionNotFound
	}
	changed := sess.Pinned != pinned
	sess.Pinned = pinned
	snap := sess.Clone()
	s.mu.Unlock()

	if changed {
		s.publish(bus.SessionPinned, bus.Change{SessionID: id})
	}
	return snap, nil
}

// Package store owns the in-memory list of chat sessions and the active
// session pointer. Every read returns a copy; nothing outside the store
// holds a reference to its state.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/matheus3301/qshare/internal/bus"
	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/clock"
	"github.com/matheus3301/qshare/internal/outbox"
	"go.uber.org/zap"
)

var (
	// ErrEmptyMessage is returned when a draft has neither text nor attachments.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSessionNotFound is returned for unknown or deleted session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrMessageNotFound is returned for unknown message ids.
	ErrMessageNotFound = errors.New("message not found")
	// ErrNotRetryable is returned when retrying a message that has not failed.
	ErrNotRetryable = errors.New("message is not in a failed state")
)

// Store holds the sessions, most recently updated first.
type Store struct {
	mu       sync.Mutex
	sessions []*chat.Session
	activeID string

	clock  clock.Clock
	outbox *outbox.Simulator
	bus    *bus.Bus
	logger *zap.Logger
	newID  func() string
}

// New creates an empty store.
func New(clk clock.Clock, sim *outbox.Simulator, b *bus.Bus, logger *zap.Logger) *Store {
	return &Store{
		clock:  clk,
		outbox: sim,
		bus:    b,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Sessions returns a snapshot of every session, front first.
func (s *Store) Sessions() []chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chat.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Session returns a snapshot of the session with the given id.
func (s *Store) Session(id string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, _ := s.findLocked(id)
	if sess == nil {
		return chat.Session{}, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Active returns the active session, if any.
func (s *Store) Active() (chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, _ := s.findLocked(s.activeID)
	if sess == nil {
		return chat.Session{}, false
	}
	return sess.Clone(), true
}

// ActiveID returns the id of the active session, or "" when none is active.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// findLocked returns the session and its index, or nil and -1.
func (s *Store) findLocked(id string) (*chat.Session, int) {
	if id == "" {
		return nil, -1
	}
	for i, sess := range s.sessions {
		if sess.ID == id {
			return sess, i
		}
	}
	return nil, -1
}

// reorderOnTouch moves the session at index i to the front, keeping the
// relative order of the others.
func (s *Store) reorderOnTouch(i int) {
	if i <= 0 {
		return
	}
	touched := s.sessions[i]
	copy(s.sessions[1:i+1], s.sessions[:i])
	s.sessions[0] = touched
}

func (s *Store) publish(kind string, c bus.Change) {
	s.bus.Publish(bus.Event{Kind: kind, Timestamp: s.clock.Now(), Payload: c})
}

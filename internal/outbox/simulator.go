// Package outbox simulates message delivery: a sent message stays in the
// sending state for a fixed delay and is then reported delivered or failed.
package outbox

import (
	"context"
	"time"

	"github.com/matheus3301/qshare/internal/chat"
	"github.com/matheus3301/qshare/internal/clock"
	"go.uber.org/zap"
)

// DefaultDelay is how long a message stays in the sending state.
const DefaultDelay = 400 * time.Millisecond

// Deliverer decides the outcome of a delivery attempt.
type Deliverer interface {
	Deliver(ctx context.Context, msg chat.Message) error
}

// LocalDeliverer accepts every message. There is no remote end.
type LocalDeliverer struct{}

// Deliver implements Deliverer.
func (LocalDeliverer) Deliver(context.Context, chat.Message) error { return nil }

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, msg chat.Message) error

// Deliver implements Deliverer.
func (f DelivererFunc) Deliver(ctx context.Context, msg chat.Message) error { return f(ctx, msg) }

// Result reports the outcome for one message.
type Result struct {
	SessionID string
	MessageID string
	Err       error
}

// Status is the message status the result maps to.
func (r Result) Status() chat.Status {
	if r.Err != nil {
		return chat.StatusFailed
	}
	return chat.StatusSent
}

// Simulator schedules delivery attempts on a clock.
type Simulator struct {
	clock     clock.Clock
	delay     time.Duration
	deliverer Deliverer
	logger    *zap.Logger
}

// NewSimulator creates a simulator. A nil deliverer means LocalDeliverer.
func NewSimulator(clk clock.Clock, delay time.Duration, d Deliverer, logger *zap.Logger) *Simulator {
	if d == nil {
		d = LocalDeliverer{}
	}
	return &Simulator{
		clock:     clk,
		delay:     delay,
		deliverer: d,
		logger:    logger,
	}
}

// Delay returns the simulated latency.
func (s *Simulator) Delay() time.Duration {
	return s.delay
}

// Dispatch schedules delivery of msg and calls done with the outcome once
// the delay has elapsed. The attempt cannot be cancelled; done must cope with
// the message no longer existing.
func (s *Simulator) Dispatch(sessionID string, msg chat.Message, done func(Result)) {
	msg = msg.Clone()
	s.clock.AfterFunc(s.delay, func() {
		err := s.deliverer.Deliver(context.Background(), msg)
		if err != nil {
			s.logger.Warn("message delivery failed",
				zap.String("session_id", sessionID),
				zap.String("message_id", msg.ID),
				zap.Error(err))
		} else {
			s.logger.Debug("message delivered",
				zap.String("session_id", sessionID),
				zap.String("message_id", msg.ID))
		}
		done(Result{SessionID: sessionID, MessageID: msg.ID, Err: err})
	})
}

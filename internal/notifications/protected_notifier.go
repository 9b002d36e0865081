package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type circuitState string

const (
	stateClosed   circuitState = "closed"
	stateOpen     circuitState = "open"
	stateHalfOpen circuitState = "half_open"
)

type ProtectedNotifierConfig struct {
	Timeout          time.Duration // per notice
	FailureThreshold int           // consecutive failures before opening
	Cooldown         time.Duration // time spent open before a trial notice
	HalfOpenMaxCalls int           // trial notices allowed at once
}

// breaker is the state machine alone; callers hold the lock.
type breaker struct {
	cfg ProtectedNotifierConfig

	state    circuitState
	failures int
	openedAt time.Time
	trials   int
}

// admit reports whether a notice may go out at now.
func (b *breaker) admit(now time.Time) bool {
	switch b.state {
	case stateOpen:
		if now.Sub(b.openedAt) < b.cfg.Cooldown {
			return false
		}
		b.state = stateHalfOpen
		b.trials = 1
		return true
	case stateHalfOpen:
		if b.trials >= b.cfg.HalfOpenMaxCalls {
			return false
		}
		b.trials++
		return true
	default:
		return true
	}
}

// record applies the outcome of an admitted notice and returns the state it
// left and the state it is in now.
func (b *breaker) record(failed bool, now time.Time) (from, to circuitState) {
	from = b.state
	if b.state == stateHalfOpen && b.trials > 0 {
		b.trials--
	}

	switch {
	case !failed:
		b.failures = 0
		b.state = stateClosed
	case b.state == stateHalfOpen:
		b.failures++
		b.state = stateOpen
		b.openedAt = now
	default:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.state = stateOpen
			b.openedAt = now
		}
	}
	return from, b.state
}

// ProtectedNotifier puts a timeout and a circuit breaker in front of another
// Notifier. While the circuit is open booking and cancellation notices are
// dropped, logged by kind and counted.
type ProtectedNotifier struct {
	inner Notifier
	log   *slog.Logger
	now   func() time.Time

	mu         sync.Mutex
	br         breaker
	suppressed map[string]int
}

func NewProtectedNotifier(inner Notifier, cfg ProtectedNotifierConfig, log *slog.Logger) *ProtectedNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}
	if log == nil {
		log = slog.Default()
	}

	return &ProtectedNotifier{
		inner:      inner,
		log:        log,
		now:        time.Now,
		br:         breaker{cfg: cfg, state: stateClosed},
		suppressed: map[string]int{},
	}
}

// State reports the breaker position: closed, open or half_open.
func (n *ProtectedNotifier) State() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return string(n.br.state)
}

// Suppressed returns how many notices of kind were dropped while open.
func (n *ProtectedNotifier) Suppressed(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.suppressed[kind]
}

func (n *ProtectedNotifier) SendBookingConfirmation(ctx context.Context, in BookingConfirmationInput) error {
	kind := in.Kind()

	n.mu.Lock()
	ok := n.br.admit(n.now())
	if !ok {
		n.suppressed[kind]++
	}
	n.mu.Unlock()

	if !ok {
		n.log.WarnContext(ctx, "notification suppressed",
			"kind", kind,
			"event_id", in.EventID,
			"attendee_id", in.AttendeeID,
		)
		return fmt.Errorf("%w: %s notice for %s/%s dropped", ErrCircuitOpen, kind, in.EventID, in.AttendeeID)
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.br.cfg.Timeout)
	defer cancel()

	err := n.inner.SendBookingConfirmation(sendCtx, in)

	n.mu.Lock()
	from, to := n.br.record(err != nil, n.now())
	n.mu.Unlock()

	if from != to {
		n.log.InfoContext(ctx, "notifier circuit "+string(to),
			"from", string(from),
			"kind", kind,
			"event_id", in.EventID,
		)
	}

	return err
}

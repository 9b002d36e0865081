package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type scriptedNotifier struct {
	calls int
	err   error
}

func (s *scriptedNotifier) SendBookingConfirmation(ctx context.Context, in BookingConfirmationInput) error {
	s.calls++
	return s.err
}

func TestProtectedNotifier_OpensAfterThreshold(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("smtp down")}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{FailureThreshold: 2, Cooldown: time.Minute}, quietLog)
	n.now = func() time.Time { return now }

	ctx := context.Background()
	in := BookingConfirmationInput{AttendeeID: "ATT0001", EventID: "EVT0001"}

	_ = n.SendBookingConfirmation(ctx, in)
	_ = n.SendBookingConfirmation(ctx, in)
	if n.State() != "open" {
		t.Fatalf("state = %s, want open", n.State())
	}

	if err := n.SendBookingConfirmation(ctx, in); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("open circuit must not reach inner notifier, calls=%d", inner.calls)
	}

	// after cooldown one trial call goes through and closes the circuit on success
	now = now.Add(2 * time.Minute)
	inner.err = nil

	if err := n.SendBookingConfirmation(ctx, in); err != nil {
		t.Fatalf("trial call: %v", err)
	}
	if n.State() != "closed" {
		t.Fatalf("state = %s, want closed", n.State())
	}
}

func TestProtectedNotifier_HalfOpenFailureReopens(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("smtp down")}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{FailureThreshold: 1, Cooldown: time.Second}, quietLog)
	n.now = func() time.Time { return now }
	ctx := context.Background()

	_ = n.SendBookingConfirmation(ctx, BookingConfirmationInput{})
	now = now.Add(2 * time.Second)
	_ = n.SendBookingConfirmation(ctx, BookingConfirmationInput{})

	if n.State() != "open" {
		t.Fatalf("state = %s, want open", n.State())
	}
	if inner.calls != 2 {
		t.Fatalf("calls = %d, want 2", inner.calls)
	}
}

func TestProtectedNotifier_LogsSuppressedNoticesByKind(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("smtp down")}
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{FailureThreshold: 1, Cooldown: time.Hour}, log)
	ctx := context.Background()

	booking := BookingConfirmationInput{AttendeeID: "ATT0001", EventID: "EVT0001"}
	cancellation := BookingConfirmationInput{AttendeeID: "ATT0002", EventID: "EVT0001", Cancelled: true}

	_ = n.SendBookingConfirmation(ctx, booking)
	if n.State() != "open" {
		t.Fatalf("state = %s, want open", n.State())
	}

	buf.Reset()
	err := n.SendBookingConfirmation(ctx, cancellation)
	if !errors.Is(err, ErrCircuitOpen) || !strings.Contains(err.Error(), "cancellation notice for EVT0001/ATT0002") {
		t.Fatalf("unexpected error %v", err)
	}
	_ = n.SendBookingConfirmation(ctx, booking)
	_ = n.SendBookingConfirmation(ctx, booking)

	if got := n.Suppressed(KindBooking); got != 2 {
		t.Fatalf("suppressed bookings = %d, want 2", got)
	}
	if got := n.Suppressed(KindCancellation); got != 1 {
		t.Fatalf("suppressed cancellations = %d, want 1", got)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}

	first, _, _ := strings.Cut(buf.String(), "\n")
	var rec map[string]any
	if err := json.Unmarshal([]byte(first), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if rec["msg"] != "notification suppressed" || rec["kind"] != KindCancellation || rec["attendee_id"] != "ATT0002" {
		t.Fatalf("unexpected log record %v", rec)
	}
}

func TestBookingConfirmationInput_Kind(t *testing.T) {
	if got := (BookingConfirmationInput{}).Kind(); got != KindBooking {
		t.Fatalf("Kind = %s", got)
	}
	if got := (BookingConfirmationInput{Cancelled: true}).Kind(); got != KindCancellation {
		t.Fatalf("Kind = %s", got)
	}
}

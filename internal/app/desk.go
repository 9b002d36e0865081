// Package app wires the registry to persistence, notifications and
// telemetry. Desk is the one object entrypoints hand to their front ends.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/geocoder89/eventdesk/internal/notifications"
	"github.com/geocoder89/eventdesk/internal/observability"
	"github.com/geocoder89/eventdesk/internal/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/geocoder89/eventdesk/internal/app"

// Saver persists a registry; *persistence.Adapter satisfies it.
type Saver interface {
	Save(ctx context.Context, reg *registry.Registry) error
}

type Deps struct {
	Log      *slog.Logger
	Saver    Saver
	Notifier notifications.Notifier
	Prom     *observability.Prom
}

// Desk serialises every registry call behind one mutex. The registry itself
// stays single-owner; the lock only exists because HTTP handlers run concurrently.
type Desk struct {
	mu    sync.Mutex
	reg   *registry.Registry
	dirty bool

	log      *slog.Logger
	saver    Saver
	notifier notifications.Notifier
	prom     *observability.Prom
	tracer   trace.Tracer

	// invoked after every successful mutation, outside the lock
	onChange func()
}

func NewDesk(reg *registry.Registry, deps Deps) *Desk {
	if reg == nil {
		reg = registry.New()
	}
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	d := &Desk{
		reg:      reg,
		log:      log,
		saver:    deps.Saver,
		notifier: deps.Notifier,
		prom:     deps.Prom,
		tracer:   otel.Tracer(tracerName),
	}
	d.refreshGauges()
	return d
}

// OnChange registers fn to run after each successful mutation.
func (d *Desk) OnChange(fn func()) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

func (d *Desk) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, "desk."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (d *Desk) changed() {
	d.mu.Lock()
	d.dirty = true
	fn := d.onChange
	d.refreshGaugesLocked()
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (d *Desk) refreshGauges() {
	d.mu.Lock()
	d.refreshGaugesLocked()
	d.mu.Unlock()
}

func (d *Desk) refreshGaugesLocked() {
	if d.prom == nil {
		return
	}
	events, attendees := d.reg.Len()
	d.prom.RecordsTotal.WithLabelValues("event").Set(float64(events))
	d.prom.RecordsTotal.WithLabelValues("attendee").Set(float64(attendees))
}

func (d *Desk) CreateEvent(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	ctx, span := d.start(ctx, "create_event")

	d.mu.Lock()
	e, err := d.reg.CreateEvent(req)
	d.mu.Unlock()
	endSpan(span, err)

	if err != nil {
		return event.Event{}, err
	}

	d.changed()
	d.log.InfoContext(ctx, "event created", "event_id", e.ID, "title", e.Title, "capacity", e.Capacity)
	return e, nil
}

func (d *Desk) RegisterAttendee(ctx context.Context, req attendee.RegisterAttendeeRequest) (attendee.Attendee, error) {
	ctx, span := d.start(ctx, "register_attendee")

	d.mu.Lock()
	a, err := d.reg.RegisterAttendee(req)
	d.mu.Unlock()
	endSpan(span, err)

	if err != nil {
		return attendee.Attendee{}, err
	}

	d.changed()
	d.log.InfoContext(ctx, "attendee registered", "attendee_id", a.ID)
	return a, nil
}

func (d *Desk) BookEvent(ctx context.Context, eventID, attendeeID string) (registry.BookingResult, error) {
	ctx, span := d.start(ctx, "book_event",
		attribute.String("event.id", eventID),
		attribute.String("attendee.id", attendeeID),
	)

	d.mu.Lock()
	res, err := d.reg.BookEvent(eventID, attendeeID)
	d.mu.Unlock()
	endSpan(span, err)

	d.countBooking("book", err)
	if err != nil {
		d.logFailure(ctx, "booking rejected", err, "event_id", eventID, "attendee_id", attendeeID)
		return registry.BookingResult{}, err
	}

	d.changed()
	d.log.InfoContext(ctx, "booking created", "event_id", res.EventID, "attendee_id", res.AttendeeID, "available_seats", res.AvailableSeats)
	d.notify(ctx, res, false)
	return res, nil
}

func (d *Desk) CancelBooking(ctx context.Context, eventID, attendeeID string) (registry.BookingResult, error) {
	ctx, span := d.start(ctx, "cancel_booking",
		attribute.String("event.id", eventID),
		attribute.String("attendee.id", attendeeID),
	)

	d.mu.Lock()
	res, err := d.reg.CancelBooking(eventID, attendeeID)
	d.mu.Unlock()
	endSpan(span, err)

	d.countBooking("cancel", err)
	if err != nil {
		d.logFailure(ctx, "cancellation rejected", err, "event_id", eventID, "attendee_id", attendeeID)
		return registry.BookingResult{}, err
	}

	d.changed()
	d.log.InfoContext(ctx, "booking cancelled", "event_id", res.EventID, "attendee_id", res.AttendeeID, "available_seats", res.AvailableSeats)
	d.notify(ctx, res, true)
	return res, nil
}

func (d *Desk) notify(ctx context.Context, res registry.BookingResult, cancelled bool) {
	if d.notifier == nil {
		return
	}

	err := d.notifier.SendBookingConfirmation(ctx, notifications.BookingConfirmationInput{
		Email:      res.AttendeeEmail,
		Name:       res.AttendeeName,
		AttendeeID: res.AttendeeID,
		EventID:    res.EventID,
		EventTitle: res.EventTitle,
		Cancelled:  cancelled,
	})
	if err != nil {
		if d.prom != nil {
			d.prom.NotifierErrors.Inc()
		}
		d.log.WarnContext(ctx, "confirmation not delivered", "event_id", res.EventID, "attendee_id", res.AttendeeID, "err", err)
	}
}

func (d *Desk) countBooking(op string, err error) {
	if d.prom == nil {
		return
	}
	d.prom.BookingsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, registry.ErrNotFound):
		return "not_found"
	case errors.Is(err, registry.ErrCapacity):
		return "full"
	case errors.Is(err, registry.ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, registry.ErrNotBooked):
		return "not_booked"
	case errors.Is(err, registry.ErrConsistency):
		return "consistency"
	default:
		return "error"
	}
}

// logFailure logs user errors at info and invariant breaks at error.
func (d *Desk) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "err", err)
	if errors.Is(err, registry.ErrConsistency) {
		d.log.ErrorContext(ctx, msg, args...)
		return
	}
	d.log.InfoContext(ctx, msg, args...)
}

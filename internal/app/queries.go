package app

import (
	"context"
	"errors"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/geocoder89/eventdesk/internal/registry"
	"go.opentelemetry.io/otel/attribute"
)

func (d *Desk) Event(ctx context.Context, id string) (event.Event, error) {
	_, span := d.start(ctx, "get_event", attribute.String("event.id", id))

	d.mu.Lock()
	e, err := d.reg.Event(id)
	d.mu.Unlock()

	endSpan(span, err)
	return e, err
}

func (d *Desk) Attendee(ctx context.Context, id string) (attendee.Attendee, []event.Event, error) {
	_, span := d.start(ctx, "get_attendee", attribute.String("attendee.id", id))

	d.mu.Lock()
	a, err := d.reg.Attendee(id)
	var events []event.Event
	if err == nil {
		events, err = d.reg.AttendeeEvents(id)
	}
	d.mu.Unlock()

	endSpan(span, err)
	return a, events, err
}

func (d *Desk) Events(ctx context.Context) []event.Event {
	_, span := d.start(ctx, "list_events")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.Events()
}

func (d *Desk) FindEvents(ctx context.Context, keyword string) []event.Event {
	_, span := d.start(ctx, "find_events", attribute.String("keyword", keyword))

	d.mu.Lock()
	out := d.reg.FindEvents(keyword)
	d.mu.Unlock()

	span.SetAttributes(attribute.Int("results", len(out)))
	span.End()
	return out
}

func (d *Desk) GenerateReport(ctx context.Context, eventID string) (registry.Report, error) {
	ctx, span := d.start(ctx, "generate_report", attribute.String("event.id", eventID))

	d.mu.Lock()
	rep, err := d.reg.GenerateReport(eventID)
	d.mu.Unlock()

	endSpan(span, err)
	if errors.Is(err, registry.ErrConsistency) {
		d.log.ErrorContext(ctx, "report hit a broken invariant", "event_id", eventID, "err", err)
	}
	return rep, err
}

// Seed adds the sample events. Only meant for a registry that was not loaded.
func (d *Desk) Seed(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	ids, err := registry.Seed(d.reg)
	d.mu.Unlock()

	if len(ids) > 0 {
		d.changed()
	}
	if err != nil {
		return ids, err
	}

	d.log.InfoContext(ctx, "sample events added", "count", len(ids))
	return ids, nil
}

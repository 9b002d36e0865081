package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/eventdesk/internal/app"
	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/geocoder89/eventdesk/internal/persistence"
	"github.com/geocoder89/eventdesk/internal/registry"
)

// describe turns a desk error into the one-line text shown after "✗ Error: ".
func describe(err error) string {
	var verr *registry.ValidationError
	switch {
	case errors.As(err, &verr):
		parts := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		return "Invalid input: " + strings.Join(parts, "; ")
	case errors.Is(err, event.ErrNotFound):
		return "Event not found!"
	case errors.Is(err, attendee.ErrNotFound):
		return "Attendee not found!"
	case errors.Is(err, persistence.ErrNoSnapshot):
		return "No saved data found."
	case errors.Is(err, persistence.ErrCorruptData):
		return "Saved data is corrupt: " + err.Error()
	case errors.Is(err, app.ErrNoSaver):
		return "Persistence is not configured."
	case errors.Is(err, registry.ErrConsistency):
		return "Internal inconsistency: " + err.Error()
	default:
		return err.Error()
	}
}

// describeBooking adds the event title to capacity and booking errors.
func (s *Shell) describeBooking(ctx context.Context, eventID string, err error) string {
	title := strings.TrimSpace(eventID)
	if e, lookupErr := s.desk.Event(ctx, eventID); lookupErr == nil {
		title = e.Title
	}

	switch {
	case errors.Is(err, registry.ErrCapacity):
		return "Event '" + title + "' is fully booked!"
	case errors.Is(err, registry.ErrDuplicateBooking):
		return "Already registered for '" + title + "'!"
	case errors.Is(err, registry.ErrNotBooked):
		return "No booking found for '" + title + "'!"
	default:
		return describe(err)
	}
}

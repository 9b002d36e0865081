package registry

import (
	"strings"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
)

type ReportAttendee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Report struct {
	Event          event.Event      `json:"event"`
	Capacity       int              `json:"capacity"`
	Occupied       int              `json:"occupied"`
	AvailableSeats int              `json:"availableSeats"`
	OccupancyRate  float64          `json:"occupancyRate"` // occupied/capacity, 0..1
	Attendees      []ReportAttendee `json:"attendees"`
}

func (r *Registry) Event(id string) (event.Event, error) {
	e, ok := r.events[strings.TrimSpace(id)]
	if !ok {
		return event.Event{}, notFound(event.ErrNotFound, id)
	}
	return e.Clone(), nil
}

func (r *Registry) Attendee(id string) (attendee.Attendee, error) {
	a, ok := r.attendees[strings.TrimSpace(id)]
	if !ok {
		return attendee.Attendee{}, notFound(attendee.ErrNotFound, id)
	}
	return a.Clone(), nil
}

// Events returns every event in creation order.
func (r *Registry) Events() []event.Event {
	out := make([]event.Event, 0, len(r.eventOrder))
	for _, id := range r.eventOrder {
		out = append(out, r.events[id].Clone())
	}
	return out
}

func (r *Registry) Attendees() []attendee.Attendee {
	out := make([]attendee.Attendee, 0, len(r.attendeeOrder))
	for _, id := range r.attendeeOrder {
		out = append(out, r.attendees[id].Clone())
	}
	return out
}

// AttendeeEvents resolves the events an attendee is booked on, in booking order.
func (r *Registry) AttendeeEvents(attendeeID string) ([]event.Event, error) {
	a, ok := r.attendees[strings.TrimSpace(attendeeID)]
	if !ok {
		return nil, notFound(attendee.ErrNotFound, attendeeID)
	}

	out := make([]event.Event, 0, len(a.RegisteredEventIDs))
	for _, id := range a.RegisteredEventIDs {
		e, ok := r.events[id]
		if !ok {
			return nil, consistency("attendee %s references missing event %s", a.ID, id)
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

// FindEvents matches keyword case-insensitively against title, description
// and category. No match is an empty slice, not an error.
func (r *Registry) FindEvents(keyword string) []event.Event {
	k := strings.ToLower(strings.TrimSpace(keyword))

	out := make([]event.Event, 0)
	for _, id := range r.eventOrder {
		e := r.events[id]
		if k == "" ||
			strings.Contains(strings.ToLower(e.Title), k) ||
			strings.Contains(strings.ToLower(e.Description), k) ||
			strings.Contains(strings.ToLower(e.Category), k) {
			out = append(out, e.Clone())
		}
	}
	return out
}

func (r *Registry) GenerateReport(eventID string) (Report, error) {
	e, ok := r.events[strings.TrimSpace(eventID)]
	if !ok {
		return Report{}, notFound(event.ErrNotFound, eventID)
	}

	attendees := make([]ReportAttendee, 0, len(e.RegisteredAttendeeIDs))
	for _, id := range e.RegisteredAttendeeIDs {
		a, ok := r.attendees[id]
		if !ok {
			return Report{}, consistency("event %s references missing attendee %s", e.ID, id)
		}
		attendees = append(attendees, ReportAttendee{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone})
	}

	rate := 0.0
	if e.Capacity > 0 {
		rate = float64(e.Occupied()) / float64(e.Capacity)
	}

	return Report{
		Event:          e.Clone(),
		Capacity:       e.Capacity,
		Occupied:       e.Occupied(),
		AvailableSeats: e.AvailableSeats(),
		OccupancyRate:  rate,
		Attendees:      attendees,
	}, nil
}

// Len reports how many events and attendees the registry holds.
func (r *Registry) Len() (events, attendees int) {
	return len(r.events), len(r.attendees)
}

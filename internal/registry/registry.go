// Package registry owns every event and attendee record and is the only
// place bookings are created or removed. A Registry is not safe for
// concurrent use; callers that share one must serialise access.
package registry

import (
	"strings"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/go-playground/validator/v10"
)

type Registry struct {
	events    map[string]*event.Event
	attendees map[string]*attendee.Attendee

	// creation order, since map iteration is random
	eventOrder    []string
	attendeeOrder []string

	// ids handed out so far; never decremented
	eventCounter    int
	attendeeCounter int

	validator *validator.Validate
}

func New() *Registry {
	return &Registry{
		events:    make(map[string]*event.Event),
		attendees: make(map[string]*attendee.Attendee),
		validator: newValidator(),
	}
}

type BookingResult struct {
	EventID        string `json:"eventId"`
	EventTitle     string `json:"eventTitle"`
	AttendeeID     string `json:"attendeeId"`
	AttendeeName   string `json:"attendeeName"`
	AttendeeEmail  string `json:"attendeeEmail"`
	AvailableSeats int    `json:"availableSeats"`
}

func (r *Registry) CreateEvent(req event.CreateEventRequest) (event.Event, error) {
	if err := r.validate(req); err != nil {
		return event.Event{}, err
	}

	id := event.FormatID(r.eventCounter + 1)
	if _, taken := r.events[id]; taken {
		return event.Event{}, consistency("event id %s already assigned", id)
	}

	e := event.NewFromCreateRequest(id, req)
	r.eventCounter++
	r.events[id] = &e
	r.eventOrder = append(r.eventOrder, id)

	return e.Clone(), nil
}

func (r *Registry) RegisterAttendee(req attendee.RegisterAttendeeRequest) (attendee.Attendee, error) {
	if err := r.validate(req); err != nil {
		return attendee.Attendee{}, err
	}

	id := attendee.FormatID(r.attendeeCounter + 1)
	if _, taken := r.attendees[id]; taken {
		return attendee.Attendee{}, consistency("attendee id %s already assigned", id)
	}

	a := attendee.NewFromRegisterRequest(id, req)
	r.attendeeCounter++
	r.attendees[id] = &a
	r.attendeeOrder = append(r.attendeeOrder, id)

	return a.Clone(), nil
}

// BookEvent links the attendee and the event in both directions. Every
// check runs before the first write, so a failed booking leaves no trace.
func (r *Registry) BookEvent(eventID, attendeeID string) (BookingResult, error) {
	e, a, err := r.lookupPair(eventID, attendeeID)
	if err != nil {
		return BookingResult{}, err
	}

	if e.IsFull() {
		return BookingResult{}, ErrCapacity
	}

	onEvent, onAttendee := e.HasAttendee(a.ID), a.HasEvent(e.ID)
	switch {
	case onEvent && onAttendee:
		return BookingResult{}, ErrDuplicateBooking
	case onEvent != onAttendee:
		return BookingResult{}, consistency("half-linked booking %s/%s", e.ID, a.ID)
	}

	e.RegisteredAttendeeIDs = append(e.RegisteredAttendeeIDs, a.ID)
	a.RegisteredEventIDs = append(a.RegisteredEventIDs, e.ID)

	return bookingResult(e, a), nil
}

// CancelBooking is the inverse of BookEvent: both links go, or neither.
func (r *Registry) CancelBooking(eventID, attendeeID string) (BookingResult, error) {
	e, a, err := r.lookupPair(eventID, attendeeID)
	if err != nil {
		return BookingResult{}, err
	}

	onEvent, onAttendee := e.HasAttendee(a.ID), a.HasEvent(e.ID)
	switch {
	case !onEvent && !onAttendee:
		return BookingResult{}, ErrNotBooked
	case onEvent != onAttendee:
		return BookingResult{}, consistency("half-linked booking %s/%s", e.ID, a.ID)
	}

	e.RegisteredAttendeeIDs = without(e.RegisteredAttendeeIDs, a.ID)
	a.RegisteredEventIDs = without(a.RegisteredEventIDs, e.ID)

	return bookingResult(e, a), nil
}

func (r *Registry) lookupPair(eventID, attendeeID string) (*event.Event, *attendee.Attendee, error) {
	e, ok := r.events[strings.TrimSpace(eventID)]
	if !ok {
		return nil, nil, notFound(event.ErrNotFound, eventID)
	}
	a, ok := r.attendees[strings.TrimSpace(attendeeID)]
	if !ok {
		return nil, nil, notFound(attendee.ErrNotFound, attendeeID)
	}
	return e, a, nil
}

func bookingResult(e *event.Event, a *attendee.Attendee) BookingResult {
	return BookingResult{
		EventID:        e.ID,
		EventTitle:     e.Title,
		AttendeeID:     a.ID,
		AttendeeName:   a.Name,
		AttendeeEmail:  a.Email,
		AvailableSeats: e.AvailableSeats(),
	}
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// NextEventID is the id the next CreateEvent call will assign.
func (r *Registry) NextEventID() string {
	return event.FormatID(r.eventCounter + 1)
}

func (r *Registry) NextAttendeeID() string {
	return attendee.FormatID(r.attendeeCounter + 1)
}

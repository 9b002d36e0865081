package event

import (
	"errors"
	"fmt"
)

// Event is a scheduled happening with a fixed number of seats.
// RegisteredAttendeeIDs keeps booking order.
type Event struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Date                  string   `json:"date"`
	Time                  string   `json:"time"`
	Venue                 string   `json:"venue"`
	Capacity              int      `json:"capacity"`
	Category              string   `json:"category"`
	RegisteredAttendeeIDs []string `json:"registeredAttendeeIds"`
}

// IDPrefix tags every event id, e.g. EVT0001.
const IDPrefix = "EVT"

var ErrNotFound = errors.New("event not found")

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,nonblank"`
	Description string `json:"description" validate:"required,nonblank"`
	Date        string `json:"date" validate:"required,nonblank"`
	Time        string `json:"time" validate:"required,nonblank"`
	Venue       string `json:"venue" validate:"required,nonblank"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Category    string `json:"category" validate:"required,nonblank"`
}

func (e Event) Occupied() int {
	return len(e.RegisteredAttendeeIDs)
}

func (e Event) AvailableSeats() int {
	return e.Capacity - e.Occupied()
}

func (e Event) IsFull() bool {
	return e.AvailableSeats() <= 0
}

// HasAttendee reports whether attendeeID is already booked on the event.
func (e Event) HasAttendee(attendeeID string) bool {
	for _, id := range e.RegisteredAttendeeIDs {
		if id == attendeeID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't reach the registry's slice.
func (e Event) Clone() Event {
	out := e
	out.RegisteredAttendeeIDs = make([]string, len(e.RegisteredAttendeeIDs))
	copy(out.RegisteredAttendeeIDs, e.RegisteredAttendeeIDs)
	return out
}

// FormatID renders the n-th event id.
func FormatID(n int) string {
	return fmt.Sprintf("%s%04d", IDPrefix, n)
}

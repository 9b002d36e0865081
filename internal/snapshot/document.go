// Package snapshot defines the persisted registry document and its codec.
// Records reference each other by id only, never by nesting.
package snapshot

type EventRecord struct {
	Title                 string   `json:"title" validate:"required"`
	Description           string   `json:"description" validate:"required"`
	Date                  string   `json:"date" validate:"required"`
	Time                  string   `json:"time" validate:"required"`
	Venue                 string   `json:"venue" validate:"required"`
	Capacity              *int     `json:"capacity" validate:"required,min=1"`
	Category              string   `json:"category" validate:"required"`
	RegisteredAttendeeIDs []string `json:"registered_attendee_ids"`
}

type AttendeeRecord struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required"`
	Phone              string   `json:"phone" validate:"required"`
	RegisteredEventIDs []string `json:"registered_event_ids"`
}

type Document struct {
	Events          map[string]EventRecord    `json:"events" validate:"required,dive,keys,startswith=EVT,endkeys"`
	Attendees       map[string]AttendeeRecord `json:"attendees" validate:"required,dive,keys,startswith=ATT,endkeys"`
	EventCounter    *int                      `json:"event_counter" validate:"required,min=0"`
	AttendeeCounter *int                      `json:"attendee_counter" validate:"required,min=0"`
}

// Empty returns a document with no records and both counters at zero.
func Empty() Document {
	return Document{
		Events:          map[string]EventRecord{},
		Attendees:       map[string]AttendeeRecord{},
		EventCounter:    IntPtr(0),
		AttendeeCounter: IntPtr(0),
	}
}

func IntPtr(n int) *int { return &n }

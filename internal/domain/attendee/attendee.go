package attendee

import (
	"errors"
	"fmt"
	"strings"
)

// Attendee is a person who can book seats. RegisteredEventIDs keeps booking order.
type Attendee struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	RegisteredEventIDs []string `json:"registeredEventIds"`
}

const IDPrefix = "ATT"

var ErrNotFound = errors.New("attendee not found")

type RegisterAttendeeRequest struct {
	Name  string `json:"name" validate:"required,nonblank"`
	Email string `json:"email" validate:"required,contact_email"`
	Phone string `json:"phone" validate:"required,phone"`
}

// A factory to build an Attendee from the incoming DTO
func NewFromRegisterRequest(id string, req RegisterAttendeeRequest) Attendee {
	return Attendee{
		ID:                 id,
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		Phone:              strings.TrimSpace(req.Phone),
		RegisteredEventIDs: []string{},
	}
}

func (a Attendee) HasEvent(eventID string) bool {
	for _, id := range a.RegisteredEventIDs {
		if id == eventID {
			return true
		}
	}
	return false
}

func (a Attendee) Clone() Attendee {
	out := a
	out.RegisteredEventIDs = make([]string, len(a.RegisteredEventIDs))
	copy(out.RegisteredEventIDs, a.RegisteredEventIDs)
	return out
}

func FormatID(n int) string {
	return fmt.Sprintf("%s%04d", IDPrefix, n)
}

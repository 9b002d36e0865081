package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrCapacity         = errors.New("event is full")
	ErrDuplicateBooking = errors.New("attendee already booked for event")
	ErrNotBooked        = errors.New("attendee is not booked for event")
	// ErrConsistency marks a broken internal invariant. It is a defect, never user input.
	ErrConsistency = errors.New("registry consistency violated")
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError names the missing id. It matches both ErrNotFound and the
// record-specific sentinel (event.ErrNotFound or attendee.ErrNotFound).
type NotFoundError struct {
	Kind error
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.Kind}
}

func notFound(kind error, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func consistency(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}

package notifications

import "context"

// Notice kinds, also used as log and metric labels.
const (
	KindBooking      = "booking"
	KindCancellation = "cancellation"
)

type BookingConfirmationInput struct {
	Email      string
	Name       string
	AttendeeID string
	EventID    string
	EventTitle string
	Cancelled  bool
}

// Kind says whether the notice confirms a booking or its cancellation.
func (in BookingConfirmationInput) Kind() string {
	if in.Cancelled {
		return KindCancellation
	}
	return KindBooking
}

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, input BookingConfirmationInput) error
}

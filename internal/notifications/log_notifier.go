package notifications

import (
	"context"
	"log/slog"
)

// LogNotifier "delivers" confirmations by logging them.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendBookingConfirmation(ctx context.Context, in BookingConfirmationInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.log.InfoContext(ctx, "notification."+in.Kind()+"_confirmation",
		"email", in.Email,
		"name", in.Name,
		"attendee_id", in.AttendeeID,
		"event_id", in.EventID,
		"event_title", in.EventTitle,
	)
	return nil
}

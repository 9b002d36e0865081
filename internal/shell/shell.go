// Package shell is the numbered-menu front end over app.Desk.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/geocoder89/eventdesk/internal/actorctx"
	"github.com/geocoder89/eventdesk/internal/app"
	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/geocoder89/eventdesk/internal/registry"
	"github.com/google/uuid"
)

const (
	wide   = 80
	narrow = 60
)

// Loader reads the last saved registry; *persistence.Adapter.Load satisfies it.
type Loader func(ctx context.Context) (*registry.Registry, error)

type Options struct {
	Load Loader
	// Location names where data lives, only used in messages.
	Location string
	Log      *slog.Logger
}

type Shell struct {
	desk *app.Desk
	opts Options
	in   *bufio.Scanner
	out  io.Writer

	ok   *color.Color
	fail *color.Color
	head *color.Color

	session string
}

func New(desk *app.Desk, in io.Reader, out io.Writer, opts Options) *Shell {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Shell{
		desk:    desk,
		opts:    opts,
		in:      bufio.NewScanner(in),
		out:     out,
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		head:    color.New(color.Bold),
		session: uuid.NewString(),
	}
}

// Run loops over the menu until the user picks 0 or input ends. Both paths
// save before returning.
func (s *Shell) Run(ctx context.Context) error {
	ctx = actorctx.WithActor(ctx, "shell:"+s.session)
	s.opts.Log.InfoContext(ctx, "shell session started")
	defer s.opts.Log.InfoContext(ctx, "shell session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.menu()
		choice, ok := s.prompt("\nEnter your choice: ")
		if !ok {
			s.saveOnExit(ctx)
			return s.in.Err()
		}

		switch choice {
		case "1":
			s.createEvent(ctx)
		case "2":
			s.registerAttendee(ctx)
		case "3":
			s.book(ctx)
		case "4":
			s.cancel(ctx)
		case "5":
			s.showEvent(ctx)
		case "6":
			s.showAttendee(ctx)
		case "7":
			s.listEvents(ctx)
		case "8":
			s.search(ctx)
		case "9":
			s.report(ctx)
		case "10":
			s.save(ctx)
		case "11":
			s.load(ctx)
		case "0":
			s.saveOnExit(ctx)
			s.printf("\nThank you for using Event Management System!\n")
			return nil
		default:
			s.failf("\n✗ Invalid choice! Please try again.")
		}
	}
}

func (s *Shell) menu() {
	s.printf("\n%s\n", rule("=", narrow))
	s.head.Fprintln(s.out, "EVENT MANAGEMENT SYSTEM")
	s.printf("%s\n", rule("=", narrow))
	for _, line := range []string{
		"1. Create Event",
		"2. Register Attendee",
		"3. Book Event",
		"4. Cancel Booking",
		"5. View Event Details",
		"6. View Attendee Details",
		"7. List All Events",
		"8. Search Events",
		"9. Generate Event Report",
		"10. Save Data",
		"11. Load Data",
		"0. Exit",
	} {
		s.printf("%s\n", line)
	}
	s.printf("%s\n", rule("=", narrow))
}

func (s *Shell) createEvent(ctx context.Context) {
	s.printf("\n--- Create Event ---\n")

	var req event.CreateEventRequest
	req.Title, _ = s.prompt("Title: ")
	req.Description, _ = s.prompt("Description: ")
	req.Date, _ = s.prompt("Date (YYYY-MM-DD): ")
	req.Time, _ = s.prompt("Time: ")
	req.Venue, _ = s.prompt("Venue: ")
	rawCap, _ := s.prompt("Capacity: ")
	req.Category, _ = s.prompt("Category: ")

	capacity, err := strconv.Atoi(rawCap)
	if err != nil {
		s.failf("✗ Error: Capacity must be a whole number!")
		return
	}
	req.Capacity = capacity

	e, err := s.desk.CreateEvent(ctx, req)
	if err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}
	s.okf("✓ Event created successfully! Event ID: %s", e.ID)
}

func (s *Shell) registerAttendee(ctx context.Context) {
	s.printf("\n--- Register Attendee ---\n")

	var req attendee.RegisterAttendeeRequest
	req.Name, _ = s.prompt("Name: ")
	req.Email, _ = s.prompt("Email: ")
	req.Phone, _ = s.prompt("Phone: ")

	a, err := s.desk.RegisterAttendee(ctx, req)
	if err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}
	s.okf("✓ Attendee registered successfully! Attendee ID: %s", a.ID)
}

func (s *Shell) book(ctx context.Context) {
	s.printf("\n--- Book Event ---\n")
	attendeeID, _ := s.prompt("Attendee ID: ")
	eventID, _ := s.prompt("Event ID: ")

	res, err := s.desk.BookEvent(ctx, eventID, attendeeID)
	if err != nil {
		s.failf("✗ Error: %s", s.describeBooking(ctx, eventID, err))
		return
	}
	s.okf("✓ Successfully booked '%s' for %s", res.EventTitle, res.AttendeeName)
}

func (s *Shell) cancel(ctx context.Context) {
	s.printf("\n--- Cancel Booking ---\n")
	attendeeID, _ := s.prompt("Attendee ID: ")
	eventID, _ := s.prompt("Event ID: ")

	res, err := s.desk.CancelBooking(ctx, eventID, attendeeID)
	if err != nil {
		s.failf("✗ Error: %s", s.describeBooking(ctx, eventID, err))
		return
	}
	s.okf("✓ Booking cancelled for '%s'", res.EventTitle)
}

func (s *Shell) showEvent(ctx context.Context) {
	id, _ := s.prompt("\nEnter Event ID: ")

	e, err := s.desk.Event(ctx, id)
	if err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}

	s.printf("\n%s\n", rule("=", narrow))
	s.head.Fprintf(s.out, "Event: %s\n", e.Title)
	s.printf("%s\n", rule("=", narrow))
	s.printf("ID: %s\n", e.ID)
	s.printf("Description: %s\n", e.Description)
	s.printf("Date: %s\n", e.Date)
	s.printf("Time: %s\n", e.Time)
	s.printf("Venue: %s\n", e.Venue)
	s.printf("Category: %s\n", e.Category)
	s.printf("Capacity: %d\n", e.Capacity)
	s.printf("Registered: %d\n", e.Occupied())
	s.printf("Available Seats: %d\n", e.AvailableSeats())
	s.printf("%s\n\n", rule("=", narrow))
}

func (s *Shell) showAttendee(ctx context.Context) {
	id, _ := s.prompt("\nEnter Attendee ID: ")

	a, events, err := s.desk.Attendee(ctx, id)
	if err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}

	s.printf("\n%s\n", rule("=", narrow))
	s.head.Fprintf(s.out, "Attendee: %s\n", a.Name)
	s.printf("%s\n", rule("=", narrow))
	s.printf("ID: %s\n", a.ID)
	s.printf("Email: %s\n", a.Email)
	s.printf("Phone: %s\n", a.Phone)
	s.printf("Registered Events: %d\n", len(events))
	if len(events) > 0 {
		s.printf("\nEvents:\n")
		for _, e := range events {
			s.printf("  - %s (%s)\n", e.Title, e.ID)
		}
	}
	s.printf("%s\n\n", rule("=", narrow))
}

func (s *Shell) listEvents(ctx context.Context) {
	events := s.desk.Events(ctx)
	if len(events) == 0 {
		s.printf("No events available.\n")
		return
	}

	s.printf("\n%s\n", rule("=", wide))
	s.printf("%-10s %-25s %-12s %-20s %-10s\n", "ID", "Title", "Date", "Venue", "Available")
	s.printf("%s\n", rule("=", wide))
	for _, e := range events {
		available := fmt.Sprintf("%d/%d", e.AvailableSeats(), e.Capacity)
		s.printf("%-10s %-25s %-12s %-20s %-10s\n", e.ID, clip(e.Title, 24), e.Date, clip(e.Venue, 19), available)
	}
	s.printf("%s\n\n", rule("=", wide))
}

func (s *Shell) search(ctx context.Context) {
	keyword, _ := s.prompt("\nEnter search keyword: ")

	results := s.desk.FindEvents(ctx, keyword)
	s.printf("\nFound %d event(s):\n", len(results))
	for _, e := range results {
		s.printf("  %s: %s\n", e.ID, e.Title)
	}
}

func (s *Shell) report(ctx context.Context) {
	id, _ := s.prompt("\nEnter Event ID: ")

	rep, err := s.desk.GenerateReport(ctx, id)
	if err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}

	s.printf("\n%s\n", rule("=", narrow))
	s.head.Fprintf(s.out, "EVENT REPORT: %s\n", rep.Event.Title)
	s.printf("%s\n", rule("=", narrow))
	s.printf("Total Capacity: %d\n", rep.Capacity)
	s.printf("Total Registered: %d\n", rep.Occupied)
	s.printf("Available Seats: %d\n", rep.AvailableSeats)
	s.printf("Occupancy Rate: %.1f%%\n", rep.OccupancyRate*100)
	s.printf("\nRegistered Attendees:\n")
	s.printf("%s\n", rule("-", narrow))
	for _, a := range rep.Attendees {
		s.printf("%-25s %-30s\n", a.Name, a.Email)
	}
	s.printf("%s\n\n", rule("=", narrow))
}

func (s *Shell) save(ctx context.Context) {
	if err := s.desk.Save(ctx); err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}
	s.okf("✓ Data saved to %s", s.location())
}

func (s *Shell) load(ctx context.Context) {
	if s.opts.Load == nil {
		s.failf("✗ Error: %s", describe(app.ErrNoSaver))
		return
	}

	reg, err := s.opts.Load(ctx)
	if err != nil {
		s.failf("✗ Error: %s", describe(err))
		return
	}
	s.desk.Replace(reg)
	s.okf("✓ Data loaded from %s", s.location())
}

func (s *Shell) saveOnExit(ctx context.Context) {
	if _, err := s.desk.Flush(ctx); err != nil && !errors.Is(err, app.ErrNoSaver) {
		s.failf("✗ Error: %s", describe(err))
		s.opts.Log.ErrorContext(ctx, "save on exit failed", "err", err)
		return
	}
}

func (s *Shell) location() string {
	if s.opts.Location == "" {
		return "store"
	}
	return s.opts.Location
}

// prompt writes label and returns the next trimmed line. ok is false at end of input.
func (s *Shell) prompt(label string) (string, bool) {
	s.printf("%s", label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) okf(format string, args ...any) {
	s.ok.Fprintf(s.out, format+"\n", args...)
}

func (s *Shell) failf(format string, args ...any) {
	s.fail.Fprintf(s.out, format+"\n", args...)
}

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

func clip(v string, n int) string {
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n])
}

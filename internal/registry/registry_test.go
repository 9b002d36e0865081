package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
)

func eventReq(title string, capacity int) event.CreateEventRequest {
	return event.CreateEventRequest{
		Title:       title,
		Description: title + " description",
		Date:        "2025-12-01",
		Time:        "10:00 AM",
		Venue:       "Main Hall",
		Capacity:    capacity,
		Category:    "General",
	}
}

func attendeeReq(name, email string) attendee.RegisterAttendeeRequest {
	return attendee.RegisterAttendeeRequest{
		Name:  name,
		Email: email,
		Phone: "555-0100123",
	}
}

func mustEvent(t *testing.T, r *Registry, req event.CreateEventRequest) event.Event {
	t.Helper()
	e, err := r.CreateEvent(req)
	if err != nil {
		t.Fatalf("CreateEvent(%q) error: %v", req.Title, err)
	}
	return e
}

func mustAttendee(t *testing.T, r *Registry, name, email string) attendee.Attendee {
	t.Helper()
	a, err := r.RegisterAttendee(attendeeReq(name, email))
	if err != nil {
		t.Fatalf("RegisterAttendee(%q) error: %v", name, err)
	}
	return a
}

func TestCreateEvent_AssignsSequentialIDs(t *testing.T) {
	r := New()

	first := mustEvent(t, r, eventReq("First", 10))
	second := mustEvent(t, r, eventReq("Second", 10))

	if first.ID != "EVT0001" || second.ID != "EVT0002" {
		t.Fatalf("unexpected ids %s, %s", first.ID, second.ID)
	}
	if len(first.RegisteredAttendeeIDs) != 0 {
		t.Fatalf("new event should have no attendees, got %v", first.RegisteredAttendeeIDs)
	}
	if got := r.NextEventID(); got != "EVT0003" {
		t.Fatalf("NextEventID = %s, want EVT0003", got)
	}
}

func TestRegisterAttendee_AssignsSequentialIDs(t *testing.T) {
	r := New()

	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")
	b := mustAttendee(t, r, "John Doe", "john@example.com")

	if a.ID != "ATT0001" || b.ID != "ATT0002" {
		t.Fatalf("unexpected ids %s, %s", a.ID, b.ID)
	}
	if got := r.NextAttendeeID(); got != "ATT0003" {
		t.Fatalf("NextAttendeeID = %s, want ATT0003", got)
	}
}

func TestCreateEvent_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *event.CreateEventRequest)
		wantField string
		wantRule  string
	}{
		{"zero capacity", func(req *event.CreateEventRequest) { req.Capacity = 0 }, "capacity", "required"},
		{"negative capacity", func(req *event.CreateEventRequest) { req.Capacity = -3 }, "capacity", "min"},
		{"blank title", func(req *event.CreateEventRequest) { req.Title = "   " }, "title", "nonblank"},
		{"missing venue", func(req *event.CreateEventRequest) { req.Venue = "" }, "venue", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			req := eventReq("Workshop", 5)
			tt.mutate(&req)

			_, err := r.CreateEvent(req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}

			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.wantField && f.Rule == tt.wantRule {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %s/%s in %+v", tt.wantField, tt.wantRule, verr.Fields)
			}

			if got := r.NextEventID(); got != "EVT0001" {
				t.Fatalf("failed create must not consume an id, next=%s", got)
			}
		})
	}
}

func TestCreateEvent_AcceptsLargeCapacityAndLongText(t *testing.T) {
	r := New()

	req := eventReq(strings.Repeat("Keynote ", 40), 150000)
	req.Description = strings.Repeat("d", 5000)
	e := mustEvent(t, r, req)

	if e.Capacity != 150000 || e.AvailableSeats() != 150000 {
		t.Fatalf("capacity = %d, available = %d", e.Capacity, e.AvailableSeats())
	}

	a, err := r.RegisterAttendee(attendeeReq(strings.Repeat("N", 200), "long@example.com"))
	if err != nil {
		t.Fatalf("RegisterAttendee error: %v", err)
	}
	if _, err := r.BookEvent(e.ID, a.ID); err != nil {
		t.Fatalf("BookEvent error: %v", err)
	}
}

func TestRegisterAttendee_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		req       attendee.RegisterAttendeeRequest
		wantField string
	}{
		{"bad email", attendee.RegisterAttendeeRequest{Name: "A", Email: "not-an-email", Phone: "5550100123"}, "email"},
		{"email with space", attendee.RegisterAttendeeRequest{Name: "A", Email: "a b@example.com", Phone: "5550100123"}, "email"},
		{"short phone", attendee.RegisterAttendeeRequest{Name: "A", Email: "a@example.com", Phone: "123"}, "phone"},
		{"letters in phone", attendee.RegisterAttendeeRequest{Name: "A", Email: "a@example.com", Phone: "555-CALL-NOW"}, "phone"},
		{"blank name", attendee.RegisterAttendeeRequest{Name: " ", Email: "a@example.com", Phone: "5550100123"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			_, err := r.RegisterAttendee(tt.req)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Fatalf("expected field %s, got %+v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestRegisterAttendee_AcceptsFormattedPhone(t *testing.T) {
	r := New()
	req := attendee.RegisterAttendeeRequest{Name: "Ada", Email: "ada@example.org", Phone: "+1 (555) 010-0123"}

	if _, err := r.RegisterAttendee(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookEvent_LinksBothSides(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 3))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	res, err := r.BookEvent(e.ID, a.ID)
	if err != nil {
		t.Fatalf("BookEvent error: %v", err)
	}
	if res.AvailableSeats != 2 || res.EventTitle != "Meetup" || res.AttendeeName != "Jane Roe" {
		t.Fatalf("unexpected result %+v", res)
	}

	gotEvent, _ := r.Event(e.ID)
	gotAttendee, _ := r.Attendee(a.ID)

	if !gotEvent.HasAttendee(a.ID) {
		t.Fatalf("event does not list attendee: %v", gotEvent.RegisteredAttendeeIDs)
	}
	if !gotAttendee.HasEvent(e.ID) {
		t.Fatalf("attendee does not list event: %v", gotAttendee.RegisteredEventIDs)
	}
}

func TestBookEvent_CapacityIsHardLimit(t *testing.T) {
	r := New()
	const capacity = 3
	e := mustEvent(t, r, eventReq("Small Room", capacity))

	for i := 0; i < capacity; i++ {
		a := mustAttendee(t, r, "Guest", "guest@example.com")
		if _, err := r.BookEvent(e.ID, a.ID); err != nil {
			t.Fatalf("booking %d failed: %v", i+1, err)
		}
	}

	extra := mustAttendee(t, r, "Late Guest", "late@example.com")
	_, err := r.BookEvent(e.ID, extra.ID)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}

	got, _ := r.Event(e.ID)
	if got.Occupied() != capacity {
		t.Fatalf("occupied = %d, want %d", got.Occupied(), capacity)
	}
	late, _ := r.Attendee(extra.ID)
	if len(late.RegisteredEventIDs) != 0 {
		t.Fatalf("rejected attendee must not be linked: %v", late.RegisteredEventIDs)
	}
}

func TestBookEvent_DuplicateRejected(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 5))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	if _, err := r.BookEvent(e.ID, a.ID); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := r.BookEvent(e.ID, a.ID)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}

	got, _ := r.Event(e.ID)
	if got.Occupied() != 1 {
		t.Fatalf("duplicate must not add a seat, occupied=%d", got.Occupied())
	}
}

func TestBookEvent_FullEventReportsCapacityBeforeDuplicate(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Solo", 1))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	if _, err := r.BookEvent(e.ID, a.ID); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := r.BookEvent(e.ID, a.ID)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
}

func TestBookEvent_NotFound(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 5))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	_, err := r.BookEvent("EVT9999", a.ID)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("expected event not found, got %v", err)
	}

	_, err = r.BookEvent(e.ID, "ATT9999")
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, attendee.ErrNotFound) {
		t.Fatalf("expected attendee not found, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "ATT9999" {
		t.Fatalf("expected NotFoundError for ATT9999, got %v", err)
	}
}

func TestBookEvent_HalfLinkedIsConsistencyError(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 5))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	// corrupt one side directly
	r.events[e.ID].RegisteredAttendeeIDs = append(r.events[e.ID].RegisteredAttendeeIDs, a.ID)

	_, err := r.BookEvent(e.ID, a.ID)
	if !errors.Is(err, ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 1))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")
	b := mustAttendee(t, r, "John Doe", "john@example.com")

	if _, err := r.CancelBooking(e.ID, a.ID); !errors.Is(err, ErrNotBooked) {
		t.Fatalf("expected ErrNotBooked, got %v", err)
	}

	if _, err := r.BookEvent(e.ID, a.ID); err != nil {
		t.Fatalf("book: %v", err)
	}

	res, err := r.CancelBooking(e.ID, a.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.AvailableSeats != 1 {
		t.Fatalf("seat not released, available=%d", res.AvailableSeats)
	}

	gotA, _ := r.Attendee(a.ID)
	if gotA.HasEvent(e.ID) {
		t.Fatalf("attendee still linked after cancel")
	}

	// the freed seat is bookable again
	if _, err := r.BookEvent(e.ID, b.ID); err != nil {
		t.Fatalf("rebook freed seat: %v", err)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 5))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")
	if _, err := r.BookEvent(e.ID, a.ID); err != nil {
		t.Fatalf("book: %v", err)
	}

	got, _ := r.Event(e.ID)
	got.RegisteredAttendeeIDs[0] = "ATT0999"
	got.Title = "changed"

	again, _ := r.Event(e.ID)
	if again.RegisteredAttendeeIDs[0] != a.ID || again.Title != "Meetup" {
		t.Fatalf("registry state leaked through a returned value: %+v", again)
	}
}

func TestFindEvents(t *testing.T) {
	r := New()
	mustEvent(t, r, event.CreateEventRequest{
		Title: "Go Workshop", Description: "hands-on", Date: "2025-01-01", Time: "9", Venue: "Lab", Capacity: 10, Category: "Tech",
	})
	mustEvent(t, r, event.CreateEventRequest{
		Title: "Jazz Night", Description: "live band", Date: "2025-01-02", Time: "9", Venue: "Club", Capacity: 10, Category: "Music",
	})
	mustEvent(t, r, event.CreateEventRequest{
		Title: "AI Summit", Description: "talks", Date: "2025-01-03", Time: "9", Venue: "Hall", Capacity: 10, Category: "Technology",
	})

	tests := []struct {
		name    string
		keyword string
		wantIDs []string
	}{
		{"category match keeps creation order", "Tech", []string{"EVT0001", "EVT0003"}},
		{"case insensitive title", "jazz", []string{"EVT0002"}},
		{"description match", "BAND", []string{"EVT0002"}},
		{"empty keyword matches all", "", []string{"EVT0001", "EVT0002", "EVT0003"}},
		{"no match", "Cooking", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.FindEvents(tt.keyword)
			if got == nil {
				t.Fatalf("FindEvents must return an empty slice, not nil")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("result[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestGenerateReport_FullWorkshop(t *testing.T) {
	r := New()
	e := mustEvent(t, r, event.CreateEventRequest{
		Title: "Python Workshop", Description: "intro", Date: "2025-11-30", Time: "02:00 PM", Venue: "Room 101", Capacity: 1, Category: "Education",
	})
	john := mustAttendee(t, r, "John Doe", "john@example.com")
	jane := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	if _, err := r.BookEvent(e.ID, john.ID); err != nil {
		t.Fatalf("book john: %v", err)
	}
	if _, err := r.BookEvent(e.ID, jane.ID); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity for second booking, got %v", err)
	}

	rep, err := r.GenerateReport(e.ID)
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if rep.Capacity != 1 || rep.Occupied != 1 || rep.AvailableSeats != 0 {
		t.Fatalf("unexpected counts %+v", rep)
	}
	if rep.OccupancyRate != 1.0 {
		t.Fatalf("occupancy rate = %v, want 1.0", rep.OccupancyRate)
	}
	if len(rep.Attendees) != 1 || rep.Attendees[0].Name != "John Doe" {
		t.Fatalf("unexpected attendees %+v", rep.Attendees)
	}
}

func TestGenerateReport_MissingAttendeeIsConsistencyError(t *testing.T) {
	r := New()
	e := mustEvent(t, r, eventReq("Meetup", 5))
	r.events[e.ID].RegisteredAttendeeIDs = []string{"ATT0042"}

	if _, err := r.GenerateReport(e.ID); !errors.Is(err, ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}
}

func TestAttendeeEvents_BookingOrder(t *testing.T) {
	r := New()
	first := mustEvent(t, r, eventReq("First", 5))
	second := mustEvent(t, r, eventReq("Second", 5))
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")

	for _, id := range []string{second.ID, first.ID} {
		if _, err := r.BookEvent(id, a.ID); err != nil {
			t.Fatalf("book %s: %v", id, err)
		}
	}

	events, err := r.AttendeeEvents(a.ID)
	if err != nil {
		t.Fatalf("AttendeeEvents: %v", err)
	}
	if len(events) != 2 || events[0].ID != second.ID || events[1].ID != first.ID {
		t.Fatalf("unexpected order %+v", events)
	}
}

func TestSeed(t *testing.T) {
	r := New()

	ids, err := Seed(r)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(ids) != len(SampleEvents) {
		t.Fatalf("got %d ids, want %d", len(ids), len(SampleEvents))
	}
	if ids[0] != "EVT0001" {
		t.Fatalf("first seeded id = %s", ids[0])
	}

	events, attendees := r.Len()
	if events != 3 || attendees != 0 {
		t.Fatalf("Len = %d,%d", events, attendees)
	}
}

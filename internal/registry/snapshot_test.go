package registry

import (
	"errors"
	"testing"

	"github.com/geocoder89/eventdesk/internal/snapshot"
)

func TestSnapshotRoundTrip_PreservesOrderAndCounters(t *testing.T) {
	r := New()
	var eventIDs []string
	for i := 0; i < 12; i++ {
		eventIDs = append(eventIDs, mustEvent(t, r, eventReq("Event", 3)).ID)
	}
	a := mustAttendee(t, r, "Jane Roe", "jane@example.com")
	b := mustAttendee(t, r, "John Doe", "john@example.com")

	for _, pair := range [][2]string{{eventIDs[10], a.ID}, {eventIDs[2], a.ID}, {eventIDs[2], b.ID}} {
		if _, err := r.BookEvent(pair[0], pair[1]); err != nil {
			t.Fatalf("book %v: %v", pair, err)
		}
	}

	restored, err := FromSnapshot(r.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	got := restored.Events()
	if len(got) != len(eventIDs) {
		t.Fatalf("got %d events, want %d", len(got), len(eventIDs))
	}
	for i, id := range eventIDs {
		if got[i].ID != id {
			t.Fatalf("event[%d] = %s, want %s (EVT0010 must sort after EVT0009)", i, got[i].ID, id)
		}
	}

	ra, err := restored.Attendee(a.ID)
	if err != nil {
		t.Fatalf("Attendee: %v", err)
	}
	if len(ra.RegisteredEventIDs) != 2 || ra.RegisteredEventIDs[0] != eventIDs[10] {
		t.Fatalf("booking order lost: %v", ra.RegisteredEventIDs)
	}

	if restored.NextEventID() != r.NextEventID() || restored.NextAttendeeID() != r.NextAttendeeID() {
		t.Fatalf("counters drifted: %s/%s vs %s/%s",
			restored.NextEventID(), restored.NextAttendeeID(), r.NextEventID(), r.NextAttendeeID())
	}

	// restored registry keeps enforcing the same rules
	if _, err := restored.BookEvent(eventIDs[2], b.ID); !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking after restore, got %v", err)
	}
}

func TestFromSnapshot_CounterAheadOfRecords(t *testing.T) {
	doc := snapshot.Empty()
	doc.EventCounter = snapshot.IntPtr(7)

	r, err := FromSnapshot(doc)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if got := r.NextEventID(); got != "EVT0008" {
		t.Fatalf("NextEventID = %s, want EVT0008", got)
	}
}

func TestFromSnapshot_RejectsBrokenLinks(t *testing.T) {
	doc := snapshot.Empty()
	doc.EventCounter = snapshot.IntPtr(1)
	doc.Events["EVT0001"] = snapshot.EventRecord{
		Title:                 "Orphan",
		Description:           "no attendee record",
		Date:                  "2025-12-01",
		Time:                  "18:00",
		Venue:                 "Hub",
		Capacity:              snapshot.IntPtr(2),
		Category:              "Community",
		RegisteredAttendeeIDs: []string{"ATT0001"},
	}

	if _, err := FromSnapshot(doc); !errors.Is(err, snapshot.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}

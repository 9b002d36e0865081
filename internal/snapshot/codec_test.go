package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func bookedDoc() Document {
	doc := Empty()
	doc.EventCounter = IntPtr(1)
	doc.AttendeeCounter = IntPtr(1)
	doc.Events["EVT0001"] = EventRecord{
		Title:                 "Meetup",
		Description:           "monthly",
		Date:                  "2025-12-01",
		Time:                  "18:00",
		Venue:                 "Hub",
		Capacity:              IntPtr(2),
		Category:              "Community",
		RegisteredAttendeeIDs: []string{"ATT0001"},
	}
	doc.Attendees["ATT0001"] = AttendeeRecord{
		Name:               "Jane Roe",
		Email:              "jane@example.com",
		Phone:              "5550100123",
		RegisteredEventIDs: []string{"EVT0001"},
	}
	return doc
}

func TestEncodeDecode(t *testing.T) {
	b, err := Encode(bookedDoc())
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	for _, key := range []string{`"events"`, `"attendees"`, `"event_counter"`, `"registered_attendee_ids"`, `"registered_event_ids"`} {
		if !strings.Contains(string(b), key) {
			t.Fatalf("encoded document missing key %s:\n%s", key, b)
		}
	}

	doc, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if *doc.EventCounter != 1 || *doc.AttendeeCounter != 1 {
		t.Fatalf("counters = %d/%d", *doc.EventCounter, *doc.AttendeeCounter)
	}
	if got := doc.Events["EVT0001"].RegisteredAttendeeIDs; len(got) != 1 || got[0] != "ATT0001" {
		t.Fatalf("unexpected registrations %v", got)
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	doc, err := Decode([]byte(`{"events":{},"attendees":{},"event_counter":0,"attendee_counter":0}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(doc.Events) != 0 || len(doc.Attendees) != 0 {
		t.Fatalf("expected no records, got %+v", doc)
	}
}

// eventJSON and attendeeJSON render complete records so each corrupt case
// below fails for the one reason it names.
func eventJSON(capacity int, attendees ...string) string {
	return fmt.Sprintf(`{"title":"x","description":"d","date":"2025-12-01","time":"18:00","venue":"Hub","capacity":%d,"category":"Tech","registered_attendee_ids":%s}`,
		capacity, idList(attendees))
}

func attendeeJSON(events ...string) string {
	return fmt.Sprintf(`{"name":"a","email":"a@example.com","phone":"5550100123","registered_event_ids":%s}`, idList(events))
}

func idList(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	return `["` + strings.Join(ids, `","`) + `"]`
}

func docJSON(events, attendees string, eventCounter, attendeeCounter int) string {
	return fmt.Sprintf(`{"events":{%s},"attendees":{%s},"event_counter":%d,"attendee_counter":%d}`,
		events, attendees, eventCounter, attendeeCounter)
}

func TestDecode_CompleteDocument(t *testing.T) {
	body := docJSON(`"EVT0001":`+eventJSON(2, "ATT0001"), `"ATT0001":`+attendeeJSON("EVT0001"), 1, 1)
	if _, err := Decode([]byte(body + "\n")); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
}

func TestDecode_CorruptInputs(t *testing.T) {
	valid := docJSON(`"EVT0001":`+eventJSON(1), "", 1, 0)

	tests := []struct {
		name string
		body string
	}{
		{"empty payload", "   "},
		{"not json", "{events:"},
		{"trailing garbage", valid + " garbage{{{"},
		{"second document", valid + valid},
		{"missing counters", `{"events":{},"attendees":{}}`},
		{"missing events", `{"attendees":{},"event_counter":0,"attendee_counter":0}`},
		{"capacity missing", docJSON(`"EVT0001":{"title":"x","description":"d","date":"2025-12-01","time":"18:00","venue":"Hub","category":"Tech"}`, "", 1, 0)},
		{"zero capacity", docJSON(`"EVT0001":`+eventJSON(0), "", 1, 0)},
		{"event with only title", docJSON(`"EVT0001":{"title":"x","capacity":1}`, "", 1, 0)},
		{"event missing venue", docJSON(`"EVT0001":{"title":"x","description":"d","date":"2025-12-01","time":"18:00","capacity":1,"category":"Tech"}`, "", 1, 0)},
		{"attendee with only name", docJSON("", `"ATT0001":{"name":"a"}`, 0, 1)},
		{"attendee missing phone", docJSON("", `"ATT0001":{"name":"a","email":"a@example.com"}`, 0, 1)},
		{"bad event id", docJSON(`"E1":`+eventJSON(1), "", 1, 0)},
		{"short event id", docJSON(`"EVT1":`+eventJSON(1), "", 1, 0)},
		{"signed attendee id", docJSON("", `"ATT+001":`+attendeeJSON(), 0, 1)},
		{"id ahead of counter", docJSON(`"EVT0005":`+eventJSON(1), "", 1, 0)},
		{"over capacity", docJSON(
			`"EVT0001":`+eventJSON(1, "ATT0001", "ATT0002"),
			`"ATT0001":`+attendeeJSON("EVT0001")+`,"ATT0002":`+attendeeJSON("EVT0001"),
			1, 2)},
		{"one-sided link", docJSON(`"EVT0001":`+eventJSON(2), `"ATT0001":`+attendeeJSON("EVT0001"), 1, 1)},
		{"dangling attendee", docJSON(`"EVT0001":`+eventJSON(2, "ATT0009"), "", 1, 9)},
		{"duplicate registration", docJSON(`"EVT0001":`+eventJSON(3, "ATT0001", "ATT0001"), `"ATT0001":`+attendeeJSON("EVT0001"), 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			if !errors.Is(err, ErrCorruptData) {
				t.Fatalf("expected ErrCorruptData, got %v", err)
			}
		})
	}
}

func TestEncode_RefusesInconsistentDocument(t *testing.T) {
	doc := bookedDoc()
	a := doc.Attendees["ATT0001"]
	a.RegisteredEventIDs = nil
	doc.Attendees["ATT0001"] = a

	if _, err := Encode(doc); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}

func TestParseSeq(t *testing.T) {
	n, err := ParseSeq("EVT", "EVT0042")
	if err != nil || n != 42 {
		t.Fatalf("ParseSeq = %d, %v", n, err)
	}

	if n, err := ParseSeq("EVT", "EVT12345"); err != nil || n != 12345 {
		t.Fatalf("ParseSeq past four digits = %d, %v", n, err)
	}

	for _, bad := range []string{"ATT0001", "EVT", "EVTabc", "EVT0000", "EVT5", "EVT05", "EVT+005", "EVT00042"} {
		if _, err := ParseSeq("EVT", bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

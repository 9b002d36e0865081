package registry

import (
	"sort"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/geocoder89/eventdesk/internal/snapshot"
)

// Snapshot copies the full registry state, counters included, into a document.
func (r *Registry) Snapshot() snapshot.Document {
	doc := snapshot.Document{
		Events:          make(map[string]snapshot.EventRecord, len(r.events)),
		Attendees:       make(map[string]snapshot.AttendeeRecord, len(r.attendees)),
		EventCounter:    snapshot.IntPtr(r.eventCounter),
		AttendeeCounter: snapshot.IntPtr(r.attendeeCounter),
	}

	for id, e := range r.events {
		doc.Events[id] = snapshot.EventRecord{
			Title:                 e.Title,
			Description:           e.Description,
			Date:                  e.Date,
			Time:                  e.Time,
			Venue:                 e.Venue,
			Capacity:              snapshot.IntPtr(e.Capacity),
			Category:              e.Category,
			RegisteredAttendeeIDs: append([]string{}, e.RegisteredAttendeeIDs...),
		}
	}

	for id, a := range r.attendees {
		doc.Attendees[id] = snapshot.AttendeeRecord{
			Name:               a.Name,
			Email:              a.Email,
			Phone:              a.Phone,
			RegisteredEventIDs: append([]string{}, a.RegisteredEventIDs...),
		}
	}

	return doc
}

// FromSnapshot rebuilds a registry from a stored document. Creation order is
// recovered from the id sequence numbers.
func FromSnapshot(doc snapshot.Document) (*Registry, error) {
	if err := snapshot.Validate(doc); err != nil {
		return nil, err
	}

	r := New()
	r.eventCounter = *doc.EventCounter
	r.attendeeCounter = *doc.AttendeeCounter

	for id, rec := range doc.Events {
		r.events[id] = &event.Event{
			ID:                    id,
			Title:                 rec.Title,
			Description:           rec.Description,
			Date:                  rec.Date,
			Time:                  rec.Time,
			Venue:                 rec.Venue,
			Capacity:              *rec.Capacity,
			Category:              rec.Category,
			RegisteredAttendeeIDs: append([]string{}, rec.RegisteredAttendeeIDs...),
		}
		r.eventOrder = append(r.eventOrder, id)
	}

	for id, rec := range doc.Attendees {
		r.attendees[id] = &attendee.Attendee{
			ID:                 id,
			Name:               rec.Name,
			Email:              rec.Email,
			Phone:              rec.Phone,
			RegisteredEventIDs: append([]string{}, rec.RegisteredEventIDs...),
		}
		r.attendeeOrder = append(r.attendeeOrder, id)
	}

	sortBySeq(r.eventOrder, event.IDPrefix)
	sortBySeq(r.attendeeOrder, attendee.IDPrefix)

	return r, nil
}

func sortBySeq(ids []string, prefix string) {
	sort.Slice(ids, func(i, j int) bool {
		a, _ := snapshot.ParseSeq(prefix, ids[i])
		b, _ := snapshot.ParseSeq(prefix, ids[j])
		return a < b
	})
}

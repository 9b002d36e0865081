package snapshot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required fields plus the cross-record invariants: every
// booking is linked from both sides, no event is over capacity and the
// counters are ahead of every stored id.
func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", ErrCorruptData, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	for id, e := range doc.Events {
		n, err := ParseSeq("EVT", id)
		if err != nil {
			return err
		}
		if n > *doc.EventCounter {
			return corrupt("event id %s is ahead of event_counter %d", id, *doc.EventCounter)
		}
		if len(e.RegisteredAttendeeIDs) > *e.Capacity {
			return corrupt("event %s has %d registrations for capacity %d", id, len(e.RegisteredAttendeeIDs), *e.Capacity)
		}

		seen := make(map[string]bool, len(e.RegisteredAttendeeIDs))
		for _, aid := range e.RegisteredAttendeeIDs {
			if seen[aid] {
				return corrupt("event %s lists attendee %s twice", id, aid)
			}
			seen[aid] = true

			a, ok := doc.Attendees[aid]
			if !ok {
				return corrupt("event %s references unknown attendee %s", id, aid)
			}
			if !contains(a.RegisteredEventIDs, id) {
				return corrupt("attendee %s does not list event %s", aid, id)
			}
		}
	}

	for id, a := range doc.Attendees {
		n, err := ParseSeq("ATT", id)
		if err != nil {
			return err
		}
		if n > *doc.AttendeeCounter {
			return corrupt("attendee id %s is ahead of attendee_counter %d", id, *doc.AttendeeCounter)
		}

		seen := make(map[string]bool, len(a.RegisteredEventIDs))
		for _, eid := range a.RegisteredEventIDs {
			if seen[eid] {
				return corrupt("attendee %s lists event %s twice", id, eid)
			}
			seen[eid] = true

			e, ok := doc.Events[eid]
			if !ok {
				return corrupt("attendee %s references unknown event %s", id, eid)
			}
			if !contains(e.RegisteredAttendeeIDs, id) {
				return corrupt("event %s does not list attendee %s", eid, id)
			}
		}
	}

	return nil
}

// ParseSeq returns the numeric part of an id such as EVT0042. Only the
// canonical zero-padded form is accepted, so EVT42 and EVT+42 are rejected.
func ParseSeq(prefix, id string) (int, error) {
	digits, ok := strings.CutPrefix(id, prefix)
	if !ok || digits == "" {
		return 0, corrupt("id %q does not carry prefix %s", id, prefix)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, corrupt("id %q has no valid sequence number", id)
	}
	if id != fmt.Sprintf("%s%04d", prefix, n) {
		return 0, corrupt("id %q is not in canonical form", id)
	}
	return n, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}

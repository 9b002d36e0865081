package registry

import "github.com/geocoder89/eventdesk/internal/domain/event"

// SampleEvents are the demo events added to an empty registry on request.
var SampleEvents = []event.CreateEventRequest{
	{
		Title:       "Tech Conference 2025",
		Description: "Annual technology conference featuring AI and ML talks",
		Date:        "2025-12-15",
		Time:        "09:00 AM",
		Venue:       "Convention Center",
		Capacity:    200,
		Category:    "Technology",
	},
	{
		Title:       "Music Festival",
		Description: "Live music performances by popular artists",
		Date:        "2025-12-20",
		Time:        "06:00 PM",
		Venue:       "Open Air Stadium",
		Capacity:    500,
		Category:    "Entertainment",
	},
	{
		Title:       "Startup Pitch Day",
		Description: "Startup founders pitch their ideas to investors",
		Date:        "2025-12-10",
		Time:        "10:00 AM",
		Venue:       "Business Hub",
		Capacity:    100,
		Category:    "Business",
	},
}

// Seed creates SampleEvents and returns their ids.
func Seed(r *Registry) ([]string, error) {
	ids := make([]string, 0, len(SampleEvents))
	for _, req := range SampleEvents {
		e, err := r.CreateEvent(req)
		if err != nil {
			return ids, err
		}
		ids = append(ids, e.ID)
	}
	return ids, nil
}

package event

import "strings"

func NewFromCreateRequest(id string, req CreateEventRequest) Event {
	return Event{
		ID:                    id,
		Title:                 strings.TrimSpace(req.Title),
		Description:           strings.TrimSpace(req.Description),
		Date:                  strings.TrimSpace(req.Date),
		Time:                  strings.TrimSpace(req.Time),
		Venue:                 strings.TrimSpace(req.Venue),
		Capacity:              req.Capacity,
		Category:              strings.TrimSpace(req.Category),
		RegisteredAttendeeIDs: []string{},
	}
}

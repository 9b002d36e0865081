package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// EventCursor points just past the last event of the previous page.
type EventCursor struct {
	AfterID string `json:"afterId"`
}

func EncodeEventCursor(afterID string) (string, error) {
	b, err := json.Marshal(EventCursor{AfterID: afterID})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeEventCursor(cursor string) (EventCursor, error) {
	if cursor == "" {
		return EventCursor{}, errors.New("empty cursor")
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return EventCursor{}, err
	}

	var c EventCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return EventCursor{}, err
	}
	if c.AfterID == "" {
		return EventCursor{}, errors.New("invalid cursor payload")
	}
	return c, nil
}

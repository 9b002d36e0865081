package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Encode renders doc as indented JSON after checking it is self-consistent.
func Encode(doc Document) ([]byte, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	return append(b, '\n'), nil
}

// Decode parses and validates a stored document. Every failure wraps ErrCorruptData.
func Decode(b []byte) (Document, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Document{}, fmt.Errorf("%w: %w", ErrCorruptData, ErrEmptyData)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("%w: trailing data after document", ErrCorruptData)
	}

	if err := Validate(doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

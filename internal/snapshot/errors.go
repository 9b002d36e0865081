package snapshot

import "errors"

var (
	ErrCorruptData = errors.New("corrupt snapshot data")
	ErrEmptyData   = errors.New("empty snapshot payload")
)

// Package store holds the byte-level backends a registry snapshot is written to.
package store

import (
	"context"
	"errors"
)

// ErrNoData means nothing has been saved yet.
var ErrNoData = errors.New("no snapshot stored")

type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Close() error
}

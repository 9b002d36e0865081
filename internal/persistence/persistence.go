// Package persistence moves whole registry snapshots between memory and a store.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geocoder89/eventdesk/internal/registry"
	"github.com/geocoder89/eventdesk/internal/snapshot"
	"github.com/geocoder89/eventdesk/internal/store"
)

var (
	// ErrNoSnapshot means the store holds nothing yet; callers usually start empty.
	ErrNoSnapshot = errors.New("no saved registry")
	// ErrCorruptData is re-exported so callers need not import snapshot.
	ErrCorruptData = snapshot.ErrCorruptData
)

type Adapter struct {
	store store.Store
	log   *slog.Logger
}

func New(s store.Store, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{store: s, log: log}
}

// Save encodes the full registry state and hands it to the store in one write.
func (a *Adapter) Save(ctx context.Context, reg *registry.Registry) error {
	b, err := snapshot.Encode(reg.Snapshot())
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	if err := a.store.Save(ctx, b); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}

	a.log.DebugContext(ctx, "registry saved", "bytes", len(b))
	return nil
}

// Load rebuilds a registry from the store. It fails with ErrNoSnapshot when
// nothing was saved and ErrCorruptData when the document can't be trusted.
func (a *Adapter) Load(ctx context.Context) (*registry.Registry, error) {
	b, err := a.store.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoData) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load registry: %w", err)
	}

	doc, err := snapshot.Decode(b)
	if err != nil {
		return nil, err
	}

	reg, err := registry.FromSnapshot(doc)
	if err != nil {
		return nil, err
	}

	a.log.DebugContext(ctx, "registry loaded", "events", len(doc.Events), "attendees", len(doc.Attendees))
	return reg, nil
}

// LoadOrNew applies the "start empty" policy: a missing snapshot yields a new
// registry and loaded=false. Corrupt data still surfaces as an error.
func (a *Adapter) LoadOrNew(ctx context.Context) (reg *registry.Registry, loaded bool, err error) {
	reg, err = a.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		a.log.InfoContext(ctx, "no saved registry, starting empty")
		return registry.New(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return reg, true, nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

package app

import (
	"context"
	"errors"

	"github.com/geocoder89/eventdesk/internal/registry"
)

var ErrNoSaver = errors.New("no persistence configured")

// Save writes the current state regardless of the dirty flag.
func (d *Desk) Save(ctx context.Context) error {
	ctx, span := d.start(ctx, "save")

	d.mu.Lock()
	err := d.saveLocked(ctx)
	d.mu.Unlock()

	endSpan(span, err)
	return err
}

// Flush saves only when something changed since the last successful save.
// It reports whether a write happened.
func (d *Desk) Flush(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dirty {
		return false, nil
	}

	ctx, span := d.start(ctx, "flush")
	err := d.saveLocked(ctx)
	endSpan(span, err)

	return err == nil, err
}

func (d *Desk) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// saveLocked holds the lock across the store write so the snapshot and the
// dirty flag can't drift apart.
func (d *Desk) saveLocked(ctx context.Context) error {
	if d.saver == nil {
		return ErrNoSaver
	}
	if err := d.saver.Save(ctx, d.reg); err != nil {
		d.log.ErrorContext(ctx, "save failed", "err", err)
		return err
	}
	d.dirty = false
	d.log.InfoContext(ctx, "registry saved")
	return nil
}

// Replace swaps in a freshly loaded registry and clears the dirty flag.
func (d *Desk) Replace(reg *registry.Registry) {
	d.mu.Lock()
	d.reg = reg
	d.dirty = false
	fn := d.onChange
	d.refreshGaugesLocked()
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

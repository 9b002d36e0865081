package store

import "context"

// Observer records the outcome of one store call.
type Observer interface {
	ObserveStore(backend, op string, fn func() error) error
}

// Observed decorates a Store so every call is timed and classified.
type Observed struct {
	inner   Store
	backend string
	obs     Observer
}

func NewObserved(inner Store, backend string, obs Observer) *Observed {
	return &Observed{inner: inner, backend: backend, obs: obs}
}

func (s *Observed) observe(op string, fn func() error) error {
	if s.obs != nil {
		return s.obs.ObserveStore(s.backend, op, fn)
	}
	return fn()
}

func (s *Observed) Load(ctx context.Context) (b []byte, err error) {
	err = s.observe("load", func() error {
		b, err = s.inner.Load(ctx)
		return err
	})
	return b, err
}

func (s *Observed) Save(ctx context.Context, data []byte) error {
	return s.observe("save", func() error {
		return s.inner.Save(ctx, data)
	})
}

func (s *Observed) Ping(ctx context.Context) error {
	return s.observe("ping", func() error {
		return s.inner.Ping(ctx)
	})
}

func (s *Observed) Close() error {
	return s.inner.Close()
}

package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/eventdesk/internal/observability"
)

// Flusher saves pending changes; *app.Desk satisfies it.
type Flusher interface {
	Flush(ctx context.Context) (bool, error)
}

type Config struct {
	Interval      time.Duration
	MaxAttempts   int
	ShutdownGrace time.Duration
	Backoff       func(attempt int) time.Duration
}

// Autosaver periodically flushes the desk and does one last flush on shutdown.
type Autosaver struct {
	cfg   Config
	desk  Flusher
	log   *slog.Logger
	stats *observability.SaveStats
}

func NewAutosaver(cfg Config, desk Flusher, log *slog.Logger, stats *observability.SaveStats) *Autosaver {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 5 * time.Second
	}
	if cfg.Backoff == nil {
		cfg.Backoff = ExponentialBackoff
	}
	if log == nil {
		log = slog.Default()
	}
	if stats == nil {
		stats = observability.NewSaveStats()
	}

	return &Autosaver{cfg: cfg, desk: desk, log: log, stats: stats}
}

func (w *Autosaver) Stats() *observability.SaveStats { return w.stats }

func (w *Autosaver) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.log.Info("autosave started", "interval", w.cfg.Interval.String())

	for {
		select {
		case <-ctx.Done():
			w.log.Info("autosave received shutdown signal")

			finalCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownGrace)
			defer cancel()

			return w.FlushOnce(finalCtx)

		case <-ticker.C:
			if err := w.FlushWithRetry(ctx); err != nil && ctx.Err() == nil {
				w.log.Error("autosave gave up", "attempts", w.cfg.MaxAttempts, "err", err)
			}
		}
	}
}

// FlushWithRetry retries failed saves with backoff until MaxAttempts or ctx ends.
func (w *Autosaver) FlushWithRetry(ctx context.Context) error {
	var err error
	for attempt := 0; attempt < w.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			w.stats.IncRetried()

			select {
			case <-time.After(w.cfg.Backoff(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err = w.FlushOnce(ctx); err == nil {
			return nil
		}
		w.log.Warn("autosave failed", "attempt", attempt+1, "err", err)
	}
	return err
}

func (w *Autosaver) FlushOnce(ctx context.Context) error {
	start := time.Now()
	saved, err := w.desk.Flush(ctx)
	w.stats.ObserveDuration(time.Since(start))

	switch {
	case err != nil:
		w.stats.IncFailed()
	case saved:
		w.stats.IncSaved()
	default:
		w.stats.IncSkipped()
	}
	return err
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/geocoder89/eventdesk/internal/app"
	"github.com/geocoder89/eventdesk/internal/config"
	"github.com/geocoder89/eventdesk/internal/notifications"
	"github.com/geocoder89/eventdesk/internal/observability"
	"github.com/geocoder89/eventdesk/internal/persistence"
	"github.com/geocoder89/eventdesk/internal/shell"
	"github.com/geocoder89/eventdesk/internal/store/backend"
)

func main() {
	cfg := config.Load()

	// stdout belongs to the menu
	log := observability.NewLoggerTo(os.Stderr, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, os.Stdin, os.Stdout, log)
	stop()

	if err != nil {
		log.Error("shell stopped", "err", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so main only exits once they are released.
func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, log *slog.Logger) error {
	st, err := backend.Open(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer st.Close()

	adapter := persistence.New(st, log)

	fmt.Fprintln(out, "Initializing Event Management System...")

	reg, loaded, err := adapter.LoadOrNew(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	desk := app.NewDesk(reg, app.Deps{
		Log:      log,
		Saver:    adapter,
		Notifier: notifications.NewLogNotifier(log),
	})

	if !loaded && cfg.SeedSampleData {
		fmt.Fprintln(out, "\nAdding sample events...")
		if _, err := desk.Seed(ctx); err != nil {
			log.Error("seed failed", "err", err)
		}
	}

	location := cfg.DataFile
	if cfg.StoreBackend != config.BackendFile {
		location = cfg.StoreBackend
	}

	sh := shell.New(desk, in, out, shell.Options{
		Load:     adapter.Load,
		Location: location,
		Log:      log,
	})
	if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

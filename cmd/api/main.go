package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/eventdesk/internal/app"
	"github.com/geocoder89/eventdesk/internal/config"
	httpx "github.com/geocoder89/eventdesk/internal/http"
	"github.com/geocoder89/eventdesk/internal/http/middlewares"
	"github.com/geocoder89/eventdesk/internal/notifications"
	"github.com/geocoder89/eventdesk/internal/observability"
	"github.com/geocoder89/eventdesk/internal/persistence"
	"github.com/geocoder89/eventdesk/internal/store/backend"
	"github.com/geocoder89/eventdesk/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	rootCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	shutdownTracer, err := observability.InitTracer(rootCtx, "eventdesk-api", cfg.OTELEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		stopSignals()
		os.Exit(1)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(promReg)

	st, err := backend.Open(rootCtx, cfg, prom)
	if err != nil {
		log.Error("store open failed", "backend", cfg.StoreBackend, "err", err)
		_ = shutdownTracer(context.Background())
		stopSignals()
		os.Exit(1)
	}
	defer st.Close()

	adapter := persistence.New(st, log)

	reg, loaded, err := adapter.LoadOrNew(rootCtx)
	if err != nil {
		// refuse to start on corrupt data rather than overwrite it with an empty registry
		log.Error("registry load failed", "backend", cfg.StoreBackend, "err", err)
		_ = st.Close()
		_ = shutdownTracer(context.Background())
		stopSignals()
		os.Exit(1)
	}

	notifier := notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(log),
		notifications.ProtectedNotifierConfig{},
		log,
	)

	desk := app.NewDesk(reg, app.Deps{
		Log:      log,
		Saver:    adapter,
		Notifier: notifier,
		Prom:     prom,
	})

	if !loaded && cfg.SeedSampleData {
		if _, err := desk.Seed(rootCtx); err != nil {
			log.Error("seed failed", "err", err)
		}
	}

	stats := observability.NewSaveStats()

	autosaveCtx, stopAutosave := context.WithCancel(context.Background())
	autosaveDone := make(chan struct{})
	if cfg.AutosaveInterval > 0 {
		saver := worker.NewAutosaver(worker.Config{Interval: cfg.AutosaveInterval}, desk, log, stats)
		go func() {
			defer close(autosaveDone)
			_ = saver.Run(autosaveCtx)
		}()
	} else {
		close(autosaveDone)
	}

	// set up routers with the log
	router := httpx.NewRouter(httpx.RouterDeps{
		Env:       cfg.Env,
		Log:       log,
		Desk:      desk,
		Prom:      prom,
		Gatherer:  promReg,
		Ping:      adapter.Ping,
		SaveStats: stats,
		RateLimit: middlewares.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"backend", cfg.StoreBackend,
			"loaded", loaded,
		)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stopSignals()
		}
	}()

	// Graceful shutdown
	<-rootCtx.Done()
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		// the autosaver does its own final flush when cancelled
		stopAutosave()
		<-autosaveDone

		if cfg.AutosaveInterval <= 0 {
			if _, err := desk.Flush(ctx); err != nil {
				log.Error("final save failed", "err", err)
			}
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// Package backend opens the snapshot store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/geocoder89/eventdesk/internal/config"
	"github.com/geocoder89/eventdesk/internal/db"
	"github.com/geocoder89/eventdesk/internal/store"
	"github.com/geocoder89/eventdesk/internal/store/file"
	"github.com/geocoder89/eventdesk/internal/store/postgres"
	"github.com/geocoder89/eventdesk/internal/store/redisstore"
)

// Open returns the configured store wrapped for metrics when obs is non-nil.
func Open(ctx context.Context, cfg config.Config, obs store.Observer) (store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var s store.Store

	switch cfg.StoreBackend {
	case config.BackendFile:
		s = file.New(cfg.DataFile)

	case config.BackendRedis:
		rs := redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.SnapshotKey,
		})
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		s = rs

	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		ps, err := postgres.New(ctx, pool, cfg.SnapshotKey)
		if err != nil {
			pool.Close()
			return nil, err
		}
		s = ps
	}

	if obs == nil {
		return s, nil
	}
	return store.NewObserved(s, cfg.StoreBackend, obs), nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/eventdesk/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultName = "default"

const schema = `
CREATE TABLE IF NOT EXISTS registry_snapshots (
	name     TEXT PRIMARY KEY,
	document JSONB NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Store keeps one snapshot row per name. Saves are a single upsert.
type Store struct {
	pool *pgxpool.Pool
	name string
}

func New(ctx context.Context, pool *pgxpool.Pool, name string) (*Store, error) {
	if name == "" {
		name = DefaultName
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure registry_snapshots table: %w", err)
	}
	return &Store{pool: pool, name: name}, nil
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document::text FROM registry_snapshots WHERE name = $1`, s.name,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoData
		}
		return nil, fmt.Errorf("load snapshot %s: %w", s.name, err)
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO registry_snapshots (name, document, saved_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document,
		    saved_at = EXCLUDED.saved_at`,
		s.name, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.name, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/eventdesk/internal/store"
	"github.com/redis/go-redis/v9"
)

const DefaultKey = "eventdesk:snapshot:v1"

type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Store keeps the whole snapshot under one key; SET replaces it atomically.
type Store struct {
	redisdb *redis.Client
	key     string
}

func New(cfg Config) *Store {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return NewWithClient(redisdb, cfg.Key)
}

// NewWithClient wraps an existing client, used by tests against miniredis.
func NewWithClient(redisdb *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{redisdb: redisdb, key: key}
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	b, err := s.redisdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNoData
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return b, nil
}

func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := s.redisdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.redisdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.redisdb.Close()
}

// Package storage is the key/value port the task list is persisted through.
// A single key holds the whole JSON-encoded list.
package storage

import (
	"context"
	"fmt"

	"taskhub/internal/config"
	"taskhub/internal/db"

	redis "github.com/redis/go-redis/v9"
)

// Store reads and writes whole values by key.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Backend is a Store the process owns: it can be health-checked and closed.
type Backend interface {
	Store
	Ping(ctx context.Context) error
	Close()
}

// Open builds the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		return NewMemory(), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedis(client), nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s := NewPostgres(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

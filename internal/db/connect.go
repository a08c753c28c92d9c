package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhub/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoDSN = errors.New("DATABASE_URL is not set")

// Connect opens a pool and pings it. Callers decide whether a failure is fatal.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected")
	return pool, nil
}

// MustConnect is Connect for tools that have nothing to do without a database.
func MustConnect(dsn string) *pgxpool.Pool {
	pool, err := Connect(context.Background(), dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	return pool
}

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkpal/parkpal-backend/logger"
)

const (
	connectRetries    = 5
	connectRetryDelay = 2 * time.Second
)

// Connect opens a pgx pool against dbURL and verifies connectivity with a
// ping, retrying while the database comes up.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	log := logger.GetLogger()

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	var pingErr error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		if pingErr = pool.Ping(ctx); pingErr == nil {
			log.Infow("Connected to database", "host", cfg.ConnConfig.Host)
			return pool, nil
		}
		log.Warnw("Database ping failed, retrying",
			"attempt", attempt,
			"maxAttempts", connectRetries,
			"error", pingErr)
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(connectRetryDelay):
		}
	}
	pool.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectRetries, pingErr)
}

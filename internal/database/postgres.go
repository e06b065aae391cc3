package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pgx pool and pings it, retrying with backoff to tolerate startup races.
func ConnectPostgres(ctx context.Context, url string, maxConns int32, timeout time.Duration) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres connect: DATABASE_URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("postgres parse config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	var pool *pgxpool.Pool
	err = withRetry(ctx, "PostgreSQL", func() error {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		p, err := pgxpool.NewWithConfig(cctx, cfg)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		if err := p.Ping(cctx); err != nil {
			p.Close()
			return fmt.Errorf("postgres ping: %w", err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

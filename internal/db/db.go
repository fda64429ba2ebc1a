// Package db stores static mob faction assignments in PostgreSQL.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/mobpatch/internal/config"
)

// applicationName is reported to PostgreSQL for every pooled connection.
const applicationName = "mobserver"

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New opens a pool for cfg and checks it with a ping.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Factions returns a repository over this pool.
func (d *DB) Factions() *FactionRepository {
	return NewFactionRepository(d.pool)
}

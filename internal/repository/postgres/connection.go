package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/adamitejs/service-auth/internal/repository/migrations"
)

var errNilPool = errors.New("connection pool is nil")

// Connection is a pgx pool over a migrated users schema.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection opens a pool to dsn, checks it is reachable and applies
// pending migrations through a database/sql bridge on the same pool.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if conf.MaxConnIdleTime == 0 {
		conf.MaxConnIdleTime = 5 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	err = migrations.Up(ctx, db, migrations.DialectPostgres)
	_ = db.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate users schema: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

// Close releases every pooled connection.
func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

// Ping checks that a pooled connection is usable.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return errNilPool
	}
	return c.Pool.Ping(ctx)
}

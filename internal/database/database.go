package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/flightbooking/config"
)

// Conn is a single pooled connection. It must be released exactly once.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Release()
}

type Provider interface {
	Acquire(ctx context.Context) (Conn, error)
}

// PoolProvider hands out connections from a pgx pool, waiting at most
// acquireTimeout for one to become free.
type PoolProvider struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewPoolProvider(pool *pgxpool.Pool, acquireTimeout time.Duration) *PoolProvider {
	return &PoolProvider{pool: pool, acquireTimeout: acquireTimeout}
}

func (p *PoolProvider) Acquire(ctx context.Context) (Conn, error) {
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection (timeout %s): %w", p.acquireTimeout, err)
	}
	return conn, nil
}

var _ Provider = (*PoolProvider)(nil)

// NewPool opens a pool bounded by cfg.Pool and checks that the database answers.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	applyPoolConfig(poolCfg, cfg.Pool)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout(cfg.Pool))
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	return pool, nil
}

const defaultPingTimeout = 10 * time.Second

// pingTimeout bounds the startup ping by the acquire timeout, or by
// defaultPingTimeout when none is configured.
func pingTimeout(p config.PoolConfig) time.Duration {
	if p.AcquireTimeout > 0 {
		return p.AcquireTimeout
	}
	return defaultPingTimeout
}

func applyPoolConfig(poolCfg *pgxpool.Config, p config.PoolConfig) {
	if p.MaxConns > 0 {
		poolCfg.MaxConns = p.MaxConns
	}
	if p.MinConns > 0 {
		poolCfg.MinConns = p.MinConns
	}
	if p.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = p.MaxConnIdleTime
	}
	if p.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = p.MaxConnLifetime
	}
	if p.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = p.HealthCheckPeriod
	}
}

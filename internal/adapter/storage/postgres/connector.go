package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"church-cms/config"
	"church-cms/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const defaultRetryInterval = 5 * time.Second

// Connector is a Pool that may not be connected yet. Until a connection
// succeeds every call fails with apperror.ErrDatabaseNotReady, so the HTTP
// server can start and answer 503 while Run keeps retrying in the background.
type Connector struct {
	cfg     config.DatabaseConfig
	log     zerolog.Logger
	pool    atomic.Pointer[pgxpool.Pool]
	mu      sync.Mutex
	onReady []func(ctx context.Context, pool Pool) error
}

// NewConnector creates a disconnected Connector.
func NewConnector(cfg config.DatabaseConfig, log zerolog.Logger) *Connector {
	return &Connector{cfg: cfg, log: log}
}

// OnReady registers fn to run against a fresh pool before it is published.
// A failing hook discards the pool and the attempt counts as failed.
func (c *Connector) OnReady(fn func(ctx context.Context, pool Pool) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReady = append(c.onReady, fn)
}

// Ready reports whether a pool is available.
func (c *Connector) Ready() bool {
	return c.pool.Load() != nil
}

// Connect makes one bounded connection attempt. It is a no-op once ready.
func (c *Connector) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Ready() {
		return nil
	}

	if c.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		defer cancel()
	}

	pool, err := NewPool(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	for _, fn := range c.onReady {
		if err := fn(ctx, pool); err != nil {
			pool.Close()
			return err
		}
	}

	c.pool.Store(pool)
	return nil
}

// Run retries Connect until it succeeds or ctx is cancelled.
func (c *Connector) Run(ctx context.Context) {
	interval := c.cfg.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !c.Ready() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := c.Connect(ctx); err != nil {
			c.log.Warn().Err(err).Dur("retry_in", interval).Msg("Database still unavailable")
			continue
		}
		c.log.Info().Msg("Database connection established after retry")
	}
}

// Close releases the pool if one was opened.
func (c *Connector) Close() {
	if p := c.pool.Swap(nil); p != nil {
		p.Close()
	}
}

func (c *Connector) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p := c.pool.Load()
	if p == nil {
		return pgconn.CommandTag{}, apperror.ErrDatabaseNotReady()
	}
	return p.Exec(ctx, sql, args...)
}

func (c *Connector) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	p := c.pool.Load()
	if p == nil {
		return nil, apperror.ErrDatabaseNotReady()
	}
	return p.Query(ctx, sql, args...)
}

func (c *Connector) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p := c.pool.Load()
	if p == nil {
		return errRow{err: apperror.ErrDatabaseNotReady()}
	}
	return p.QueryRow(ctx, sql, args...)
}

func (c *Connector) Begin(ctx context.Context) (pgx.Tx, error) {
	p := c.pool.Load()
	if p == nil {
		return nil, apperror.ErrDatabaseNotReady()
	}
	return p.Begin(ctx)
}

func (c *Connector) Ping(ctx context.Context) error {
	p := c.pool.Load()
	if p == nil {
		return apperror.ErrDatabaseNotReady()
	}
	return p.Ping(ctx)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

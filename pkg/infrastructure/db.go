package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// auditMaxConns is small: one insert per generated curriculum.
const auditMaxConns = 4

// NewJobsPool connects to the generation audit database. An empty dsn
// disables auditing and returns a nil pool.
func NewJobsPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, nil
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse jobs dsn: %w", err)
	}
	if cfg.MaxConns > auditMaxConns {
		cfg.MaxConns = auditMaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.ConnectConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect jobs db: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping jobs db: %w", err)
	}
	return pool, nil
}

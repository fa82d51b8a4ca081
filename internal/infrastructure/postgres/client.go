package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fastygo/blog/internal/config"
)

const pingTimeout = 5 * time.Second

// NewPool builds the pgx pool. Only a malformed URL is an error: an unreachable server is
// logged and left to the connection monitor, since pgxpool dials lazily.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pgxCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		pgxCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pgxCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pgxCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("host", pgxCfg.ConnConfig.Host),
		zap.String("db", pgxCfg.ConnConfig.Database),
	}
	if err := Probe(pool)(ctx); err != nil {
		logger.Warn("postgres unreachable at startup", append(fields, zap.Error(err))...)
		return pool, nil
	}
	logger.Info("connected to postgres", fields...)
	return pool, nil
}

// Probe returns a bounded ping suitable for the connection monitor.
func Probe(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return pool.Ping(pingCtx)
	}
}

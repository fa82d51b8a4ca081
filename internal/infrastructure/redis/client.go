package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/blog/internal/config"
)

const pingTimeout = 3 * time.Second

// NewClient parses the Redis URL and returns a client. A failed startup ping is logged, not
// returned: mail falls back to the local buffer until Redis comes back.
func NewClient(cfg config.RedisConfig, logger *zap.Logger) (*goRedis.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := goRedis.NewClient(opts)
	if err := Probe(client)(context.Background()); err != nil {
		logger.Warn("redis unreachable at startup, mail will be buffered",
			zap.String("addr", opts.Addr), zap.Error(err))
		return client, nil
	}
	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}

func Probe(client goRedis.UniversalClient) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}
}

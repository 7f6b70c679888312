package idempotency

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the idempotency store chosen by configuration.
var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Invoke(registerLifecycle),
)

// NewStore returns a Redis store when REDIS_ADDR is set and an in-process store otherwise.
func NewStore(cfg *config.Config, logger *slog.Logger) Store {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured, idempotency keys kept in memory")
		return NewMemoryStore(cfg.IdempotencyTTL)
	}
	return NewRedisStore(cfg.RedisAddr, cfg.IdempotencyTTL)
}

func registerLifecycle(lc fx.Lifecycle, store Store) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
}

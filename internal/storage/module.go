// Package storage selects the repository backend from configuration.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/memory"
	"github.com/polkiloo/storefront/internal/storage/postgres"
)

// Module provides repository.Factory: PostgreSQL when DATABASE_URI is set, in-memory otherwise.
var Module = fx.Provide(newFactory)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("database uri not configured, using in-memory storage")
		return memory.New(), nil
	}

	store, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	registerLifecycle(p.Lifecycle, store)
	return store, nil
}

func registerLifecycle(lc fx.Lifecycle, store *postgres.Storage) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			store.Close()
			return nil
		},
	})
}

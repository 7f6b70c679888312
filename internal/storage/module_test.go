package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/storage/memory"
	"github.com/polkiloo/storefront/internal/storage/postgres"
)

func TestNewFactorySelectsMemoryWithoutDSN(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lc := fxtest.NewLifecycle(t)

	factory, err := newFactory(factoryParams{Ctx: context.Background(), Config: &config.Config{}, Logger: logger, Lifecycle: lc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := factory.(*memory.Storage); !ok {
		t.Fatalf("expected memory storage, got %T", factory)
	}
}

func TestNewFactoryPropagatesPostgresError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lc := fxtest.NewLifecycle(t)

	_, err := newFactory(factoryParams{Ctx: context.Background(), Config: &config.Config{DatabaseURI: ":://bad"}, Logger: logger, Lifecycle: lc})
	if err == nil {
		t.Fatal("expected dsn error")
	}
}

func TestRegisterLifecycleClosesStorage(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, &postgres.Storage{})

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

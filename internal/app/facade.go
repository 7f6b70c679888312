package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/idempotency"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/usecase"
)

// StorefrontFacade exposes use cases to the HTTP layer and adds idempotent order creation.
type StorefrontFacade struct {
	orders      *usecase.OrderUseCase
	catalog     *usecase.CatalogUseCase
	customers   *usecase.CustomerUseCase
	idempotency idempotency.Store
	health      handlers.HealthChecker
	logger      *slog.Logger
}

func NewStorefrontFacade(
	orders *usecase.OrderUseCase,
	catalog *usecase.CatalogUseCase,
	customers *usecase.CustomerUseCase,
	keys idempotency.Store,
	store repository.Factory,
	logger *slog.Logger,
) *StorefrontFacade {
	return &StorefrontFacade{
		orders:      orders,
		catalog:     catalog,
		customers:   customers,
		idempotency: keys,
		health:      store,
		logger:      logger,
	}
}

// CreateOrder creates an order. With a non-empty key a repeated request returns the
// order created by the first one and replay is true.
func (f *StorefrontFacade) CreateOrder(ctx context.Context, key, customerName string, lines []model.LineRequest) (*model.Order, bool, error) {
	if key == "" {
		order, err := f.orders.Create(ctx, customerName, lines)
		return order, false, err
	}

	orderID, replay, err := f.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if replay {
		order, err := f.orders.Get(ctx, orderID)
		if err != nil {
			return nil, false, fmt.Errorf("load replayed order: %w", err)
		}
		return order, true, nil
	}

	// the key must settle even when the client went away
	settleCtx := context.WithoutCancel(ctx)
	order, err := f.orders.Create(ctx, customerName, lines)
	if err != nil {
		if releaseErr := f.idempotency.Release(settleCtx, key); releaseErr != nil {
			f.logger.Warn("release idempotency key failed", slog.String("key", key), slog.String("error", releaseErr.Error()))
		}
		return nil, false, err
	}
	if err := f.idempotency.Complete(settleCtx, key, order.ID); err != nil {
		f.logger.Warn("store idempotency result failed", slog.String("key", key), slog.String("order_id", order.ID), slog.String("error", err.Error()))
	}
	return order, false, nil
}

func (f *StorefrontFacade) UpdateOrder(ctx context.Context, id string, customerName *string, lines []model.LineRequest) (*model.Order, error) {
	return f.orders.Update(ctx, id, customerName, lines)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Cancel(ctx, id)
}

func (f *StorefrontFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *StorefrontFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	return f.catalog.Create(ctx, in)
}

func (f *StorefrontFacade) ReplaceProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	return f.catalog.Replace(ctx, id, in)
}

func (f *StorefrontFacade) PatchProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	return f.catalog.Patch(ctx, id, in)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id string) error {
	return f.catalog.Delete(ctx, id)
}

func (f *StorefrontFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	return f.customers.Create(ctx, in)
}

func (f *StorefrontFacade) UpdateCustomer(ctx context.Context, id string, in model.CustomerInput) (*model.Customer, error) {
	return f.customers.Update(ctx, id, in)
}

func (f *StorefrontFacade) DeleteCustomer(ctx context.Context, id string) error {
	return f.customers.Delete(ctx, id)
}

func (f *StorefrontFacade) Customer(ctx context.Context, id string) (*model.Customer, error) {
	return f.customers.Get(ctx, id)
}

func (f *StorefrontFacade) Customers(ctx context.Context) ([]model.Customer, error) {
	return f.customers.List(ctx)
}

func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	// CreateOrder returns replay=true when idempotencyKey matched an earlier completed request.
	CreateOrder(ctx context.Context, idempotencyKey, customerName string, lines []model.LineRequest) (*model.Order, bool, error)
	UpdateOrder(ctx context.Context, id string, customerName *string, lines []model.LineRequest) (*model.Order, error)
	CancelOrder(ctx context.Context, id string) (*model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
}

// CatalogFacade provides product catalog operations.
type CatalogFacade interface {
	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error)
	ReplaceProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error)
	PatchProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Product(ctx context.Context, id string) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
}

// CustomerFacade provides customer operations.
type CustomerFacade interface {
	CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in model.CustomerInput) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	Customer(ctx context.Context, id string) (*model.Customer, error)
	Customers(ctx context.Context) ([]model.Customer, error)
}

// HealthChecker reports whether backing stores are reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	OrderFacade
	CatalogFacade
	CustomerFacade
	HealthChecker
}

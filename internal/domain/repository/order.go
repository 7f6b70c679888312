package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository is the order store. Inside a transaction Get locks the returned row
// until commit or rollback.
type OrderRepository interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Upsert(ctx context.Context, order *model.Order) error
	// ReferencesProduct reports whether an active order has a line for productID.
	ReferencesProduct(ctx context.Context, productID string) (bool, error)
}

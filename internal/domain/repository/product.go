package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository is the catalog store. Inside a transaction Get locks the returned row
// until commit or rollback.
type ProductRepository interface {
	Get(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Upsert(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}

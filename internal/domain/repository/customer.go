package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	Get(ctx context.Context, id string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Upsert(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id string) error
}

package repository

import "context"

// Tx exposes the stores bound to a single transaction. Writes become visible to other
// callers only after the transaction commits, and all of them commit together.
type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	// NextOrderNumber reserves the next order number. The reservation is released
	// if the transaction does not commit.
	NextOrderNumber(ctx context.Context) (int64, error)
}

// Transactor runs fn inside one transaction spanning the catalog and order stores.
// A non-nil error from fn, or a cancelled ctx, discards every write made through tx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Factory describes access to different domain repositories.
type Factory interface {
	Transactor
	Products() ProductRepository
	Orders() OrderRepository
	Customers() CustomerRepository
	HealthCheck(ctx context.Context) error
}

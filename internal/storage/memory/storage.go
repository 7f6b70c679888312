package memory

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const sequenceKey = "sequence:order_number"

// Storage keeps every collection in process memory. Mutations of products and orders go
// through transactions: rows are locked per key, writes are staged and applied in one step.
// Customers never take part in a stock movement, so their writes apply directly under mu.
type Storage struct {
	mu         sync.RWMutex
	products   map[string]model.Product
	orders     map[string]model.Order
	customers  map[string]model.Customer
	lastNumber int64

	locks *keyLocks
}

// New creates empty in-memory storage.
func New() *Storage {
	return &Storage{
		products:  make(map[string]model.Product),
		orders:    make(map[string]model.Order),
		customers: make(map[string]model.Customer),
		locks:     newKeyLocks(),
	}
}

// Products returns the catalog store outside of any transaction.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

// Orders returns the order store outside of any transaction.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

// Customers returns the customer store.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

// HealthCheck always succeeds for in-process storage.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}

// WithinTransaction executes fn with a fresh transaction and commits its staged writes
// when fn succeeds and ctx is still alive.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(context.Context, repository.Tx) error) error {
	tx := newTransaction(s)
	defer tx.releaseAll()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func productKey(id string) string { return "product:" + id }
func orderKey(id string) string   { return "order:" + id }

func sortProducts(items []model.Product) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func sortOrders(items []model.Order) {
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
}

// --- repositories outside of a transaction ---

type productRepository struct {
	storage *Storage
}

func (r *productRepository) Get(_ context.Context, id string) (*model.Product, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	p, ok := r.storage.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (r *productRepository) List(context.Context) ([]model.Product, error) {
	r.storage.mu.RLock()
	result := make([]model.Product, 0, len(r.storage.products))
	for _, p := range r.storage.products {
		result = append(result, p)
	}
	r.storage.mu.RUnlock()
	sortProducts(result)
	return result, nil
}

func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	return r.storage.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.Products().Upsert(ctx, product)
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.storage.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.Products().Delete(ctx, id)
	})
}

type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) Get(_ context.Context, id string) (*model.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	o, ok := r.storage.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o = o.Clone()
	return &o, nil
}

func (r *orderRepository) List(context.Context) ([]model.Order, error) {
	r.storage.mu.RLock()
	result := make([]model.Order, 0, len(r.storage.orders))
	for _, o := range r.storage.orders {
		result = append(result, o.Clone())
	}
	r.storage.mu.RUnlock()
	sortOrders(result)
	return result, nil
}

func (r *orderRepository) Upsert(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.Orders().Upsert(ctx, order)
	})
}

func (r *orderRepository) ReferencesProduct(_ context.Context, productID string) (bool, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	for _, o := range r.storage.orders {
		if !o.IsCancelled() && o.References(productID) {
			return true, nil
		}
	}
	return false, nil
}

type customerRepository struct {
	storage *Storage
}

func (r *customerRepository) Get(_ context.Context, id string) (*model.Customer, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	c, ok := r.storage.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepository) List(context.Context) ([]model.Customer, error) {
	r.storage.mu.RLock()
	result := make([]model.Customer, 0, len(r.storage.customers))
	for _, c := range r.storage.customers {
		result = append(result, c)
	}
	r.storage.mu.RUnlock()
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *customerRepository) Upsert(_ context.Context, customer *model.Customer) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	r.storage.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) Delete(_ context.Context, id string) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	if _, ok := r.storage.customers[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.storage.customers, id)
	return nil
}

package memory

import (
	"context"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// transaction stages writes and holds key locks until WithinTransaction returns.
type transaction struct {
	storage *Storage

	held   []string
	locked map[string]struct{}

	products        map[string]model.Product
	deletedProducts map[string]struct{}
	orders          map[string]model.Order
	nextNumber      int64
}

func newTransaction(s *Storage) *transaction {
	return &transaction{
		storage:         s,
		locked:          make(map[string]struct{}),
		products:        make(map[string]model.Product),
		deletedProducts: make(map[string]struct{}),
		orders:          make(map[string]model.Order),
	}
}

func (t *transaction) Products() repository.ProductRepository {
	return &txProductRepository{tx: t}
}

func (t *transaction) Orders() repository.OrderRepository {
	return &txOrderRepository{tx: t}
}

func (t *transaction) NextOrderNumber(ctx context.Context) (int64, error) {
	if err := t.lock(ctx, sequenceKey); err != nil {
		return 0, err
	}
	if t.nextNumber == 0 {
		t.storage.mu.RLock()
		t.nextNumber = t.storage.lastNumber
		t.storage.mu.RUnlock()
	}
	t.nextNumber++
	return t.nextNumber, nil
}

func (t *transaction) lock(ctx context.Context, key string) error {
	if _, ok := t.locked[key]; ok {
		return nil
	}
	if err := t.storage.locks.acquire(ctx, key); err != nil {
		return err
	}
	t.locked[key] = struct{}{}
	t.held = append(t.held, key)
	return nil
}

func (t *transaction) releaseAll() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.storage.locks.release(t.held[i])
	}
	t.held = nil
	t.locked = make(map[string]struct{})
}

func (t *transaction) commit() {
	s := t.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range t.deletedProducts {
		delete(s.products, id)
	}
	for id, p := range t.products {
		s.products[id] = p
	}
	for id, o := range t.orders {
		s.orders[id] = o
		if o.Number > s.lastNumber {
			s.lastNumber = o.Number
		}
	}
}

type txProductRepository struct {
	tx *transaction
}

func (r *txProductRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	if err := r.tx.lock(ctx, productKey(id)); err != nil {
		return nil, err
	}
	if _, gone := r.tx.deletedProducts[id]; gone {
		return nil, domainErrors.ErrNotFound
	}
	if p, ok := r.tx.products[id]; ok {
		return &p, nil
	}
	r.tx.storage.mu.RLock()
	p, ok := r.tx.storage.products[id]
	r.tx.storage.mu.RUnlock()
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (r *txProductRepository) List(context.Context) ([]model.Product, error) {
	r.tx.storage.mu.RLock()
	merged := make(map[string]model.Product, len(r.tx.storage.products))
	for id, p := range r.tx.storage.products {
		merged[id] = p
	}
	r.tx.storage.mu.RUnlock()

	for id := range r.tx.deletedProducts {
		delete(merged, id)
	}
	for id, p := range r.tx.products {
		merged[id] = p
	}
	result := make([]model.Product, 0, len(merged))
	for _, p := range merged {
		result = append(result, p)
	}
	sortProducts(result)
	return result, nil
}

func (r *txProductRepository) Upsert(ctx context.Context, product *model.Product) error {
	if err := r.tx.lock(ctx, productKey(product.ID)); err != nil {
		return err
	}
	delete(r.tx.deletedProducts, product.ID)
	r.tx.products[product.ID] = *product
	return nil
}

func (r *txProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	delete(r.tx.products, id)
	r.tx.deletedProducts[id] = struct{}{}
	return nil
}

type txOrderRepository struct {
	tx *transaction
}

func (r *txOrderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	if err := r.tx.lock(ctx, orderKey(id)); err != nil {
		return nil, err
	}
	if o, ok := r.tx.orders[id]; ok {
		o = o.Clone()
		return &o, nil
	}
	r.tx.storage.mu.RLock()
	o, ok := r.tx.storage.orders[id]
	r.tx.storage.mu.RUnlock()
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o = o.Clone()
	return &o, nil
}

func (r *txOrderRepository) List(context.Context) ([]model.Order, error) {
	r.tx.storage.mu.RLock()
	merged := make(map[string]model.Order, len(r.tx.storage.orders))
	for id, o := range r.tx.storage.orders {
		merged[id] = o
	}
	r.tx.storage.mu.RUnlock()

	for id, o := range r.tx.orders {
		merged[id] = o
	}
	result := make([]model.Order, 0, len(merged))
	for _, o := range merged {
		result = append(result, o.Clone())
	}
	sortOrders(result)
	return result, nil
}

func (r *txOrderRepository) Upsert(ctx context.Context, order *model.Order) error {
	if err := r.tx.lock(ctx, orderKey(order.ID)); err != nil {
		return err
	}
	r.tx.orders[order.ID] = order.Clone()
	return nil
}

func (r *txOrderRepository) ReferencesProduct(ctx context.Context, productID string) (bool, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range orders {
		if !orders[i].IsCancelled() && orders[i].References(productID) {
			return true, nil
		}
	}
	return false, nil
}

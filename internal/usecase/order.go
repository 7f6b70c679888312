package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/domain/stock"
	"github.com/polkiloo/storefront/internal/events"
)

const problemNoLines = "at least one line item is required"

// EventPublisher accepts committed order events for asynchronous delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Envelope)
}

// OrderUseCase is the order fulfillment engine. Every mutation runs in one transaction
// spanning the catalog and order stores, so stock and orders commit together.
type OrderUseCase struct {
	tx        repository.Transactor
	orders    repository.OrderRepository
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(store repository.Factory, publisher EventPublisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		tx:        store,
		orders:    store.Orders(),
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates requested lines against the catalog, debits stock and stores a new
// active order with the next order number.
func (u *OrderUseCase) Create(ctx context.Context, customerName string, lines []model.LineRequest) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, domainErrors.NewValidationError(problemNoLines)
	}

	var created *model.Order
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		products, err := lockProducts(ctx, tx.Products(), stock.ProductIDs(requestedLines(lines)))
		if err != nil {
			return err
		}

		items, problems := priceLines(lines, products)
		demand := stock.Reserve(items)
		for _, id := range demand.ProductIDs() {
			p := products[id]
			if p.StockQuantity < demand[id] {
				problems = append(problems, insufficientStock(p, demand[id]))
			}
		}
		if len(problems) > 0 {
			return domainErrors.NewValidationError(problems...)
		}

		now := u.now()
		if err := applyDelta(ctx, tx.Products(), products, demand, now, u.logger); err != nil {
			return err
		}

		number, err := tx.NextOrderNumber(ctx)
		if err != nil {
			return fmt.Errorf("next order number: %w", err)
		}

		order := &model.Order{
			ID:           uuid.NewString(),
			Number:       number,
			CustomerName: strings.TrimSpace(customerName),
			Items:        items,
			TotalAmount:  model.OrderTotal(items),
			Status:       model.OrderStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Orders().Upsert(ctx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.String("order_id", created.ID),
		slog.Int64("order_number", created.Number),
		slog.String("total", created.TotalAmount.StringFixed(2)),
	)
	u.publish(ctx, events.TypeOrderCreated, created)
	return created, nil
}

// Update replaces the lines of an active order, moving only the stock difference between
// the old and the new lines. Prices and names are snapshotted again from the catalog.
// A nil customerName keeps the stored one.
func (u *OrderUseCase) Update(ctx context.Context, id string, customerName *string, lines []model.LineRequest) (*model.Order, error) {
	var updated *model.Order
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		order, err := tx.Orders().Get(ctx, id)
		if err != nil {
			return err
		}
		if order.IsCancelled() {
			return domainErrors.ErrCancelledOrderImmutable
		}
		if len(lines) == 0 {
			return domainErrors.NewValidationError(problemNoLines)
		}

		products, err := lockProducts(ctx, tx.Products(), stock.ProductIDs(order.Items, requestedLines(lines)))
		if err != nil {
			return err
		}

		items, problems := priceLines(lines, products)
		delta := stock.Diff(order.Items, items)
		for _, pid := range delta.ProductIDs() {
			p, ok := products[pid]
			if ok && delta[pid] > 0 && p.StockQuantity < delta[pid] {
				problems = append(problems, insufficientStock(p, delta[pid]))
			}
		}
		if len(problems) > 0 {
			return domainErrors.NewValidationError(problems...)
		}

		now := u.now()
		if err := applyDelta(ctx, tx.Products(), products, delta, now, u.logger); err != nil {
			return err
		}

		order.Items = items
		order.TotalAmount = model.OrderTotal(items)
		if customerName != nil {
			order.CustomerName = strings.TrimSpace(*customerName)
		}
		order.UpdatedAt = now
		if err := tx.Orders().Upsert(ctx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order updated",
		slog.String("order_id", updated.ID),
		slog.Int64("order_number", updated.Number),
		slog.String("total", updated.TotalAmount.StringFixed(2)),
	)
	u.publish(ctx, events.TypeOrderUpdated, updated)
	return updated, nil
}

// Cancel returns every line of an active order to stock and marks it cancelled.
// Cancelling an already cancelled order returns it unchanged.
func (u *OrderUseCase) Cancel(ctx context.Context, id string) (*model.Order, error) {
	var (
		cancelled *model.Order
		noop      bool
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		order, err := tx.Orders().Get(ctx, id)
		if err != nil {
			return err
		}
		if order.IsCancelled() {
			cancelled, noop = order, true
			return nil
		}

		products, err := lockProducts(ctx, tx.Products(), stock.ProductIDs(order.Items))
		if err != nil {
			return err
		}

		credit := stock.Diff(order.Items, nil)
		now := u.now()
		if err := applyDelta(ctx, tx.Products(), products, credit, now, u.logger); err != nil {
			return err
		}

		order.Status = model.OrderStatusCancelled
		order.UpdatedAt = now
		if err := tx.Orders().Upsert(ctx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if noop {
		return cancelled, nil
	}

	u.logger.Info("order cancelled",
		slog.String("order_id", cancelled.ID),
		slog.Int64("order_number", cancelled.Number),
	)
	u.publish(ctx, events.TypeOrderCancelled, cancelled)
	return cancelled, nil
}

// Get returns a committed order by id.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// List returns committed orders sorted by order number.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

func (u *OrderUseCase) publish(ctx context.Context, eventType string, order *model.Order) {
	if u.publisher == nil {
		return
	}
	u.publisher.Publish(ctx, events.NewOrderEvent(eventType, order, u.now()))
}

// lockProducts loads ids in the given (sorted) order, locking each row. Unknown ids are
// absent from the result.
func lockProducts(ctx context.Context, repo repository.ProductRepository, ids []string) (map[string]*model.Product, error) {
	products := make(map[string]*model.Product, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		p, err := repo.Get(ctx, id)
		if errors.Is(err, domainErrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", id, err)
		}
		products[id] = p
	}
	return products, nil
}

// priceLines turns requests into line items snapshotting current price and name.
// Invalid lines are reported and left out of the result.
func priceLines(lines []model.LineRequest, products map[string]*model.Product) ([]model.LineItem, []string) {
	var (
		items    []model.LineItem
		problems []string
	)
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			problems = append(problems, fmt.Sprintf("invalid product %q", line.ProductID))
			continue
		}
		if line.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("invalid quantity for %s", p.Name))
			continue
		}
		items = append(items, model.LineItem{
			ProductID:   p.ID,
			Quantity:    line.Quantity,
			UnitPrice:   p.UnitPrice,
			ProductName: p.Name,
		})
	}
	return items, problems
}

// applyDelta debits positive and credits negative entries. Products missing from the
// catalog can only appear with a credit; they are skipped.
func applyDelta(ctx context.Context, repo repository.ProductRepository, products map[string]*model.Product, delta stock.Delta, now time.Time, logger *slog.Logger) error {
	for _, id := range delta.ProductIDs() {
		p, ok := products[id]
		if !ok {
			logger.Warn("restock skipped for missing product",
				slog.String("product_id", id),
				slog.Int64("quantity", -delta[id]),
			)
			continue
		}
		p.StockQuantity -= delta[id]
		p.UpdatedAt = now
		if err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("store product %s: %w", id, err)
		}
	}
	return nil
}

func requestedLines(lines []model.LineRequest) []model.LineItem {
	items := make([]model.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.LineItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return items
}

func insufficientStock(p *model.Product, requested int64) string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", p.Name, requested, p.StockQuantity)
}

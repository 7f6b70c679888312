package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

var stubTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, string, string, []model.LineRequest) (*model.Order, bool, error)
	UpdateFn func(context.Context, string, *string, []model.LineRequest) (*model.Order, error)
	CancelFn func(context.Context, string) (*model.Order, error)
	OrderFn  func(context.Context, string) (*model.Order, error)
	OrdersFn func(context.Context) ([]model.Order, error)
}

// SampleOrder returns an active single line order.
func SampleOrder(id string) *model.Order {
	price := decimal.RequireFromString("2.50")
	items := []model.LineItem{{ProductID: "p1", ProductName: "Widget", Quantity: 2, UnitPrice: price}}
	return &model.Order{
		ID:          id,
		Number:      1,
		Items:       items,
		TotalAmount: model.OrderTotal(items),
		Status:      model.OrderStatusActive,
		CreatedAt:   stubTime,
		UpdatedAt:   stubTime,
	}
}

// CreateOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, key, customerName string, lines []model.LineRequest) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, key, customerName, lines)
	}
	order := SampleOrder("o1")
	order.CustomerName = customerName
	return order, false, nil
}

// UpdateOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, id string, customerName *string, lines []model.LineRequest) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, customerName, lines)
	}
	return SampleOrder(id), nil
}

// CancelOrder returns a cancelled order by default.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, id string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	order := SampleOrder(id)
	order.Status = model.OrderStatusCancelled
	return order, nil
}

// Order returns configured order.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return SampleOrder(id), nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{*SampleOrder("o1")}, nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	CreateFn   func(context.Context, model.ProductInput) (*model.Product, error)
	ReplaceFn  func(context.Context, string, model.ProductInput) (*model.Product, error)
	PatchFn    func(context.Context, string, model.ProductInput) (*model.Product, error)
	DeleteFn   func(context.Context, string) error
	ProductFn  func(context.Context, string) (*model.Product, error)
	ProductsFn func(context.Context) ([]model.Product, error)
}

// SampleProduct returns a stocked product.
func SampleProduct(id string) *model.Product {
	return &model.Product{
		ID:            id,
		Name:          "Widget",
		UnitPrice:     decimal.RequireFromString("2.5"),
		StockQuantity: 10,
		CreatedAt:     stubTime,
		UpdatedAt:     stubTime,
	}
}

// CreateProduct delegates to provided function or echoes the input name.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	p := SampleProduct("p1")
	if in.Name != nil {
		p.Name = *in.Name
	}
	return p, nil
}

// ReplaceProduct delegates to provided function or returns default product.
func (s CatalogFacadeStub) ReplaceProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, id, in)
	}
	return SampleProduct(id), nil
}

// PatchProduct delegates to provided function or returns default product.
func (s CatalogFacadeStub) PatchProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	if s.PatchFn != nil {
		return s.PatchFn(ctx, id, in)
	}
	return SampleProduct(id), nil
}

// DeleteProduct executes configured delete handler.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// Product returns configured product.
func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return SampleProduct(id), nil
}

// Products returns predefined catalog.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{*SampleProduct("p1")}, nil
}

// CustomerFacadeStub simulates customer operations.
type CustomerFacadeStub struct {
	CreateFn    func(context.Context, model.CustomerInput) (*model.Customer, error)
	UpdateFn    func(context.Context, string, model.CustomerInput) (*model.Customer, error)
	DeleteFn    func(context.Context, string) error
	CustomerFn  func(context.Context, string) (*model.Customer, error)
	CustomersFn func(context.Context) ([]model.Customer, error)
}

func sampleCustomer(id string, in model.CustomerInput) *model.Customer {
	return &model.Customer{ID: id, Name: in.Name, Phone: in.Phone, Email: in.Email, CreatedAt: stubTime, UpdatedAt: stubTime}
}

// CreateCustomer delegates to provided function or echoes the input.
func (s CustomerFacadeStub) CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	return sampleCustomer("c1", in), nil
}

// UpdateCustomer delegates to provided function or echoes the input.
func (s CustomerFacadeStub) UpdateCustomer(ctx context.Context, id string, in model.CustomerInput) (*model.Customer, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, in)
	}
	return sampleCustomer(id, in), nil
}

// DeleteCustomer executes configured delete handler.
func (s CustomerFacadeStub) DeleteCustomer(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// Customer returns configured customer.
func (s CustomerFacadeStub) Customer(ctx context.Context, id string) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, id)
	}
	return sampleCustomer(id, model.CustomerInput{Name: "Ana", Email: "ana@example.com"}), nil
}

// Customers returns predefined customers.
func (s CustomerFacadeStub) Customers(ctx context.Context) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx)
	}
	return []model.Customer{*sampleCustomer("c1", model.CustomerInput{Name: "Ana", Email: "ana@example.com"})}, nil
}

// StorefrontFacadeStub combines every facade stub used by the router.
type StorefrontFacadeStub struct {
	OrderFacadeStub
	CatalogFacadeStub
	CustomerFacadeStub
	HealthErr error
}

// HealthCheck returns configured error.
func (s StorefrontFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle. Cancelled is terminal.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// LineItem is a committed order line carrying the price and name snapshot taken at commit time.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ProductName string          `json:"product_name"`
}

// Subtotal returns quantity multiplied by the snapshotted unit price.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// LineRequest is a requested order line before validation.
type LineRequest struct {
	ProductID string
	Quantity  int64
}

// Order describes a customer order placed through the storefront.
type Order struct {
	ID           string
	Number       int64
	CustomerName string
	Items        []LineItem
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCancelled reports whether order reached the terminal state.
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// References reports whether any line of the order points at productID.
func (o *Order) References(productID string) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share line item slices.
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]LineItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

// OrderTotal sums line subtotals rounded to currency minor units.
func OrderTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// Package events describes order domain events and the sinks that publish them.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	TypeOrderCreated   = "order.created"
	TypeOrderUpdated   = "order.updated"
	TypeOrderCancelled = "order.cancelled"

	// Version is bumped on incompatible payload changes.
	Version  = 1
	Producer = "storefront"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID      string       `json:"event_id"`
	EventType    string       `json:"event_type"`
	EventVersion int          `json:"event_version"`
	OccurredAt   time.Time    `json:"occurred_at"`
	Producer     string       `json:"producer"`
	OrderID      string       `json:"order_id"`
	OrderNumber  int64        `json:"order_number"`
	Payload      OrderPayload `json:"payload"`
}

// OrderPayload is the order state after the committed change.
type OrderPayload struct {
	CustomerName string        `json:"customer_name,omitempty"`
	Status       string        `json:"status"`
	TotalAmount  string        `json:"total_amount"`
	Items        []ItemPayload `json:"items"`
}

type ItemPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// NewOrderEvent builds an envelope for order at the given moment.
func NewOrderEvent(eventType string, order *model.Order, at time.Time) Envelope {
	items := make([]ItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemPayload{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
		})
	}

	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: Version,
		OccurredAt:   at.UTC(),
		Producer:     Producer,
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		Payload: OrderPayload{
			CustomerName: order.CustomerName,
			Status:       string(order.Status),
			TotalAmount:  order.TotalAmount.StringFixed(2),
			Items:        items,
		},
	}
}

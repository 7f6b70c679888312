package dto

import (
	"encoding/json"
	"time"
)

// LineItemRequest is a requested order line. Quantity stays a raw number so that
// non-integer values reach validation instead of failing decoding.
type LineItemRequest struct {
	ProductID string      `json:"product_id"`
	Quantity  json.Number `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	CustomerName string            `json:"customer_name"`
	Items        []LineItemRequest `json:"items"`
}

// UpdateOrderRequest is the body of PUT /api/orders/:id. A missing customer_name keeps the stored one.
type UpdateOrderRequest struct {
	CustomerName *string           `json:"customer_name"`
	Items        []LineItemRequest `json:"items"`
}

// LineItemResponse is a committed order line.
type LineItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// OrderResponse represents an order returned by the API.
type OrderResponse struct {
	ID           string             `json:"id"`
	OrderNumber  int64              `json:"order_number"`
	CustomerName string             `json:"customer_name"`
	Items        []LineItemResponse `json:"items"`
	TotalAmount  string             `json:"total_amount"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

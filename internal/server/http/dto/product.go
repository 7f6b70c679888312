package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest is the body of product create, replace and patch requests.
// Absent fields decode to nil.
type ProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	StockQuantity *json.Number     `json:"stock_quantity"`
}

// ProductResponse represents a catalog product.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	UnitPrice     string    `json:"unit_price"`
	StockQuantity int64     `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with its available stock.
type Product struct {
	ID            string
	Name          string
	Description   string
	UnitPrice     decimal.Decimal
	StockQuantity int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductInput carries catalog fields from a request. A nil field was not supplied.
type ProductInput struct {
	Name          *string
	Description   *string
	UnitPrice     *decimal.Decimal
	StockQuantity *int64
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse is one price observation in API responses.
type StockResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// PricePoint is one (price, observed_at) pair in a price history response,
// ordered chronological ascending.
type PricePoint struct {
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observed_at"`
}

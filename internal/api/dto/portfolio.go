package dto

import (
	"github.com/shopspring/decimal"
)

// TradeMode selects the direction of a trade.
type TradeMode string

const (
	TradeModeBuy  TradeMode = "buy"
	TradeModeSell TradeMode = "sell"
)

// TradeRequest is the DTO for a buy or sell instruction. The mode arrives
// out of band via the route, the user via the auth token.
type TradeRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Validate checks instruction shape. Oversell is checked later against the
// position itself.
func (r *TradeRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.Name == "" || len(r.Name) > 10 {
		errs["name"] = "must be between 1 and 10 characters"
	}
	if r.Quantity <= 0 {
		errs["quantity"] = "must be a positive integer"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PositionResponse is a user's holding in API responses. LatestPrice is
// resolved from the price catalog at read time, never stored on the
// position.
type PositionResponse struct {
	ID             uint             `json:"id"`
	StockName      string           `json:"stock_name"`
	Quantity       int              `json:"quantity"`
	InvestedAmount decimal.Decimal  `json:"invested_amount"`
	LatestPrice    *decimal.Decimal `json:"latest_price,omitempty"`
}

// TradeResponse is the result of a trade. Liquidated marks a full sell:
// the returned position is the deleted snapshot and is no longer
// retrievable.
type TradeResponse struct {
	Position   PositionResponse `json:"position"`
	Liquidated bool             `json:"liquidated"`
}

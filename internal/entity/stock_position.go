package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPosition is a user's holding in one stock: quantity owned and the
// cumulative amount invested. At most one position exists per
// (user, stock name) pair, enforced by a database constraint.
type StockPosition struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"uniqueIndex:idx_user_stock_name;not null" json:"user_id"`
	User           User            `json:"-"`
	StockName      string          `gorm:"size:10;uniqueIndex:idx_user_stock_name;not null" json:"stock_name"`
	StockID        uint            `gorm:"not null" json:"stock_id"`
	Stock          Stock           `json:"-"`
	Quantity       int             `gorm:"not null;default:0" json:"quantity"`
	InvestedAmount decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"invested_amount"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StockPosition) TableName() string {
	return "stock_positions"
}

// AverageCost returns the per-share cost basis. Undefined for an empty
// position; callers must check Quantity first.
func (p *StockPosition) AverageCost() decimal.Decimal {
	return p.InvestedAmount.Div(decimal.NewFromInt(int64(p.Quantity)))
}

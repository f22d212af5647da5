package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is one recorded price observation for a stock name. Rows are
// append-only; the latest price for a name is the row with the greatest
// created_at, ties broken by id descending.
type Stock struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:10;index;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,6);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Stock) TableName() string {
	return "stocks"
}

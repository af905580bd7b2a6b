package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is a sellable product. Stock is always held in SmallestUnit
// (the canonical unit); checkout converts whatever unit the register used
// into SmallestUnit before touching Stock.
type StockItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	Category string    `gorm:"not null;default:'umum'"`
	// SmallestUnit is one of pcs | gram | ons | kg.
	SmallestUnit string `gorm:"not null;default:'pcs'"`
	// PiecesPerBox must be set when "box" appears in Units.
	PiecesPerBox *int
	Units        UnitList `gorm:"type:jsonb;not null"`
	PricePerUnit PriceMap `gorm:"type:jsonb;not null"`
	// Stock is the on-hand quantity in SmallestUnit. Target state is >= 0;
	// settlement clamps oversold lines to zero rather than going negative.
	Stock float64 `gorm:"not null;default:0"`
	// StockValue is the total monetary value of on-hand stock; Stock and
	// StockValue together give the per-unit cost basis at settlement time.
	StockValue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (StockItem) TableName() string { return "stock_items" }

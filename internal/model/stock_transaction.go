package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockTransaction is one append-only audit record per cart line per commit.
// Quantity always carries the FULL requested canonical quantity even when the
// settlement clamped the actual removal; StockWorth carries the value that was
// actually removed. The pair plus IsStockDiscrepant shows what was asked for
// versus what the shelf could give.
type StockTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemName      string    `gorm:"not null"`
	Category      string    `gorm:"not null"`
	// Quantity is the requested removal in the item's canonical unit.
	Quantity float64 `gorm:"not null"`
	Unit     string  `gorm:"not null"` // the canonical unit
	// OriginalQuantity/OriginalUnit echo what the operator keyed in.
	OriginalQuantity  float64         `gorm:"not null"`
	OriginalUnit      string          `gorm:"not null"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockWorth        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IsStockDiscrepant bool            `gorm:"not null;default:false"`
	CreatedBy         string          `gorm:"not null"`
	CreatedAt         time.Time
}

func (StockTransaction) TableName() string { return "stock_transactions" }

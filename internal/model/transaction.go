package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDetail is the durable record of one completed sale.
// Created exactly once per checkout commit, never mutated afterward.
type TransactionDetail struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Code is the human-readable receipt number (TRX-YYYYMMDDHHMMSS-xxxx).
	// The UUID primary key is authoritative; Code exists for paper receipts.
	Code            string          `gorm:"uniqueIndex;not null"`
	Total           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	VoucherID       *uuid.UUID      `gorm:"type:uuid"`
	VoucherName     *string
	DiscountedTotal *decimal.Decimal `gorm:"type:decimal(14,2)"`
	AmountPaid      decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	Change          decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	CreatedBy       string           `gorm:"not null"`
	CreatedAt       time.Time

	Items []TransactionItem `gorm:"foreignKey:TransactionID"`
}

func (TransactionDetail) TableName() string { return "transaction_details" }

// TransactionItem is one line of a TransactionDetail. Mass quantities are
// normalized to kilograms at write time regardless of the unit the operator
// used at the register; pcs and box lines keep their original unit.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	Name          string          `gorm:"not null"`
	Quantity      float64         `gorm:"not null"`
	Unit          string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

func (TransactionItem) TableName() string { return "transaction_items" }

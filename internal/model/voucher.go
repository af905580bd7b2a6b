package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Voucher is a single-use absolute-amount discount owned by a member.
// IsClaimed is terminal: it is set exactly once, by a successful checkout.
type Voucher struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"not null"`
	MemberName string          `gorm:"not null"`
	Value      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive   bool            `gorm:"not null;default:true"`
	IsClaimed  bool            `gorm:"not null;default:false"`
	ActiveDate time.Time       `gorm:"not null"`
	ExpireDate time.Time       `gorm:"not null"`
	ClaimedAt  *time.Time
	CreatedAt  time.Time
}

package dto

import "github.com/shopspring/decimal"

// VoucherResponse is the register's view of a voucher validation. When the
// voucher is rejected, Reason is always the same generic message — which
// condition failed is deliberately not disclosed at the register.
type VoucherResponse struct {
	Valid      bool             `json:"valid"`
	Reason     string           `json:"reason,omitempty"`
	ID         string           `json:"id,omitempty"`
	Name       string           `json:"name,omitempty"`
	MemberName string           `json:"member_name,omitempty"`
	Value      *decimal.Decimal `json:"value,omitempty"`
}

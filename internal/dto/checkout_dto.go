package dto

import "github.com/shopspring/decimal"

type CheckoutRequest struct {
	CartID     string          `json:"cart_id"     validate:"required"`
	VoucherID  *string         `json:"voucher_id"  validate:"omitempty,uuid"`
	AmountPaid decimal.Decimal `json:"amount_paid" validate:"required"`
}

// Discrepancy names one cart line that asked for more canonical units than
// the shelf had at scan time. The sale still commits; the register shows a
// warning so someone checks the backroom count.
type Discrepancy struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	RequestedQty float64 `json:"requested_qty"`
	Available    float64 `json:"available_stock"`
}

type CheckoutResponse struct {
	TransactionID   string           `json:"transaction_id"`
	Code            string           `json:"code"`
	Total           decimal.Decimal  `json:"total"`
	DiscountedTotal *decimal.Decimal `json:"discounted_total,omitempty"`
	AmountPaid      decimal.Decimal  `json:"amount_paid"`
	Change          decimal.Decimal  `json:"change"`
	Discrepancies   []Discrepancy    `json:"discrepancies,omitempty"`
	Warning         string           `json:"warning,omitempty"`
	Receipt         string           `json:"receipt"` // "queued" once the print job is dispatched
	CreatedAt       string           `json:"created_at"`
}

package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AddItemRequest adds a product to the cart, or merges into an existing line.
// Mode "scanner" is the barcode path (whole-unit increments, unit must match);
// "manual" sums quantities in canonical units.
type AddItemRequest struct {
	ItemID   string  `json:"item_id"  validate:"required,uuid"`
	Unit     string  `json:"unit"     validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Mode     string  `json:"mode"     validate:"omitempty,oneof=scanner manual"`
}

// SetQuantityRequest replaces a line's quantity; zero removes the line.
type SetQuantityRequest struct {
	Quantity float64 `json:"quantity" validate:"min=0"`
}

type ChangeUnitRequest struct {
	Unit string `json:"unit" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CartLineResponse struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Units    []string        `json:"units"`
}

type CartResponse struct {
	ID    string             `json:"id"`
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

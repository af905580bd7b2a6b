// Package cart holds the in-progress sale: one line per distinct product,
// each with its own unit and quantity. A cart lives for exactly one checkout
// session and is discarded after a successful commit.
package cart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/unit"
)

// Mode selects how a repeated add of the same product is merged.
type Mode string

const (
	// ModeScanner is the barcode path: whole-unit increments, unit must match.
	ModeScanner Mode = "scanner"
	// ModeManual sums existing and incoming quantity in canonical units.
	ModeManual Mode = "manual"
)

var (
	ErrUnitMismatch = errors.New("different unit")
	ErrLineNotFound = errors.New("item is not in the cart")
	ErrUnitNotSold  = errors.New("unit is not valid for this item")
	ErrNoPrice      = errors.New("no price configured for this unit")
)

// Snapshot freezes the product attributes a line needs, taken from the
// catalog cache when the line is added. Staleness is bounded by the cache TTL.
type Snapshot struct {
	ItemID       uuid.UUID                  `json:"item_id"`
	Name         string                     `json:"name"`
	Category     string                     `json:"category"`
	SmallestUnit string                     `json:"smallest_unit"`
	PiecesPerBox int                        `json:"pieces_per_box"`
	Units        []string                   `json:"units"`
	PricePerUnit map[string]decimal.Decimal `json:"price_per_unit"`
}

func (s Snapshot) product() unit.Product {
	return unit.Product{SmallestUnit: s.SmallestUnit, PiecesPerBox: s.PiecesPerBox}
}

func (s Snapshot) sells(u string) bool {
	for _, v := range s.Units {
		if v == u {
			return true
		}
	}
	return false
}

// Line is one product entry in the cart.
type Line struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Snapshot Snapshot        `json:"snapshot"`
}

// Cart is the register's working state for one sale.
type Cart struct {
	ID    string `json:"id"`
	Lines []Line `json:"lines"`
}

func New() *Cart {
	return &Cart{ID: uuid.NewString()}
}

// AddOrMerge inserts a new line for the product or merges into the existing
// one. Scanner mode requires the units to match and adds a unit-specific
// increment per scan (100 for gram, 1 otherwise); manual mode sums the two
// quantities in canonical units so mixed-unit entry stays exact.
func (c *Cart) AddOrMerge(s Snapshot, u string, qty float64, mode Mode) error {
	price, err := unitPrice(s, u)
	if err != nil {
		return err
	}

	idx := c.lineIndex(s.ItemID)
	if idx < 0 {
		c.Lines = append(c.Lines, Line{
			ItemID:   s.ItemID,
			Name:     s.Name,
			Quantity: qty,
			Unit:     u,
			Price:    price,
			Subtotal: lineSubtotal(price, qty),
			Snapshot: s,
		})
		return nil
	}

	line := &c.Lines[idx]
	switch mode {
	case ModeScanner:
		if line.Unit != u {
			return ErrUnitMismatch
		}
		line.Quantity += unit.ScannerIncrement(u)
	default: // ModeManual
		p := line.Snapshot.product()
		existing, err := unit.ToCanonical(line.Quantity, line.Unit, p)
		if err != nil {
			return err
		}
		incoming, err := unit.ToCanonical(qty, u, p)
		if err != nil {
			return err
		}
		merged, err := unit.FromCanonical(existing+incoming, line.Unit, p)
		if err != nil {
			return err
		}
		line.Quantity = merged
	}
	line.Subtotal = lineSubtotal(line.Price, line.Quantity)
	return nil
}

// ChangeUnit converts the line's quantity into newUnit and reprices it from
// the snapshot's per-unit price table.
func (c *Cart) ChangeUnit(itemID uuid.UUID, newUnit string) error {
	idx := c.lineIndex(itemID)
	if idx < 0 {
		return ErrLineNotFound
	}
	line := &c.Lines[idx]
	price, err := unitPrice(line.Snapshot, newUnit)
	if err != nil {
		return err
	}
	p := line.Snapshot.product()
	canonical, err := unit.ToCanonical(line.Quantity, line.Unit, p)
	if err != nil {
		return err
	}
	qty, err := unit.FromCanonical(canonical, newUnit, p)
	if err != nil {
		return err
	}
	line.Unit = newUnit
	line.Quantity = qty
	line.Price = price
	line.Subtotal = lineSubtotal(price, qty)
	return nil
}

// SetQuantity replaces the line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(itemID uuid.UUID, qty float64) error {
	idx := c.lineIndex(itemID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if qty <= 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return nil
	}
	line := &c.Lines[idx]
	line.Quantity = qty
	line.Subtotal = lineSubtotal(line.Price, qty)
	return nil
}

// Total is always recomputed from the line subtotals — never maintained as a
// separate running counter, so it cannot drift.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

func (c *Cart) lineIndex(itemID uuid.UUID) int {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func unitPrice(s Snapshot, u string) (decimal.Decimal, error) {
	if !s.sells(u) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnitNotSold, u)
	}
	price, ok := s.PricePerUnit[u]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNoPrice, u)
	}
	return price, nil
}

func lineSubtotal(price decimal.Decimal, qty float64) decimal.Decimal {
	return price.Mul(decimal.NewFromFloat(qty))
}

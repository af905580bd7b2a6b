// Package unit converts quantities between the unit used at the register and
// a product's canonical smallest unit, in which its stock is always held.
//
// Mass units share a static gram table; "box" is per-product, sized by
// PiecesPerBox. Conversion failures are fatal to the single operation and are
// returned to the caller — never silently defaulted.
package unit

import (
	"errors"
	"fmt"
)

// gramFactors maps each mass unit to grams. pcs is carried with factor 1 so
// piece-counted products flow through the same arithmetic.
var gramFactors = map[string]float64{
	"ton":     1_000_000,
	"kwintal": 100_000,
	"kg":      1_000,
	"ons":     100,
	"gram":    1,
	"pcs":     1,
}

// canonicalUnits are the only legal values for a product's smallest unit.
var canonicalUnits = map[string]bool{
	"pcs":  true,
	"gram": true,
	"ons":  true,
	"kg":   true,
}

var (
	ErrUnknownUnit          = errors.New("unknown unit")
	ErrUnknownCanonicalUnit = errors.New("unknown canonical unit")
	ErrMissingPiecesPerBox  = errors.New("box conversion requires pieces per box")
)

// Product carries the two product attributes conversion depends on.
// PiecesPerBox 0 means the product has no box packaging.
type Product struct {
	SmallestUnit string
	PiecesPerBox int
}

// ToCanonical converts qty expressed in u into the product's smallest unit.
func ToCanonical(qty float64, u string, p Product) (float64, error) {
	if u == "box" {
		if p.PiecesPerBox <= 0 {
			return 0, fmt.Errorf("%w (product canonical unit %q)", ErrMissingPiecesPerBox, p.SmallestUnit)
		}
		return qty * float64(p.PiecesPerBox), nil
	}
	factor, ok := gramFactors[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, u)
	}
	base, err := canonicalFactor(p.SmallestUnit)
	if err != nil {
		return 0, err
	}
	return qty * factor / base, nil
}

// FromCanonical converts qty expressed in the product's smallest unit into u.
func FromCanonical(qty float64, u string, p Product) (float64, error) {
	if u == "box" {
		if p.PiecesPerBox <= 0 {
			return 0, fmt.Errorf("%w (product canonical unit %q)", ErrMissingPiecesPerBox, p.SmallestUnit)
		}
		return qty / float64(p.PiecesPerBox), nil
	}
	factor, ok := gramFactors[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, u)
	}
	base, err := canonicalFactor(p.SmallestUnit)
	if err != nil {
		return 0, err
	}
	return qty * base / factor, nil
}

func canonicalFactor(smallest string) (float64, error) {
	if !canonicalUnits[smallest] {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCanonicalUnit, smallest)
	}
	return gramFactors[smallest], nil
}

// IsMass reports whether u participates in the gram table as a true mass unit.
func IsMass(u string) bool {
	switch u {
	case "ton", "kwintal", "kg", "ons", "gram":
		return true
	}
	return false
}

// ToKilograms normalizes a mass quantity to kilograms for durable storage.
// Non-mass units (pcs, box) are returned unchanged with ok=false.
func ToKilograms(qty float64, u string) (float64, bool) {
	if !IsMass(u) {
		return qty, false
	}
	return qty * gramFactors[u] / gramFactors["kg"], true
}

// ScannerIncrement is the quantity added per repeated scan of the same
// product: 100 for gram-priced lines, 1 for everything else.
func ScannerIncrement(u string) float64 {
	if u == "gram" {
		return 100
	}
	return 1
}

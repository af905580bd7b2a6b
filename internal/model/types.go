package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitList is stored as a JSONB column holding the units a product may be
// sold in (e.g. ["gram","kg","box"]).
type UnitList []string

func (u *UnitList) Scan(value interface{}) error {
	if value == nil {
		*u = UnitList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan UnitList: %v", value)
	}
	return json.Unmarshal(bytes, u)
}

func (u UnitList) Value() (driver.Value, error) {
	if u == nil {
		return "[]", nil
	}
	b, err := json.Marshal(u)
	return string(b), err
}

// Contains reports whether unit is a valid selling unit for the product.
func (u UnitList) Contains(unit string) bool {
	for _, s := range u {
		if s == unit {
			return true
		}
	}
	return false
}

// PriceMap maps a selling unit to its price in that unit, stored as JSONB.
type PriceMap map[string]decimal.Decimal

func (p *PriceMap) Scan(value interface{}) error {
	if value == nil {
		*p = PriceMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan PriceMap: %v", value)
	}
	return json.Unmarshal(bytes, p)
}

func (p PriceMap) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	return string(b), err
}

package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value rendered with two fractional digits.
// Prices and totals use this type so that JSON output is fixed-point
// ("50.00", never 50 or 5e1) and arithmetic never goes through floats.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal as a two-digit amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d}
}

// MarshalJSON renders the amount as a fixed-point string with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(2))
}

// UnitAmount is a per-unit monetary value rendered with four fractional
// digits, matching the precision dividends are announced at.
type UnitAmount struct {
	decimal.Decimal
}

// NewUnitAmount wraps a decimal as a four-digit per-unit amount.
func NewUnitAmount(d decimal.Decimal) UnitAmount {
	return UnitAmount{d}
}

// MarshalJSON renders the value as a fixed-point string with four decimals.
func (a UnitAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(4))
}

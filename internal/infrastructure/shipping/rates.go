// internal/infrastructure/shipping/rates.go
package shipping

import (
	"github.com/shopspring/decimal"
)

// RateTable maps a resolved region (state code) to its flat delivery
// rate. Regions absent from the table fall back to the configured
// default rate.
type RateTable struct {
	rates    map[string]decimal.Decimal
	fallback decimal.Decimal
}

// NewRateTable builds a rate table with the given fallback rate
func NewRateTable(rates map[string]decimal.Decimal, fallback decimal.Decimal) *RateTable {
	return &RateTable{rates: rates, fallback: fallback}
}

// DefaultRateTable returns the shop's delivery rates. The shop ships
// from Rio de Janeiro; neighboring states cost more.
func DefaultRateTable(fallback decimal.Decimal) *RateTable {
	return NewRateTable(map[string]decimal.Decimal{
		"RJ": decimal.RequireFromString("15.00"),
		"SP": decimal.RequireFromString("25.00"),
		"MG": decimal.RequireFromString("25.00"),
		"ES": decimal.RequireFromString("22.00"),
	}, fallback)
}

// RateFor returns the delivery rate for a region
func (t *RateTable) RateFor(region string) decimal.Decimal {
	if rate, ok := t.rates[region]; ok {
		return rate
	}
	return t.fallback
}

// Package calculator computes tax breakdowns and totals for expense bills.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRate is returned for a VAT rate outside 0..100.
var ErrInvalidRate = errors.New("VAT rate must be between 0 and 100")

var hundred = decimal.NewFromInt(100)

// VAT is the tax breakdown of an amount including tax.
type VAT struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// SplitVAT breaks a tax-inclusive total into net and tax at rate pct.
// Based on: tax = total × pct / (100 + pct), rounded to the cent.
func SplitVAT(total decimal.Decimal, pct int) (VAT, error) {
	if pct < 0 || pct > 100 {
		return VAT{}, ErrInvalidRate
	}
	if total.IsNegative() {
		return VAT{}, fmt.Errorf("total cannot be negative: %s", total)
	}

	rate := decimal.NewFromInt(int64(pct))
	tax := total.Mul(rate).Div(rate.Add(hundred)).Round(2)
	return VAT{
		Net:   total.Sub(tax),
		Tax:   tax,
		Total: total,
	}, nil
}

// Package pricing holds the money arithmetic shared by sales, purchases and edition ledgers.
//
// Amounts are stored as float64 in two-decimal units. Every computed amount goes through
// Round2, which converts operands to their shortest decimal representation, computes exactly
// and rounds half away from zero (2.675 -> 2.68, 0.125 -> 0.13, -0.125 -> -0.13).
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativePortions is returned when a sale carries fewer than zero portions.
	ErrNegativePortions = errors.New("total_portions must be >= 0")
	// ErrPriceNotSet is returned when a sale references an edition without a portion price.
	ErrPriceNotSet = errors.New("edition portion price is not set")
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func optDec(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return dec(*v)
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Round2 rounds x to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return round2(dec(x))
}

// Subtotal is Round2(quantity * unitPrice) with the product taken exactly.
func Subtotal(quantity, unitPrice float64) float64 {
	return round2(dec(quantity).Mul(dec(unitPrice)))
}

// Add sums already rounded amounts and rounds the result again.
func Add(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(dec(a))
	}
	return round2(total)
}

// SumQuantity adds quantities exactly without rounding them to cents.
func SumQuantity(a, b float64) float64 {
	return dec(a).Add(dec(b)).InexactFloat64()
}

// SaleInput carries the values a sale total depends on.
type SaleInput struct {
	Portions       int64
	PortionPrice   *float64
	Discount       *float64
	AdditionalCost *float64
}

// SaleTotal computes portions*price - discount + additional, clamped at zero and rounded.
func SaleTotal(in SaleInput) (float64, error) {
	if in.Portions < 0 {
		return 0, ErrNegativePortions
	}
	if in.PortionPrice == nil {
		return 0, ErrPriceNotSet
	}
	total := decimal.NewFromInt(in.Portions).Mul(dec(*in.PortionPrice)).
		Sub(optDec(in.Discount)).
		Add(optDec(in.AdditionalCost))
	if total.IsNegative() {
		return 0, nil
	}
	return round2(total), nil
}

// Revenue is salesCount * portionPrice, or nil when the edition has no price.
func Revenue(salesCount int64, portionPrice *float64) *float64 {
	if portionPrice == nil {
		return nil
	}
	v := round2(decimal.NewFromInt(salesCount).Mul(dec(*portionPrice)))
	return &v
}

// NetProfit is salesCount * portionPrice - costs, or nil when the edition has no price.
func NetProfit(salesCount int64, portionPrice *float64, costs float64) *float64 {
	if portionPrice == nil {
		return nil
	}
	v := round2(decimal.NewFromInt(salesCount).Mul(dec(*portionPrice)).Sub(dec(costs)))
	return &v
}

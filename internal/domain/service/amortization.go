package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

// MonthlyInstallment computes the fixed French-system payment
//
//	r       = annualRatePercent / 1200
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// rounded half-up to whole currency units. The power is evaluated in float64
// and the result converted to decimal for rounding. A zero rate or term makes
// the denominator vanish and yields model.ErrDivisionDegenerate.
func MonthlyInstallment(principal decimal.Decimal, annualRatePercent float64, termMonths int) (decimal.Decimal, error) {
	if termMonths < 0 {
		return decimal.Zero, fmt.Errorf("term must not be negative, got %d", termMonths)
	}

	r := annualRatePercent / 1200
	if r == 0 || termMonths == 0 {
		return decimal.Zero, fmt.Errorf("%w: rate %v over %d months", model.ErrDivisionDegenerate, annualRatePercent, termMonths)
	}

	factor := math.Pow(1+r, float64(termMonths))
	denominator := factor - 1
	if denominator == 0 {
		return decimal.Zero, fmt.Errorf("%w: rate %v over %d months", model.ErrDivisionDegenerate, annualRatePercent, termMonths)
	}

	payment := principal.InexactFloat64() * r * factor / denominator
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return decimal.Zero, fmt.Errorf("%w: payment is not finite", model.ErrDivisionDegenerate)
	}

	return money.RoundHalfUp(decimal.NewFromFloat(payment), 0), nil
}

// EffectiveAnnualRate converts a monthly-compounded nominal rate (TNA) to the
// effective annual rate (TAE), both in percent, rounded half-up to 1 decimal.
//
//	TAE = ((1 + TNA/1200)^12 - 1) * 100
func EffectiveAnnualRate(nominalPercent float64) (decimal.Decimal, error) {
	eff := (math.Pow(1+nominalPercent/1200, 12) - 1) * 100
	if math.IsNaN(eff) || math.IsInf(eff, 0) {
		return decimal.Zero, fmt.Errorf("effective rate for %v is not finite", nominalPercent)
	}
	return money.RoundHalfUp(decimal.NewFromFloat(eff), 1), nil
}

// DisplayRate rounds a rate half-up to 1 decimal for quoting.
func DisplayRate(percent float64) decimal.Decimal {
	return money.RoundHalfUp(decimal.NewFromFloat(percent), 1)
}

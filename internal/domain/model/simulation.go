package model

import (
	"github.com/shopspring/decimal"

	"github.com/vehiclefin/financing-offer/pkg/money"
)

// TermQuote is the price of financing over one term of the ladder.
type TermQuote struct {
	// MonthlyInstallment is in whole currency units.
	MonthlyInstallment decimal.Decimal
	// NominalRate (TNA) and EffectiveRate (TAE) are percentages with one decimal.
	NominalRate   decimal.Decimal
	EffectiveRate decimal.Decimal
	Months        int
}

// SimulationResult is a full multi-term quote for one financed amount.
type SimulationResult struct {
	TotalAmount    money.Money
	FinancedAmount money.Money
	Quotes         []TermQuote
}

// Currency returns the currency both amounts are quoted in.
func (r SimulationResult) Currency() money.Currency { return r.TotalAmount.Currency() }

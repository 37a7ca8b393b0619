package service

import (
	"fmt"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

// ---------------------------------------------------------------------------
// SimulationEngine – builds a quote for every term of the ladder
// ---------------------------------------------------------------------------

// SimulationEngine combines RateSimulator draws with the amortization formulas.
type SimulationEngine struct {
	rates *RateSimulator
}

// NewSimulationEngine returns an engine drawing from rates.
func NewSimulationEngine(rates *RateSimulator) *SimulationEngine {
	return &SimulationEngine{rates: rates}
}

// Simulate draws one total price, then quotes financed over every term with
// a fresh nominal rate per term.
func (e *SimulationEngine) Simulate(financed money.Money) (model.SimulationResult, error) {
	total := e.rates.TotalPrice(financed.Currency())
	return e.SimulateWithTotal(total, financed)
}

// SimulateWithTotal quotes financed over every term and reports total as the
// simulation's total amount without drawing a price.
func (e *SimulationEngine) SimulateWithTotal(total, financed money.Money) (model.SimulationResult, error) {
	terms := TermLadder()
	quotes := make([]model.TermQuote, 0, len(terms))

	for _, months := range terms {
		nominal := e.rates.NominalRate()

		installment, err := MonthlyInstallment(financed.Amount(), nominal, months)
		if err != nil {
			return model.SimulationResult{}, fmt.Errorf("installment for %d months: %w", months, err)
		}
		effective, err := EffectiveAnnualRate(nominal)
		if err != nil {
			return model.SimulationResult{}, fmt.Errorf("effective rate for %d months: %w", months, err)
		}

		quotes = append(quotes, model.TermQuote{
			Months:             months,
			MonthlyInstallment: installment,
			NominalRate:        DisplayRate(nominal),
			EffectiveRate:      effective,
		})
	}

	return model.SimulationResult{
		TotalAmount:    total,
		FinancedAmount: financed,
		Quotes:         quotes,
	}, nil
}

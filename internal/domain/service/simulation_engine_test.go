package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

func TestSimulationEngine_Simulate(t *testing.T) {
	// First term draws 80%, every later term 75%.
	floats := append([]float64{0.5}, repeat(0.25, 12)...)
	src := &scriptedSource{ints: []int{7_000_000}, floats: floats}
	engine := service.NewSimulationEngine(service.NewRateSimulator(src))

	financed := money.NewFromInt(1_000_000, money.ARS)
	result, err := engine.Simulate(financed)
	require.NoError(t, err)

	assert.Equal(t, "12000000.00 ARS", result.TotalAmount.String())
	assert.True(t, result.FinancedAmount.Equal(financed))
	require.Len(t, result.Quotes, 13)
	assert.Len(t, src.bounds, 1, "one price draw per simulation")

	first := result.Quotes[0]
	assert.Equal(t, 12, first.Months)
	assert.Equal(t, "123675", first.MonthlyInstallment.String())
	assert.Equal(t, "80", first.NominalRate.String())
	assert.Equal(t, "116.9", first.EffectiveRate.String())

	second := result.Quotes[1]
	assert.Equal(t, 18, second.Months)
	assert.Equal(t, "75", second.NominalRate.String())
	assert.Equal(t, "107", second.EffectiveRate.String())

	for i, q := range result.Quotes {
		assert.Equal(t, service.TermLadder()[i], q.Months)
		assert.True(t, q.MonthlyInstallment.IsPositive())
	}
	// Longer terms at the same rate cost less per month.
	for i := 2; i < len(result.Quotes); i++ {
		assert.True(t, result.Quotes[i].MonthlyInstallment.LessThan(result.Quotes[i-1].MonthlyInstallment))
	}
}

func TestSimulationEngine_SimulateWithTotalDrawsNoPrice(t *testing.T) {
	src := &scriptedSource{floats: repeat(0.5, 13)}
	engine := service.NewSimulationEngine(service.NewRateSimulator(src))

	total := money.NewFromInt(10_000_000, money.CLP)
	financed := money.NewFromInt(6_000_000, money.CLP)
	result, err := engine.SimulateWithTotal(total, financed)
	require.NoError(t, err)

	assert.Empty(t, src.bounds)
	assert.True(t, result.TotalAmount.Equal(total))
	assert.Equal(t, money.CLP, result.Currency())
	assert.Equal(t, "443430", result.Quotes[4].MonthlyInstallment.String(), "36 months at 80%")
}

func TestSimulationEngine_Deterministic(t *testing.T) {
	financed := money.NewFromInt(3_500_000, money.ARS)

	a, err := service.NewSimulationEngine(service.NewRateSimulator(seeded(2024))).Simulate(financed)
	require.NoError(t, err)
	b, err := service.NewSimulationEngine(service.NewRateSimulator(seeded(2024))).Simulate(financed)
	require.NoError(t, err)

	assert.Equal(t, render(a), render(b))
}

package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

func TestRateSimulator_TotalPriceBounds(t *testing.T) {
	src := &scriptedSource{ints: []int{0, service.MaxTotalPrice - service.MinTotalPrice}}
	sim := service.NewRateSimulator(src)

	low := sim.TotalPrice(money.ARS)
	high := sim.TotalPrice(money.CLP)

	assert.Equal(t, "5000000.00 ARS", low.String())
	assert.Equal(t, "20000000.00 CLP", high.String())
	require.Len(t, src.bounds, 2)
	assert.Equal(t, 15_000_001, src.bounds[0], "closed range needs n = max - min + 1")
}

func TestRateSimulator_NominalRateBounds(t *testing.T) {
	sim := service.NewRateSimulator(&scriptedSource{floats: []float64{0, 0.5, 0.9999999999}})

	assert.Equal(t, 70.0, sim.NominalRate())
	assert.Equal(t, 80.0, sim.NominalRate())
	assert.Less(t, sim.NominalRate(), 90.0)
}

func TestRateSimulator_SeededDrawsStayInRange(t *testing.T) {
	sim := service.NewRateSimulator(seeded(42))
	for i := 0; i < 1000; i++ {
		price := sim.TotalPrice(money.ARS).Amount().IntPart()
		assert.GreaterOrEqual(t, price, int64(service.MinTotalPrice))
		assert.LessOrEqual(t, price, int64(service.MaxTotalPrice))

		rate := sim.NominalRate()
		assert.GreaterOrEqual(t, rate, service.MinNominalRate)
		assert.Less(t, rate, service.MinNominalRate+service.NominalRateBand)
	}
}

func TestRateSimulator_SameSeedSameDraws(t *testing.T) {
	a := service.NewRateSimulator(seeded(99))
	b := service.NewRateSimulator(seeded(99))
	for i := 0; i < 20; i++ {
		assert.True(t, a.TotalPrice(money.ARS).Equal(b.TotalPrice(money.ARS)))
		assert.Equal(t, a.NominalRate(), b.NominalRate())
	}
}

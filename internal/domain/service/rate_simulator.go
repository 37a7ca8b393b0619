package service

import (
	"sync"

	"github.com/vehiclefin/financing-offer/pkg/money"
)

// ---------------------------------------------------------------------------
// RateSimulator – randomized price and rate source
// ---------------------------------------------------------------------------

// RandomSource is satisfied by *rand.Rand from math/rand/v2.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// Draw ranges. Prices are whole units in [MinTotalPrice, MaxTotalPrice];
// nominal rates fall in [MinNominalRate, MinNominalRate+NominalRateBand).
const (
	MinTotalPrice   = 5_000_000
	MaxTotalPrice   = 20_000_000
	MinNominalRate  = 70.0
	NominalRateBand = 20.0
)

// RateSimulator stands in for the financial partner's pricing. It owns its
// random source; draws are serialised so one simulator can serve concurrent
// requests.
type RateSimulator struct {
	mu  sync.Mutex
	src RandomSource
}

// NewRateSimulator wraps src. Pass a seeded source for reproducible output.
func NewRateSimulator(src RandomSource) *RateSimulator {
	return &RateSimulator{src: src}
}

// TotalPrice draws a vehicle price uniformly from the closed price range.
func (s *RateSimulator) TotalPrice(currency money.Currency) money.Money {
	s.mu.Lock()
	units := s.src.IntN(MaxTotalPrice-MinTotalPrice+1) + MinTotalPrice
	s.mu.Unlock()
	return money.NewFromInt(int64(units), currency)
}

// NominalRate draws an annual nominal rate (TNA) in percent.
func (s *RateSimulator) NominalRate() float64 {
	s.mu.Lock()
	f := s.src.Float64()
	s.mu.Unlock()
	return MinNominalRate + f*NominalRateBand
}

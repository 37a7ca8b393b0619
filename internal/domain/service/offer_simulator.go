package service

import (
	"context"
	"fmt"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

// Quote is a validated simulation plus the price the financed amount was
// sized from.
type Quote struct {
	Result         model.SimulationResult
	ReferencePrice money.Money
}

// OfferSimulator validates a request and runs the engine.
//
// The financed amount is a share of a reference price drawn here. By default
// the engine then draws its own total price, so the reported total and the
// reference differ. With reuseReferencePrice the reference is reported as the
// total instead.
type OfferSimulator struct {
	validator           *OfferValidator
	rates               *RateSimulator
	engine              *SimulationEngine
	reuseReferencePrice bool
}

// NewOfferSimulator wires dependencies.
func NewOfferSimulator(
	validator *OfferValidator,
	rates *RateSimulator,
	engine *SimulationEngine,
	reuseReferencePrice bool,
) *OfferSimulator {
	return &OfferSimulator{
		validator:           validator,
		rates:               rates,
		engine:              engine,
		reuseReferencePrice: reuseReferencePrice,
	}
}

// Simulate validates percent for country and produces the term ladder. Nothing
// is drawn when validation fails.
func (s *OfferSimulator) Simulate(
	ctx context.Context,
	percent valueobject.Percentage,
	country valueobject.CountryCode,
) (Quote, error) {
	if err := s.validator.Validate(ctx, percent, country); err != nil {
		return Quote{}, fmt.Errorf("validate: %w", err)
	}

	reference := s.rates.TotalPrice(country.Currency())
	financed := reference.Percent(percent.Int(), 2)

	var (
		result model.SimulationResult
		err    error
	)
	if s.reuseReferencePrice {
		result, err = s.engine.SimulateWithTotal(reference, financed)
	} else {
		result, err = s.engine.Simulate(financed)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("simulate: %w", err)
	}

	return Quote{Result: result, ReferencePrice: reference}, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

var tracer = otel.Tracer("github.com/vehiclefin/financing-offer/internal/application/usecase")

// SimulateOfferUseCase validates a financing request against the country cap,
// runs the simulation and stores the resulting offer.
type SimulateOfferUseCase struct {
	simulator      *service.OfferSimulator
	offerRepo      port.OfferRepository
	publisher      port.EventPublisher
	metrics        port.MetricsRecorder
	defaultCountry valueobject.CountryCode
	now            func() time.Time
}

// NewSimulateOfferUseCase wires dependencies.
func NewSimulateOfferUseCase(
	simulator *service.OfferSimulator,
	offerRepo port.OfferRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	defaultCountry valueobject.CountryCode,
	now func() time.Time,
) *SimulateOfferUseCase {
	if now == nil {
		now = time.Now
	}
	return &SimulateOfferUseCase{
		simulator:      simulator,
		offerRepo:      offerRepo,
		publisher:      publisher,
		metrics:        metrics,
		defaultCountry: defaultCountry,
		now:            now,
	}
}

// Execute simulates and persists one financing offer owned by actor.
func (uc *SimulateOfferUseCase) Execute(
	ctx context.Context,
	actor dto.Actor,
	req dto.SimulateOfferRequest,
) (resp dto.SimulationResponse, err error) {
	ctx, span := tracer.Start(ctx, "SimulateOffer")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	now := uc.now().UTC()

	// 1. Build and check the request.
	request, err := toFinancingRequest(req, uc.defaultCountry, now)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("validate request: %w", err)
	}
	span.SetAttributes(
		attribute.String("financing.country", request.Country.String()),
		attribute.Int("financing.percent", request.Percent.Int()),
	)

	// 2. Check the cap and simulate.
	quote, err := uc.simulator.Simulate(ctx, request.Percent, request.Country)
	if err != nil {
		outcome := port.OutcomeFailed
		if errors.Is(err, model.ErrPercentageExceeded) {
			outcome = port.OutcomeRejected
		}
		uc.metrics.SimulationRecorded(ctx, request.Country.String(), outcome)
		return dto.SimulationResponse{}, fmt.Errorf("simulate offer: %w", err)
	}

	// 3. Persist.
	offer, err := model.NewFinancingOffer(actor.Username, request, quote.Result, quote.ReferencePrice, now)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("create offer: %w", err)
	}
	if err := uc.offerRepo.Save(ctx, offer); err != nil {
		uc.metrics.SimulationRecorded(ctx, request.Country.String(), port.OutcomeFailed)
		return dto.SimulationResponse{}, fmt.Errorf("save offer: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, offer.DomainEvents()...); err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.metrics.SimulationRecorded(ctx, request.Country.String(), port.OutcomeAccepted)
	return toSimulationResponse(offer.ID(), request.Country, quote.Result), nil
}

func toFinancingRequest(req dto.SimulateOfferRequest, fallback valueobject.CountryCode, now time.Time) (model.FinancingRequest, error) {
	country, err := valueobject.ResolveCountry(req.Country, fallback)
	if err != nil {
		return model.FinancingRequest{}, err
	}
	percent, err := valueobject.NewPercentage(req.FinancedPercent)
	if err != nil {
		return model.FinancingRequest{}, err
	}
	if req.Client.AnnualIncome == "" {
		return model.FinancingRequest{}, &model.ValidationError{Field: "client.annualIncome", Reason: "is required"}
	}
	income, err := decimal.NewFromString(string(req.Client.AnnualIncome))
	if err != nil {
		return model.FinancingRequest{}, &model.ValidationError{Field: "client.annualIncome", Reason: "is not a number"}
	}

	request := model.FinancingRequest{
		Client: model.Client{
			FirstName:    req.Client.FirstName,
			LastName:     req.Client.LastName,
			NationalID:   req.Client.NationalID,
			AnnualIncome: income,
		},
		Vehicle: model.Vehicle{
			Make:    req.Vehicle.Make,
			Model:   req.Vehicle.Model,
			Version: req.Vehicle.Version,
			SKU:     req.Vehicle.SKU,
			Year:    req.Vehicle.Year,
		},
		DealID:     req.DealID,
		Subsidiary: req.Subsidiary,
		Percent:    percent,
		Country:    country,
	}
	if err := request.Validate(now); err != nil {
		return model.FinancingRequest{}, err
	}
	return request, nil
}

func toSimulationResponse(offerID string, country valueobject.CountryCode, result model.SimulationResult) dto.SimulationResponse {
	quotes := make([]dto.TermQuoteResponse, 0, len(result.Quotes))
	for _, q := range result.Quotes {
		quotes = append(quotes, dto.TermQuoteResponse{
			Months:             q.Months,
			MonthlyInstallment: fixed(q.MonthlyInstallment, 0),
			NominalRate:        fixed(q.NominalRate, 1),
			EffectiveRate:      fixed(q.EffectiveRate, 1),
		})
	}
	return dto.SimulationResponse{
		OfferID:        offerID,
		Country:        country.String(),
		Currency:       result.Currency().Code(),
		TotalAmount:    fixed(result.TotalAmount.Amount(), 2),
		FinancedAmount: fixed(result.FinancedAmount.Amount(), 2),
		Quotes:         quotes,
	}
}

func fixed(d decimal.Decimal, places int32) json.Number {
	return json.Number(d.StringFixed(places))
}

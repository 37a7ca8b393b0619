package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/application/usecase"
	"github.com/vehiclefin/financing-offer/internal/domain/event"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

func validSimulateRequest() dto.SimulateOfferRequest {
	return dto.SimulateOfferRequest{
		Client: dto.ClientData{
			FirstName:    "Ana",
			LastName:     "Gómez",
			NationalID:   "30111222",
			AnnualIncome: "12000000",
		},
		Vehicle: dto.VehicleData{
			Make:    "Toyota",
			Model:   "Corolla",
			Version: "XEI 2.0",
			SKU:     "TOY-COR-XEI",
			Year:    2025,
		},
		DealID:          "deal-42",
		FinancedPercent: 40,
	}
}

var user = dto.Actor{Username: "jdoe"}

func TestSimulateOffer_Execute(t *testing.T) {
	t.Run("stores the offer and publishes its event", func(t *testing.T) {
		simulator, _ := newSimulator(&mockSettingsRepository{}, false)
		offers := &mockOfferRepository{}
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}

		uc := usecase.NewSimulateOfferUseCase(simulator, offers, publisher, metrics, valueobject.CountryArgentina, clock)
		resp, err := uc.Execute(context.Background(), user, validSimulateRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.OfferID)
		assert.Equal(t, "AR", resp.Country)
		assert.Equal(t, "ARS", resp.Currency)
		require.Len(t, resp.Quotes, 13)
		assert.Equal(t, 12, resp.Quotes[0].Months)
		assert.Equal(t, 84, resp.Quotes[12].Months)
		for _, q := range resp.Quotes {
			rate, err := decimal.NewFromString(q.NominalRate.String())
			require.NoError(t, err)
			assert.True(t, rate.GreaterThanOrEqual(decimal.NewFromInt(70)), "tna %s", q.NominalRate)
			assert.True(t, rate.LessThanOrEqual(decimal.NewFromInt(90)), "tna %s", q.NominalRate)
		}

		require.Len(t, offers.savedOffers, 1)
		saved := offers.savedOffers[0]
		assert.Equal(t, resp.OfferID, saved.ID())
		assert.Equal(t, "jdoe", saved.CreatedBy())
		assert.Equal(t, 40, saved.Percent().Int())
		assert.True(t, saved.ReferencePrice().Percent(40, 2).Equal(saved.FinancedAmount()))

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeOfferCreated, publisher.publishedEvents[0].EventType())
		assert.Equal(t, []string{"AR:accepted"}, metrics.outcomes)
	})

	t.Run("quotes chilean offers in pesos", func(t *testing.T) {
		simulator, _ := newSimulator(&mockSettingsRepository{}, true)
		offers := &mockOfferRepository{}

		uc := usecase.NewSimulateOfferUseCase(simulator, offers, &mockEventPublisher{}, &mockMetrics{}, valueobject.CountryArgentina, clock)
		req := validSimulateRequest()
		req.Country = "cl"
		resp, err := uc.Execute(context.Background(), user, req)

		require.NoError(t, err)
		assert.Equal(t, "CL", resp.Country)
		assert.Equal(t, "CLP", resp.Currency)
		require.Len(t, offers.savedOffers, 1)
		assert.True(t, offers.savedOffers[0].TotalAmount().Equal(offers.savedOffers[0].ReferencePrice()))
	})

	t.Run("rejects a percentage above the cap", func(t *testing.T) {
		simulator, _ := newSimulator(&mockSettingsRepository{}, false)
		offers := &mockOfferRepository{}
		metrics := &mockMetrics{}

		uc := usecase.NewSimulateOfferUseCase(simulator, offers, &mockEventPublisher{}, metrics, valueobject.CountryArgentina, clock)
		req := validSimulateRequest()
		req.FinancedPercent = 51
		_, err := uc.Execute(context.Background(), user, req)

		require.Error(t, err)
		var exceeded *model.PercentageExceededError
		require.ErrorAs(t, err, &exceeded)
		assert.Equal(t, 50, exceeded.Limit)
		assert.Empty(t, offers.savedOffers)
		assert.Equal(t, []string{"AR:rejected"}, metrics.outcomes)
	})

	t.Run("rejects invalid input before touching settings", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		simulator, _ := newSimulator(repo, false)
		uc := usecase.NewSimulateOfferUseCase(simulator, &mockOfferRepository{}, &mockEventPublisher{}, &mockMetrics{}, valueobject.CountryArgentina, clock)

		cases := map[string]func(*dto.SimulateOfferRequest){
			"zero percent":     func(r *dto.SimulateOfferRequest) { r.FinancedPercent = 0 },
			"bad country":      func(r *dto.SimulateOfferRequest) { r.Country = "ARG" },
			"missing income":   func(r *dto.SimulateOfferRequest) { r.Client.AnnualIncome = "" },
			"garbage income":   func(r *dto.SimulateOfferRequest) { r.Client.AnnualIncome = "lots" },
			"missing make":     func(r *dto.SimulateOfferRequest) { r.Vehicle.Make = " " },
			"vehicle too old":  func(r *dto.SimulateOfferRequest) { r.Vehicle.Year = 1980 },
			"missing nationID": func(r *dto.SimulateOfferRequest) { r.Client.NationalID = "" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				req := validSimulateRequest()
				mutate(&req)
				_, err := uc.Execute(context.Background(), user, req)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "validate request")
			})
		}
		assert.Empty(t, repo.entries)
	})

	t.Run("fails when the offer cannot be saved", func(t *testing.T) {
		simulator, _ := newSimulator(&mockSettingsRepository{}, false)
		offers := &mockOfferRepository{
			saveFunc: func(context.Context, model.FinancingOffer) error { return errBoom },
		}
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}

		uc := usecase.NewSimulateOfferUseCase(simulator, offers, publisher, metrics, valueobject.CountryArgentina, clock)
		_, err := uc.Execute(context.Background(), user, validSimulateRequest())

		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "save offer")
		assert.Empty(t, publisher.publishedEvents)
		assert.Equal(t, []string{"AR:failed"}, metrics.outcomes)
	})

	t.Run("fails when publishing fails", func(t *testing.T) {
		simulator, _ := newSimulator(&mockSettingsRepository{}, false)
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...event.DomainEvent) error { return errBoom },
		}

		uc := usecase.NewSimulateOfferUseCase(simulator, &mockOfferRepository{}, publisher, &mockMetrics{}, valueobject.CountryArgentina, clock)
		_, err := uc.Execute(context.Background(), user, validSimulateRequest())

		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "publish events")
	})
}

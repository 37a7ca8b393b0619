package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// GetOfferUseCase retrieves one offer visible to the caller.
type GetOfferUseCase struct {
	offerRepo port.OfferRepository
}

// NewGetOfferUseCase wires dependencies.
func NewGetOfferUseCase(offerRepo port.OfferRepository) *GetOfferUseCase {
	return &GetOfferUseCase{offerRepo: offerRepo}
}

// Execute returns the offer. Offers owned by someone else are reported as
// not found unless the caller is an administrator.
func (uc *GetOfferUseCase) Execute(ctx context.Context, actor dto.Actor, req dto.GetOfferRequest) (dto.OfferResponse, error) {
	offer, err := uc.offerRepo.FindByID(ctx, req.OfferID)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("find offer: %w", err)
	}
	if !offer.VisibleTo(actor.Username, roleOf(actor)) {
		return dto.OfferResponse{}, fmt.Errorf("find offer: %w", model.ErrOfferNotFound)
	}
	return toOfferResponse(offer), nil
}

// ListOffersUseCase lists offers, newest first.
type ListOffersUseCase struct {
	offerRepo port.OfferRepository
}

// NewListOffersUseCase wires dependencies.
func NewListOffersUseCase(offerRepo port.OfferRepository) *ListOffersUseCase {
	return &ListOffersUseCase{offerRepo: offerRepo}
}

// Execute applies the filter. Non-admin callers are restricted to their own offers.
func (uc *ListOffersUseCase) Execute(ctx context.Context, actor dto.Actor, req dto.ListOffersRequest) ([]dto.OfferResponse, error) {
	filter := port.OfferFilter{DealID: strings.TrimSpace(req.DealID)}
	if !actor.Admin {
		filter.CreatedBy = actor.Username
	}
	if strings.TrimSpace(req.Country) != "" {
		country, err := valueobject.NewCountryCode(req.Country)
		if err != nil {
			return nil, fmt.Errorf("resolve country: %w", err)
		}
		filter.Country = country.String()
	}

	offers, err := uc.offerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	out := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferResponse(o))
	}
	return out, nil
}

func roleOf(actor dto.Actor) valueobject.Role {
	if actor.Admin {
		return valueobject.RoleAdmin
	}
	return valueobject.RoleUser
}

func toOfferResponse(o model.FinancingOffer) dto.OfferResponse {
	client := o.Client()
	vehicle := o.Vehicle()
	return dto.OfferResponse{
		ID:        o.ID(),
		CreatedBy: o.CreatedBy(),
		Client: dto.ClientData{
			FirstName:    client.FirstName,
			LastName:     client.LastName,
			NationalID:   client.NationalID,
			AnnualIncome: fixed(client.AnnualIncome, 2),
		},
		Vehicle: dto.VehicleData{
			Make:    vehicle.Make,
			Model:   vehicle.Model,
			Version: vehicle.Version,
			SKU:     vehicle.SKU,
			Year:    vehicle.Year,
		},
		DealID:          o.DealID(),
		Subsidiary:      o.Subsidiary(),
		FinancedPercent: o.Percent().Int(),
		Country:         o.Country().String(),
		Currency:        o.TotalAmount().Currency().Code(),
		TotalAmount:     fixed(o.TotalAmount().Amount(), 2),
		FinancedAmount:  fixed(o.FinancedAmount().Amount(), 2),
		ReferencePrice:  fixed(o.ReferencePrice().Amount(), 2),
		CreatedAt:       o.CreatedAt(),
	}
}

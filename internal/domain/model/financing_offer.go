package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vehiclefin/financing-offer/internal/domain/event"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

// ---------------------------------------------------------------------------
// FinancingOffer aggregate root
// ---------------------------------------------------------------------------

// FinancingOffer is the stored record of a validated simulation. It is never
// changed after creation.
type FinancingOffer struct {
	id             string
	createdBy      string
	client         Client
	vehicle        Vehicle
	dealID         string
	subsidiary     *int
	percent        valueobject.Percentage
	country        valueobject.CountryCode
	totalAmount    money.Money
	financedAmount money.Money
	referencePrice money.Money
	createdAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewFinancingOffer records a simulation for createdBy. referencePrice is the
// draw the financed amount was sized from.
func NewFinancingOffer(
	createdBy string,
	req FinancingRequest,
	result SimulationResult,
	referencePrice money.Money,
	now time.Time,
) (FinancingOffer, error) {
	if createdBy == "" {
		return FinancingOffer{}, errors.New("created by is required")
	}
	if result.TotalAmount.Currency() != result.FinancedAmount.Currency() ||
		result.TotalAmount.Currency() != referencePrice.Currency() {
		return FinancingOffer{}, errors.New("simulation amounts must share one currency")
	}

	offer := FinancingOffer{
		id:             uuid.NewString(),
		createdBy:      createdBy,
		client:         req.Client,
		vehicle:        req.Vehicle,
		dealID:         req.DealID,
		subsidiary:     req.Subsidiary,
		percent:        req.Percent,
		country:        req.Country,
		totalAmount:    result.TotalAmount,
		financedAmount: result.FinancedAmount,
		referencePrice: referencePrice,
		createdAt:      now.UTC(),
	}

	offer.domainEvents = append(offer.domainEvents, event.NewOfferCreated(
		offer.id, createdBy, req.Country.String(), result.Currency().Code(), req.DealID,
		result.TotalAmount.Amount(), result.FinancedAmount.Amount(), req.Percent.Int(), now,
	))
	return offer, nil
}

// ReconstructFinancingOffer rebuilds an aggregate from persistence without side-effects.
func ReconstructFinancingOffer(
	id, createdBy string,
	client Client,
	vehicle Vehicle,
	dealID string,
	subsidiary *int,
	percent valueobject.Percentage,
	country valueobject.CountryCode,
	totalAmount, financedAmount, referencePrice money.Money,
	createdAt time.Time,
) FinancingOffer {
	return FinancingOffer{
		id:             id,
		createdBy:      createdBy,
		client:         client,
		vehicle:        vehicle,
		dealID:         dealID,
		subsidiary:     subsidiary,
		percent:        percent,
		country:        country,
		totalAmount:    totalAmount,
		financedAmount: financedAmount,
		referencePrice: referencePrice,
		createdAt:      createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (o FinancingOffer) ID() string                        { return o.id }
func (o FinancingOffer) CreatedBy() string                 { return o.createdBy }
func (o FinancingOffer) Client() Client                    { return o.client }
func (o FinancingOffer) Vehicle() Vehicle                  { return o.vehicle }
func (o FinancingOffer) DealID() string                    { return o.dealID }
func (o FinancingOffer) Subsidiary() *int                  { return o.subsidiary }
func (o FinancingOffer) Percent() valueobject.Percentage   { return o.percent }
func (o FinancingOffer) Country() valueobject.CountryCode  { return o.country }
func (o FinancingOffer) TotalAmount() money.Money          { return o.totalAmount }
func (o FinancingOffer) FinancedAmount() money.Money       { return o.financedAmount }
func (o FinancingOffer) ReferencePrice() money.Money       { return o.referencePrice }
func (o FinancingOffer) CreatedAt() time.Time              { return o.createdAt }
func (o FinancingOffer) DomainEvents() []event.DomainEvent { return o.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (o FinancingOffer) ClearEvents() FinancingOffer {
	o.domainEvents = nil
	return o
}

// VisibleTo reports whether a caller may read the offer.
func (o FinancingOffer) VisibleTo(username string, role valueobject.Role) bool {
	return role.IsAdmin() || o.createdBy == username
}

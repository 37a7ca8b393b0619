package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vehiclefin/financing-offer/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeOfferCreated    = "financing.offer.created"
	TypeSettingsUpdated = "financing.settings.updated"
)

// OfferCreated is raised once a validated simulation has been stored.
type OfferCreated struct {
	events.BaseEvent
	OfferID        string          `json:"offer_id"`
	CreatedBy      string          `json:"created_by"`
	Country        string          `json:"country"`
	Currency       string          `json:"currency"`
	DealID         string          `json:"deal_id,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	FinancedAmount decimal.Decimal `json:"financed_amount"`
	Percent        int             `json:"percent"`
}

func NewOfferCreated(
	offerID, createdBy, country, currency, dealID string,
	total, financed decimal.Decimal,
	percent int,
	now time.Time,
) OfferCreated {
	return OfferCreated{
		BaseEvent:      events.NewBaseEvent(TypeOfferCreated, offerID, "FinancingOffer", now),
		OfferID:        offerID,
		CreatedBy:      createdBy,
		Country:        country,
		Currency:       currency,
		DealID:         dealID,
		TotalAmount:    total,
		FinancedAmount: financed,
		Percent:        percent,
	}
}

// SettingsUpdated is raised when an administrator appends a new cap.
type SettingsUpdated struct {
	events.BaseEvent
	Country    string `json:"country"`
	UpdatedBy  string `json:"updated_by"`
	MaxPercent int    `json:"max_percent"`
}

func NewSettingsUpdated(country string, maxPercent int, updatedBy string, now time.Time) SettingsUpdated {
	return SettingsUpdated{
		BaseEvent:  events.NewBaseEvent(TypeSettingsUpdated, country, "SystemSettings", now),
		Country:    country,
		UpdatedBy:  updatedBy,
		MaxPercent: maxPercent,
	}
}

package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// MinVehicleYear is the oldest model year accepted for financing.
const MinVehicleYear = 1990

// Client identifies the person the offer is for.
type Client struct {
	FirstName    string
	LastName     string
	NationalID   string
	AnnualIncome decimal.Decimal
}

// Vehicle identifies the car being financed.
type Vehicle struct {
	Make    string
	Model   string
	Version string
	SKU     string
	Year    int
}

// FinancingRequest is the transient input of one simulation.
type FinancingRequest struct {
	Client     Client
	Vehicle    Vehicle
	DealID     string
	Subsidiary *int
	Percent    valueobject.Percentage
	Country    valueobject.CountryCode
}

// Validate checks the client and vehicle fields. The percentage and country
// are already valid by construction.
func (r FinancingRequest) Validate(now time.Time) error {
	required := []struct{ field, value string }{
		{"client.firstName", r.Client.FirstName},
		{"client.lastName", r.Client.LastName},
		{"client.nationalId", r.Client.NationalID},
		{"vehicle.make", r.Vehicle.Make},
		{"vehicle.model", r.Vehicle.Model},
		{"vehicle.version", r.Vehicle.Version},
		{"vehicle.sku", r.Vehicle.SKU},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "is required"}
		}
	}
	if r.Client.AnnualIncome.IsNegative() {
		return &ValidationError{Field: "client.annualIncome", Reason: "must not be negative"}
	}
	if r.Vehicle.Year < MinVehicleYear || r.Vehicle.Year > now.Year()+1 {
		return &ValidationError{Field: "vehicle.year", Reason: "is out of range"}
	}
	if r.Country.IsZero() {
		return &ValidationError{Field: "country", Reason: "is required"}
	}
	if r.Percent.Int() == 0 {
		return &ValidationError{Field: "financedPercent", Reason: "is required"}
	}
	return nil
}

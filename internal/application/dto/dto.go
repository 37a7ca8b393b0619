package dto

import (
	"encoding/json"
	"time"
)

// Amounts and rates are json.Number so they serialise as plain JSON numbers
// with a fixed scale, e.g. 3300000.33 or 80.0.

// ---------------------------------------------------------------------------
// Caller identity
// ---------------------------------------------------------------------------

// Actor is the authenticated caller, taken from the access token.
type Actor struct {
	Username string
	Admin    bool
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ClientData identifies the person the offer is for.
type ClientData struct {
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	NationalID   string      `json:"nationalId"`
	AnnualIncome json.Number `json:"annualIncome"`
}

// VehicleData identifies the car being financed.
type VehicleData struct {
	Make    string `json:"make"`
	Model   string `json:"model"`
	Version string `json:"version"`
	SKU     string `json:"sku"`
	Year    int    `json:"year"`
}

// SimulateOfferRequest asks for a financing simulation. Country defaults to
// the configured country when blank.
type SimulateOfferRequest struct {
	Client          ClientData  `json:"client"`
	Vehicle         VehicleData `json:"vehicle"`
	DealID          string      `json:"dealId,omitempty"`
	Country         string      `json:"country,omitempty"`
	Subsidiary      *int        `json:"subsidiary,omitempty"`
	FinancedPercent int         `json:"financedPercent"`
}

// GetSettingsRequest identifies a country's cap.
type GetSettingsRequest struct {
	Country string `json:"country"`
}

// UpdateSettingsRequest appends a new cap for a country.
type UpdateSettingsRequest struct {
	Country    string `json:"country,omitempty"`
	MaxPercent int    `json:"maxPercent"`
}

// GetOfferRequest identifies one stored offer.
type GetOfferRequest struct {
	OfferID string `json:"offerId"`
}

// ListOffersRequest filters stored offers. Non-admin callers only see their own.
type ListOffersRequest struct {
	Country string `json:"country,omitempty"`
	DealID  string `json:"dealId,omitempty"`
}

// CredentialsRequest carries a username and password for login or registration.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// TermQuoteResponse is one row of the term ladder.
type TermQuoteResponse struct {
	Months             int         `json:"months"`
	MonthlyInstallment json.Number `json:"monthlyInstallment"`
	NominalRate        json.Number `json:"tna"`
	EffectiveRate      json.Number `json:"tae"`
}

// SimulationResponse is the result of a stored simulation.
type SimulationResponse struct {
	OfferID        string              `json:"offerId"`
	Country        string              `json:"country"`
	Currency       string              `json:"currency"`
	TotalAmount    json.Number         `json:"totalAmount"`
	FinancedAmount json.Number         `json:"financedAmount"`
	Quotes         []TermQuoteResponse `json:"simulations"`
}

// OfferResponse is the external representation of a stored offer.
type OfferResponse struct {
	ID              string      `json:"id"`
	CreatedBy       string      `json:"createdBy"`
	Client          ClientData  `json:"client"`
	Vehicle         VehicleData `json:"vehicle"`
	DealID          string      `json:"dealId,omitempty"`
	Subsidiary      *int        `json:"subsidiary,omitempty"`
	FinancedPercent int         `json:"financedPercent"`
	Country         string      `json:"country"`
	Currency        string      `json:"currency"`
	TotalAmount     json.Number `json:"totalAmount"`
	FinancedAmount  json.Number `json:"financedAmount"`
	ReferencePrice  json.Number `json:"referencePrice"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// SettingsResponse is one entry of a country's cap history.
type SettingsResponse struct {
	Country    string    `json:"country"`
	MaxPercent int       `json:"maxPercent"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UpdatedBy  string    `json:"updatedBy"`
}

// CountryResponse lists a country with a dedicated quoting currency.
type CountryResponse struct {
	Code     string `json:"code"`
	Currency string `json:"currency"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

package port

import (
	"context"

	"github.com/vehiclefin/financing-offer/internal/domain/event"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// SettingsRepository stores the append-only cap history of each country.
type SettingsRepository interface {
	// Current returns the newest entry for country or model.ErrSettingsNotFound.
	Current(ctx context.Context, country valueobject.CountryCode) (model.SystemSettings, error)
	// InsertDefaultIfAbsent atomically stores def unless the country already
	// has an entry, and returns whichever entry is current afterwards.
	InsertDefaultIfAbsent(ctx context.Context, def model.SystemSettings) (model.SystemSettings, error)
	// Append stores a new entry and returns it with its sequence number.
	Append(ctx context.Context, s model.SystemSettings) (model.SystemSettings, error)
	// History returns every entry for country, newest first.
	History(ctx context.Context, country valueobject.CountryCode) ([]model.SystemSettings, error)
}

// OfferFilter narrows List. Empty fields match everything.
type OfferFilter struct {
	CreatedBy string
	Country   string
	DealID    string
}

// OfferRepository persists and retrieves financing offers.
type OfferRepository interface {
	Save(ctx context.Context, offer model.FinancingOffer) error
	FindByID(ctx context.Context, id string) (model.FinancingOffer, error)
	List(ctx context.Context, filter OfferFilter) ([]model.FinancingOffer, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	// Create returns model.ErrUsernameTaken for a duplicate username.
	Create(ctx context.Context, user model.User) error
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Security and telemetry ports
// ---------------------------------------------------------------------------

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns model.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

// Simulation outcomes reported to MetricsRecorder.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// MetricsRecorder counts business outcomes.
type MetricsRecorder interface {
	SimulationRecorded(ctx context.Context, country, outcome string)
	SettingsUpdated(ctx context.Context, country string)
}

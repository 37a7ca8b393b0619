package model

import (
	"errors"
	"strings"
	"time"

	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

const (
	// DefaultMaxPercent is the cap materialised for a country seen for the first time.
	DefaultMaxPercent = 50
	// SystemActor attributes records the service creates on its own.
	SystemActor = "system"
)

// SystemSettings is one entry of a country's append-only cap history. The
// entry with the latest UpdatedAt is the country's current cap.
type SystemSettings struct {
	id         int64
	country    valueobject.CountryCode
	maxPercent valueobject.Percentage
	updatedAt  time.Time
	updatedBy  string
}

// NewSystemSettings builds an unsaved entry.
func NewSystemSettings(
	country valueobject.CountryCode,
	maxPercent valueobject.Percentage,
	updatedBy string,
	now time.Time,
) (SystemSettings, error) {
	if country.IsZero() {
		return SystemSettings{}, errors.New("country is required")
	}
	if strings.TrimSpace(updatedBy) == "" {
		return SystemSettings{}, errors.New("updated by is required")
	}
	return SystemSettings{
		country:    country,
		maxPercent: maxPercent,
		updatedAt:  now.UTC(),
		updatedBy:  updatedBy,
	}, nil
}

// DefaultSystemSettings is the entry created lazily for an unseen country.
func DefaultSystemSettings(country valueobject.CountryCode, now time.Time) SystemSettings {
	return SystemSettings{
		country:    country,
		maxPercent: valueobject.MustPercentage(DefaultMaxPercent),
		updatedAt:  now.UTC(),
		updatedBy:  SystemActor,
	}
}

// ReconstructSystemSettings rebuilds a stored entry.
func ReconstructSystemSettings(
	id int64,
	country valueobject.CountryCode,
	maxPercent valueobject.Percentage,
	updatedAt time.Time,
	updatedBy string,
) SystemSettings {
	return SystemSettings{
		id:         id,
		country:    country,
		maxPercent: maxPercent,
		updatedAt:  updatedAt,
		updatedBy:  updatedBy,
	}
}

func (s SystemSettings) ID() int64                          { return s.id }
func (s SystemSettings) Country() valueobject.CountryCode   { return s.country }
func (s SystemSettings) MaxPercent() valueobject.Percentage { return s.maxPercent }
func (s SystemSettings) UpdatedAt() time.Time               { return s.updatedAt }
func (s SystemSettings) UpdatedBy() string                  { return s.updatedBy }

// WithID returns a copy carrying the storage-assigned sequence number.
func (s SystemSettings) WithID(id int64) SystemSettings {
	s.id = id
	return s
}

// NewerThan orders entries by timestamp, then by sequence number.
func (s SystemSettings) NewerThan(other SystemSettings) bool {
	if !s.updatedAt.Equal(other.updatedAt) {
		return s.updatedAt.After(other.updatedAt)
	}
	return s.id > other.id
}

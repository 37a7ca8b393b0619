package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// SettingsStore resolves and appends per-country caps on top of a
// port.SettingsRepository.
type SettingsStore struct {
	repo port.SettingsRepository
	now  func() time.Time
}

// NewSettingsStore wires dependencies. now defaults to time.Now.
func NewSettingsStore(repo port.SettingsRepository, now func() time.Time) *SettingsStore {
	if now == nil {
		now = time.Now
	}
	return &SettingsStore{repo: repo, now: now}
}

// CurrentCap returns the newest entry for country. An unseen country gets a
// default entry through the repository's atomic insert-if-absent, so
// concurrent first reads agree on one record.
func (s *SettingsStore) CurrentCap(ctx context.Context, country valueobject.CountryCode) (model.SystemSettings, error) {
	current, err := s.repo.Current(ctx, country)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, model.ErrSettingsNotFound) {
		return model.SystemSettings{}, fmt.Errorf("%w: read %s: %w", model.ErrSettingsNotResolvable, country, err)
	}

	current, err = s.repo.InsertDefaultIfAbsent(ctx, model.DefaultSystemSettings(country, s.now()))
	if err != nil {
		return model.SystemSettings{}, fmt.Errorf("%w: create default for %s: %w", model.ErrSettingsNotResolvable, country, err)
	}
	return current, nil
}

// UpdateCap appends a new entry attributed to updatedBy. Earlier entries are kept.
func (s *SettingsStore) UpdateCap(
	ctx context.Context,
	country valueobject.CountryCode,
	maxPercent valueobject.Percentage,
	updatedBy string,
) (model.SystemSettings, error) {
	entry, err := model.NewSystemSettings(country, maxPercent, updatedBy, s.now())
	if err != nil {
		return model.SystemSettings{}, fmt.Errorf("build settings: %w", err)
	}

	stored, err := s.repo.Append(ctx, entry)
	if err != nil {
		return model.SystemSettings{}, fmt.Errorf("append settings: %w", err)
	}
	return stored, nil
}

// History returns every entry for country, newest first.
func (s *SettingsStore) History(ctx context.Context, country valueobject.CountryCode) ([]model.SystemSettings, error) {
	entries, err := s.repo.History(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return entries, nil
}

package service

import (
	"context"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// OfferValidator checks a requested percentage against the country cap.
type OfferValidator struct {
	settings *SettingsStore
}

// NewOfferValidator wires dependencies.
func NewOfferValidator(settings *SettingsStore) *OfferValidator {
	return &OfferValidator{settings: settings}
}

// Validate returns a *model.PercentageExceededError when requested is above
// the country's current cap. The range of requested is not re-checked.
func (v *OfferValidator) Validate(ctx context.Context, requested valueobject.Percentage, country valueobject.CountryCode) error {
	current, err := v.settings.CurrentCap(ctx, country)
	if err != nil {
		return err
	}
	if requested.Exceeds(current.MaxPercent()) {
		return &model.PercentageExceededError{
			Requested: requested.Int(),
			Limit:     current.MaxPercent().Int(),
		}
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/domain/event"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// GetSettingsUseCase returns a country's current cap, creating the default
// entry on first access.
type GetSettingsUseCase struct {
	store          *service.SettingsStore
	defaultCountry valueobject.CountryCode
}

// NewGetSettingsUseCase wires dependencies.
func NewGetSettingsUseCase(store *service.SettingsStore, defaultCountry valueobject.CountryCode) *GetSettingsUseCase {
	return &GetSettingsUseCase{store: store, defaultCountry: defaultCountry}
}

// Execute resolves the country and returns its current cap.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, req dto.GetSettingsRequest) (dto.SettingsResponse, error) {
	country, err := valueobject.ResolveCountry(req.Country, uc.defaultCountry)
	if err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("resolve country: %w", err)
	}
	current, err := uc.store.CurrentCap(ctx, country)
	if err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("resolve cap: %w", err)
	}
	return toSettingsResponse(current), nil
}

// UpdateSettingsUseCase appends a new cap. Only administrators may call it.
type UpdateSettingsUseCase struct {
	store          *service.SettingsStore
	publisher      port.EventPublisher
	metrics        port.MetricsRecorder
	defaultCountry valueobject.CountryCode
	now            func() time.Time
}

// NewUpdateSettingsUseCase wires dependencies.
func NewUpdateSettingsUseCase(
	store *service.SettingsStore,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	defaultCountry valueobject.CountryCode,
	now func() time.Time,
) *UpdateSettingsUseCase {
	if now == nil {
		now = time.Now
	}
	return &UpdateSettingsUseCase{
		store:          store,
		publisher:      publisher,
		metrics:        metrics,
		defaultCountry: defaultCountry,
		now:            now,
	}
}

// Execute appends the cap attributed to actor and announces it.
func (uc *UpdateSettingsUseCase) Execute(
	ctx context.Context,
	actor dto.Actor,
	req dto.UpdateSettingsRequest,
) (dto.SettingsResponse, error) {
	ctx, span := tracer.Start(ctx, "UpdateSettings")
	defer span.End()

	if !actor.Admin {
		return dto.SettingsResponse{}, fmt.Errorf("update settings: %w", model.ErrForbidden)
	}

	country, err := valueobject.ResolveCountry(req.Country, uc.defaultCountry)
	if err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("resolve country: %w", err)
	}
	maxPercent, err := valueobject.NewPercentage(req.MaxPercent)
	if err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("validate request: %w", err)
	}
	span.SetAttributes(attribute.String("financing.country", country.String()))

	updated, err := uc.store.UpdateCap(ctx, country, maxPercent, actor.Username)
	if err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("update cap: %w", err)
	}

	evt := event.NewSettingsUpdated(country.String(), maxPercent.Int(), actor.Username, uc.now())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.metrics.SettingsUpdated(ctx, country.String())
	return toSettingsResponse(updated), nil
}

// SettingsHistoryUseCase lists a country's cap history, newest first.
type SettingsHistoryUseCase struct {
	store          *service.SettingsStore
	defaultCountry valueobject.CountryCode
}

// NewSettingsHistoryUseCase wires dependencies.
func NewSettingsHistoryUseCase(store *service.SettingsStore, defaultCountry valueobject.CountryCode) *SettingsHistoryUseCase {
	return &SettingsHistoryUseCase{store: store, defaultCountry: defaultCountry}
}

// Execute returns every stored entry for the country.
func (uc *SettingsHistoryUseCase) Execute(ctx context.Context, req dto.GetSettingsRequest) ([]dto.SettingsResponse, error) {
	country, err := valueobject.ResolveCountry(req.Country, uc.defaultCountry)
	if err != nil {
		return nil, fmt.Errorf("resolve country: %w", err)
	}
	entries, err := uc.store.History(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("settings history: %w", err)
	}

	out := make([]dto.SettingsResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toSettingsResponse(e))
	}
	return out, nil
}

// ListCountriesUseCase returns the countries with a dedicated currency.
type ListCountriesUseCase struct{}

// NewListCountriesUseCase returns the use case.
func NewListCountriesUseCase() *ListCountriesUseCase { return &ListCountriesUseCase{} }

// Execute lists the registry.
func (uc *ListCountriesUseCase) Execute() []dto.CountryResponse {
	countries := valueobject.KnownCountries()
	out := make([]dto.CountryResponse, 0, len(countries))
	for _, c := range countries {
		out = append(out, dto.CountryResponse{Code: c.String(), Currency: c.Currency().Code()})
	}
	return out
}

func toSettingsResponse(s model.SystemSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		Country:    s.Country().String(),
		MaxPercent: s.MaxPercent().Int(),
		UpdatedAt:  s.UpdatedAt(),
		UpdatedBy:  s.UpdatedBy(),
	}
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

func TestSettingsStore_CurrentCap(t *testing.T) {
	ctx := context.Background()

	t.Run("unseen country gets the default once", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		store := service.NewSettingsStore(repo, clock)

		first, err := store.CurrentCap(ctx, valueobject.CountryChile)
		require.NoError(t, err)
		assert.Equal(t, 50, first.MaxPercent().Int())
		assert.Equal(t, model.SystemActor, first.UpdatedBy())
		assert.Equal(t, fixedNow, first.UpdatedAt())

		second, err := store.CurrentCap(ctx, valueobject.CountryChile)
		require.NoError(t, err)
		assert.Equal(t, first.ID(), second.ID())
		assert.Equal(t, 1, repo.inserts)
		assert.Len(t, repo.entries, 1)
	})

	t.Run("existing entry is returned", func(t *testing.T) {
		repo := withCap(valueobject.CountryArgentina, 70)
		store := service.NewSettingsStore(repo, clock)

		current, err := store.CurrentCap(ctx, valueobject.CountryArgentina)
		require.NoError(t, err)
		assert.Equal(t, 70, current.MaxPercent().Int())
		assert.Zero(t, repo.inserts)
	})

	t.Run("read failure is not resolvable", func(t *testing.T) {
		repo := &mockSettingsRepository{
			currentFunc: func(context.Context, valueobject.CountryCode) (model.SystemSettings, error) {
				return model.SystemSettings{}, errors.New("connection reset")
			},
		}
		_, err := service.NewSettingsStore(repo, clock).CurrentCap(ctx, valueobject.CountryArgentina)
		assert.ErrorIs(t, err, model.ErrSettingsNotResolvable)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("default creation failure is not resolvable", func(t *testing.T) {
		repo := &mockSettingsRepository{
			insertFunc: func(context.Context, model.SystemSettings) (model.SystemSettings, error) {
				return model.SystemSettings{}, errors.New("disk full")
			},
		}
		_, err := service.NewSettingsStore(repo, clock).CurrentCap(ctx, valueobject.CountryArgentina)
		assert.ErrorIs(t, err, model.ErrSettingsNotResolvable)
	})
}

func TestSettingsStore_UpdateCapAppends(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepository{}
	store := service.NewSettingsStore(repo, clock)

	_, err := store.CurrentCap(ctx, valueobject.CountryArgentina)
	require.NoError(t, err)

	updated, err := store.UpdateCap(ctx, valueobject.CountryArgentina, valueobject.MustPercentage(65), "admin")
	require.NoError(t, err)
	assert.Equal(t, 65, updated.MaxPercent().Int())
	assert.Equal(t, "admin", updated.UpdatedBy())

	current, err := store.CurrentCap(ctx, valueobject.CountryArgentina)
	require.NoError(t, err)
	assert.Equal(t, updated.ID(), current.ID())

	history, err := store.History(ctx, valueobject.CountryArgentina)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 65, history[0].MaxPercent().Int())
	assert.Equal(t, 50, history[1].MaxPercent().Int(), "default entry is kept")
}

func TestSettingsStore_UpdateCapErrors(t *testing.T) {
	ctx := context.Background()

	_, err := service.NewSettingsStore(&mockSettingsRepository{}, clock).
		UpdateCap(ctx, valueobject.CountryArgentina, valueobject.MustPercentage(65), "")
	assert.ErrorContains(t, err, "build settings")

	repo := &mockSettingsRepository{
		appendFunc: func(context.Context, model.SystemSettings) (model.SystemSettings, error) {
			return model.SystemSettings{}, errors.New("read-only replica")
		},
	}
	_, err = service.NewSettingsStore(repo, clock).
		UpdateCap(ctx, valueobject.CountryArgentina, valueobject.MustPercentage(65), "admin")
	assert.ErrorContains(t, err, "append settings")
}

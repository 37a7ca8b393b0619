//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	"github.com/vehiclefin/financing-offer/internal/infrastructure/persistence/postgres"
	"github.com/vehiclefin/financing-offer/pkg/money"
	"github.com/vehiclefin/financing-offer/pkg/testutil"
)

const migrationsDir = "../../../../migrations"

func TestRepositories_Postgres(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.RunMigrations(t, migrationsDir)

	t.Run("settings default is inserted once under concurrency", func(t *testing.T) {
		pg.Truncate(t, "system_settings")
		repo := postgres.NewSettingsRepo(pg.Pool)
		def := model.DefaultSystemSettings(valueobject.CountryChile, time.Now())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.InsertDefaultIfAbsent(ctx, def)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		history, err := repo.History(ctx, valueobject.CountryChile)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("settings history is append only and newest first", func(t *testing.T) {
		pg.Truncate(t, "system_settings")
		repo := postgres.NewSettingsRepo(pg.Pool)
		at := time.Now().UTC().Truncate(time.Microsecond)

		_, err := repo.Current(ctx, valueobject.CountryArgentina)
		require.ErrorIs(t, err, model.ErrSettingsNotFound)

		for _, pct := range []int{50, 60, 70} {
			s, err := model.NewSystemSettings(valueobject.CountryArgentina, valueobject.MustPercentage(pct), "root", at)
			require.NoError(t, err)
			_, err = repo.Append(ctx, s)
			require.NoError(t, err)
		}

		current, err := repo.Current(ctx, valueobject.CountryArgentina)
		require.NoError(t, err)
		assert.Equal(t, 70, current.MaxPercent().Int())

		history, err := repo.History(ctx, valueobject.CountryArgentina)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, 50, history[2].MaxPercent().Int())
	})

	t.Run("offers round trip", func(t *testing.T) {
		pg.Truncate(t, "financing_offers")
		repo := postgres.NewOfferRepo(pg.Pool)
		offer := sampleOffer(t, "jdoe")

		require.NoError(t, repo.Save(ctx, offer))

		got, err := repo.FindByID(ctx, offer.ID())
		require.NoError(t, err)
		assert.True(t, offer.TotalAmount().Equal(got.TotalAmount()))
		assert.True(t, offer.ReferencePrice().Equal(got.ReferencePrice()))
		assert.Equal(t, offer.Client().NationalID, got.Client().NationalID)

		_, err = repo.FindByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, model.ErrOfferNotFound)

		require.NoError(t, repo.Save(ctx, sampleOffer(t, "other")))
		mine, err := repo.List(ctx, port.OfferFilter{CreatedBy: "jdoe"})
		require.NoError(t, err)
		assert.Len(t, mine, 1)
		all, err := repo.List(ctx, port.OfferFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("usernames are unique", func(t *testing.T) {
		pg.Truncate(t, "users")
		repo := postgres.NewUserRepo(pg.Pool)
		u, err := model.NewUser("jdoe", "hash", valueobject.RoleUser, time.Now())
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, u))
		dup, err := model.NewUser("jdoe", "other", valueobject.RoleUser, time.Now())
		require.NoError(t, err)
		require.ErrorIs(t, repo.Create(ctx, dup), model.ErrUsernameTaken)

		found, err := repo.FindByUsername(ctx, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, u.ID(), found.ID())

		_, err = repo.FindByUsername(ctx, "ghost")
		require.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func sampleOffer(t *testing.T, owner string) model.FinancingOffer {
	t.Helper()
	req := model.FinancingRequest{
		Client:  model.Client{FirstName: "Ana", LastName: "Gómez", NationalID: "30111222", AnnualIncome: decimal.NewFromInt(9000000)},
		Vehicle: model.Vehicle{Make: "Fiat", Model: "Cronos", Version: "Drive", SKU: "FIA-CRO", Year: 2024},
		DealID:  "deal-1",
		Percent: valueobject.MustPercentage(40),
		Country: valueobject.CountryArgentina,
	}
	total := money.NewFromInt(8000000, money.ARS)
	result := model.SimulationResult{
		TotalAmount:    total,
		FinancedAmount: total.Percent(40, 2),
	}
	offer, err := model.NewFinancingOffer(owner, req, result, total, time.Now())
	require.NoError(t, err)
	return offer
}

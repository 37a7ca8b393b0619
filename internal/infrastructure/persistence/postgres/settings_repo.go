package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	pkgpostgres "github.com/vehiclefin/financing-offer/pkg/postgres"
)

const settingsColumns = `id, country, max_percent, updated_at, updated_by`

// SettingsRepo implements port.SettingsRepository over an append-only table.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepo creates a new repository backed by PostgreSQL.
func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Current returns the newest entry for country.
func (r *SettingsRepo) Current(ctx context.Context, country valueobject.CountryCode) (model.SystemSettings, error) {
	return currentSettings(ctx, r.pool, country)
}

// InsertDefaultIfAbsent serialises first access per country on a
// transaction-scoped advisory lock, so concurrent callers see one default.
func (r *SettingsRepo) InsertDefaultIfAbsent(ctx context.Context, def model.SystemSettings) (model.SystemSettings, error) {
	var result model.SystemSettings
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, def.Country().String()); err != nil {
			return fmt.Errorf("lock settings: %w", err)
		}

		current, err := currentSettings(ctx, tx, def.Country())
		if err == nil {
			result = current
			return nil
		}
		if !errors.Is(err, model.ErrSettingsNotFound) {
			return err
		}

		result, err = insertSettings(ctx, tx, def)
		return err
	})
	if err != nil {
		return model.SystemSettings{}, err
	}
	return result, nil
}

// Append stores a new entry. Earlier entries are never updated.
func (r *SettingsRepo) Append(ctx context.Context, s model.SystemSettings) (model.SystemSettings, error) {
	return insertSettings(ctx, r.pool, s)
}

// History returns every entry for country, newest first.
func (r *SettingsRepo) History(ctx context.Context, country valueobject.CountryCode) ([]model.SystemSettings, error) {
	query := `SELECT ` + settingsColumns + `
		FROM system_settings
		WHERE country = $1
		ORDER BY updated_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, country.String())
	if err != nil {
		return nil, fmt.Errorf("query settings history: %w", err)
	}
	defer rows.Close()

	var result []model.SystemSettings
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func currentSettings(ctx context.Context, q pkgpostgres.Querier, country valueobject.CountryCode) (model.SystemSettings, error) {
	query := `SELECT ` + settingsColumns + `
		FROM system_settings
		WHERE country = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT 1`

	s, err := scanSettings(q.QueryRow(ctx, query, country.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.SystemSettings{}, model.ErrSettingsNotFound
	}
	return s, err
}

func insertSettings(ctx context.Context, q pkgpostgres.Querier, s model.SystemSettings) (model.SystemSettings, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO system_settings (country, max_percent, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		s.Country().String(), s.MaxPercent().Int(), s.UpdatedAt(), s.UpdatedBy(),
	).Scan(&id)
	if err != nil {
		return model.SystemSettings{}, fmt.Errorf("insert settings: %w", err)
	}
	return s.WithID(id), nil
}

func scanSettings(s scannable) (model.SystemSettings, error) {
	var (
		id         int64
		country    string
		maxPercent int
		updatedAt  time.Time
		updatedBy  string
	)
	if err := s.Scan(&id, &country, &maxPercent, &updatedAt, &updatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SystemSettings{}, err
		}
		return model.SystemSettings{}, fmt.Errorf("scan settings: %w", err)
	}
	return reconstructSettings(id, country, maxPercent, updatedAt, updatedBy)
}

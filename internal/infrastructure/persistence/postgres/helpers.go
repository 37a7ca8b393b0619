package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	"github.com/vehiclefin/financing-offer/pkg/money"
)

const uniqueViolation = "23505"

type scannable interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func reconstructSettings(id int64, country string, maxPercent int, updatedAt time.Time, updatedBy string) (model.SystemSettings, error) {
	code, err := valueobject.NewCountryCode(country)
	if err != nil {
		return model.SystemSettings{}, fmt.Errorf("invalid stored country: %w", err)
	}
	pct, err := valueobject.NewPercentage(maxPercent)
	if err != nil {
		return model.SystemSettings{}, fmt.Errorf("invalid stored max percent: %w", err)
	}
	return model.ReconstructSystemSettings(id, code, pct, updatedAt.UTC(), updatedBy), nil
}

// offerRow mirrors one financing_offers row.
type offerRow struct {
	id             uuid.UUID
	createdBy      string
	client         model.Client
	vehicle        model.Vehicle
	dealID         string
	subsidiary     *int
	percent        int
	country        string
	currency       string
	totalAmount    decimal.Decimal
	financedAmount decimal.Decimal
	referencePrice decimal.Decimal
	createdAt      time.Time
}

func (r offerRow) reconstruct() (model.FinancingOffer, error) {
	pct, err := valueobject.NewPercentage(r.percent)
	if err != nil {
		return model.FinancingOffer{}, fmt.Errorf("invalid stored percent: %w", err)
	}
	country, err := valueobject.NewCountryCode(r.country)
	if err != nil {
		return model.FinancingOffer{}, fmt.Errorf("invalid stored country: %w", err)
	}
	cur, err := money.NewCurrency(r.currency)
	if err != nil {
		return model.FinancingOffer{}, fmt.Errorf("invalid stored currency: %w", err)
	}
	return model.ReconstructFinancingOffer(
		r.id.String(), r.createdBy,
		r.client, r.vehicle,
		r.dealID, r.subsidiary,
		pct, country,
		money.New(r.totalAmount, cur),
		money.New(r.financedAmount, cur),
		money.New(r.referencePrice, cur),
		r.createdAt.UTC(),
	), nil
}

func reconstructUser(id uuid.UUID, username, passwordHash, role string, createdAt time.Time) (model.User, error) {
	r, err := valueobject.NewRole(role)
	if err != nil {
		return model.User{}, fmt.Errorf("invalid stored role: %w", err)
	}
	return model.ReconstructUser(id, username, passwordHash, r, createdAt.UTC()), nil
}

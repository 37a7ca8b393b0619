package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
)

const offerColumns = `id, created_by,
	client_first_name, client_last_name, client_national_id, client_income,
	vehicle_make, vehicle_model, vehicle_version, vehicle_sku, vehicle_year,
	deal_id, subsidiary, financed_percent, country, currency,
	total_amount, financed_amount, reference_price, created_at`

// OfferRepo implements port.OfferRepository.
type OfferRepo struct {
	pool *pgxpool.Pool
}

// NewOfferRepo creates a new repository backed by PostgreSQL.
func NewOfferRepo(pool *pgxpool.Pool) *OfferRepo {
	return &OfferRepo{pool: pool}
}

// Save inserts an offer. Offers are immutable once stored.
func (r *OfferRepo) Save(ctx context.Context, o model.FinancingOffer) error {
	query := `INSERT INTO financing_offers (` + offerColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`

	client, vehicle := o.Client(), o.Vehicle()
	_, err := r.pool.Exec(ctx, query,
		o.ID(), o.CreatedBy(),
		client.FirstName, client.LastName, client.NationalID, client.AnnualIncome,
		vehicle.Make, vehicle.Model, vehicle.Version, vehicle.SKU, vehicle.Year,
		o.DealID(), o.Subsidiary(), o.Percent().Int(), o.Country().String(), o.TotalAmount().Currency().Code(),
		o.TotalAmount().Amount(), o.FinancedAmount().Amount(), o.ReferencePrice().Amount(), o.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save financing offer: %w", err)
	}
	return nil
}

// FindByID returns model.ErrOfferNotFound for unknown or malformed ids.
func (r *OfferRepo) FindByID(ctx context.Context, id string) (model.FinancingOffer, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.FinancingOffer{}, model.ErrOfferNotFound
	}

	query := `SELECT ` + offerColumns + ` FROM financing_offers WHERE id = $1`
	offer, err := scanOffer(r.pool.QueryRow(ctx, query, parsed))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FinancingOffer{}, model.ErrOfferNotFound
	}
	return offer, err
}

// List returns the offers matching filter, newest first.
func (r *OfferRepo) List(ctx context.Context, filter port.OfferFilter) ([]model.FinancingOffer, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query financing offers: %w", err)
	}
	defer rows.Close()

	var result []model.FinancingOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func buildListQuery(filter port.OfferFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("created_by", filter.CreatedBy)
	add("country", filter.Country)
	add("deal_id", filter.DealID)

	var b strings.Builder
	b.WriteString(`SELECT ` + offerColumns + ` FROM financing_offers`)
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	return b.String(), args
}

func scanOffer(s scannable) (model.FinancingOffer, error) {
	var row offerRow
	err := s.Scan(
		&row.id, &row.createdBy,
		&row.client.FirstName, &row.client.LastName, &row.client.NationalID, &row.client.AnnualIncome,
		&row.vehicle.Make, &row.vehicle.Model, &row.vehicle.Version, &row.vehicle.SKU, &row.vehicle.Year,
		&row.dealID, &row.subsidiary, &row.percent, &row.country, &row.currency,
		&row.totalAmount, &row.financedAmount, &row.referencePrice, &row.createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FinancingOffer{}, err
		}
		return model.FinancingOffer{}, fmt.Errorf("scan financing offer: %w", err)
	}
	return row.reconstruct()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
)

// UserRepo implements port.UserRepository.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new repository backed by PostgreSQL.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create relies on the unique username constraint to detect duplicates.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID(), u.Username(), u.PasswordHash(), u.Role().String(), u.CreatedAt(),
	)
	if isUniqueViolation(err) {
		return model.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var (
		id               uuid.UUID
		name, hash, role string
		createdAt        time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&id, &name, &hash, &role, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return reconstructUser(id, name, hash, role, createdAt)
}

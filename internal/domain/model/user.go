package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// User is an account allowed to simulate offers.
type User struct {
	id           uuid.UUID
	username     string
	passwordHash string
	role         valueobject.Role
	createdAt    time.Time
}

// NewUser creates an account. passwordHash must already be hashed.
func NewUser(username, passwordHash string, role valueobject.Role, now time.Time) (User, error) {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength {
		return User{}, &ValidationError{
			Field:  "username",
			Reason: fmt.Sprintf("must be at least %d characters", MinUsernameLength),
		}
	}
	if passwordHash == "" {
		return User{}, &ValidationError{Field: "password", Reason: "is required"}
	}
	return User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now.UTC(),
	}, nil
}

// ReconstructUser rebuilds a stored account.
func ReconstructUser(id uuid.UUID, username, passwordHash string, role valueobject.Role, createdAt time.Time) User {
	return User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u User) ID() uuid.UUID          { return u.id }
func (u User) Username() string       { return u.username }
func (u User) PasswordHash() string   { return u.passwordHash }
func (u User) Role() valueobject.Role { return u.role }
func (u User) CreatedAt() time.Time   { return u.createdAt }

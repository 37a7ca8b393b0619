// Package security adapts bcrypt and pkg/auth to the domain ports.
package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/pkg/auth"
)

// BcryptHasher implements port.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher uses bcrypt.DefaultCost when cost is 0.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return model.ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("bcrypt: %w", err)
	}
	return nil
}

// JWTIssuer implements port.TokenIssuer over auth.JWTService.
type JWTIssuer struct {
	jwt *auth.JWTService
}

func NewJWTIssuer(jwt *auth.JWTService) *JWTIssuer {
	return &JWTIssuer{jwt: jwt}
}

// Issue embeds the user's single role in the roles claim.
func (i *JWTIssuer) Issue(user model.User) (string, error) {
	return i.jwt.GenerateToken(user.ID(), user.Username(), []string{user.Role().String()})
}

var (
	_ port.PasswordHasher = (*BcryptHasher)(nil)
	_ port.TokenIssuer    = (*JWTIssuer)(nil)
)

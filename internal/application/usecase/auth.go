package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// RegisterUseCase creates a USER account and signs it in.
type RegisterUseCase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	tokens port.TokenIssuer
	now    func() time.Time
}

// NewRegisterUseCase wires dependencies.
func NewRegisterUseCase(users port.UserRepository, hasher port.PasswordHasher, tokens port.TokenIssuer, now func() time.Time) *RegisterUseCase {
	if now == nil {
		now = time.Now
	}
	return &RegisterUseCase{users: users, hasher: hasher, tokens: tokens, now: now}
}

// Execute registers the account. Duplicate usernames fail with model.ErrUsernameTaken.
func (uc *RegisterUseCase) Execute(ctx context.Context, req dto.CredentialsRequest) (dto.AuthResponse, error) {
	if len(req.Password) < model.MinPasswordLength {
		return dto.AuthResponse{}, fmt.Errorf("validate request: %w", &model.ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", model.MinPasswordLength),
		})
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := model.NewUser(req.Username, hash, valueobject.RoleUser, uc.now())
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("validate request: %w", err)
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	return issue(uc.tokens, user)
}

// LoginUseCase checks credentials and issues a token.
type LoginUseCase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	tokens port.TokenIssuer
}

// NewLoginUseCase wires dependencies.
func NewLoginUseCase(users port.UserRepository, hasher port.PasswordHasher, tokens port.TokenIssuer) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens}
}

// Execute fails with model.ErrInvalidCredentials for an unknown user or a
// wrong password, without telling the two apart.
func (uc *LoginUseCase) Execute(ctx context.Context, req dto.CredentialsRequest) (dto.AuthResponse, error) {
	user, err := uc.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		return dto.AuthResponse{}, fmt.Errorf("login: %w", model.ErrInvalidCredentials)
	}
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}

	if err := uc.hasher.Compare(user.PasswordHash(), req.Password); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("login: %w", model.ErrInvalidCredentials)
	}

	return issue(uc.tokens, user)
}

// SeedAdminUseCase makes sure an administrator account exists at start-up.
type SeedAdminUseCase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	now    func() time.Time
}

// NewSeedAdminUseCase wires dependencies.
func NewSeedAdminUseCase(users port.UserRepository, hasher port.PasswordHasher, now func() time.Time) *SeedAdminUseCase {
	if now == nil {
		now = time.Now
	}
	return &SeedAdminUseCase{users: users, hasher: hasher, now: now}
}

// Execute creates the admin account unless the username exists. It reports
// whether an account was created.
func (uc *SeedAdminUseCase) Execute(ctx context.Context, req dto.CredentialsRequest) (bool, error) {
	_, err := uc.users.FindByUsername(ctx, req.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return false, fmt.Errorf("find admin: %w", err)
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin, err := model.NewUser(req.Username, hash, valueobject.RoleAdmin, uc.now())
	if err != nil {
		return false, fmt.Errorf("build admin: %w", err)
	}
	if err := uc.users.Create(ctx, admin); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func issue(tokens port.TokenIssuer, user model.User) (dto.AuthResponse, error) {
	token, err := tokens.Issue(user)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return dto.AuthResponse{
		Token:    token,
		Username: user.Username(),
		Role:     user.Role().String(),
	}, nil
}

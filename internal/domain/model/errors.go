package model

import (
	"errors"
	"fmt"

	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

var (
	// ErrPercentageExceeded is matched by every PercentageExceededError.
	ErrPercentageExceeded = errors.New("requested percentage exceeds country cap")

	// ErrDivisionDegenerate means the amortization denominator would be zero.
	ErrDivisionDegenerate = errors.New("amortization formula is degenerate for a zero rate")

	// ErrSettingsNotResolvable means no current cap could be read or created.
	ErrSettingsNotResolvable = errors.New("settings not resolvable")

	ErrSettingsNotFound   = errors.New("settings not found")
	ErrOfferNotFound      = errors.New("financing offer not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrInvalidCountryCode = valueobject.ErrInvalidCountryCode
	ErrInvalidPercentage  = valueobject.ErrInvalidPercentage
)

// PercentageExceededError carries the cap the request ran into.
type PercentageExceededError struct {
	Requested int
	Limit     int
}

func (e *PercentageExceededError) Error() string {
	return fmt.Sprintf("requested %d%% exceeds the maximum of %d%%", e.Requested, e.Limit)
}

// Is lets errors.Is(err, ErrPercentageExceeded) match.
func (e *PercentageExceededError) Is(target error) bool {
	return target == ErrPercentageExceeded
}

// ValidationError reports a malformed field on an incoming request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

package valueobject

import (
	"errors"
	"regexp"
	"strings"

	"github.com/vehiclefin/financing-offer/pkg/money"
)

// ErrInvalidCountryCode is returned for anything that is not a two-letter code.
var ErrInvalidCountryCode = errors.New("invalid country code")

var countryCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)

// ---------------------------------------------------------------------------
// CountryCode – immutable value object
// ---------------------------------------------------------------------------

// CountryCode is an ISO 3166-1 alpha-2 code, always upper case.
type CountryCode struct {
	value string
}

// Countries with a dedicated quoting currency. Any other well-formed code is
// quoted in BaseCurrency.
var (
	CountryArgentina = CountryCode{value: "AR"}
	CountryChile     = CountryCode{value: "CL"}
)

// BaseCurrency is the currency used when a country has no registry entry.
var BaseCurrency = money.ARS

var countryCurrencies = map[string]money.Currency{
	"AR": money.ARS,
	"CL": money.CLP,
}

// NewCountryCode normalises and validates raw input such as " ar ".
func NewCountryCode(raw string) (CountryCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !countryCodeRe.MatchString(code) {
		return CountryCode{}, ErrInvalidCountryCode
	}
	return CountryCode{value: code}, nil
}

// MustCountryCode panics on invalid input. Use for constants and tests.
func MustCountryCode(raw string) CountryCode {
	c, err := NewCountryCode(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// ResolveCountry returns the requested country, or fallback when raw is blank.
func ResolveCountry(raw string, fallback CountryCode) (CountryCode, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return NewCountryCode(raw)
}

func (c CountryCode) String() string { return c.value }

// IsZero returns true if the code has not been initialised.
func (c CountryCode) IsZero() bool { return c.value == "" }

// Currency returns the quoting currency for the country.
func (c CountryCode) Currency() money.Currency {
	if cur, ok := countryCurrencies[c.value]; ok {
		return cur
	}
	return BaseCurrency
}

// KnownCountries lists the countries with a registry entry, sorted by code.
func KnownCountries() []CountryCode {
	return []CountryCode{CountryArgentina, CountryChile}
}

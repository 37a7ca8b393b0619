// Package memory holds mutex-guarded repositories for local runs and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

// SettingsRepo implements port.SettingsRepository.
type SettingsRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries map[valueobject.CountryCode][]model.SystemSettings
}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{entries: make(map[valueobject.CountryCode][]model.SystemSettings)}
}

func (r *SettingsRepo) Current(_ context.Context, country valueobject.CountryCode) (model.SystemSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked(country)
}

// InsertDefaultIfAbsent checks and inserts under one lock.
func (r *SettingsRepo) InsertDefaultIfAbsent(_ context.Context, def model.SystemSettings) (model.SystemSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, err := r.currentLocked(def.Country()); err == nil {
		return current, nil
	}
	return r.appendLocked(def), nil
}

func (r *SettingsRepo) Append(_ context.Context, s model.SystemSettings) (model.SystemSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(s), nil
}

// History returns entries newest first.
func (r *SettingsRepo) History(_ context.Context, country valueobject.CountryCode) ([]model.SystemSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.entries[country])
	slices.SortStableFunc(out, func(a, b model.SystemSettings) int {
		switch {
		case a.NewerThan(b):
			return -1
		case b.NewerThan(a):
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *SettingsRepo) currentLocked(country valueobject.CountryCode) (model.SystemSettings, error) {
	entries := r.entries[country]
	if len(entries) == 0 {
		return model.SystemSettings{}, model.ErrSettingsNotFound
	}
	current := entries[0]
	for _, e := range entries[1:] {
		if e.NewerThan(current) {
			current = e
		}
	}
	return current, nil
}

func (r *SettingsRepo) appendLocked(s model.SystemSettings) model.SystemSettings {
	r.nextID++
	stored := s.WithID(r.nextID)
	r.entries[s.Country()] = append(r.entries[s.Country()], stored)
	return stored
}

// OfferRepo implements port.OfferRepository.
type OfferRepo struct {
	mu     sync.RWMutex
	offers []model.FinancingOffer
}

func NewOfferRepo() *OfferRepo { return &OfferRepo{} }

func (r *OfferRepo) Save(_ context.Context, offer model.FinancingOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers = append(r.offers, offer.ClearEvents())
	return nil
}

func (r *OfferRepo) FindByID(_ context.Context, id string) (model.FinancingOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.offers {
		if o.ID() == id {
			return o, nil
		}
	}
	return model.FinancingOffer{}, model.ErrOfferNotFound
}

// List returns matches newest first.
func (r *OfferRepo) List(_ context.Context, filter port.OfferFilter) ([]model.FinancingOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.FinancingOffer
	for i := len(r.offers) - 1; i >= 0; i-- {
		o := r.offers[i]
		if filter.CreatedBy != "" && o.CreatedBy() != filter.CreatedBy {
			continue
		}
		if filter.Country != "" && o.Country().String() != filter.Country {
			continue
		}
		if filter.DealID != "" && o.DealID() != filter.DealID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UserRepo implements port.UserRepository.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]model.User)}
}

func (r *UserRepo) Create(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username()]; ok {
		return model.ErrUsernameTaken
	}
	r.users[user.Username()] = user
	return nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

var (
	_ port.SettingsRepository = (*SettingsRepo)(nil)
	_ port.OfferRepository    = (*OfferRepo)(nil)
	_ port.UserRepository     = (*UserRepo)(nil)
)

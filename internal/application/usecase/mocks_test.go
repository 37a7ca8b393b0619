package usecase_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/vehiclefin/financing-offer/internal/domain/event"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
)

var fixedNow = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type mockSettingsRepository struct {
	mu         sync.Mutex
	entries    []model.SystemSettings
	appendFunc func(ctx context.Context, s model.SystemSettings) (model.SystemSettings, error)
}

func (m *mockSettingsRepository) Current(_ context.Context, country valueobject.CountryCode) (model.SystemSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked(country)
}

func (m *mockSettingsRepository) currentLocked(country valueobject.CountryCode) (model.SystemSettings, error) {
	var (
		current model.SystemSettings
		found   bool
	)
	for _, e := range m.entries {
		if e.Country() == country && (!found || e.NewerThan(current)) {
			current, found = e, true
		}
	}
	if !found {
		return model.SystemSettings{}, model.ErrSettingsNotFound
	}
	return current, nil
}

func (m *mockSettingsRepository) InsertDefaultIfAbsent(_ context.Context, def model.SystemSettings) (model.SystemSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, err := m.currentLocked(def.Country()); err == nil {
		return current, nil
	}
	stored := def.WithID(int64(len(m.entries) + 1))
	m.entries = append(m.entries, stored)
	return stored, nil
}

func (m *mockSettingsRepository) Append(ctx context.Context, s model.SystemSettings) (model.SystemSettings, error) {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := s.WithID(int64(len(m.entries) + 1))
	m.entries = append(m.entries, stored)
	return stored, nil
}

func (m *mockSettingsRepository) History(_ context.Context, country valueobject.CountryCode) ([]model.SystemSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SystemSettings
	for _, e := range m.entries {
		if e.Country() == country {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NewerThan(out[j]) })
	return out, nil
}

type mockOfferRepository struct {
	saveFunc     func(ctx context.Context, offer model.FinancingOffer) error
	findByIDFunc func(ctx context.Context, id string) (model.FinancingOffer, error)
	listFunc     func(ctx context.Context, filter port.OfferFilter) ([]model.FinancingOffer, error)
	savedOffers  []model.FinancingOffer
	lastFilter   port.OfferFilter
}

func (m *mockOfferRepository) Save(ctx context.Context, offer model.FinancingOffer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, offer)
	}
	m.savedOffers = append(m.savedOffers, offer)
	return nil
}

func (m *mockOfferRepository) FindByID(ctx context.Context, id string) (model.FinancingOffer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	for _, o := range m.savedOffers {
		if o.ID() == id {
			return o, nil
		}
	}
	return model.FinancingOffer{}, model.ErrOfferNotFound
}

func (m *mockOfferRepository) List(ctx context.Context, filter port.OfferFilter) ([]model.FinancingOffer, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return m.savedOffers, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockMetrics struct {
	outcomes []string
	updates  []string
}

func (m *mockMetrics) SimulationRecorded(_ context.Context, country, outcome string) {
	m.outcomes = append(m.outcomes, country+":"+outcome)
}

func (m *mockMetrics) SettingsUpdated(_ context.Context, country string) {
	m.updates = append(m.updates, country)
}

type mockUserRepository struct {
	createFunc func(ctx context.Context, user model.User) error
	users      map[string]model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	if m.users == nil {
		m.users = map[string]model.User{}
	}
	if _, ok := m.users[user.Username()]; ok {
		return model.ErrUsernameTaken
	}
	m.users[user.Username()] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := m.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

// plainHasher prefixes passwords so tests can read the stored hash.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return model.ErrInvalidCredentials
	}
	return nil
}

type mockTokenIssuer struct {
	err error
}

func (m mockTokenIssuer) Issue(user model.User) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-for-" + user.Username(), nil
}

var errBoom = errors.New("boom")

// newSimulator builds the real domain pipeline over repo with a seeded source.
func newSimulator(repo port.SettingsRepository, reuse bool) (*service.OfferSimulator, *service.SettingsStore) {
	store := service.NewSettingsStore(repo, clock)
	rates := service.NewRateSimulator(rand.New(rand.NewPCG(7, 7)))
	engine := service.NewSimulationEngine(rates)
	return service.NewOfferSimulator(service.NewOfferValidator(store), rates, engine, reuse), store
}

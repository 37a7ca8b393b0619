package service_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	"github.com/vehiclefin/financing-offer/pkg/testutil"
)

var fixedNow = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seeded(seed uint64) *rand.Rand {
	return testutil.SeededRand(seed)
}

// scriptedSource replays fixed draws and records the bounds it was asked for.
type scriptedSource struct {
	ints   []int
	floats []float64
	bounds []int
}

func (s *scriptedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	if len(s.ints) == 0 {
		panic("unexpected IntN draw")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("unexpected Float64 draw")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// mockSettingsRepository keeps entries in insertion order.
type mockSettingsRepository struct {
	currentFunc func(ctx context.Context, country valueobject.CountryCode) (model.SystemSettings, error)
	insertFunc  func(ctx context.Context, def model.SystemSettings) (model.SystemSettings, error)
	appendFunc  func(ctx context.Context, s model.SystemSettings) (model.SystemSettings, error)
	entries     []model.SystemSettings
	inserts     int
}

func (m *mockSettingsRepository) Current(ctx context.Context, country valueobject.CountryCode) (model.SystemSettings, error) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx, country)
	}
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

func (m *mockSettingsRepository) InsertDefaultIfAbsent(ctx context.Context, def model.SystemSettings) (model.SystemSettings, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, def)
	}
	m.inserts++
	if current, err := m.Current(ctx, def.Country()); err == nil {
		return current, nil
	}
	return m.Append(ctx, def)
}

func (m *mockSettingsRepository) Append(ctx context.Context, s model.SystemSettings) (model.SystemSettings, error) {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, s)
	}
	stored := s.WithID(int64(len(m.entries) + 1))
	m.entries = append(m.entries, stored)
	return stored, nil
}

func (m *mockSettingsRepository) History(_ context.Context, country valueobject.CountryCode) ([]model.SystemSettings, error) {
	var out []model.SystemSettings
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Country() == country {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func withCap(country valueobject.CountryCode, pct int) *mockSettingsRepository {
	repo := &mockSettingsRepository{}
	s, err := model.NewSystemSettings(country, valueobject.MustPercentage(pct), "admin", fixedNow)
	if err != nil {
		panic(err)
	}
	_, _ = repo.Append(context.Background(), s)
	return repo
}

func render(r model.SimulationResult) []string {
	out := []string{r.TotalAmount.String(), r.FinancedAmount.String()}
	for _, q := range r.Quotes {
		out = append(out, fmt.Sprintf("%d:%s:%s:%s", q.Months, q.MonthlyInstallment, q.NominalRate, q.EffectiveRate))
	}
	return out
}

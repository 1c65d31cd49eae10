package helpers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// MockBankingRepository is an in-memory banking.Repository that keeps entries in
// insertion order and reconciles legacy debits on read, like the GORM repository
type MockBankingRepository struct {
	mu      sync.Mutex
	entries map[string][]*banking.Entry // ship-year key -> FIFO entries
	Err     error
}

// NewMockBankingRepository creates a new mock banking repository
func NewMockBankingRepository() *MockBankingRepository {
	return &MockBankingRepository{entries: make(map[string][]*banking.Entry)}
}

// AddRaw stores an entry as-is, including legacy signed-negative debits
func (m *MockBankingRepository) AddRaw(entry *banking.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entry.ShipYear().Key()
	m.entries[key] = append(m.entries[key], entry)
}

func (m *MockBankingRepository) AddEntry(ctx context.Context, entry *banking.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	m.AddRaw(entry)
	return nil
}

func (m *MockBankingRepository) ListEntries(ctx context.Context, shipYear shared.ShipYear) ([]*banking.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked(shipYear), nil
}

func (m *MockBankingRepository) ListEntriesForUpdate(ctx context.Context, shipYear shared.ShipYear) ([]*banking.Entry, error) {
	return m.ListEntries(ctx, shipYear)
}

func (m *MockBankingRepository) SaveApplication(ctx context.Context, application *banking.Application) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := application.ShipYear.Key()
	updated := make(map[uuid.UUID]*banking.Entry, len(application.Updated))
	for _, e := range application.Updated {
		updated[e.ID()] = e
	}
	current := m.entries[key]
	next := make([]*banking.Entry, 0, len(current)+len(application.Created))
	for _, e := range current {
		if u, ok := updated[e.ID()]; ok {
			next = append(next, u)
			continue
		}
		next = append(next, e)
	}
	m.entries[key] = append(next, application.Created...)
	return nil
}

func (m *MockBankingRepository) AvailableBanked(ctx context.Context, shipYear shared.ShipYear) (float64, error) {
	entries, err := m.ListEntries(ctx, shipYear)
	if err != nil {
		return 0, err
	}
	return banking.NewLedger(shipYear, entries).Available(), nil
}

func (m *MockBankingRepository) AppliedEntries(ctx context.Context, shipYear shared.ShipYear) ([]*banking.Entry, error) {
	entries, err := m.ListEntries(ctx, shipYear)
	if err != nil {
		return nil, err
	}
	var applied []*banking.Entry
	for _, e := range entries {
		if e.Applied() {
			applied = append(applied, e)
		}
	}
	return applied, nil
}

func (m *MockBankingRepository) loadLocked(shipYear shared.ShipYear) []*banking.Entry {
	key := shipYear.Key()
	result := banking.ReconcileLegacy(m.entries[key])
	if result.Changed() {
		m.entries[key] = result.Entries
	}
	out := make([]*banking.Entry, len(m.entries[key]))
	copy(out, m.entries[key])
	return out
}

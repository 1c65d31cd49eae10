package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// MockComplianceRepository is an in-memory compliance.Repository
type MockComplianceRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*compliance.Snapshot // ship-year key -> snapshot
	Err       error

	lockedReads int
}

// NewMockComplianceRepository creates a new mock compliance repository
func NewMockComplianceRepository() *MockComplianceRepository {
	return &MockComplianceRepository{snapshots: make(map[string]*compliance.Snapshot)}
}

func (m *MockComplianceRepository) SaveSnapshot(ctx context.Context, snapshot *compliance.Snapshot) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshot.ShipYear().Key()] = snapshot
	return nil
}

func (m *MockComplianceRepository) GetSnapshot(ctx context.Context, shipYear shared.ShipYear) (*compliance.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshots[shipYear.Key()], nil
}

// GetSnapshotForUpdate is GetSnapshot; the mock has no row locks
func (m *MockComplianceRepository) GetSnapshotForUpdate(ctx context.Context, shipYear shared.ShipYear) (*compliance.Snapshot, error) {
	m.mu.Lock()
	m.lockedReads++
	m.mu.Unlock()
	return m.GetSnapshot(ctx, shipYear)
}

// LockedReads counts GetSnapshotForUpdate calls
func (m *MockComplianceRepository) LockedReads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lockedReads
}

func (m *MockComplianceRepository) ListSnapshots(ctx context.Context, year int) ([]*compliance.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*compliance.Snapshot
	for _, s := range m.snapshots {
		if s.ShipYear().Year() == year {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShipYear().ShipID() < out[j].ShipYear().ShipID() })
	return out, nil
}

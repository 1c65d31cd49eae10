package helpers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// MockPoolRepository is an in-memory pooling.Repository.
// CreatePool enforces one membership per ship-year like the unique index does.
type MockPoolRepository struct {
	mu     sync.RWMutex
	pools  map[uuid.UUID]*pooling.Pool
	byShip map[string]uuid.UUID // ship-year key -> pool ID
	Err    error
}

// NewMockPoolRepository creates a new mock pool repository
func NewMockPoolRepository() *MockPoolRepository {
	return &MockPoolRepository{
		pools:  make(map[uuid.UUID]*pooling.Pool),
		byShip: make(map[string]uuid.UUID),
	}
}

func (m *MockPoolRepository) CreatePool(ctx context.Context, pool *pooling.Pool) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, member := range pool.Members() {
		if _, taken := m.byShip[member.ShipYear().Key()]; taken {
			return pooling.AlreadyPooledError(member.ShipID(), member.Year())
		}
	}
	m.pools[pool.ID()] = pool
	for _, member := range pool.Members() {
		m.byShip[member.ShipYear().Key()] = pool.ID()
	}
	return nil
}

func (m *MockPoolRepository) IsShipInPool(ctx context.Context, shipYear shared.ShipYear) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byShip[shipYear.Key()]
	return ok, nil
}

func (m *MockPoolRepository) GetPoolForShip(ctx context.Context, shipYear shared.ShipYear) (*pooling.Membership, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	poolID, ok := m.byShip[shipYear.Key()]
	if !ok {
		return nil, nil
	}
	pool := m.pools[poolID]
	for _, member := range pool.Members() {
		if member.ShipID() == shipYear.ShipID() {
			return &pooling.Membership{
				PoolID:     poolID,
				ShipID:     member.ShipID(),
				Year:       member.Year(),
				PooledCB:   pool.PooledCB(),
				AdjustedCB: member.AdjustedCB(),
				CBAfter:    member.CBAfter(),
				Strategy:   pool.Strategy(),
			}, nil
		}
	}
	return nil, nil
}

func (m *MockPoolRepository) GetPoolMembers(ctx context.Context, poolID uuid.UUID) ([]pooling.Member, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	pool, ok := m.pools[poolID]
	if !ok {
		return nil, nil
	}
	return pool.Members(), nil
}

func (m *MockPoolRepository) GetPool(ctx context.Context, poolID uuid.UUID) (*pooling.Pool, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	pool, ok := m.pools[poolID]
	if !ok {
		return nil, shared.NewNotFoundError("pool", poolID.String())
	}
	return pool, nil
}

// PoolCount returns the number of stored pools
func (m *MockPoolRepository) PoolCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pools)
}

package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// MockRouteRepository is an in-memory route.Repository
type MockRouteRepository struct {
	mu     sync.RWMutex
	routes map[string]*route.Route
	Err    error
}

// NewMockRouteRepository creates a new mock route repository
func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{routes: make(map[string]*route.Route)}
}

func (m *MockRouteRepository) Get(ctx context.Context, id string) (*route.Route, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.routes[id]
	if !ok {
		return nil, shared.NewNotFoundError("route", id)
	}
	return copyRoute(r), nil
}

func (m *MockRouteRepository) Save(ctx context.Context, r *route.Route) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[r.ID()] = copyRoute(r)
	return nil
}

func (m *MockRouteRepository) UpdateMetrics(ctx context.Context, id string, metrics fuel.Metrics) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routes[id]
	if !ok {
		return shared.NewNotFoundError("route", id)
	}
	m.routes[id] = route.ReconstructRoute(r.ID(), r.ShipID(), r.Name(), r.VesselType(), r.FuelType(),
		r.FuelTons(), r.DistanceNM(), r.Year(), &metrics, r.BaselineIntensity())
	return nil
}

func (m *MockRouteRepository) SetBaseline(ctx context.Context, id string, intensity float64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routes[id]
	if !ok {
		return shared.NewNotFoundError("route", id)
	}
	r = copyRoute(r)
	r.SetBaseline(intensity)
	m.routes[id] = r
	return nil
}

func (m *MockRouteRepository) List(ctx context.Context, filter route.Filter) ([]*route.Route, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*route.Route
	for _, r := range m.routes {
		if filter.Matches(r) {
			out = append(out, copyRoute(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year() != out[j].Year() {
			return out[i].Year() < out[j].Year()
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

func copyRoute(r *route.Route) *route.Route {
	var metrics *fuel.Metrics
	if r.Metrics() != nil {
		m := *r.Metrics()
		metrics = &m
	}
	var baseline *float64
	if r.BaselineIntensity() != nil {
		b := *r.BaselineIntensity()
		baseline = &b
	}
	return route.ReconstructRoute(r.ID(), r.ShipID(), r.Name(), r.VesselType(), r.FuelType(),
		r.FuelTons(), r.DistanceNM(), r.Year(), metrics, baseline)
}

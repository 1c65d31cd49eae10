package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func ptr[T any](v T) *T { return &v }

func TestRouteRepository_MetricsAndBaseline(t *testing.T) {
	// Arrange
	repo := persistence.NewGormRouteRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	r, err := route.NewRoute("R001", "S1", "Atlantic", "Container", "HFO", 100, 3000, 2024)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	stored, err := repo.Get(ctx, "R001")
	require.NoError(t, err)
	assert.Nil(t, stored.Metrics())
	assert.Nil(t, stored.BaselineIntensity())

	// Act
	metrics := fuel.Metrics{EnergyMJ: 4_000_000, EmissionsGCO2eq: 320_000_000, IntensityGPerMJ: 80}
	require.NoError(t, repo.UpdateMetrics(ctx, "R001", metrics))
	require.NoError(t, repo.SetBaseline(ctx, "R001", 80))

	// Assert
	stored, err = repo.Get(ctx, "R001")
	require.NoError(t, err)
	require.NotNil(t, stored.Metrics())
	assert.Equal(t, metrics, *stored.Metrics())
	assert.Equal(t, 80.0, *stored.BaselineIntensity())
}

func TestRouteRepository_MissingRoute(t *testing.T) {
	repo := persistence.NewGormRouteRepository(helpers.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "R404")
	assert.True(t, shared.IsNotFound(err))
	assert.True(t, shared.IsNotFound(repo.SetBaseline(ctx, "R404", 1)))
}

func TestRouteRepository_ListFilters(t *testing.T) {
	repo := persistence.NewGormRouteRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	routes := []*route.Route{
		route.ReconstructRoute("R003", "S1", "", "Tanker", "mgo", 50, 1, 2024,
			&fuel.Metrics{EnergyMJ: 1, EmissionsGCO2eq: 500, IntensityGPerMJ: 74}, nil),
		route.ReconstructRoute("R001", "S1", "", "Container", "HFO", 100, 1, 2024,
			&fuel.Metrics{EnergyMJ: 1, EmissionsGCO2eq: 900, IntensityGPerMJ: 80}, nil),
		route.ReconstructRoute("R002", "S2", "", "Container", "LNG", 10, 1, 2025, nil, nil),
	}
	for _, r := range routes {
		require.NoError(t, repo.Save(ctx, r))
	}

	tests := []struct {
		name   string
		filter route.Filter
		want   []string
	}{
		{"no filter orders by year then id", route.Filter{}, []string{"R001", "R003", "R002"}},
		{"ship", route.Filter{ShipID: ptr("S1")}, []string{"R001", "R003"}},
		{"fuel type ignores case", route.Filter{FuelType: ptr("MGO")}, []string{"R003"}},
		{"vessel and year", route.Filter{VesselType: ptr("Container"), Year: ptr(2025)}, []string{"R002"}},
		{"min emissions excludes missing metrics", route.Filter{MinEmissions: ptr(600.0)}, []string{"R001"}},
		{"min intensity", route.Filter{MinIntensity: ptr(70.0)}, []string{"R001", "R003"}},
		{"min fuel", route.Filter{MinFuel: ptr(20.0)}, []string{"R001", "R003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, len(found))
			for i, r := range found {
				ids[i] = r.ID()
				assert.True(t, tt.filter.Matches(r))
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSeed_LoadsDemoFleet(t *testing.T) {
	db := helpers.NewTestDB(t)
	calc := fuel.NewMetricsCalculator(fuel.DefaultFactorTable())

	summary, err := persistence.Seed(context.Background(), db, calc, t0)
	require.NoError(t, err)
	_, err = persistence.Seed(context.Background(), db, calc, t0)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Routes)
	routes, err := persistence.NewGormRouteRepository(db).List(context.Background(), route.Filter{})
	require.NoError(t, err)
	assert.Len(t, routes, 5)
	require.NotNil(t, routes[0].BaselineIntensity())
	assert.Equal(t, 80.0, *routes[0].BaselineIntensity())
}

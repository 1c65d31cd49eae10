package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/application/routes/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func ptr[T any](v T) *T { return &v }

func calculator() *fuel.MetricsCalculator {
	return fuel.NewMetricsCalculator(fuel.DefaultFactorTable())
}

func save(t *testing.T, repo *helpers.MockRouteRepository, r *route.Route) {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), r))
}

func metricsFor(intensity float64) *fuel.Metrics {
	return &fuel.Metrics{EnergyMJ: 1000, EmissionsGCO2eq: intensity * 1000, IntensityGPerMJ: intensity}
}

func TestListRoutes_FillsMissingMetricsAndFilters(t *testing.T) {
	// Arrange
	repo := helpers.NewMockRouteRepository()
	save(t, repo, route.ReconstructRoute("R001", "S1", "Atlantic", "Container", "HFO", 100, 3000, 2024, nil, nil))
	save(t, repo, route.ReconstructRoute("R002", "S2", "", "Tanker", "LNG", 10, 800, 2024, nil, nil))
	save(t, repo, route.ReconstructRoute("R003", "S1", "", "Container", "MGO", 50, 1200, 2025, nil, nil))
	handler := queries.NewListRoutesHandler(repo, calculator())

	// Act
	resp, err := handler.Handle(context.Background(), &queries.ListRoutesQuery{Filter: route.Filter{Year: ptr(2024)}})

	// Assert
	require.NoError(t, err)
	routes := resp.(*queries.ListRoutesResponse).Routes
	require.Len(t, routes, 2)
	assert.Equal(t, "R001", routes[0].ID())
	require.NotNil(t, routes[0].Metrics())
	assert.Equal(t, 80.0, routes[0].Metrics().IntensityGPerMJ)

	stored, err := repo.Get(context.Background(), "R002")
	require.NoError(t, err)
	require.NotNil(t, stored.Metrics())
	assert.Equal(t, 55.0, stored.Metrics().IntensityGPerMJ)
}

func TestListRoutes_MinIntensityNeedsStoredMetrics(t *testing.T) {
	repo := helpers.NewMockRouteRepository()
	save(t, repo, route.ReconstructRoute("R001", "S1", "", "Container", "HFO", 100, 3000, 2024, metricsFor(80), nil))
	save(t, repo, route.ReconstructRoute("R002", "S1", "", "Container", "LNG", 10, 800, 2024, metricsFor(55), nil))
	handler := queries.NewListRoutesHandler(repo, calculator())

	resp, err := handler.Handle(context.Background(), &queries.ListRoutesQuery{Filter: route.Filter{MinIntensity: ptr(60.0)}})

	require.NoError(t, err)
	routes := resp.(*queries.ListRoutesResponse).Routes
	require.Len(t, routes, 1)
	assert.Equal(t, "R001", routes[0].ID())
}

func TestCompareRoutes_UsesOwnOrDefaultBaseline(t *testing.T) {
	// Arrange
	repo := helpers.NewMockRouteRepository()
	save(t, repo, route.ReconstructRoute("R001", "S1", "", "Container", "HFO", 100, 3000, 2024, nil, nil))
	save(t, repo, route.ReconstructRoute("R002", "S1", "North Sea", "Container", "LNG", 10, 800, 2024, nil, ptr(50.0)))
	save(t, repo, route.ReconstructRoute("R003", "S1", "", "", "UNKNOWN", 10, 800, 2024, nil, nil))
	save(t, repo, route.ReconstructRoute("R004", "S2", "", "Container", "HFO", 10, 800, 2024, nil, nil))
	handler := queries.NewCompareRoutesHandler(repo, calculator(), 0)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.CompareRoutesQuery{ShipID: "S1", Year: 2024})

	// Assert
	require.NoError(t, err)
	result := resp.(*queries.CompareRoutesResponse)
	require.Len(t, result.Routes, 2)

	first := result.Routes[0]
	assert.Equal(t, "Route-R001", first.RouteName)
	assert.Equal(t, route.DefaultBaselineIntensity, first.BaselineIntensity)
	assert.Equal(t, route.StatusBetter, first.Status)
	require.NotNil(t, first.PercentChange)
	assert.Equal(t, -10.45, *first.PercentChange)

	second := result.Routes[1]
	assert.Equal(t, "North Sea", second.RouteName)
	assert.Equal(t, route.StatusWorse, second.Status)
	assert.Equal(t, 10.0, *second.PercentChange)

	assert.Equal(t, []string{"Route-R001", "North Sea"}, result.Chart.Labels)
	assert.Equal(t, []float64{80, 55}, result.Chart.Actual)
}

func TestCompareRoutes_RequiresShipYear(t *testing.T) {
	handler := queries.NewCompareRoutesHandler(helpers.NewMockRouteRepository(), calculator(), 0)

	_, err := handler.Handle(context.Background(), &queries.CompareRoutesQuery{ShipID: "S1"})

	assert.True(t, shared.IsValidation(err))
}

func TestGetComparison_GroupsByYearAgainstBaselineRoute(t *testing.T) {
	// Arrange
	repo := helpers.NewMockRouteRepository()
	save(t, repo, route.ReconstructRoute("R001", "S1", "", "Container", "HFO", 100, 3000, 2024, metricsFor(80), ptr(80.0)))
	save(t, repo, route.ReconstructRoute("R002", "S2", "", "Tanker", "LNG", 10, 800, 2024, metricsFor(55), nil))
	save(t, repo, route.ReconstructRoute("R003", "S3", "", "Bulk", "HFO", 10, 800, 2024, metricsFor(95), nil))
	save(t, repo, route.ReconstructRoute("R004", "S1", "", "Container", "MGO", 10, 800, 2025, metricsFor(70), nil))
	handler := queries.NewGetComparisonHandler(repo, 89.3368)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetComparisonQuery{})

	// Assert
	require.NoError(t, err)
	result := resp.(*queries.GetComparisonResponse)
	assert.Equal(t, []int{2025}, result.SkippedYears)
	require.Len(t, result.Comparisons, 2)
	assert.Equal(t, "R002", result.Comparisons[0].RouteID)
	assert.Equal(t, -31.25, result.Comparisons[0].PercentDiff)
	assert.True(t, result.Comparisons[0].Compliant)
	assert.Equal(t, "R003", result.Comparisons[1].RouteID)
	assert.Equal(t, 18.75, result.Comparisons[1].PercentDiff)
	assert.False(t, result.Comparisons[1].Compliant)

	resp, err = handler.Handle(context.Background(), &queries.GetComparisonQuery{Year: ptr(2025)})
	require.NoError(t, err)
	assert.Empty(t, resp.(*queries.GetComparisonResponse).Comparisons)
}

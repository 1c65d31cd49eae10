package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

func ptr[T any](v T) *T { return &v }

func withMetrics(id, ship string, year int, intensity float64, baseline *float64) *route.Route {
	return route.ReconstructRoute(id, ship, "", "Container", "HFO", 10, 1000, year,
		&fuel.Metrics{EnergyMJ: 400_000, EmissionsGCO2eq: 32_000_000, IntensityGPerMJ: intensity}, baseline)
}

func TestNewRoute_Validation(t *testing.T) {
	_, err := route.NewRoute("", "SHIP1", "n", "Tanker", "HFO", 10, 100, 2024)
	assert.True(t, shared.IsValidation(err))

	_, err = route.NewRoute("R1", "", "n", "Tanker", "HFO", 10, 100, 2024)
	assert.True(t, shared.IsValidation(err))

	_, err = route.NewRoute("R1", "SHIP1", "n", "Tanker", "HFO", 10, 100, 0)
	assert.True(t, shared.IsValidation(err))

	r, err := route.NewRoute("R1", "SHIP1", "", "Tanker", "HFO", 10, 100, 2024)
	require.NoError(t, err)
	assert.True(t, r.NeedsMetrics())
	assert.Equal(t, "Route-R1", r.DisplayName())
}

func TestRoute_ComputeMetrics(t *testing.T) {
	r, err := route.NewRoute("R1", "SHIP1", "Atlantic", "Tanker", "lng", 2, 100, 2024)
	require.NoError(t, err)

	m, err := r.ComputeMetrics(fuel.NewMetricsCalculator(fuel.DefaultFactorTable()))

	require.NoError(t, err)
	assert.Equal(t, 55.0, m.IntensityGPerMJ)
	assert.False(t, r.NeedsMetrics())
	assert.Equal(t, m, *r.Metrics())
}

func TestFilter_Matches(t *testing.T) {
	r := withMetrics("R1", "SHIP1", 2024, 80, nil)

	assert.True(t, route.Filter{}.Matches(r))
	assert.True(t, route.Filter{ShipID: ptr("SHIP1"), Year: ptr(2024), FuelType: ptr("hfo")}.Matches(r))
	assert.False(t, route.Filter{ShipID: ptr("SHIP2")}.Matches(r))
	assert.False(t, route.Filter{Year: ptr(2025)}.Matches(r))
	assert.False(t, route.Filter{VesselType: ptr("Tanker")}.Matches(r))
	assert.True(t, route.Filter{MinFuel: ptr(10.0)}.Matches(r))
	assert.False(t, route.Filter{MinFuel: ptr(10.5)}.Matches(r))
	assert.False(t, route.Filter{MinIntensity: ptr(80.1)}.Matches(r))
	assert.True(t, route.Filter{MinEmissions: ptr(1.0)}.Matches(r))

	noMetrics := route.ReconstructRoute("R2", "SHIP1", "", "", "HFO", 1, 0, 2024, nil, nil)
	assert.False(t, route.Filter{MinEmissions: ptr(1.0)}.Matches(noMetrics))
}

func TestCompare(t *testing.T) {
	// Arrange
	routes := []*route.Route{
		withMetrics("R1", "SHIP1", 2024, 80, ptr(90.0)),
		withMetrics("R2", "SHIP1", 2024, 95, nil),
		route.ReconstructRoute("R3", "SHIP1", "", "", "", 0, 0, 2024, nil, nil),
		withMetrics("R4", "SHIP1", 2024, 50, ptr(0.0)),
	}

	// Act
	comparisons, chart := route.Compare(routes, route.DefaultBaselineIntensity)

	// Assert
	require.Len(t, comparisons, 3)

	assert.Equal(t, route.StatusBetter, comparisons[0].Status)
	require.NotNil(t, comparisons[0].PercentChange)
	assert.Equal(t, -11.11, *comparisons[0].PercentChange)

	assert.Equal(t, route.StatusWorse, comparisons[1].Status)
	assert.Equal(t, 89.3368, comparisons[1].BaselineIntensity)
	assert.Equal(t, 6.34, *comparisons[1].PercentChange)

	assert.Equal(t, route.StatusUnknown, comparisons[2].Status)
	assert.Nil(t, comparisons[2].PercentChange)

	assert.Equal(t, []string{"Route-R1", "Route-R2", "Route-R4"}, chart.Labels)
	assert.Equal(t, []float64{80, 95, 50}, chart.Actual)
	assert.Equal(t, []float64{90, 89.3368, 0}, chart.Baseline)
}

func TestCompareByYear(t *testing.T) {
	routes := []*route.Route{
		withMetrics("A", "S1", 2025, 85, nil),
		withMetrics("B", "S2", 2024, 90, nil),
		withMetrics("C", "S3", 2024, 80, ptr(80.0)),
		withMetrics("D", "S4", 2024, 88, ptr(70.0)),
		withMetrics("E", "S5", 2024, 100, nil),
	}

	results, skipped := route.CompareByYear(routes, 89.3368)

	assert.Equal(t, []int{2025}, skipped)
	require.Len(t, results, 3)
	assert.Equal(t, "B", results[0].RouteID)
	assert.Equal(t, 80.0, results[0].BaselineGHG)
	assert.Equal(t, 12.5, results[0].PercentDiff)
	assert.False(t, results[0].Compliant)
	assert.Equal(t, "D", results[1].RouteID)
	assert.Equal(t, 10.0, results[1].PercentDiff)
	assert.True(t, results[1].Compliant)
	assert.Equal(t, 25.0, results[2].PercentDiff)
}

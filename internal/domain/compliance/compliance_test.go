package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

func TestCalculator_Compute_ReferenceExample(t *testing.T) {
	// Arrange
	calc := compliance.NewCalculator(compliance.DefaultRegulation())

	// Act
	result, err := calc.Compute("R001", 80, 100, 2024)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4_100_000.0, result.EnergyScopeMJ)
	assert.InDelta(t, 9.3368, result.DeltaFromTarget, 1e-9)
	assert.InDelta(t, 38_280_880.0, result.CB, 1e-4)
	assert.True(t, result.Compliant)
}

func TestCalculator_Compute_Deficit(t *testing.T) {
	calc := compliance.NewCalculator(compliance.DefaultRegulation())

	result, err := calc.Compute("R002", 91.5, 10, 2025)

	require.NoError(t, err)
	assert.Less(t, result.CB, 0.0)
	assert.False(t, result.Compliant)
	assert.InDelta(t, (89.3368-91.5)*10*41000, result.CB, 1e-6)
}

func TestCalculator_Compute_AtTargetIsCompliant(t *testing.T) {
	calc := compliance.NewCalculator(compliance.DefaultRegulation())

	result, err := calc.Compute("R003", compliance.DefaultTargetIntensity, 5, 2020)

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.CB)
	assert.True(t, result.Compliant)
}

func TestCalculator_Compute_Rejects(t *testing.T) {
	calc := compliance.NewCalculator(compliance.DefaultRegulation())

	tests := []struct {
		name      string
		shipID    string
		intensity float64
		tons      float64
		year      int
		field     string
	}{
		{"missing ship", "", 80, 100, 2024, "ship_id"},
		{"zero intensity", "R001", 0, 100, 2024, "actual_intensity"},
		{"negative tons", "R001", 80, -1, 2024, "fuel_tons"},
		{"before regulation start", "R001", 80, 100, 2019, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Compute(tt.shipID, tt.intensity, tt.tons, tt.year)

			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNewRegulation(t *testing.T) {
	reg, err := compliance.NewRegulation(91.16, 41000, 2025)
	require.NoError(t, err)
	assert.Equal(t, 91.16, reg.TargetIntensity())
	assert.Equal(t, 2025, reg.MinYear())

	_, err = compliance.NewRegulation(0, 41000, 2025)
	assert.Error(t, err)
	_, err = compliance.NewRegulation(91.16, 0, 2025)
	assert.Error(t, err)
	_, err = compliance.NewRegulation(91.16, 41000, 0)
	assert.Error(t, err)
}

func TestResolve_NoSnapshotNoPool(t *testing.T) {
	sy := shared.MustNewShipYear("R001", 2024)

	result := compliance.Resolve(sy, nil, nil, []float64{50})

	assert.False(t, result.Found)
	assert.Equal(t, compliance.NoBalanceMessage, result.Message)
	assert.Equal(t, 0.0, result.AdjustedCB)
	assert.Equal(t, 0.0, result.Deficit)
	assert.False(t, result.InPool)
}

func TestResolve_SnapshotPlusApplied(t *testing.T) {
	sy := shared.MustNewShipYear("R001", 2024)
	snapshot := compliance.NewSnapshot(sy, -100, time.Now())

	result := compliance.Resolve(sy, nil, snapshot, []float64{100, 50})

	assert.True(t, result.Found)
	assert.Equal(t, -100.0, result.OriginalCB)
	assert.Equal(t, 150.0, result.BankedApplied)
	assert.Equal(t, 50.0, result.AdjustedCB)
	assert.Equal(t, 0.0, result.Deficit)
	assert.True(t, result.Compliant)
}

func TestResolve_DeficitRemains(t *testing.T) {
	sy := shared.MustNewShipYear("R001", 2024)
	snapshot := compliance.NewSnapshot(sy, -300, time.Now())

	result := compliance.Resolve(sy, nil, snapshot, []float64{100})

	assert.Equal(t, -200.0, result.AdjustedCB)
	assert.Equal(t, 200.0, result.Deficit)
	assert.False(t, result.Compliant)
}

func TestResolve_PoolSupersedesIndividualBalance(t *testing.T) {
	sy := shared.MustNewShipYear("R001", 2024)
	snapshot := compliance.NewSnapshot(sy, -1_000_000, time.Now())
	pool := &compliance.PoolPosition{PoolID: "pool-1", PooledCB: 150}

	result := compliance.Resolve(sy, pool, snapshot, []float64{999})

	assert.True(t, result.InPool)
	assert.Equal(t, "pool-1", result.PoolID)
	assert.Equal(t, 150.0, result.AdjustedCB)
	assert.Equal(t, 0.0, result.BankedApplied)
	assert.Equal(t, -1_000_000.0, result.OriginalCB)
	assert.True(t, result.Compliant)
}

func TestResolve_PooledWithoutSnapshot(t *testing.T) {
	sy := shared.MustNewShipYear("R001", 2024)
	pool := &compliance.PoolPosition{PoolID: "pool-2", PooledCB: -20}

	result := compliance.Resolve(sy, pool, nil, nil)

	assert.True(t, result.Found)
	assert.Empty(t, result.Message)
	assert.Equal(t, 20.0, result.Deficit)
	assert.False(t, result.Compliant)
}

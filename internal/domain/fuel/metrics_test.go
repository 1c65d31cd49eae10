package fuel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

func TestMetricsCalculator_SupportedFuels(t *testing.T) {
	calc := fuel.NewMetricsCalculator(fuel.DefaultFactorTable())

	tests := []struct {
		fuelType  string
		tons      float64
		energy    float64
		emissions float64
		intensity float64
	}{
		{"HFO", 100, 4_000_000, 320_000_000, 80},
		{"mgo", 10, 430_000, 31_800_000, 73.9535},
		{"LNG", 1, 50_000, 2_750_000, 55},
		{" Methanol ", 2.5, 50_000, 3_500_000, 70},
	}

	for _, tt := range tests {
		t.Run(tt.fuelType, func(t *testing.T) {
			m, err := calc.Calculate(tt.fuelType, tt.tons)

			require.NoError(t, err)
			assert.Equal(t, tt.energy, m.EnergyMJ)
			assert.Equal(t, tt.emissions, m.EmissionsGCO2eq)
			assert.Equal(t, tt.intensity, m.IntensityGPerMJ)
			assert.Greater(t, m.EnergyMJ, 0.0)
			assert.Greater(t, m.EmissionsGCO2eq, 0.0)
		})
	}
}

func TestMetricsCalculator_Rejects(t *testing.T) {
	calc := fuel.NewMetricsCalculator(fuel.DefaultFactorTable())

	tests := []struct {
		name     string
		fuelType string
		tons     float64
		field    string
	}{
		{"missing fuel type", "", 10, "fuel_type"},
		{"unsupported fuel type", "COAL", 10, "fuel_type"},
		{"zero tons", "HFO", 0, "fuel_tons"},
		{"negative tons", "HFO", -3, "fuel_tons"},
		{"energy rounds to zero", "HFO", 0.0000001, "energy_mj"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(tt.fuelType, tt.tons)

			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestMetricsCalculator_IsPure(t *testing.T) {
	calc := fuel.NewMetricsCalculator(fuel.DefaultFactorTable())

	first, err := calc.Calculate("MGO", 123.456)
	require.NoError(t, err)
	second, err := calc.Calculate("MGO", 123.456)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewFactorTable(t *testing.T) {
	table, err := fuel.NewFactorTable(map[string]fuel.Factors{
		"bio": {EnergyDensityMJPerTon: 37000, EmissionFactorGPerTon: 500_000},
	})
	require.NoError(t, err)

	f, ok := table.Lookup(fuel.Type("BIO"))
	assert.True(t, ok)
	assert.Equal(t, 37000.0, f.EnergyDensityMJPerTon)
	assert.Equal(t, []fuel.Type{"BIO"}, table.Types())

	_, err = fuel.NewFactorTable(nil)
	assert.Error(t, err)

	_, err = fuel.NewFactorTable(map[string]fuel.Factors{"HFO": {EnergyDensityMJPerTon: -1}})
	assert.Error(t, err)
}

func TestDefaultFactorTable_Types(t *testing.T) {
	assert.Equal(t,
		[]fuel.Type{fuel.TypeHFO, fuel.TypeLNG, fuel.TypeMGO, fuel.TypeMethanol},
		fuel.DefaultFactorTable().Types(),
	)
}

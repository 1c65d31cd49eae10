package fuel

import (
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/pkg/utils"
)

// Metrics is the energy and emissions footprint of a quantity of fuel
type Metrics struct {
	EnergyMJ        float64
	EmissionsGCO2eq float64
	IntensityGPerMJ float64
}

// MetricsCalculator converts fuel consumption into energy, emissions and intensity
type MetricsCalculator struct {
	table FactorTable
}

func NewMetricsCalculator(table FactorTable) *MetricsCalculator {
	return &MetricsCalculator{table: table}
}

// Calculate returns energy and emissions rounded to 2 decimals and intensity rounded to 4.
// Intensity is derived from the rounded figures.
func (c *MetricsCalculator) Calculate(fuelType string, fuelTons float64) (Metrics, error) {
	ft, ok := ParseType(fuelType)
	if !ok {
		return Metrics{}, shared.NewValidationError("fuel_type", "fuel type is required")
	}

	factors, ok := c.table.Lookup(ft)
	if !ok {
		return Metrics{}, shared.NewValidationError("fuel_type", fmt.Sprintf("unsupported fuel type: %s", fuelType))
	}

	if fuelTons <= 0 {
		return Metrics{}, shared.NewValidationError("fuel_tons", "fuel tons must be positive")
	}

	energy := utils.Round2(fuelTons * factors.EnergyDensityMJPerTon)
	emissions := utils.Round2(fuelTons * factors.EmissionFactorGPerTon)
	if energy == 0 {
		return Metrics{}, shared.NewValidationError("energy_mj", "computed energy is zero")
	}

	return Metrics{
		EnergyMJ:        energy,
		EmissionsGCO2eq: emissions,
		IntensityGPerMJ: utils.Round4(emissions / energy),
	}, nil
}

// Table returns the factor table the calculator was built with
func (c *MetricsCalculator) Table() FactorTable {
	return c.table
}

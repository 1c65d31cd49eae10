package config

import (
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
)

// RegulationConfig holds the regulatory constants. Zero values fall back to the
// reference values in SetDefaults.
type RegulationConfig struct {
	// Target GHG intensity in gCO2e/MJ
	TargetIntensity float64 `mapstructure:"target_intensity" validate:"gt=0"`

	// Energy conversion used by the compliance calculator
	MJPerTon float64 `mapstructure:"mj_per_ton" validate:"gt=0"`

	// Earliest reporting year accepted
	MinYear int `mapstructure:"min_year" validate:"min=1"`

	// Per-fuel factors keyed by fuel type (HFO, MGO, LNG, METHANOL, ...)
	Fuels map[string]FuelFactorConfig `mapstructure:"fuels" validate:"required,min=1,dive,keys,fuel_name,endkeys"`
}

// FuelFactorConfig holds the factors of one fuel type
type FuelFactorConfig struct {
	EnergyDensity  float64 `mapstructure:"energy_density" validate:"gt=0"`
	EmissionFactor float64 `mapstructure:"emission_factor" validate:"gte=0"`
}

// PoolingConfig holds pool formation settings
type PoolingConfig struct {
	Strategy   string `mapstructure:"strategy" validate:"required,pool_strategy"`
	MinMembers int    `mapstructure:"min_members" validate:"min=2"`
}

// ToRegulation converts the section into the calculator's regulation
func (c RegulationConfig) ToRegulation() (compliance.Regulation, error) {
	return compliance.NewRegulation(c.TargetIntensity, c.MJPerTon, c.MinYear)
}

// ToFactorTable converts the fuels table into the metrics calculator's factor table
func (c RegulationConfig) ToFactorTable() (fuel.FactorTable, error) {
	entries := make(map[string]fuel.Factors, len(c.Fuels))
	for name, f := range c.Fuels {
		entries[name] = fuel.Factors{
			EnergyDensityMJPerTon: f.EnergyDensity,
			EmissionFactorGPerTon: f.EmissionFactor,
		}
	}
	table, err := fuel.NewFactorTable(entries)
	if err != nil {
		return fuel.FactorTable{}, fmt.Errorf("invalid fuel factors: %w", err)
	}
	return table, nil
}

// ToStrategy parses the configured pool strategy
func (c PoolingConfig) ToStrategy() (pooling.Strategy, error) {
	return pooling.ParseStrategy(c.Strategy)
}

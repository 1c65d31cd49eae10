package fuel

import (
	"fmt"
	"sort"
)

// Factors holds the per-ton conversion constants for one fuel type
type Factors struct {
	EnergyDensityMJPerTon float64
	EmissionFactorGPerTon float64
}

// FactorTable is an immutable lookup of energy density and emission factor per fuel type.
// It is built once at startup and injected into the calculators.
type FactorTable struct {
	factors map[Type]Factors
}

// DefaultFactorTable returns the reference constants
func DefaultFactorTable() FactorTable {
	table, _ := NewFactorTable(map[string]Factors{
		"HFO":      {EnergyDensityMJPerTon: 40000, EmissionFactorGPerTon: 3_200_000},
		"MGO":      {EnergyDensityMJPerTon: 43000, EmissionFactorGPerTon: 3_180_000},
		"LNG":      {EnergyDensityMJPerTon: 50000, EmissionFactorGPerTon: 2_750_000},
		"METHANOL": {EnergyDensityMJPerTon: 20000, EmissionFactorGPerTon: 1_400_000},
	})
	return table
}

// NewFactorTable copies the given entries into a new table
func NewFactorTable(entries map[string]Factors) (FactorTable, error) {
	if len(entries) == 0 {
		return FactorTable{}, fmt.Errorf("fuel factor table must contain at least one fuel type")
	}

	factors := make(map[Type]Factors, len(entries))
	for name, f := range entries {
		t, ok := ParseType(name)
		if !ok {
			return FactorTable{}, fmt.Errorf("fuel factor table contains an empty fuel type")
		}
		if f.EnergyDensityMJPerTon < 0 || f.EmissionFactorGPerTon < 0 {
			return FactorTable{}, fmt.Errorf("fuel factors for %s must not be negative", t)
		}
		factors[t] = f
	}
	return FactorTable{factors: factors}, nil
}

// Lookup returns the factors for a fuel type
func (t FactorTable) Lookup(fuelType Type) (Factors, bool) {
	f, ok := t.factors[fuelType]
	return f, ok
}

// Types returns the supported fuel types in name order
func (t FactorTable) Types() []Type {
	types := make([]Type, 0, len(t.factors))
	for ft := range t.factors {
		types = append(types, ft)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

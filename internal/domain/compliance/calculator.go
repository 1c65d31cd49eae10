package compliance

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Result is the raw compliance balance of a ship-year
type Result struct {
	ShipID          string
	Year            int
	ActualIntensity float64
	TargetIntensity float64
	EnergyScopeMJ   float64
	DeltaFromTarget float64
	CB              float64
	Compliant       bool
}

// Calculator computes raw compliance balances against a Regulation
type Calculator struct {
	regulation Regulation
}

func NewCalculator(regulation Regulation) *Calculator {
	return &Calculator{regulation: regulation}
}

func (c *Calculator) Regulation() Regulation {
	return c.regulation
}

// Compute returns cb = (target - actual) * tons * MJ per ton.
// The CB is kept at full precision; rounding is left to presentation.
func (c *Calculator) Compute(shipID string, actualIntensity, fuelTons float64, year int) (Result, error) {
	shipID = strings.TrimSpace(shipID)
	if shipID == "" {
		return Result{}, shared.NewValidationError("ship_id", "ship_id is required")
	}
	if actualIntensity <= 0 {
		return Result{}, shared.NewValidationError("actual_intensity", "actual intensity must be positive")
	}
	if fuelTons <= 0 {
		return Result{}, shared.NewValidationError("fuel_tons", "fuel tons must be positive")
	}
	if year < c.regulation.MinYear() {
		return Result{}, shared.NewValidationError("year",
			fmt.Sprintf("year must be %d or later", c.regulation.MinYear()))
	}

	energyScope := fuelTons * c.regulation.MJPerTon()
	delta := c.regulation.TargetIntensity() - actualIntensity
	cb := delta * energyScope

	return Result{
		ShipID:          shipID,
		Year:            year,
		ActualIntensity: actualIntensity,
		TargetIntensity: c.regulation.TargetIntensity(),
		EnergyScopeMJ:   energyScope,
		DeltaFromTarget: delta,
		CB:              cb,
		Compliant:       cb >= 0,
	}, nil
}

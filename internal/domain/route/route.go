package route

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Route is one voyage of a ship in a reporting year, with its fuel consumption
// and, once computed, its energy and emissions metrics.
type Route struct {
	id                string
	shipID            string
	name              string
	vesselType        string
	fuelType          string
	fuelTons          float64
	distanceNM        float64
	year              int
	metrics           *fuel.Metrics
	baselineIntensity *float64
}

// NewRoute validates and creates a route without metrics
func NewRoute(id, shipID, name, vesselType, fuelType string, fuelTons, distanceNM float64, year int) (*Route, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewValidationError("route_id", "route_id is required")
	}
	if strings.TrimSpace(shipID) == "" {
		return nil, shared.NewValidationError("ship_id", "ship_id is required")
	}
	if year <= 0 {
		return nil, shared.NewValidationError("year", "year must be positive")
	}
	if fuelTons < 0 {
		return nil, shared.NewValidationError("fuel_tons", "fuel tons must not be negative")
	}
	return &Route{
		id:         id,
		shipID:     strings.TrimSpace(shipID),
		name:       name,
		vesselType: vesselType,
		fuelType:   fuelType,
		fuelTons:   fuelTons,
		distanceNM: distanceNM,
		year:       year,
	}, nil
}

// ReconstructRoute rebuilds a route from persistence
func ReconstructRoute(
	id, shipID, name, vesselType, fuelType string,
	fuelTons, distanceNM float64,
	year int,
	metrics *fuel.Metrics,
	baselineIntensity *float64,
) *Route {
	return &Route{
		id:                id,
		shipID:            shipID,
		name:              name,
		vesselType:        vesselType,
		fuelType:          fuelType,
		fuelTons:          fuelTons,
		distanceNM:        distanceNM,
		year:              year,
		metrics:           metrics,
		baselineIntensity: baselineIntensity,
	}
}

func (r *Route) ID() string                  { return r.id }
func (r *Route) ShipID() string              { return r.shipID }
func (r *Route) Name() string                { return r.name }
func (r *Route) VesselType() string          { return r.vesselType }
func (r *Route) FuelType() string            { return r.fuelType }
func (r *Route) FuelTons() float64           { return r.fuelTons }
func (r *Route) DistanceNM() float64         { return r.distanceNM }
func (r *Route) Year() int                   { return r.year }
func (r *Route) Metrics() *fuel.Metrics      { return r.metrics }
func (r *Route) BaselineIntensity() *float64 { return r.baselineIntensity }

// DisplayName falls back to a generated label for unnamed routes
func (r *Route) DisplayName() string {
	if r.name != "" {
		return r.name
	}
	return fmt.Sprintf("Route-%s", r.id)
}

// NeedsMetrics reports whether any metric is missing or zero
func (r *Route) NeedsMetrics() bool {
	return r.metrics == nil ||
		r.metrics.EnergyMJ == 0 ||
		r.metrics.EmissionsGCO2eq == 0 ||
		r.metrics.IntensityGPerMJ == 0
}

// ComputeMetrics runs the fuel calculator over the route's consumption and stores the result
func (r *Route) ComputeMetrics(calc *fuel.MetricsCalculator) (fuel.Metrics, error) {
	m, err := calc.Calculate(r.fuelType, r.fuelTons)
	if err != nil {
		return fuel.Metrics{}, err
	}
	r.metrics = &m
	return m, nil
}

// SetBaseline records intensity as this route's baseline
func (r *Route) SetBaseline(intensity float64) {
	r.baselineIntensity = &intensity
}

// Filter selects routes. Nil fields are ignored.
type Filter struct {
	ShipID       *string
	Year         *int
	VesselType   *string
	FuelType     *string
	MinEmissions *float64
	MinIntensity *float64
	MinFuel      *float64
}

// Matches applies the filter in memory, with the same semantics as the SQL repository
func (f Filter) Matches(r *Route) bool {
	if f.ShipID != nil && r.shipID != *f.ShipID {
		return false
	}
	if f.Year != nil && r.year != *f.Year {
		return false
	}
	if f.VesselType != nil && r.vesselType != *f.VesselType {
		return false
	}
	if f.FuelType != nil && !strings.EqualFold(r.fuelType, *f.FuelType) {
		return false
	}
	if f.MinFuel != nil && r.fuelTons < *f.MinFuel {
		return false
	}
	if f.MinEmissions != nil && (r.metrics == nil || r.metrics.EmissionsGCO2eq < *f.MinEmissions) {
		return false
	}
	if f.MinIntensity != nil && (r.metrics == nil || r.metrics.IntensityGPerMJ < *f.MinIntensity) {
		return false
	}
	return true
}

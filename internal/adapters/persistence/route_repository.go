package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GormRouteRepository implements route.Repository using GORM
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Get(ctx context.Context, id string) (*route.Route, error) {
	var model RouteModel
	err := dbFromContext(ctx, r.db).Where("route_id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("route", id)
		}
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	return modelToRoute(&model), nil
}

// Save creates or replaces a route
func (r *GormRouteRepository) Save(ctx context.Context, rt *route.Route) error {
	if err := dbFromContext(ctx, r.db).Save(routeToModel(rt)).Error; err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

func (r *GormRouteRepository) UpdateMetrics(ctx context.Context, id string, metrics fuel.Metrics) error {
	return r.update(ctx, id, map[string]interface{}{
		"energy_mj":        metrics.EnergyMJ,
		"emissions_gco2eq": metrics.EmissionsGCO2eq,
		"ghg_intensity":    metrics.IntensityGPerMJ,
	})
}

func (r *GormRouteRepository) SetBaseline(ctx context.Context, id string, intensity float64) error {
	return r.update(ctx, id, map[string]interface{}{"baseline_intensity": intensity})
}

// List returns the routes matching filter ordered by year then route ID
func (r *GormRouteRepository) List(ctx context.Context, filter route.Filter) ([]*route.Route, error) {
	query := dbFromContext(ctx, r.db).Model(&RouteModel{})
	if filter.ShipID != nil {
		query = query.Where("ship_id = ?", *filter.ShipID)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	if filter.VesselType != nil {
		query = query.Where("vessel_type = ?", *filter.VesselType)
	}
	if filter.FuelType != nil {
		query = query.Where("UPPER(fuel_type) = UPPER(?)", *filter.FuelType)
	}
	if filter.MinFuel != nil {
		query = query.Where("fuel_consumption_t >= ?", *filter.MinFuel)
	}
	if filter.MinEmissions != nil {
		query = query.Where("emissions_gco2eq >= ?", *filter.MinEmissions)
	}
	if filter.MinIntensity != nil {
		query = query.Where("ghg_intensity >= ?", *filter.MinIntensity)
	}

	var models []RouteModel
	if err := query.Order("year ASC").Order("route_id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]*route.Route, 0, len(models))
	for i := range models {
		routes = append(routes, modelToRoute(&models[i]))
	}
	return routes, nil
}

func (r *GormRouteRepository) update(ctx context.Context, id string, columns map[string]interface{}) error {
	result := dbFromContext(ctx, r.db).Model(&RouteModel{}).Where("route_id = ?", id).Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update route %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("route", id)
	}
	return nil
}

func routeToModel(rt *route.Route) *RouteModel {
	model := &RouteModel{
		ID:                rt.ID(),
		ShipID:            rt.ShipID(),
		Name:              rt.Name(),
		VesselType:        rt.VesselType(),
		FuelType:          rt.FuelType(),
		FuelTons:          rt.FuelTons(),
		DistanceNM:        rt.DistanceNM(),
		Year:              rt.Year(),
		BaselineIntensity: rt.BaselineIntensity(),
	}
	if m := rt.Metrics(); m != nil {
		energy, emissions, intensity := m.EnergyMJ, m.EmissionsGCO2eq, m.IntensityGPerMJ
		model.EnergyMJ = &energy
		model.EmissionsGCO2eq = &emissions
		model.IntensityGPerMJ = &intensity
	}
	return model
}

// modelToRoute treats a row with any metric column NULL as having no metrics
func modelToRoute(model *RouteModel) *route.Route {
	var metrics *fuel.Metrics
	if model.EnergyMJ != nil && model.EmissionsGCO2eq != nil && model.IntensityGPerMJ != nil {
		metrics = &fuel.Metrics{
			EnergyMJ:        *model.EnergyMJ,
			EmissionsGCO2eq: *model.EmissionsGCO2eq,
			IntensityGPerMJ: *model.IntensityGPerMJ,
		}
	}
	return route.ReconstructRoute(model.ID, model.ShipID, model.Name, model.VesselType, model.FuelType,
		model.FuelTons, model.DistanceNM, model.Year, metrics, model.BaselineIntensity)
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// CompareRoutesQuery compares a ship's routes for a year against their baselines.
// Filter narrows the selection further; its ShipID and Year are overridden.
type CompareRoutesQuery struct {
	ShipID string
	Year   int
	Filter route.Filter
}

// CompareRoutesResponse carries per-route comparisons and chart series
type CompareRoutesResponse struct {
	ShipID string
	Year   int
	Routes []route.Comparison
	Chart  route.Chart
}

// CompareRoutesHandler handles the CompareRoutes query
type CompareRoutesHandler struct {
	routeRepo       route.Repository
	calculator      *fuel.MetricsCalculator
	defaultBaseline float64
}

// NewCompareRoutesHandler creates a new CompareRoutesHandler
func NewCompareRoutesHandler(routeRepo route.Repository, calculator *fuel.MetricsCalculator, defaultBaseline float64) *CompareRoutesHandler {
	if defaultBaseline <= 0 {
		defaultBaseline = route.DefaultBaselineIntensity
	}
	return &CompareRoutesHandler{routeRepo: routeRepo, calculator: calculator, defaultBaseline: defaultBaseline}
}

// Handle executes the CompareRoutes query. Routes whose metrics cannot be computed are skipped.
func (h *CompareRoutesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CompareRoutesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompareRoutesQuery")
	}

	shipYear, err := shared.NewShipYear(query.ShipID, query.Year)
	if err != nil {
		return nil, err
	}

	filter := query.Filter
	shipID, year := shipYear.ShipID(), shipYear.Year()
	filter.ShipID = &shipID
	filter.Year = &year

	routes, err := h.routeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	comparisons, chart := route.Compare(fillMetrics(ctx, h.routeRepo, h.calculator, routes), h.defaultBaseline)
	return &CompareRoutesResponse{
		ShipID: shipID,
		Year:   year,
		Routes: comparisons,
		Chart:  chart,
	}, nil
}

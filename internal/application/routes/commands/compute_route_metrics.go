package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// ComputeRouteMetricsCommand computes and stores energy, emissions and intensity of a route
type ComputeRouteMetricsCommand struct {
	RouteID string
}

// ComputeRouteMetricsResponse carries the computed metrics
type ComputeRouteMetricsResponse struct {
	RouteID string
	Metrics fuel.Metrics
}

// ComputeRouteMetricsHandler handles the ComputeRouteMetrics command
type ComputeRouteMetricsHandler struct {
	routeRepo  route.Repository
	calculator *fuel.MetricsCalculator
}

// NewComputeRouteMetricsHandler creates a new ComputeRouteMetricsHandler
func NewComputeRouteMetricsHandler(routeRepo route.Repository, calculator *fuel.MetricsCalculator) *ComputeRouteMetricsHandler {
	return &ComputeRouteMetricsHandler{routeRepo: routeRepo, calculator: calculator}
}

// Handle executes the ComputeRouteMetrics command.
// An unknown route is a hard failure here, unlike missing snapshots in CB resolution.
func (h *ComputeRouteMetricsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ComputeRouteMetricsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ComputeRouteMetricsCommand")
	}
	if cmd.RouteID == "" {
		return nil, shared.NewValidationError("route_id", "route_id is required")
	}

	r, err := h.routeRepo.Get(ctx, cmd.RouteID)
	if err != nil {
		return nil, err
	}

	metrics, err := ComputeAndStore(ctx, h.routeRepo, h.calculator, r)
	if err != nil {
		return nil, err
	}
	return &ComputeRouteMetricsResponse{RouteID: r.ID(), Metrics: metrics}, nil
}

// ComputeAndStore computes the route's metrics and persists them
func ComputeAndStore(ctx context.Context, repo route.Repository, calc *fuel.MetricsCalculator, r *route.Route) (fuel.Metrics, error) {
	metrics, err := r.ComputeMetrics(calc)
	if err != nil {
		return fuel.Metrics{}, err
	}
	if err := repo.UpdateMetrics(ctx, r.ID(), metrics); err != nil {
		return fuel.Metrics{}, fmt.Errorf("failed to store route metrics: %w", err)
	}
	return metrics, nil
}

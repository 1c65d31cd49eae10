package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// SetBaselineCommand marks a route's current intensity as its baseline
type SetBaselineCommand struct {
	RouteID string
}

// SetBaselineResponse carries the stored baseline intensity
type SetBaselineResponse struct {
	RouteID  string
	Baseline float64
}

// SetBaselineHandler handles the SetBaseline command
type SetBaselineHandler struct {
	routeRepo  route.Repository
	calculator *fuel.MetricsCalculator
}

// NewSetBaselineHandler creates a new SetBaselineHandler
func NewSetBaselineHandler(routeRepo route.Repository, calculator *fuel.MetricsCalculator) *SetBaselineHandler {
	return &SetBaselineHandler{routeRepo: routeRepo, calculator: calculator}
}

// Handle executes the SetBaseline command, computing metrics first when the route has none
func (h *SetBaselineHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetBaselineCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetBaselineCommand")
	}
	if cmd.RouteID == "" {
		return nil, shared.NewValidationError("route_id", "route_id is required")
	}

	r, err := h.routeRepo.Get(ctx, cmd.RouteID)
	if err != nil {
		return nil, err
	}

	if r.Metrics() == nil || r.Metrics().IntensityGPerMJ == 0 {
		if _, err := ComputeAndStore(ctx, h.routeRepo, h.calculator, r); err != nil {
			return nil, err
		}
	}

	baseline := r.Metrics().IntensityGPerMJ
	if err := h.routeRepo.SetBaseline(ctx, r.ID(), baseline); err != nil {
		return nil, fmt.Errorf("failed to store baseline: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("route_id", r.ID()).Float64("baseline", baseline).Msg("route baseline set")
	return &SetBaselineResponse{RouteID: r.ID(), Baseline: baseline}, nil
}

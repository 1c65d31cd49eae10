package queries

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/application/routes/commands"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
)

// ListRoutesQuery lists routes matching a filter, filling in missing metrics
type ListRoutesQuery struct {
	Filter route.Filter
}

// ListRoutesResponse carries the matching routes
type ListRoutesResponse struct {
	Routes []*route.Route
}

// ListRoutesHandler handles the ListRoutes query
type ListRoutesHandler struct {
	routeRepo  route.Repository
	calculator *fuel.MetricsCalculator
}

// NewListRoutesHandler creates a new ListRoutesHandler
func NewListRoutesHandler(routeRepo route.Repository, calculator *fuel.MetricsCalculator) *ListRoutesHandler {
	return &ListRoutesHandler{routeRepo: routeRepo, calculator: calculator}
}

// Handle executes the ListRoutes query. A route whose metrics cannot be computed
// is returned as stored.
func (h *ListRoutesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListRoutesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListRoutesQuery")
	}

	routes, err := h.routeRepo.List(ctx, query.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	fillMetrics(ctx, h.routeRepo, h.calculator, routes)
	return &ListRoutesResponse{Routes: routes}, nil
}

// fillMetrics computes metrics for routes that lack them and returns the routes
// that have usable metrics afterwards
func fillMetrics(ctx context.Context, repo route.Repository, calc *fuel.MetricsCalculator, routes []*route.Route) []*route.Route {
	usable := make([]*route.Route, 0, len(routes))
	for _, r := range routes {
		if r.NeedsMetrics() {
			if _, err := commands.ComputeAndStore(ctx, repo, calc, r); err != nil {
				zerolog.Ctx(ctx).Debug().Str("route_id", r.ID()).Err(err).Msg("route metrics unavailable")
				continue
			}
		}
		usable = append(usable, r)
	}
	return usable
}

package queries

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
)

// GetComparisonQuery compares every route with the baseline route of its year
type GetComparisonQuery struct {
	Year *int
}

// GetComparisonResponse carries one row per non-baseline route
type GetComparisonResponse struct {
	Comparisons  []route.YearComparison
	SkippedYears []int
}

// GetComparisonHandler handles the GetComparison query
type GetComparisonHandler struct {
	routeRepo route.Repository
	target    float64
}

// NewGetComparisonHandler creates a new GetComparisonHandler; target is the
// intensity a route must not exceed to count as compliant
func NewGetComparisonHandler(routeRepo route.Repository, target float64) *GetComparisonHandler {
	return &GetComparisonHandler{routeRepo: routeRepo, target: target}
}

// Handle executes the GetComparison query
func (h *GetComparisonHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetComparisonQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetComparisonQuery")
	}

	routes, err := h.routeRepo.List(ctx, route.Filter{Year: query.Year})
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	comparisons, skipped := route.CompareByYear(routes, h.target)
	for _, year := range skipped {
		zerolog.Ctx(ctx).Warn().Int("year", year).Msg("no baseline route for year, skipping")
	}
	return &GetComparisonResponse{Comparisons: comparisons, SkippedYears: skipped}, nil
}

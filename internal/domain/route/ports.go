package route

import (
	"context"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
)

// Repository persists routes
type Repository interface {
	// Get returns a NotFoundError for unknown route IDs
	Get(ctx context.Context, id string) (*Route, error)

	// Save inserts or replaces a route
	Save(ctx context.Context, r *Route) error

	UpdateMetrics(ctx context.Context, id string, metrics fuel.Metrics) error

	SetBaseline(ctx context.Context, id string, intensity float64) error

	// List returns the routes matching filter ordered by year, then route ID
	List(ctx context.Context, filter Filter) ([]*Route, error)
}

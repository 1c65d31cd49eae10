package pooling

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Repository persists pools and their members.
// Implementations enforce at most one membership per ship-year.
type Repository interface {
	// CreatePool persists the pool and all its members atomically. A member that is
	// already pooled for the year fails the whole call with a DomainError.
	CreatePool(ctx context.Context, pool *Pool) error

	IsShipInPool(ctx context.Context, shipYear shared.ShipYear) (bool, error)

	// GetPoolForShip returns nil, nil when the ship-year is not pooled
	GetPoolForShip(ctx context.Context, shipYear shared.ShipYear) (*Membership, error)

	GetPoolMembers(ctx context.Context, poolID uuid.UUID) ([]Member, error)

	GetPool(ctx context.Context, poolID uuid.UUID) (*Pool, error)
}

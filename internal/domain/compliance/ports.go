package compliance

import (
	"context"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Repository persists compliance snapshots
type Repository interface {
	// SaveSnapshot inserts or replaces the snapshot of the ship-year
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error

	// GetSnapshot returns nil, nil when the ship-year has no snapshot
	GetSnapshot(ctx context.Context, shipYear shared.ShipYear) (*Snapshot, error)

	// GetSnapshotForUpdate is GetSnapshot with the row locked until the
	// surrounding transaction ends
	GetSnapshotForUpdate(ctx context.Context, shipYear shared.ShipYear) (*Snapshot, error)

	// ListSnapshots returns every snapshot of a year ordered by ship
	ListSnapshots(ctx context.Context, year int) ([]*Snapshot, error)
}

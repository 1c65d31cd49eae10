package banking

import (
	"context"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Repository is the single banking port. Implementations return entries in FIFO
// order and reconcile legacy signed-negative debits before returning them.
type Repository interface {
	// AddEntry appends a deposit
	AddEntry(ctx context.Context, entry *Entry) error

	// ListEntries returns every entry of the ship-year in FIFO order
	ListEntries(ctx context.Context, shipYear shared.ShipYear) ([]*Entry, error)

	// ListEntriesForUpdate is ListEntries with the rows locked until the
	// surrounding transaction ends, where the storage supports it
	ListEntriesForUpdate(ctx context.Context, shipYear shared.ShipYear) ([]*Entry, error)

	// SaveApplication persists the entry changes of an application atomically
	SaveApplication(ctx context.Context, application *Application) error

	// AvailableBanked returns the sum of open deposits
	AvailableBanked(ctx context.Context, shipYear shared.ShipYear) (float64, error)

	// AppliedEntries returns the applied entries, consumed by the adjusted-CB resolver
	AppliedEntries(ctx context.Context, shipYear shared.ShipYear) ([]*Entry, error)
}

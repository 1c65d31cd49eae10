package compliance

import (
	"time"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Snapshot is the raw CB recorded for a ship-year.
// A new computation replaces the previous snapshot rather than amending it.
type Snapshot struct {
	shipYear   shared.ShipYear
	cb         float64
	computedAt time.Time
}

func NewSnapshot(shipYear shared.ShipYear, cb float64, computedAt time.Time) *Snapshot {
	return &Snapshot{shipYear: shipYear, cb: cb, computedAt: computedAt}
}

// ReconstructSnapshot rebuilds a snapshot from persistence; an invalid ship-year is an error
func ReconstructSnapshot(shipID string, year int, cb float64, computedAt time.Time) (*Snapshot, error) {
	sy, err := shared.NewShipYear(shipID, year)
	if err != nil {
		return nil, err
	}
	return &Snapshot{shipYear: sy, cb: cb, computedAt: computedAt}, nil
}

func (s *Snapshot) ShipYear() shared.ShipYear { return s.shipYear }
func (s *Snapshot) CB() float64               { return s.cb }
func (s *Snapshot) ComputedAt() time.Time     { return s.computedAt }

package shared

import (
	"fmt"
	"strings"
)

// ShipYear is the unit of aggregation for every compliance operation.
// A ship-year has at most one compliance snapshot, an ordered bank ledger
// and at most one pool membership.
type ShipYear struct {
	shipID string
	year   int
}

// NewShipYear creates a ShipYear value object
func NewShipYear(shipID string, year int) (ShipYear, error) {
	shipID = strings.TrimSpace(shipID)
	if shipID == "" {
		return ShipYear{}, NewValidationError("ship_id", "ship_id is required")
	}
	if year <= 0 {
		return ShipYear{}, NewValidationError("year", "year must be positive")
	}
	return ShipYear{shipID: shipID, year: year}, nil
}

// MustNewShipYear creates a ShipYear, panicking if invalid
// Use this only when the values come from storage or test fixtures
func MustNewShipYear(shipID string, year int) ShipYear {
	sy, err := NewShipYear(shipID, year)
	if err != nil {
		panic(err)
	}
	return sy
}

func (s ShipYear) ShipID() string {
	return s.shipID
}

func (s ShipYear) Year() int {
	return s.year
}

// Key returns a stable string key, used for locking and map lookups
func (s ShipYear) Key() string {
	return fmt.Sprintf("%s/%d", s.shipID, s.year)
}

func (s ShipYear) String() string {
	return fmt.Sprintf("ship=%s year=%d", s.shipID, s.year)
}

func (s ShipYear) Equals(other ShipYear) bool {
	return s.shipID == other.shipID && s.year == other.year
}

func (s ShipYear) IsZero() bool {
	return s.shipID == "" && s.year == 0
}

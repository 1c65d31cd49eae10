package banking

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Entry is one line of a ship-year's bank ledger.
//
// An open entry is a deposit of banked surplus. An applied entry records surplus
// consumed against a deficit; when only part of a deposit is consumed the deposit
// keeps the open remainder and a new applied entry points back at it via SourceID.
type Entry struct {
	id        uuid.UUID
	shipYear  shared.ShipYear
	amount    float64
	applied   bool
	appliedAt *time.Time
	sourceID  *uuid.UUID
	createdAt time.Time
}

func newDeposit(shipYear shared.ShipYear, amount float64, now time.Time) *Entry {
	return &Entry{
		id:        uuid.New(),
		shipYear:  shipYear,
		amount:    amount,
		createdAt: now,
	}
}

func newAppliedSplit(source *Entry, amount float64, now time.Time) *Entry {
	sourceID := source.id
	appliedAt := now
	return &Entry{
		id:        uuid.New(),
		shipYear:  source.shipYear,
		amount:    amount,
		applied:   true,
		appliedAt: &appliedAt,
		sourceID:  &sourceID,
		createdAt: source.createdAt,
	}
}

// ReconstructEntry rebuilds an entry from persistence
func ReconstructEntry(
	id uuid.UUID,
	shipYear shared.ShipYear,
	amount float64,
	applied bool,
	appliedAt *time.Time,
	sourceID *uuid.UUID,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:        id,
		shipYear:  shipYear,
		amount:    amount,
		applied:   applied,
		appliedAt: appliedAt,
		sourceID:  sourceID,
		createdAt: createdAt,
	}
}

func (e *Entry) ID() uuid.UUID             { return e.id }
func (e *Entry) ShipYear() shared.ShipYear { return e.shipYear }
func (e *Entry) Amount() float64           { return e.amount }
func (e *Entry) Applied() bool             { return e.applied }
func (e *Entry) AppliedAt() *time.Time     { return e.appliedAt }
func (e *Entry) SourceID() *uuid.UUID      { return e.sourceID }
func (e *Entry) CreatedAt() time.Time      { return e.createdAt }

// IsOpenDeposit reports whether the entry still counts towards the available balance
func (e *Entry) IsOpenDeposit() bool {
	return !e.applied && e.amount > 0
}

// IsLegacyDebit reports a signed-negative application written by the old ledger encoding
func (e *Entry) IsLegacyDebit() bool {
	return !e.applied && e.amount < 0
}

func (e *Entry) clone() *Entry {
	c := *e
	return &c
}

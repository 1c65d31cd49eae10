package compliance

import (
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/pkg/utils"
)

// NoBalanceMessage marks a ship-year that has neither a pool membership nor a snapshot
const NoBalanceMessage = "No compliance balance found."

// PoolPosition is the pool membership of a ship-year as seen by the resolver
type PoolPosition struct {
	PoolID   string
	PooledCB float64
	CBAfter  *float64
}

// AdjustedCB is the authoritative compliance position of a ship-year
type AdjustedCB struct {
	ShipID        string
	Year          int
	Found         bool
	Message       string
	OriginalCB    float64
	BankedApplied float64
	AdjustedCB    float64
	InPool        bool
	PoolID        string
	PoolCBAfter   *float64
	Deficit       float64
	Compliant     bool
}

// Resolve combines pool membership, the raw snapshot and applied bank amounts.
//
// Pool membership supersedes the ship's own balance: a pooled ship resolves to the
// pool's pooled CB regardless of its snapshot or banking history. Otherwise a missing
// snapshot yields a zero balance with an informational message, and a present one
// yields original CB plus the applied banked total.
func Resolve(shipYear shared.ShipYear, pool *PoolPosition, snapshot *Snapshot, applied []float64) AdjustedCB {
	result := AdjustedCB{
		ShipID: shipYear.ShipID(),
		Year:   shipYear.Year(),
	}

	if pool != nil {
		result.Found = true
		result.InPool = true
		result.PoolID = pool.PoolID
		result.PoolCBAfter = pool.CBAfter
		if snapshot != nil {
			result.OriginalCB = snapshot.CB()
		}
		return finish(result, pool.PooledCB)
	}

	if snapshot == nil {
		result.Message = NoBalanceMessage
		return result
	}

	var bankedApplied float64
	for _, amount := range applied {
		bankedApplied += amount
	}

	result.Found = true
	result.OriginalCB = snapshot.CB()
	result.BankedApplied = bankedApplied
	return finish(result, snapshot.CB()+bankedApplied)
}

func finish(result AdjustedCB, adjusted float64) AdjustedCB {
	result.AdjustedCB = adjusted
	result.Deficit = utils.MaxFloat(0, -adjusted)
	result.Compliant = adjusted >= 0
	return result
}

package pooling

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GreedyStrategy admits deficit ships as long as the pool as a whole is not in
// deficit, then moves surplus to deficits in descending cb_before order.
//
// Pool-level solvency does not guarantee every member reaches zero: a deficit
// member may keep a negative cb_after when earlier deficits drained the surplus.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() Strategy {
	return StrategyGreedy
}

func (GreedyStrategy) Allocate(candidates []Candidate) (Allocation, error) {
	sum := decimal.Zero
	for _, c := range candidates {
		sum = sum.Add(decimal.NewFromFloat(c.CBBefore))
	}
	if sum.IsNegative() {
		return Allocation{}, shared.NewDomainErrorf(
			"Pool sum of cb_before is negative (value: %v). A pool must not start in deficit.",
			sum.InexactFloat64())
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CBBefore > sorted[j].CBBefore
	})

	balance := make([]decimal.Decimal, len(sorted))
	for i, c := range sorted {
		balance[i] = decimal.NewFromFloat(c.CBBefore)
	}

	for d := range sorted {
		if !balance[d].IsNegative() {
			continue
		}
		need := balance[d].Neg()
		for s := range sorted {
			if !need.IsPositive() {
				break
			}
			if !balance[s].IsPositive() {
				continue
			}
			transfer := decimal.Min(balance[s], need)
			balance[s] = balance[s].Sub(transfer)
			need = need.Sub(transfer)
		}
		balance[d] = need.Neg()
	}

	members := make([]Allocated, len(sorted))
	for i, c := range sorted {
		members[i] = Allocated{
			ShipID:   c.ShipID,
			CBBefore: c.CBBefore,
			CBAfter:  balance[i].InexactFloat64(),
		}
	}

	return Allocation{
		Strategy: StrategyGreedy,
		PooledCB: sum.InexactFloat64(),
		Members:  members,
	}, nil
}

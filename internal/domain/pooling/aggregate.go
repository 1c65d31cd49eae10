package pooling

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// AggregateStrategy admits only surplus ships. Pooled CB is the sum of their
// balances, fixed at formation; members keep their own balance as cb_after.
type AggregateStrategy struct{}

func (AggregateStrategy) Name() Strategy {
	return StrategyAggregate
}

func (AggregateStrategy) Allocate(candidates []Candidate) (Allocation, error) {
	sum := decimal.Zero
	members := make([]Allocated, 0, len(candidates))

	for _, c := range candidates {
		if c.CBBefore <= 0 {
			return Allocation{}, shared.NewDomainErrorf(
				"Ship %s has adjustedCB <= 0 (value: %v). Only positive CB ships can join pools.",
				c.ShipID, c.CBBefore)
		}
		sum = sum.Add(decimal.NewFromFloat(c.CBBefore))
		members = append(members, Allocated{ShipID: c.ShipID, CBBefore: c.CBBefore, CBAfter: c.CBBefore})
	}

	return Allocation{
		Strategy: StrategyAggregate,
		PooledCB: sum.InexactFloat64(),
		Members:  members,
	}, nil
}

package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

type allocationContext struct {
	candidates []pooling.Candidate
	allocation pooling.Allocation
	err        error
}

func (ac *allocationContext) reset() {
	ac.candidates = nil
	ac.allocation = pooling.Allocation{}
	ac.err = nil
}

func (ac *allocationContext) candidatesWithBalances(table *godog.Table) error {
	rows, err := parseBalances(table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		ac.candidates = append(ac.candidates, pooling.Candidate{ShipID: r.shipID, CBBefore: r.cb})
	}
	return nil
}

func (ac *allocationContext) iAllocateWithTheStrategy(name string) error {
	strategy, err := pooling.ParseStrategy(name)
	if err != nil {
		return err
	}
	allocator, err := pooling.NewAllocationStrategy(strategy)
	if err != nil {
		return err
	}
	ac.allocation, ac.err = allocator.Allocate(ac.candidates)
	return nil
}

func (ac *allocationContext) theAllocationShouldSucceed() error {
	if ac.err != nil {
		return fmt.Errorf("expected allocation to succeed, got: %v", ac.err)
	}
	return nil
}

func (ac *allocationContext) theAllocatedPooledCBShouldBe(expected float64) error {
	if !approxEqual(ac.allocation.PooledCB, expected) {
		return fmt.Errorf("expected pooled CB %v, got %v", expected, ac.allocation.PooledCB)
	}
	return nil
}

func (ac *allocationContext) theMembersShouldBeAllocatedInOrder(table *godog.Table) error {
	rows, err := parseAllocations(table)
	if err != nil {
		return err
	}
	if len(rows) != len(ac.allocation.Members) {
		return fmt.Errorf("expected %d members, got %d", len(rows), len(ac.allocation.Members))
	}
	for i, row := range rows {
		got := ac.allocation.Members[i]
		before, err := parseFloat(row[1])
		if err != nil {
			return err
		}
		after, err := parseFloat(row[2])
		if err != nil {
			return err
		}
		if got.ShipID != row[0] || !approxEqual(got.CBBefore, before) || !approxEqual(got.CBAfter, after) {
			return fmt.Errorf("member %d: expected %s %v -> %v, got %s %v -> %v",
				i, row[0], before, after, got.ShipID, got.CBBefore, got.CBAfter)
		}
	}
	return nil
}

func (ac *allocationContext) theTotalBalanceShouldBeConserved() error {
	var before, after float64
	for _, m := range ac.allocation.Members {
		before += m.CBBefore
		after += m.CBAfter
	}
	if !approxEqual(before, after) {
		return fmt.Errorf("balance not conserved: %v before, %v after", before, after)
	}
	return nil
}

func (ac *allocationContext) noMemberShouldEndInDeficit() error {
	for _, m := range ac.allocation.Members {
		if m.CBAfter < 0 {
			return fmt.Errorf("ship %s ends with %v", m.ShipID, m.CBAfter)
		}
	}
	return nil
}

func (ac *allocationContext) theAllocationShouldBeRejectedWith(message string) error {
	if ac.err == nil {
		return fmt.Errorf("expected allocation to be rejected")
	}
	if !shared.IsDomain(ac.err) {
		return fmt.Errorf("expected a domain error, got %T: %v", ac.err, ac.err)
	}
	if !strings.Contains(ac.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, ac.err.Error())
	}
	return nil
}

// InitializeAllocationScenario registers the pool allocation strategy steps
func InitializeAllocationScenario(sc *godog.ScenarioContext) {
	ac := &allocationContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ac.reset()
		return ctx, nil
	})

	sc.Step(`^pool candidates with balances:$`, ac.candidatesWithBalances)
	sc.Step(`^I allocate with the "([^"]*)" strategy$`, ac.iAllocateWithTheStrategy)
	sc.Step(`^the allocation should succeed$`, ac.theAllocationShouldSucceed)
	sc.Step(`^the allocated pooled CB should be (-?\d+(?:\.\d+)?)$`, ac.theAllocatedPooledCBShouldBe)
	sc.Step(`^the members should be allocated in order:$`, ac.theMembersShouldBeAllocatedInOrder)
	sc.Step(`^the total balance should be conserved$`, ac.theTotalBalanceShouldBeConserved)
	sc.Step(`^no member should end in deficit$`, ac.noMemberShouldEndInDeficit)
	sc.Step(`^the allocation should be rejected with "([^"]*)"$`, ac.theAllocationShouldBeRejectedWith)
}

package pooling

import (
	"fmt"
	"strings"
)

// Strategy names a pool allocation interpretation
type Strategy string

const (
	// StrategyAggregate fixes pooled CB at the sum of positive member balances
	StrategyAggregate Strategy = "aggregate"

	// StrategyGreedy redistributes surplus to deficit members
	StrategyGreedy Strategy = "greedy"
)

func AllStrategies() []Strategy {
	return []Strategy{StrategyAggregate, StrategyGreedy}
}

func (s Strategy) String() string {
	return string(s)
}

func (s Strategy) IsValid() bool {
	switch s {
	case StrategyAggregate, StrategyGreedy:
		return true
	default:
		return false
	}
}

// ParseStrategy converts a string to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	strategy := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if !strategy.IsValid() {
		return "", fmt.Errorf("invalid pool strategy: %s (valid: aggregate, greedy)", s)
	}
	return strategy, nil
}

// Candidate is a ship entering pool formation with its pre-pool balance
type Candidate struct {
	ShipID   string
	CBBefore float64
}

// Allocated is a member's balance before and after allocation
type Allocated struct {
	ShipID   string
	CBBefore float64
	CBAfter  float64
}

// Allocation is the outcome of an AllocationStrategy
type Allocation struct {
	Strategy Strategy
	PooledCB float64
	Members  []Allocated
}

// AllocationStrategy turns validated candidates into pooled balances
type AllocationStrategy interface {
	Name() Strategy
	Allocate(candidates []Candidate) (Allocation, error)
}

// NewAllocationStrategy returns the implementation for a strategy name
func NewAllocationStrategy(name Strategy) (AllocationStrategy, error) {
	switch name {
	case StrategyAggregate:
		return AggregateStrategy{}, nil
	case StrategyGreedy:
		return GreedyStrategy{}, nil
	default:
		return nil, fmt.Errorf("invalid pool strategy: %s", name)
	}
}

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/adapters/metrics"
	complianceQueries "github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// MemberInput is a caller-supplied pre-pool balance
type MemberInput struct {
	ShipID   string
	CBBefore float64
}

// CreatePoolCommand forms a pool for a year.
//
// Without Members each ship's balance is its resolved adjusted CB. With Members
// the supplied cb_before values are used instead and ShipIDs is ignored.
// Strategy overrides the configured allocation strategy when set.
type CreatePoolCommand struct {
	ShipIDs  []string
	Year     int
	Strategy string
	Members  []MemberInput
}

// PoolShip is one member in the formation result
type PoolShip struct {
	ShipID     string
	AdjustedCB float64
	CBAfter    float64
}

// CreatePoolResponse describes the created pool
type CreatePoolResponse struct {
	PoolID   string
	Year     int
	PooledCB float64
	Strategy string
	Ships    []PoolShip
}

// CreatePoolHandler handles the CreatePool command
type CreatePoolHandler struct {
	reader          *complianceQueries.AdjustedCBReader
	poolRepo        pooling.Repository
	transactor      shared.Transactor
	locks           *shared.ShipYearLocks
	clock           shared.Clock
	defaultStrategy pooling.Strategy
	minMembers      int
}

// NewCreatePoolHandler creates a new CreatePoolHandler
func NewCreatePoolHandler(
	reader *complianceQueries.AdjustedCBReader,
	poolRepo pooling.Repository,
	transactor shared.Transactor,
	locks *shared.ShipYearLocks,
	clock shared.Clock,
	defaultStrategy pooling.Strategy,
	minMembers int,
) *CreatePoolHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if transactor == nil {
		transactor = shared.NoopTransactor{}
	}
	if locks == nil {
		locks = shared.NewShipYearLocks()
	}
	if !defaultStrategy.IsValid() {
		defaultStrategy = pooling.StrategyAggregate
	}
	if minMembers < pooling.DefaultMinMembers {
		minMembers = pooling.DefaultMinMembers
	}
	return &CreatePoolHandler{
		reader:          reader,
		poolRepo:        poolRepo,
		transactor:      transactor,
		locks:           locks,
		clock:           clock,
		defaultStrategy: defaultStrategy,
		minMembers:      minMembers,
	}
}

// Handle executes the CreatePool command. No partial pool is ever visible: every
// check and the commit run under the ship-year locks of all candidates and inside
// one transaction.
func (h *CreatePoolHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreatePoolCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreatePoolCommand")
	}

	requested := cmd.ShipIDs
	supplied := make(map[string]float64, len(cmd.Members))
	if len(cmd.Members) > 0 {
		requested = make([]string, len(cmd.Members))
		for i, m := range cmd.Members {
			requested[i] = m.ShipID
			supplied[strings.TrimSpace(m.ShipID)] = m.CBBefore
		}
	}

	shipIDs, err := pooling.ValidateRequest(requested, cmd.Year, h.minMembers)
	if err != nil {
		return nil, err
	}

	strategyName := h.defaultStrategy
	if cmd.Strategy != "" {
		strategyName, err = pooling.ParseStrategy(cmd.Strategy)
		if err != nil {
			return nil, shared.NewValidationError("strategy", err.Error())
		}
	}
	strategy, err := pooling.NewAllocationStrategy(strategyName)
	if err != nil {
		return nil, err
	}

	shipYears := make([]shared.ShipYear, len(shipIDs))
	for i, id := range shipIDs {
		shipYears[i], err = shared.NewShipYear(id, cmd.Year)
		if err != nil {
			return nil, err
		}
	}

	release := h.locks.Lock(shipYears...)
	defer release()

	var pool *pooling.Pool
	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		candidates := make([]pooling.Candidate, len(shipYears))
		for i, sy := range shipYears {
			if len(cmd.Members) > 0 {
				candidates[i] = pooling.Candidate{ShipID: sy.ShipID(), CBBefore: supplied[sy.ShipID()]}
				continue
			}
			adjusted, err := h.reader.Read(ctx, sy)
			if err != nil {
				return err
			}
			if !adjusted.Found {
				return shared.NewDomainErrorf("Ship %s has no adjusted CB for year %d", sy.ShipID(), sy.Year())
			}
			candidates[i] = pooling.Candidate{ShipID: sy.ShipID(), CBBefore: adjusted.AdjustedCB}
		}

		allocation, err := strategy.Allocate(candidates)
		if err != nil {
			return err
		}

		for _, sy := range shipYears {
			inPool, err := h.poolRepo.IsShipInPool(ctx, sy)
			if err != nil {
				return fmt.Errorf("failed to check pool membership: %w", err)
			}
			if inPool {
				return pooling.AlreadyPooledError(sy.ShipID(), sy.Year())
			}
		}

		pool, err = pooling.NewPool(cmd.Year, allocation, h.clock.Now())
		if err != nil {
			return err
		}
		return h.poolRepo.CreatePool(ctx, pool)
	})
	if err != nil {
		return nil, err
	}

	response := &CreatePoolResponse{
		PoolID:   pool.ID().String(),
		Year:     pool.Year(),
		PooledCB: pool.PooledCB(),
		Strategy: pool.Strategy().String(),
	}
	for _, m := range pool.Members() {
		response.Ships = append(response.Ships, PoolShip{
			ShipID:     m.ShipID(),
			AdjustedCB: m.AdjustedCB(),
			CBAfter:    m.CBAfter(),
		})
	}

	metrics.RecordPoolCreated(response.Year, response.Strategy, len(response.Ships), response.PooledCB)
	zerolog.Ctx(ctx).Info().
		Str("pool_id", response.PoolID).
		Int("year", response.Year).
		Str("strategy", response.Strategy).
		Int("members", len(response.Ships)).
		Float64("pooled_cb", response.PooledCB).
		Msg("pool created")

	return response, nil
}

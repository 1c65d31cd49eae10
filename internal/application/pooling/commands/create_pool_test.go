package commands_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	complianceQueries "github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
	"github.com/andrescamacho/fueleu-go/internal/application/pooling/commands"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func newPoolHandler(repos *helpers.MockRepositories, strategy pooling.Strategy) *commands.CreatePoolHandler {
	reader := complianceQueries.NewAdjustedCBReader(repos.Compliance, repos.Banking, repos.Pooling)
	return commands.NewCreatePoolHandler(reader, repos.Pooling, shared.NoopTransactor{}, nil,
		shared.NewMockClock(helpers.FixedTime), strategy, pooling.DefaultMinMembers)
}

func createPool(t *testing.T, handler *commands.CreatePoolHandler, cmd *commands.CreatePoolCommand) *commands.CreatePoolResponse {
	t.Helper()
	resp, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return resp.(*commands.CreatePoolResponse)
}

func TestCreatePool_AggregateSumsPositiveShips(t *testing.T) {
	// Arrange
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("R001", 2024, 1000)
	repos.SeedSnapshot("R002", 2024, 500)
	handler := newPoolHandler(repos, pooling.StrategyAggregate)

	// Act
	result := createPool(t, handler, &commands.CreatePoolCommand{ShipIDs: []string{"R001", "R002"}, Year: 2024})

	// Assert
	assert.Equal(t, 1500.0, result.PooledCB)
	assert.Equal(t, "aggregate", result.Strategy)
	require.Len(t, result.Ships, 2)
	assert.Equal(t, commands.PoolShip{ShipID: "R001", AdjustedCB: 1000, CBAfter: 1000}, result.Ships[0])
	assert.Equal(t, 1, repos.Pooling.PoolCount())

	membership, err := repos.Pooling.GetPoolForShip(context.Background(), shared.MustNewShipYear("R002", 2024))
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.Equal(t, result.PoolID, membership.PoolID.String())
	assert.Equal(t, 1500.0, membership.PooledCB)
}

func TestCreatePool_AggregateRejectsDeficitShip(t *testing.T) {
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("R001", 2024, 1000)
	repos.SeedSnapshot("R002", 2024, -200)
	handler := newPoolHandler(repos, pooling.StrategyAggregate)

	_, err := handler.Handle(context.Background(), &commands.CreatePoolCommand{ShipIDs: []string{"R001", "R002"}, Year: 2024})

	require.Error(t, err)
	assert.True(t, shared.IsDomain(err))
	assert.Equal(t, "Ship R002 has adjustedCB <= 0 (value: -200). Only positive CB ships can join pools.", err.Error())
	assert.Zero(t, repos.Pooling.PoolCount())
}

func TestCreatePool_GreedyTransfersSurplusToDeficits(t *testing.T) {
	// Arrange
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("A", 2024, -300)
	repos.SeedSnapshot("B", 2024, 500)
	repos.SeedSnapshot("C", 2024, -100)
	handler := newPoolHandler(repos, pooling.StrategyAggregate)

	// Act
	result := createPool(t, handler, &commands.CreatePoolCommand{ShipIDs: []string{"A", "B", "C"}, Year: 2024, Strategy: "GREEDY"})

	// Assert
	assert.Equal(t, "greedy", result.Strategy)
	assert.Equal(t, 100.0, result.PooledCB)
	require.Len(t, result.Ships, 3)
	assert.Equal(t, "B", result.Ships[0].ShipID)
	assert.Equal(t, 100.0, result.Ships[0].CBAfter)
	for _, ship := range result.Ships[1:] {
		assert.Zero(t, ship.CBAfter)
	}
}

func TestCreatePool_GreedyRejectsNegativeSum(t *testing.T) {
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("A", 2024, -300)
	repos.SeedSnapshot("B", 2024, 100)
	handler := newPoolHandler(repos, pooling.StrategyGreedy)

	_, err := handler.Handle(context.Background(), &commands.CreatePoolCommand{ShipIDs: []string{"A", "B"}, Year: 2024})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "A pool must not start in deficit")
}

func TestCreatePool_UsesAdjustedCB(t *testing.T) {
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("R001", 2024, -100)
	repos.SeedDeposit("R001", 2024, 250, 0)
	repos.SeedLegacyDebit("R001", 2024, 250, 1)
	repos.SeedSnapshot("R002", 2024, 50)
	handler := newPoolHandler(repos, pooling.StrategyAggregate)

	result := createPool(t, handler, &commands.CreatePoolCommand{ShipIDs: []string{"R001", "R002"}, Year: 2024})

	assert.Equal(t, 150.0, result.Ships[0].AdjustedCB)
	assert.Equal(t, 200.0, result.PooledCB)
}

func TestCreatePool_SuppliedMembersSkipResolution(t *testing.T) {
	repos := helpers.NewMockRepositories()
	handler := newPoolHandler(repos, pooling.StrategyGreedy)

	result := createPool(t, handler, &commands.CreatePoolCommand{
		Year: 2024,
		Members: []commands.MemberInput{
			{ShipID: " X ", CBBefore: -40},
			{ShipID: "Y", CBBefore: 100},
		},
		ShipIDs: []string{"ignored"},
	})

	assert.Equal(t, 60.0, result.PooledCB)
	require.Len(t, result.Ships, 2)
	assert.Equal(t, "Y", result.Ships[0].ShipID)
	assert.Equal(t, "X", result.Ships[1].ShipID)
	assert.Equal(t, -40.0, result.Ships[1].AdjustedCB)
}

func TestCreatePool_ShipAlreadyPooled(t *testing.T) {
	repos := helpers.NewMockRepositories()
	for _, id := range []string{"R001", "R002", "R003"} {
		repos.SeedSnapshot(id, 2024, 100)
	}
	handler := newPoolHandler(repos, pooling.StrategyAggregate)
	createPool(t, handler, &commands.CreatePoolCommand{ShipIDs: []string{"R001", "R002"}, Year: 2024})

	_, err := handler.Handle(context.Background(), &commands.CreatePoolCommand{ShipIDs: []string{"R002", "R003"}, Year: 2024})

	require.Error(t, err)
	assert.True(t, shared.IsDomain(err))
	assert.Equal(t, "Ship R002 is already in a pool for year 2024", err.Error())
	assert.Equal(t, 1, repos.Pooling.PoolCount())
}

func TestCreatePool_RequestValidation(t *testing.T) {
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("R001", 2024, 100)
	handler := newPoolHandler(repos, pooling.StrategyAggregate)

	tests := []struct {
		name    string
		cmd     *commands.CreatePoolCommand
		message string
	}{
		{"single ship", &commands.CreatePoolCommand{ShipIDs: []string{"R001"}, Year: 2024}, "At least 2 ships required to create a pool"},
		{"duplicate ship", &commands.CreatePoolCommand{ShipIDs: []string{"R001", " R001"}, Year: 2024}, "Ship R001 is listed more than once"},
		{"unknown ship", &commands.CreatePoolCommand{ShipIDs: []string{"R001", "R404"}, Year: 2024}, "Ship R404 has no adjusted CB for year 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}

	_, err := handler.Handle(context.Background(), &commands.CreatePoolCommand{ShipIDs: []string{"R001", "R002"}, Year: 2024, Strategy: "random"})
	assert.True(t, shared.IsValidation(err))
	assert.Zero(t, repos.Pooling.PoolCount())
}

func TestCreatePool_ConcurrentOverlappingRequestsCreateOnePool(t *testing.T) {
	repos := helpers.NewMockRepositories()
	for _, id := range []string{"A", "B", "C"} {
		repos.SeedSnapshot(id, 2024, 100)
	}
	handler := newPoolHandler(repos, pooling.StrategyAggregate)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, ids := range [][]string{{"A", "B"}, {"B", "C"}} {
		wg.Add(1)
		go func(i int, ids []string) {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), &commands.CreatePoolCommand{ShipIDs: ids, Year: 2024})
		}(i, ids)
	}
	wg.Wait()

	assert.Equal(t, 1, repos.Pooling.PoolCount())
	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			assert.Contains(t, err.Error(), "Ship B is already in a pool")
		}
	}
	assert.Equal(t, 1, failures)
}

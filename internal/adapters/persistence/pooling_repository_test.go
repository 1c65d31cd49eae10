package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func newPool(t *testing.T, candidates ...pooling.Candidate) *pooling.Pool {
	t.Helper()
	allocation, err := pooling.GreedyStrategy{}.Allocate(candidates)
	require.NoError(t, err)
	pool, err := pooling.NewPool(2024, allocation, t0)
	require.NoError(t, err)
	return pool
}

func TestPoolingRepository_CreateAndRead(t *testing.T) {
	// Arrange
	repo := persistence.NewGormPoolingRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	pool := newPool(t, pooling.Candidate{ShipID: "A", CBBefore: -100}, pooling.Candidate{ShipID: "B", CBBefore: 300})

	// Act
	require.NoError(t, repo.CreatePool(ctx, pool))

	// Assert
	inPool, err := repo.IsShipInPool(ctx, shared.MustNewShipYear("A", 2024))
	require.NoError(t, err)
	assert.True(t, inPool)

	membership, err := repo.GetPoolForShip(ctx, shared.MustNewShipYear("A", 2024))
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.Equal(t, pool.ID(), membership.PoolID)
	assert.Equal(t, 200.0, membership.PooledCB)
	assert.Equal(t, -100.0, membership.AdjustedCB)
	assert.Zero(t, membership.CBAfter)
	assert.Equal(t, pooling.StrategyGreedy, membership.Strategy)

	members, err := repo.GetPoolMembers(ctx, pool.ID())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "B", members[0].ShipID())

	stored, err := repo.GetPool(ctx, pool.ID())
	require.NoError(t, err)
	assert.Len(t, stored.Members(), 2)
	assert.Equal(t, 200.0, stored.PooledCB())
}

func TestPoolingRepository_RejectsDoubleEnrolment(t *testing.T) {
	repo := persistence.NewGormPoolingRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.CreatePool(ctx, newPool(t,
		pooling.Candidate{ShipID: "A", CBBefore: 10}, pooling.Candidate{ShipID: "B", CBBefore: 10})))

	err := repo.CreatePool(ctx, newPool(t,
		pooling.Candidate{ShipID: "B", CBBefore: 10}, pooling.Candidate{ShipID: "C", CBBefore: 10}))

	require.Error(t, err)
	assert.True(t, shared.IsDomain(err))
	assert.Equal(t, "Ship B is already in a pool for year 2024", err.Error())

	inPool, err := repo.IsShipInPool(ctx, shared.MustNewShipYear("C", 2024))
	require.NoError(t, err)
	assert.False(t, inPool)
}

func TestPoolingRepository_UnknownPool(t *testing.T) {
	repo := persistence.NewGormPoolingRepository(helpers.NewTestDB(t))

	_, err := repo.GetPool(context.Background(), uuid.New())
	assert.True(t, shared.IsNotFound(err))

	membership, err := repo.GetPoolForShip(context.Background(), shared.MustNewShipYear("Z", 2024))
	require.NoError(t, err)
	assert.Nil(t, membership)
}

func TestPoolingRepository_MalformedMemberIsAnError(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPoolingRepository(db)
	poolID := uuid.New()
	require.NoError(t, db.Create(&persistence.PoolModel{
		ID: poolID.String(), Year: 2024, PooledCB: 50, Strategy: "aggregate", CreatedAt: t0,
		Members: []persistence.PoolMemberModel{{PoolID: poolID.String(), ShipID: " ", Year: 2024, AdjustedCB: 50, CBAfter: 50}},
	}).Error)

	assert.NotPanics(t, func() {
		_, err := repo.GetPool(context.Background(), poolID)
		assert.ErrorContains(t, err, "invalid member of pool")

		_, err = repo.GetPoolMembers(context.Background(), poolID)
		assert.ErrorContains(t, err, "invalid member of pool")
	})
}

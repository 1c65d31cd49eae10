package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func TestListSnapshots_OnlyRequestedYear(t *testing.T) {
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("R002", 2024, -50)
	repos.SeedSnapshot("R001", 2024, 120)
	repos.SeedSnapshot("R001", 2025, 80)
	handler := queries.NewListSnapshotsHandler(repos.Compliance)

	resp, err := handler.Handle(context.Background(), &queries.ListSnapshotsQuery{Year: 2024})

	require.NoError(t, err)
	snapshots := resp.(*queries.ListSnapshotsResponse).Snapshots
	require.Len(t, snapshots, 2)
	assert.Equal(t, "R001", snapshots[0].ShipYear().ShipID())
	assert.Equal(t, 120.0, snapshots[0].CB())
	assert.Equal(t, "R002", snapshots[1].ShipYear().ShipID())
}

func TestListSnapshots_EmptyYear(t *testing.T) {
	handler := queries.NewListSnapshotsHandler(helpers.NewMockRepositories().Compliance)

	resp, err := handler.Handle(context.Background(), &queries.ListSnapshotsQuery{Year: 2030})

	require.NoError(t, err)
	assert.Empty(t, resp.(*queries.ListSnapshotsResponse).Snapshots)
}

func TestListSnapshots_RejectsInvalidYear(t *testing.T) {
	handler := queries.NewListSnapshotsHandler(helpers.NewMockRepositories().Compliance)

	_, err := handler.Handle(context.Background(), &queries.ListSnapshotsQuery{Year: 0})

	assert.True(t, shared.IsValidation(err))
}

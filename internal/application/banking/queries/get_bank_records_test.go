package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/application/banking/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func TestGetBankRecords_ReportsLedgerTotals(t *testing.T) {
	// Arrange
	repos := helpers.NewMockRepositories()
	repos.SeedSnapshot("R001", 2024, 900)
	repos.SeedDeposit("R001", 2024, 500, 0)
	repos.SeedDeposit("R001", 2024, 300, time.Minute)
	repos.SeedLegacyDebit("R001", 2024, 600, 2*time.Minute)
	handler := queries.NewGetBankRecordsHandler(repos.Compliance, repos.Banking)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetBankRecordsQuery{ShipID: "R001", Year: 2024})

	// Assert
	require.NoError(t, err)
	records := resp.(*queries.GetBankRecordsResponse)
	assert.Equal(t, 900.0, records.CBBefore)
	assert.Equal(t, 200.0, records.Available)
	assert.Equal(t, 600.0, records.Applied)
	require.Len(t, records.Entries, 3)
	for _, e := range records.Entries {
		assert.False(t, e.IsLegacyDebit())
	}
}

func TestGetBankRecords_EmptyShipYear(t *testing.T) {
	repos := helpers.NewMockRepositories()
	handler := queries.NewGetBankRecordsHandler(repos.Compliance, repos.Banking)

	resp, err := handler.Handle(context.Background(), &queries.GetBankRecordsQuery{ShipID: "R404", Year: 2024})

	require.NoError(t, err)
	records := resp.(*queries.GetBankRecordsResponse)
	assert.Empty(t, records.Entries)
	assert.Zero(t, records.CBBefore)

	_, err = handler.Handle(context.Background(), &queries.GetBankRecordsQuery{ShipID: "", Year: 2024})
	assert.True(t, shared.IsValidation(err))
}

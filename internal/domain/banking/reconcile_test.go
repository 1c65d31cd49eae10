package banking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
)

func entry(amount float64, minute int) *banking.Entry {
	return banking.ReconstructEntry(uuid.New(), sy, amount, false, nil, nil, t0.Add(time.Duration(minute)*time.Minute))
}

func TestReconcileLegacy_NoLegacyEntries(t *testing.T) {
	entries := []*banking.Entry{entry(100, 0), entry(50, 1)}

	result := banking.ReconcileLegacy(entries)

	assert.False(t, result.Changed())
	assert.Equal(t, entries, result.Entries)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Created)
}

func TestReconcileLegacy_DebitConsumesPrecedingDepositsFIFO(t *testing.T) {
	// Arrange
	d1 := entry(100, 0)
	d2 := entry(50, 1)
	debit := entry(-120, 2)
	d3 := entry(30, 3)

	// Act
	result := banking.ReconcileLegacy([]*banking.Entry{d1, d2, debit, d3})

	// Assert
	require.True(t, result.Changed())
	assert.Equal(t, []uuid.UUID{debit.ID()}, result.Removed)
	require.Len(t, result.Updated, 2)
	require.Len(t, result.Created, 1)
	assert.Equal(t, 20.0, result.Created[0].Amount())
	assert.Equal(t, d2.ID(), *result.Created[0].SourceID())

	ledger := banking.NewLedger(sy, result.Entries)
	assert.Equal(t, 60.0, ledger.Available())
	assert.Equal(t, 120.0, ledger.AppliedTotal())
	assert.Equal(t, 180.0, ledger.Deposited())
}

func TestReconcileLegacy_DebitDoesNotReachLaterDeposits(t *testing.T) {
	d1 := entry(40, 0)
	debit := entry(-70, 1)
	d2 := entry(100, 2)

	result := banking.ReconcileLegacy([]*banking.Entry{d1, debit, d2})

	ledger := banking.NewLedger(sy, result.Entries)
	assert.Equal(t, 100.0, ledger.Available())
	assert.Equal(t, 70.0, ledger.AppliedTotal())
	require.Len(t, result.Created, 1)
	assert.Nil(t, result.Created[0].SourceID())
	assert.Equal(t, 30.0, result.Created[0].Amount())
}

func TestReconcileLegacy_TwoDebitsOnSameDeposit(t *testing.T) {
	d1 := entry(100, 0)

	result := banking.ReconcileLegacy([]*banking.Entry{d1, entry(-30, 1), entry(-70, 2)})

	require.Len(t, result.Updated, 1)
	assert.True(t, result.Updated[0].Applied())
	assert.Equal(t, 70.0, result.Updated[0].Amount())
	ledger := banking.NewLedger(sy, result.Entries)
	assert.Equal(t, 0.0, ledger.Available())
	assert.Equal(t, 100.0, ledger.AppliedTotal())
}

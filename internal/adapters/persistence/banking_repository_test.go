package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func deposit(sy shared.ShipYear, amount float64, at time.Time) *banking.Entry {
	return banking.ReconstructEntry(uuid.New(), sy, amount, false, nil, nil, at)
}

func TestBankingRepository_ApplicationRoundTrip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormBankingRepository(db)
	ctx := context.Background()
	sy := shared.MustNewShipYear("R001", 2024)
	first := deposit(sy, 200, t0)
	second := deposit(sy, 300, t0)
	require.NoError(t, repo.AddEntry(ctx, first))
	require.NoError(t, repo.AddEntry(ctx, second))

	entries, err := repo.ListEntriesForUpdate(ctx, sy)
	require.NoError(t, err)
	require.Equal(t, first.ID(), entries[0].ID(), "same created_at keeps insertion order")

	// Act
	application, err := banking.NewLedger(sy, entries).Apply(250, t0.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.SaveApplication(ctx, application))

	// Assert
	available, err := repo.AvailableBanked(ctx, sy)
	require.NoError(t, err)
	assert.Equal(t, 250.0, available)

	applied, err := repo.AppliedEntries(ctx, sy)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, first.ID(), applied[0].ID())
	require.NotNil(t, applied[1].SourceID())
	assert.Equal(t, second.ID(), *applied[1].SourceID())
	assert.Equal(t, 50.0, applied[1].Amount())
	require.NotNil(t, applied[0].AppliedAt())
}

func TestBankingRepository_ReconcilesLegacyDebitsOnce(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormBankingRepository(db)
	ctx := context.Background()
	sy := shared.MustNewShipYear("R002", 2024)
	require.NoError(t, repo.AddEntry(ctx, deposit(sy, 100, t0)))
	require.NoError(t, repo.AddEntry(ctx, deposit(sy, -40, t0.Add(time.Minute))))

	// Act
	entries, err := repo.ListEntries(ctx, sy)

	// Assert
	require.NoError(t, err)
	ledger := banking.NewLedger(sy, entries)
	assert.Equal(t, 60.0, ledger.Available())
	assert.Equal(t, 40.0, ledger.AppliedTotal())

	var negatives int64
	require.NoError(t, db.Model(&persistence.BankEntryModel{}).Where("amount_gco2eq < 0").Count(&negatives).Error)
	assert.Zero(t, negatives)

	again, err := repo.ListEntries(ctx, sy)
	require.NoError(t, err)
	assert.Len(t, again, len(entries))
	assert.Equal(t, 60.0, banking.NewLedger(sy, again).Available())
}

func TestBankingRepository_ConcurrentReadersReconcileOnce(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	// slow every read so all readers see the legacy debit before anyone rewrites it
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:slow_read", func(*gorm.DB) {
		time.Sleep(5 * time.Millisecond)
	}))
	repo := persistence.NewGormBankingRepository(db)
	ctx := context.Background()
	sy := shared.MustNewShipYear("R004", 2024)
	require.NoError(t, repo.AddEntry(ctx, deposit(sy, 100, t0)))
	require.NoError(t, repo.AddEntry(ctx, deposit(sy, -40, t0.Add(time.Minute))))

	// Act
	const readers = 4
	var wg sync.WaitGroup
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.AppliedEntries(ctx, sy)
		}(i)
	}
	wg.Wait()

	// Assert
	for _, err := range errs {
		require.NoError(t, err)
	}
	entries, err := repo.ListEntries(ctx, sy)
	require.NoError(t, err)
	ledger := banking.NewLedger(sy, entries)
	assert.Equal(t, 40.0, ledger.AppliedTotal())
	assert.Equal(t, 60.0, ledger.Available())
	assert.Equal(t, 100.0, ledger.Deposited())

	var applied int64
	require.NoError(t, db.Model(&persistence.BankEntryModel{}).Where("applied = ?", true).Count(&applied).Error)
	assert.Equal(t, int64(1), applied)
}

func TestBankingRepository_TransactionRollsBack(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormBankingRepository(db)
	transactor := persistence.NewGormTransactor(db)
	sy := shared.MustNewShipYear("R003", 2024)

	err := transactor.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.AddEntry(ctx, deposit(sy, 10, t0)); err != nil {
			return err
		}
		return errors.New("abort")
	})

	require.EqualError(t, err, "abort")
	entries, err := repo.ListEntries(context.Background(), sy)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GormBankingRepository implements banking.Repository using GORM.
//
// Entries still stored in the legacy signed-negative encoding are rewritten to
// the flag-based encoding the first time their ship-year is read. The rewrite
// re-reads the rows inside its transaction, so concurrent readers reconcile once.
type GormBankingRepository struct {
	db *gorm.DB
}

// NewGormBankingRepository creates a new GORM banking repository
func NewGormBankingRepository(db *gorm.DB) *GormBankingRepository {
	return &GormBankingRepository{db: db}
}

// AddEntry inserts a new ledger entry
func (r *GormBankingRepository) AddEntry(ctx context.Context, entry *banking.Entry) error {
	model := entryToModel(entry)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add bank entry: %w", err)
	}
	return nil
}

// ListEntries returns the ship-year's entries in FIFO order
func (r *GormBankingRepository) ListEntries(ctx context.Context, shipYear shared.ShipYear) ([]*banking.Entry, error) {
	return r.load(ctx, shipYear, false)
}

// ListEntriesForUpdate is ListEntries with the rows locked until the surrounding
// transaction ends. Row locks are only issued on PostgreSQL.
func (r *GormBankingRepository) ListEntriesForUpdate(ctx context.Context, shipYear shared.ShipYear) ([]*banking.Entry, error) {
	return r.load(ctx, shipYear, true)
}

// SaveApplication persists the entry changes of an application atomically
func (r *GormBankingRepository) SaveApplication(ctx context.Context, application *banking.Application) error {
	return r.withTx(ctx, func(tx *gorm.DB) error {
		for _, e := range application.Updated {
			if err := updateEntry(tx, e); err != nil {
				return err
			}
		}
		for _, e := range application.Created {
			if err := tx.Create(entryToModel(e)).Error; err != nil {
				return fmt.Errorf("failed to add applied bank entry: %w", err)
			}
		}
		return nil
	})
}

// AvailableBanked sums the open deposits of a ship-year
func (r *GormBankingRepository) AvailableBanked(ctx context.Context, shipYear shared.ShipYear) (float64, error) {
	entries, err := r.ListEntries(ctx, shipYear)
	if err != nil {
		return 0, err
	}
	return banking.NewLedger(shipYear, entries).Available(), nil
}

// AppliedEntries returns the applied entries of a ship-year
func (r *GormBankingRepository) AppliedEntries(ctx context.Context, shipYear shared.ShipYear) ([]*banking.Entry, error) {
	entries, err := r.ListEntries(ctx, shipYear)
	if err != nil {
		return nil, err
	}
	applied := make([]*banking.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Applied() {
			applied = append(applied, e)
		}
	}
	return applied, nil
}

func (r *GormBankingRepository) load(ctx context.Context, shipYear shared.ShipYear, forUpdate bool) ([]*banking.Entry, error) {
	db := dbFromContext(ctx, r.db)
	entries, err := selectEntries(db, shipYear, forUpdate)
	if err != nil {
		return nil, err
	}
	if !banking.ReconcileLegacy(entries).Changed() {
		return entries, nil
	}

	var reconciled int
	for attempt := 0; ; attempt++ {
		reconciled, err = r.reconcile(ctx, shipYear)
		if !errors.Is(err, errLegacyRaced) || attempt == maxReconcileAttempts-1 {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	if reconciled > 0 {
		zerolog.Ctx(ctx).Info().
			Str("ship_id", shipYear.ShipID()).
			Int("year", shipYear.Year()).
			Int("legacy_debits", reconciled).
			Msg("legacy bank entries reconciled")
	}
	return selectEntries(db, shipYear, forUpdate)
}

const maxReconcileAttempts = 3

// errLegacyRaced means another writer rewrote the legacy debits first
var errLegacyRaced = errors.New("legacy bank entries changed during reconciliation")

// reconcile rewrites the ship-year's legacy debits from a fresh read taken inside
// its own transaction (a savepoint when ctx already carries one). It returns the
// number of debits it removed; zero when another reader got there first.
func (r *GormBankingRepository) reconcile(ctx context.Context, shipYear shared.ShipYear) (int, error) {
	removedCount := 0
	err := r.nestedTx(ctx, func(tx *gorm.DB) error {
		entries, err := selectEntries(tx, shipYear, true)
		if err != nil {
			return err
		}
		result := banking.ReconcileLegacy(entries)
		if !result.Changed() {
			return nil
		}

		removed := make([]string, len(result.Removed))
		for i, id := range result.Removed {
			removed[i] = id.String()
		}
		del := tx.Where("entry_id IN ?", removed).Delete(&BankEntryModel{})
		if del.Error != nil {
			return fmt.Errorf("failed to remove legacy bank entries: %w", del.Error)
		}
		if del.RowsAffected != int64(len(removed)) {
			return errLegacyRaced
		}
		for _, e := range result.Updated {
			if err := updateEntry(tx, e); err != nil {
				return err
			}
		}
		for _, e := range result.Created {
			if err := tx.Create(entryToModel(e)).Error; err != nil {
				return fmt.Errorf("failed to add reconciled bank entry: %w", err)
			}
		}
		removedCount = len(removed)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removedCount, nil
}

func selectEntries(db *gorm.DB, shipYear shared.ShipYear, forUpdate bool) ([]*banking.Entry, error) {
	query := db.Where("ship_id = ? AND year = ?", shipYear.ShipID(), shipYear.Year()).
		Order("created_at ASC").Order("seq ASC")
	if forUpdate && isPostgres(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var models []BankEntryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bank entries: %w", err)
	}

	entries := make([]*banking.Entry, 0, len(models))
	for i := range models {
		e, err := modelToEntry(&models[i], shipYear)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// nestedTx runs fn in a savepoint of the context's transaction, or in a new
// transaction, so a failed reconciliation never leaves a partial rewrite behind
func (r *GormBankingRepository) nestedTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.Transaction(fn)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// withTx joins the context's transaction or opens a new one
func (r *GormBankingRepository) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func updateEntry(tx *gorm.DB, e *banking.Entry) error {
	model := entryToModel(e)
	err := tx.Model(&BankEntryModel{}).
		Where("entry_id = ?", model.EntryID).
		Updates(map[string]interface{}{
			"amount_gco2eq": model.Amount,
			"applied":       model.Applied,
			"applied_at":    model.AppliedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update bank entry %s: %w", model.EntryID, err)
	}
	return nil
}

func entryToModel(e *banking.Entry) *BankEntryModel {
	var sourceID *string
	if e.SourceID() != nil {
		s := e.SourceID().String()
		sourceID = &s
	}
	return &BankEntryModel{
		EntryID:   e.ID().String(),
		ShipID:    e.ShipYear().ShipID(),
		Year:      e.ShipYear().Year(),
		Amount:    e.Amount(),
		Applied:   e.Applied(),
		AppliedAt: e.AppliedAt(),
		SourceID:  sourceID,
		CreatedAt: e.CreatedAt(),
	}
}

func modelToEntry(model *BankEntryModel, shipYear shared.ShipYear) (*banking.Entry, error) {
	id, err := uuid.Parse(model.EntryID)
	if err != nil {
		return nil, fmt.Errorf("invalid bank entry id in database: %w", err)
	}
	var sourceID *uuid.UUID
	if model.SourceID != nil {
		parsed, err := uuid.Parse(*model.SourceID)
		if err != nil {
			return nil, fmt.Errorf("invalid bank source entry id in database: %w", err)
		}
		sourceID = &parsed
	}
	return banking.ReconstructEntry(id, shipYear, model.Amount, model.Applied, model.AppliedAt, sourceID, model.CreatedAt), nil
}

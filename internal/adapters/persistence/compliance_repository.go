package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GormComplianceRepository implements compliance.Repository using GORM
type GormComplianceRepository struct {
	db *gorm.DB
}

// NewGormComplianceRepository creates a new GORM compliance repository
func NewGormComplianceRepository(db *gorm.DB) *GormComplianceRepository {
	return &GormComplianceRepository{db: db}
}

// SaveSnapshot upserts the snapshot of a ship-year
func (r *GormComplianceRepository) SaveSnapshot(ctx context.Context, snapshot *compliance.Snapshot) error {
	model := ComplianceSnapshotModel{
		ShipID:     snapshot.ShipYear().ShipID(),
		Year:       snapshot.ShipYear().Year(),
		CBGCO2eq:   snapshot.CB(),
		ComputedAt: snapshot.ComputedAt(),
	}

	err := dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ship_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"cb_gco2eq", "computed_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save compliance snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns nil without error when the ship-year has no snapshot
func (r *GormComplianceRepository) GetSnapshot(ctx context.Context, shipYear shared.ShipYear) (*compliance.Snapshot, error) {
	return r.findSnapshot(ctx, shipYear, false)
}

// GetSnapshotForUpdate locks the snapshot row on PostgreSQL. Banking serializes on
// this row across processes, including the first deposit of an empty ledger.
func (r *GormComplianceRepository) GetSnapshotForUpdate(ctx context.Context, shipYear shared.ShipYear) (*compliance.Snapshot, error) {
	return r.findSnapshot(ctx, shipYear, true)
}

func (r *GormComplianceRepository) findSnapshot(ctx context.Context, shipYear shared.ShipYear, forUpdate bool) (*compliance.Snapshot, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Where("ship_id = ? AND year = ?", shipYear.ShipID(), shipYear.Year())
	if forUpdate && isPostgres(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model ComplianceSnapshotModel
	err := query.First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find compliance snapshot: %w", err)
	}
	return modelToSnapshot(&model)
}

// ListSnapshots returns the snapshots of a year ordered by ship
func (r *GormComplianceRepository) ListSnapshots(ctx context.Context, year int) ([]*compliance.Snapshot, error) {
	var models []ComplianceSnapshotModel
	err := dbFromContext(ctx, r.db).Where("year = ?", year).Order("ship_id").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance snapshots: %w", err)
	}

	snapshots := make([]*compliance.Snapshot, 0, len(models))
	for i := range models {
		snapshot, err := modelToSnapshot(&models[i])
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func modelToSnapshot(model *ComplianceSnapshotModel) (*compliance.Snapshot, error) {
	snapshot, err := compliance.ReconstructSnapshot(model.ShipID, model.Year, model.CBGCO2eq, model.ComputedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid compliance snapshot %s/%d in database: %w", model.ShipID, model.Year, err)
	}
	return snapshot, nil
}

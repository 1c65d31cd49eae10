package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GormPoolingRepository implements pooling.Repository using GORM
type GormPoolingRepository struct {
	db *gorm.DB
}

// NewGormPoolingRepository creates a new GORM pooling repository
func NewGormPoolingRepository(db *gorm.DB) *GormPoolingRepository {
	return &GormPoolingRepository{db: db}
}

// CreatePool inserts the pool with its members. A ship-year that is already a
// member anywhere is rejected, by lookup first and by the unique index as a backstop.
func (r *GormPoolingRepository) CreatePool(ctx context.Context, pool *pooling.Pool) error {
	create := func(tx *gorm.DB) error {
		for _, m := range pool.Members() {
			var count int64
			if err := tx.Model(&PoolMemberModel{}).
				Where("ship_id = ? AND year = ?", m.ShipID(), m.Year()).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check pool membership: %w", err)
			}
			if count > 0 {
				return pooling.AlreadyPooledError(m.ShipID(), m.Year())
			}
		}

		if err := tx.Create(poolToModel(pool)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainErrorf("A ship in this pool is already in a pool for year %d", pool.Year())
			}
			return fmt.Errorf("failed to create pool: %w", err)
		}
		return nil
	}

	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return create(tx)
	}
	return r.db.WithContext(ctx).Transaction(create)
}

// IsShipInPool reports whether the ship-year is a member of any pool
func (r *GormPoolingRepository) IsShipInPool(ctx context.Context, shipYear shared.ShipYear) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&PoolMemberModel{}).
		Where("ship_id = ? AND year = ?", shipYear.ShipID(), shipYear.Year()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pool membership: %w", err)
	}
	return count > 0, nil
}

// GetPoolForShip returns nil without error when the ship-year is not pooled
func (r *GormPoolingRepository) GetPoolForShip(ctx context.Context, shipYear shared.ShipYear) (*pooling.Membership, error) {
	db := dbFromContext(ctx, r.db)

	var member PoolMemberModel
	err := db.Where("ship_id = ? AND year = ?", shipYear.ShipID(), shipYear.Year()).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pool membership: %w", err)
	}

	var pool PoolModel
	if err := db.Where("id = ?", member.PoolID).First(&pool).Error; err != nil {
		return nil, fmt.Errorf("failed to find pool %s: %w", member.PoolID, err)
	}

	poolID, err := uuid.Parse(pool.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid pool id in database: %w", err)
	}
	return &pooling.Membership{
		PoolID:     poolID,
		ShipID:     member.ShipID,
		Year:       member.Year,
		PooledCB:   pool.PooledCB,
		AdjustedCB: member.AdjustedCB,
		CBAfter:    member.CBAfter,
		Strategy:   pooling.Strategy(pool.Strategy),
	}, nil
}

// GetPoolMembers returns the members of a pool in allocation order
func (r *GormPoolingRepository) GetPoolMembers(ctx context.Context, poolID uuid.UUID) ([]pooling.Member, error) {
	var models []PoolMemberModel
	err := dbFromContext(ctx, r.db).Where("pool_id = ?", poolID.String()).Order("position").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pool members: %w", err)
	}
	return modelsToMembers(poolID, models)
}

// GetPool returns the pool with its members
func (r *GormPoolingRepository) GetPool(ctx context.Context, poolID uuid.UUID) (*pooling.Pool, error) {
	var model PoolModel
	err := dbFromContext(ctx, r.db).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", poolID.String()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("pool", poolID.String())
		}
		return nil, fmt.Errorf("failed to find pool: %w", err)
	}

	members, err := modelsToMembers(poolID, model.Members)
	if err != nil {
		return nil, err
	}
	return pooling.ReconstructPool(poolID, model.Year, model.PooledCB, pooling.Strategy(model.Strategy),
		model.CreatedAt, members), nil
}

func poolToModel(pool *pooling.Pool) *PoolModel {
	members := pool.Members()
	model := &PoolModel{
		ID:        pool.ID().String(),
		Year:      pool.Year(),
		PooledCB:  pool.PooledCB(),
		Strategy:  pool.Strategy().String(),
		CreatedAt: pool.CreatedAt(),
		Members:   make([]PoolMemberModel, len(members)),
	}
	for i, m := range members {
		model.Members[i] = PoolMemberModel{
			PoolID:     model.ID,
			ShipID:     m.ShipID(),
			Year:       m.Year(),
			AdjustedCB: m.AdjustedCB(),
			CBAfter:    m.CBAfter(),
			Position:   i,
		}
	}
	return model
}

func modelsToMembers(poolID uuid.UUID, models []PoolMemberModel) ([]pooling.Member, error) {
	members := make([]pooling.Member, len(models))
	for i, m := range models {
		member, err := pooling.ReconstructMember(poolID, m.ShipID, m.Year, m.AdjustedCB, m.CBAfter)
		if err != nil {
			return nil, fmt.Errorf("invalid member of pool %s in database: %w", poolID, err)
		}
		members[i] = member
	}
	return members, nil
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// AdjustedCBReader gathers the three inputs of compliance.Resolve from storage.
// It is shared by the adjusted-CB query and pool formation.
type AdjustedCBReader struct {
	complianceRepo compliance.Repository
	bankRepo       banking.Repository
	poolRepo       pooling.Repository
}

func NewAdjustedCBReader(
	complianceRepo compliance.Repository,
	bankRepo banking.Repository,
	poolRepo pooling.Repository,
) *AdjustedCBReader {
	return &AdjustedCBReader{
		complianceRepo: complianceRepo,
		bankRepo:       bankRepo,
		poolRepo:       poolRepo,
	}
}

// Read resolves the adjusted CB of a ship-year. Banking history is only read when
// the ship-year is not pooled, since membership supersedes it.
func (r *AdjustedCBReader) Read(ctx context.Context, shipYear shared.ShipYear) (compliance.AdjustedCB, error) {
	membership, err := r.poolRepo.GetPoolForShip(ctx, shipYear)
	if err != nil {
		return compliance.AdjustedCB{}, fmt.Errorf("failed to read pool membership: %w", err)
	}

	snapshot, err := r.complianceRepo.GetSnapshot(ctx, shipYear)
	if err != nil {
		return compliance.AdjustedCB{}, fmt.Errorf("failed to read compliance snapshot: %w", err)
	}

	if membership != nil {
		cbAfter := membership.CBAfter
		position := &compliance.PoolPosition{
			PoolID:   membership.PoolID.String(),
			PooledCB: membership.PooledCB,
			CBAfter:  &cbAfter,
		}
		return compliance.Resolve(shipYear, position, snapshot, nil), nil
	}

	if snapshot == nil {
		return compliance.Resolve(shipYear, nil, nil, nil), nil
	}

	applied, err := r.bankRepo.AppliedEntries(ctx, shipYear)
	if err != nil {
		return compliance.AdjustedCB{}, fmt.Errorf("failed to read applied bank entries: %w", err)
	}
	amounts := make([]float64, len(applied))
	for i, e := range applied {
		amounts[i] = e.Amount()
	}

	return compliance.Resolve(shipYear, nil, snapshot, amounts), nil
}

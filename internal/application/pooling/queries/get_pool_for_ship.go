package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GetPoolForShipQuery finds the pool a ship-year belongs to
type GetPoolForShipQuery struct {
	ShipID string
	Year   int
}

// GetPoolForShipResponse has a nil Membership when the ship-year is not pooled
type GetPoolForShipResponse struct {
	Membership *pooling.Membership
}

// GetPoolForShipHandler handles the GetPoolForShip query
type GetPoolForShipHandler struct {
	poolRepo pooling.Repository
}

func NewGetPoolForShipHandler(poolRepo pooling.Repository) *GetPoolForShipHandler {
	return &GetPoolForShipHandler{poolRepo: poolRepo}
}

// Handle executes the GetPoolForShip query
func (h *GetPoolForShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPoolForShipQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPoolForShipQuery")
	}

	shipYear, err := shared.NewShipYear(query.ShipID, query.Year)
	if err != nil {
		return nil, err
	}

	membership, err := h.poolRepo.GetPoolForShip(ctx, shipYear)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool membership: %w", err)
	}
	return &GetPoolForShipResponse{Membership: membership}, nil
}

package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GetPoolMembersQuery lists the members of a pool
type GetPoolMembersQuery struct {
	PoolID string
}

// GetPoolMembersResponse carries the pool and its members
type GetPoolMembersResponse struct {
	Pool    *pooling.Pool
	Members []pooling.Member
}

// GetPoolMembersHandler handles the GetPoolMembers query
type GetPoolMembersHandler struct {
	poolRepo pooling.Repository
}

func NewGetPoolMembersHandler(poolRepo pooling.Repository) *GetPoolMembersHandler {
	return &GetPoolMembersHandler{poolRepo: poolRepo}
}

// Handle executes the GetPoolMembers query
func (h *GetPoolMembersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPoolMembersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPoolMembersQuery")
	}

	poolID, err := uuid.Parse(query.PoolID)
	if err != nil {
		return nil, shared.NewValidationError("pool_id", "pool_id must be a UUID")
	}

	pool, err := h.poolRepo.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	members, err := h.poolRepo.GetPoolMembers(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool members: %w", err)
	}
	return &GetPoolMembersResponse{Pool: pool, Members: members}, nil
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// ListSnapshotsQuery lists the raw compliance balances recorded for a year
type ListSnapshotsQuery struct {
	Year int
}

// ListSnapshotsResponse carries the snapshots ordered by ship
type ListSnapshotsResponse struct {
	Snapshots []*compliance.Snapshot
}

// ListSnapshotsHandler handles the ListSnapshots query
type ListSnapshotsHandler struct {
	complianceRepo compliance.Repository
}

func NewListSnapshotsHandler(complianceRepo compliance.Repository) *ListSnapshotsHandler {
	return &ListSnapshotsHandler{complianceRepo: complianceRepo}
}

// Handle executes the ListSnapshots query
func (h *ListSnapshotsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListSnapshotsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSnapshotsQuery")
	}
	if query.Year <= 0 {
		return nil, shared.NewValidationError("year", "year must be positive")
	}

	snapshots, err := h.complianceRepo.ListSnapshots(ctx, query.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance snapshots: %w", err)
	}
	return &ListSnapshotsResponse{Snapshots: snapshots}, nil
}

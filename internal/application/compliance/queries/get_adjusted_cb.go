package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GetAdjustedCBQuery asks for the authoritative compliance position of a ship-year
type GetAdjustedCBQuery struct {
	ShipID string
	Year   int
}

// GetAdjustedCBResponse carries the resolved position
type GetAdjustedCBResponse struct {
	compliance.AdjustedCB
}

// GetAdjustedCBHandler handles the GetAdjustedCB query
type GetAdjustedCBHandler struct {
	reader *AdjustedCBReader
}

// NewGetAdjustedCBHandler creates a new GetAdjustedCBHandler
func NewGetAdjustedCBHandler(reader *AdjustedCBReader) *GetAdjustedCBHandler {
	return &GetAdjustedCBHandler{reader: reader}
}

// Handle executes the GetAdjustedCB query
func (h *GetAdjustedCBHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetAdjustedCBQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetAdjustedCBQuery")
	}

	shipYear, err := shared.NewShipYear(query.ShipID, query.Year)
	if err != nil {
		return nil, err
	}

	result, err := h.reader.Read(ctx, shipYear)
	if err != nil {
		return nil, err
	}
	return &GetAdjustedCBResponse{AdjustedCB: result}, nil
}

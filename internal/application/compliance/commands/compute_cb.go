package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/adapters/metrics"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// ComputeCBCommand computes the raw compliance balance of a ship-year and stores it
type ComputeCBCommand struct {
	ShipID          string
	ActualIntensity float64
	FuelTons        float64
	Year            int
}

// ComputeCBResponse mirrors compliance.Result
type ComputeCBResponse struct {
	compliance.Result
}

// ComputeCBHandler handles the ComputeCB command
type ComputeCBHandler struct {
	calculator     *compliance.Calculator
	complianceRepo compliance.Repository
	clock          shared.Clock
}

// NewComputeCBHandler creates a new ComputeCBHandler
func NewComputeCBHandler(
	calculator *compliance.Calculator,
	complianceRepo compliance.Repository,
	clock shared.Clock,
) *ComputeCBHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ComputeCBHandler{
		calculator:     calculator,
		complianceRepo: complianceRepo,
		clock:          clock,
	}
}

// Handle executes the ComputeCB command
func (h *ComputeCBHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ComputeCBCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ComputeCBCommand")
	}

	result, err := h.calculator.Compute(cmd.ShipID, cmd.ActualIntensity, cmd.FuelTons, cmd.Year)
	if err != nil {
		return nil, err
	}

	shipYear, err := shared.NewShipYear(result.ShipID, result.Year)
	if err != nil {
		return nil, err
	}

	snapshot := compliance.NewSnapshot(shipYear, result.CB, h.clock.Now())
	if err := h.complianceRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save compliance snapshot: %w", err)
	}

	metrics.RecordCBComputed(result.Year, result.CB, result.Compliant)
	zerolog.Ctx(ctx).Info().
		Str("ship_id", result.ShipID).
		Int("year", result.Year).
		Float64("cb_gco2eq", result.CB).
		Bool("compliant", result.Compliant).
		Msg("compliance snapshot saved")

	return &ComputeCBResponse{Result: result}, nil
}

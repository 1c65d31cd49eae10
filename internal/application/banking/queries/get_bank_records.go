package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// GetBankRecordsQuery lists the bank ledger of a ship-year
type GetBankRecordsQuery struct {
	ShipID string
	Year   int
}

// GetBankRecordsResponse summarizes the ledger. CBBefore is the raw snapshot CB,
// zero when none exists.
type GetBankRecordsResponse struct {
	ShipID    string
	Year      int
	CBBefore  float64
	Available float64
	Applied   float64
	Entries   []*banking.Entry
}

// GetBankRecordsHandler handles the GetBankRecords query
type GetBankRecordsHandler struct {
	complianceRepo compliance.Repository
	bankRepo       banking.Repository
}

// NewGetBankRecordsHandler creates a new GetBankRecordsHandler
func NewGetBankRecordsHandler(complianceRepo compliance.Repository, bankRepo banking.Repository) *GetBankRecordsHandler {
	return &GetBankRecordsHandler{complianceRepo: complianceRepo, bankRepo: bankRepo}
}

// Handle executes the GetBankRecords query
func (h *GetBankRecordsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBankRecordsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBankRecordsQuery")
	}

	shipYear, err := shared.NewShipYear(query.ShipID, query.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.complianceRepo.GetSnapshot(ctx, shipYear)
	if err != nil {
		return nil, fmt.Errorf("failed to read compliance snapshot: %w", err)
	}

	entries, err := h.bankRepo.ListEntries(ctx, shipYear)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank entries: %w", err)
	}
	ledger := banking.NewLedger(shipYear, entries)

	response := &GetBankRecordsResponse{
		ShipID:    shipYear.ShipID(),
		Year:      shipYear.Year(),
		Available: ledger.Available(),
		Applied:   ledger.AppliedTotal(),
		Entries:   ledger.Entries(),
	}
	if snapshot != nil {
		response.CBBefore = snapshot.CB()
	}
	return response, nil
}

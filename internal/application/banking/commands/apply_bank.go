package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/adapters/metrics"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// ApplyBankCommand applies banked surplus against the ship-year's balance
type ApplyBankCommand struct {
	ShipID string
	Year   int
	Amount float64
}

// ApplyBankResponse reports the balance before and after the application
type ApplyBankResponse struct {
	ShipID    string
	Year      int
	Applied   float64
	CBBefore  float64
	CBAfter   float64
	Available float64
}

// ApplyBankHandler handles the ApplyBank command
type ApplyBankHandler struct {
	complianceRepo compliance.Repository
	bankRepo       banking.Repository
	poolRepo       pooling.Repository
	transactor     shared.Transactor
	locks          *shared.ShipYearLocks
	clock          shared.Clock
}

// NewApplyBankHandler creates a new ApplyBankHandler
func NewApplyBankHandler(
	complianceRepo compliance.Repository,
	bankRepo banking.Repository,
	poolRepo pooling.Repository,
	transactor shared.Transactor,
	locks *shared.ShipYearLocks,
	clock shared.Clock,
) *ApplyBankHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if transactor == nil {
		transactor = shared.NoopTransactor{}
	}
	if locks == nil {
		locks = shared.NewShipYearLocks()
	}
	return &ApplyBankHandler{
		complianceRepo: complianceRepo,
		bankRepo:       bankRepo,
		poolRepo:       poolRepo,
		transactor:     transactor,
		locks:          locks,
		clock:          clock,
	}
}

// Handle executes the ApplyBank command.
// The read of available surplus and the write of the application happen under the
// ship-year lock and inside one transaction, so concurrent calls cannot over-apply.
// A pooled ship-year is settled by its pool, so banked surplus cannot be applied to it.
func (h *ApplyBankHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ApplyBankCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ApplyBankCommand")
	}

	shipYear, err := shared.NewShipYear(cmd.ShipID, cmd.Year)
	if err != nil {
		return nil, err
	}

	release := h.locks.Lock(shipYear)
	defer release()

	var response *ApplyBankResponse
	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		pooled, err := h.poolRepo.IsShipInPool(ctx, shipYear)
		if err != nil {
			return fmt.Errorf("failed to check pool membership: %w", err)
		}
		if pooled {
			return shared.NewDomainErrorf("Ship %s is pooled for year %d; banked surplus cannot be applied", shipYear.ShipID(), shipYear.Year())
		}

		snapshot, err := h.complianceRepo.GetSnapshotForUpdate(ctx, shipYear)
		if err != nil {
			return fmt.Errorf("failed to read compliance snapshot: %w", err)
		}
		var original float64
		if snapshot != nil {
			original = snapshot.CB()
		}

		entries, err := h.bankRepo.ListEntriesForUpdate(ctx, shipYear)
		if err != nil {
			return fmt.Errorf("failed to read bank entries: %w", err)
		}
		ledger := banking.NewLedger(shipYear, entries)
		appliedBefore := ledger.AppliedTotal()

		application, err := ledger.Apply(cmd.Amount, h.clock.Now())
		if err != nil {
			return err
		}

		if err := h.bankRepo.SaveApplication(ctx, application); err != nil {
			return fmt.Errorf("failed to save bank application: %w", err)
		}

		cbBefore := original + appliedBefore
		response = &ApplyBankResponse{
			ShipID:    shipYear.ShipID(),
			Year:      shipYear.Year(),
			Applied:   application.Amount,
			CBBefore:  cbBefore,
			CBAfter:   cbBefore + application.Amount,
			Available: ledger.Available(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBankApplied(response.Year, response.Applied)
	zerolog.Ctx(ctx).Info().
		Str("ship_id", response.ShipID).
		Int("year", response.Year).
		Float64("applied", response.Applied).
		Float64("cb_after", response.CBAfter).
		Msg("banked surplus applied")

	return response, nil
}

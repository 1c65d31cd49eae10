package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/adapters/metrics"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/pkg/utils"
)

// BankSurplusCommand deposits compliance surplus into the ship-year's bank.
// Amount defaults to the whole surplus not yet banked.
type BankSurplusCommand struct {
	ShipID string
	Year   int
	Amount *float64
}

// BankSurplusResponse reports the deposit
type BankSurplusResponse struct {
	ShipID    string
	Year      int
	EntryID   string
	CBBefore  float64
	Banked    float64
	Available float64
	Bankable  float64
}

// BankSurplusHandler handles the BankSurplus command
type BankSurplusHandler struct {
	complianceRepo compliance.Repository
	bankRepo       banking.Repository
	transactor     shared.Transactor
	locks          *shared.ShipYearLocks
	clock          shared.Clock
}

// NewBankSurplusHandler creates a new BankSurplusHandler
func NewBankSurplusHandler(
	complianceRepo compliance.Repository,
	bankRepo banking.Repository,
	transactor shared.Transactor,
	locks *shared.ShipYearLocks,
	clock shared.Clock,
) *BankSurplusHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if transactor == nil {
		transactor = shared.NoopTransactor{}
	}
	if locks == nil {
		locks = shared.NewShipYearLocks()
	}
	return &BankSurplusHandler{
		complianceRepo: complianceRepo,
		bankRepo:       bankRepo,
		transactor:     transactor,
		locks:          locks,
		clock:          clock,
	}
}

// Handle executes the BankSurplus command.
//
// The deposit is checked against the current snapshot: the ship-year must be in
// surplus, and the total banked can never exceed that surplus. The snapshot row is
// read for update, so deposits serialize across processes.
func (h *BankSurplusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BankSurplusCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BankSurplusCommand")
	}

	shipYear, err := shared.NewShipYear(cmd.ShipID, cmd.Year)
	if err != nil {
		return nil, err
	}
	if cmd.Amount != nil && *cmd.Amount <= 0 {
		return nil, shared.NewDomainError(banking.ErrMsgNonPositiveDeposit)
	}

	release := h.locks.Lock(shipYear)
	defer release()

	var response *BankSurplusResponse
	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// the snapshot row lock covers an empty ledger too
		snapshot, err := h.complianceRepo.GetSnapshotForUpdate(ctx, shipYear)
		if err != nil {
			return fmt.Errorf("failed to read compliance snapshot: %w", err)
		}
		if snapshot == nil {
			return shared.NewDomainErrorf("No compliance balance found for ship %s in year %d", shipYear.ShipID(), shipYear.Year())
		}
		if snapshot.CB() <= 0 {
			return shared.NewDomainErrorf("Ship %s has no surplus to bank (cb: %v)", shipYear.ShipID(), snapshot.CB())
		}

		entries, err := h.bankRepo.ListEntriesForUpdate(ctx, shipYear)
		if err != nil {
			return fmt.Errorf("failed to read bank entries: %w", err)
		}
		ledger := banking.NewLedger(shipYear, entries)

		bankable := snapshot.CB() - ledger.Deposited()
		amount := bankable
		if cmd.Amount != nil {
			amount = *cmd.Amount
		}
		if bankable <= 0 {
			return shared.NewDomainErrorf("Surplus of ship %s for year %d is already fully banked", shipYear.ShipID(), shipYear.Year())
		}
		if amount > bankable {
			return shared.NewDomainErrorf("Amount %v exceeds bankable surplus %v", amount, bankable)
		}

		entry, err := ledger.Deposit(amount, h.clock.Now())
		if err != nil {
			return err
		}
		if err := h.bankRepo.AddEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to save bank entry: %w", err)
		}

		response = &BankSurplusResponse{
			ShipID:    shipYear.ShipID(),
			Year:      shipYear.Year(),
			EntryID:   entry.ID().String(),
			CBBefore:  snapshot.CB(),
			Banked:    amount,
			Available: ledger.Available(),
			Bankable:  utils.MaxFloat(0, bankable-amount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSurplusBanked(response.Year, response.Banked)
	zerolog.Ctx(ctx).Info().
		Str("ship_id", response.ShipID).
		Int("year", response.Year).
		Float64("banked", response.Banked).
		Float64("available", response.Available).
		Msg("surplus banked")

	return response, nil
}

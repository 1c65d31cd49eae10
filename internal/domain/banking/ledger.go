package banking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

const (
	ErrMsgNonPositiveDeposit = "cannot bank non-positive amount"
	ErrMsgInsufficientBanked = "insufficient banked amount"
)

// Application describes the entry changes produced by applying banked surplus.
// Updated holds existing deposits that were fully applied or reduced; Created
// holds the applied splits carved out of partially consumed deposits.
type Application struct {
	ShipYear shared.ShipYear
	Amount   float64
	Updated  []*Entry
	Created  []*Entry
}

// Ledger is the aggregate over the bank entries of one ship-year.
// Entries are kept in FIFO order: creation time, then insertion order.
type Ledger struct {
	shipYear shared.ShipYear
	entries  []*Entry
}

func NewLedger(shipYear shared.ShipYear, entries []*Entry) *Ledger {
	copied := make([]*Entry, len(entries))
	copy(copied, entries)
	return &Ledger{shipYear: shipYear, entries: copied}
}

func (l *Ledger) ShipYear() shared.ShipYear {
	return l.shipYear
}

func (l *Ledger) Entries() []*Entry {
	out := make([]*Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Available is the sum of deposits not yet applied
func (l *Ledger) Available() float64 {
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.IsOpenDeposit() {
			sum = sum.Add(decimal.NewFromFloat(e.amount))
		}
	}
	return sum.InexactFloat64()
}

// AppliedTotal is the sum of applied entries, used by the adjusted-CB resolver
func (l *Ledger) AppliedTotal() float64 {
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.applied {
			sum = sum.Add(decimal.NewFromFloat(e.amount))
		}
	}
	return sum.InexactFloat64()
}

// AppliedAmounts returns the applied entry amounts in ledger order
func (l *Ledger) AppliedAmounts() []float64 {
	var amounts []float64
	for _, e := range l.entries {
		if e.applied {
			amounts = append(amounts, e.amount)
		}
	}
	return amounts
}

// Deposited is the total ever banked. Application moves value between open and
// applied entries without changing this sum.
func (l *Ledger) Deposited() float64 {
	sum := decimal.Zero
	for _, e := range l.entries {
		sum = sum.Add(decimal.NewFromFloat(e.amount))
	}
	return sum.InexactFloat64()
}

// Deposit appends a new open deposit
func (l *Ledger) Deposit(amount float64, now time.Time) (*Entry, error) {
	if amount <= 0 {
		return nil, shared.NewDomainError(ErrMsgNonPositiveDeposit)
	}
	entry := newDeposit(l.shipYear, amount, now)
	l.entries = append(l.entries, entry)
	return entry, nil
}

// Apply consumes open deposits FIFO until amount is covered.
// Either the whole amount is applied or the ledger is left untouched.
func (l *Ledger) Apply(amount float64, now time.Time) (*Application, error) {
	if amount <= 0 || amount > l.Available() {
		return nil, shared.NewDomainError(ErrMsgInsufficientBanked)
	}

	remaining := decimal.NewFromFloat(amount)
	appliedAt := now
	plan := &Application{ShipYear: l.shipYear, Amount: amount}
	next := make([]*Entry, 0, len(l.entries)+1)

	for _, e := range l.entries {
		if !remaining.IsPositive() || !e.IsOpenDeposit() {
			next = append(next, e)
			continue
		}

		open := decimal.NewFromFloat(e.amount)
		if open.LessThanOrEqual(remaining) {
			consumed := e.clone()
			consumed.applied = true
			consumed.appliedAt = &appliedAt
			plan.Updated = append(plan.Updated, consumed)
			next = append(next, consumed)
			remaining = remaining.Sub(open)
			continue
		}

		reduced := e.clone()
		reduced.amount = open.Sub(remaining).InexactFloat64()
		split := newAppliedSplit(e, remaining.InexactFloat64(), now)
		plan.Updated = append(plan.Updated, reduced)
		plan.Created = append(plan.Created, split)
		next = append(next, reduced, split)
		remaining = decimal.Zero
	}

	if remaining.IsPositive() {
		return nil, shared.NewDomainError(ErrMsgInsufficientBanked)
	}

	l.entries = next
	return plan, nil
}

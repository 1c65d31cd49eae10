package banking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reconciliation is the result of converting legacy signed-negative debits into
// flag-based applications.
type Reconciliation struct {
	Entries []*Entry
	Removed []uuid.UUID
	Updated []*Entry
	Created []*Entry
}

// Changed reports whether any legacy debit was found
func (r Reconciliation) Changed() bool {
	return len(r.Removed) > 0
}

// ReconcileLegacy rewrites legacy debits (unapplied negative entries) into the
// flag-based encoding. Each debit consumes the open deposits recorded before it,
// FIFO, exactly as Apply would have. A debit larger than the deposits preceding it
// leaves its unmatched part as a standalone applied entry so the resolver still
// sees the full historical application.
func ReconcileLegacy(entries []*Entry) Reconciliation {
	result := Reconciliation{}
	hasLegacy := false
	for _, e := range entries {
		if e.IsLegacyDebit() {
			hasLegacy = true
			break
		}
	}
	if !hasLegacy {
		result.Entries = entries
		return result
	}

	working := make([]*Entry, 0, len(entries))
	updated := make(map[uuid.UUID]*Entry)
	var updatedOrder []uuid.UUID

	markUpdated := func(e *Entry) {
		if _, ok := updated[e.id]; !ok {
			updatedOrder = append(updatedOrder, e.id)
		}
		updated[e.id] = e
	}

	for _, e := range entries {
		if !e.IsLegacyDebit() {
			working = append(working, e)
			continue
		}

		result.Removed = append(result.Removed, e.id)
		remaining := decimal.NewFromFloat(e.amount).Neg()
		appliedAt := e.createdAt
		next := make([]*Entry, 0, len(working)+1)

		for _, w := range working {
			if !remaining.IsPositive() || !w.IsOpenDeposit() {
				next = append(next, w)
				continue
			}
			open := decimal.NewFromFloat(w.amount)
			if open.LessThanOrEqual(remaining) {
				consumed := w.clone()
				consumed.applied = true
				consumed.appliedAt = &appliedAt
				markUpdated(consumed)
				next = append(next, consumed)
				remaining = remaining.Sub(open)
				continue
			}
			reduced := w.clone()
			reduced.amount = open.Sub(remaining).InexactFloat64()
			split := newAppliedSplit(w, remaining.InexactFloat64(), appliedAt)
			markUpdated(reduced)
			result.Created = append(result.Created, split)
			next = append(next, reduced, split)
			remaining = decimal.Zero
		}

		if remaining.IsPositive() {
			orphan := &Entry{
				id:        uuid.New(),
				shipYear:  e.shipYear,
				amount:    remaining.InexactFloat64(),
				applied:   true,
				appliedAt: &appliedAt,
				createdAt: e.createdAt,
			}
			result.Created = append(result.Created, orphan)
			next = append(next, orphan)
		}
		working = next
	}

	for _, id := range updatedOrder {
		result.Updated = append(result.Updated, updated[id])
	}

	result.Entries = working
	return result
}

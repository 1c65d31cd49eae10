package steps

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// balanceRow is one "| ship | cb |" line of a balances table
type balanceRow struct {
	shipID string
	cb     float64
}

// bodyRows drops the header row of a table
func bodyRows(table *godog.Table) []*messages.PickleTableRow {
	if table == nil || len(table.Rows) < 2 {
		return nil
	}
	return table.Rows[1:]
}

// parseBalances reads a two column ship/cb table
func parseBalances(table *godog.Table) ([]balanceRow, error) {
	var rows []balanceRow
	for i, row := range bodyRows(table) {
		if len(row.Cells) != 2 {
			return nil, fmt.Errorf("row %d: expected 2 cells, got %d", i+1, len(row.Cells))
		}
		cb, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid cb %q: %w", i+1, row.Cells[1].Value, err)
		}
		rows = append(rows, balanceRow{shipID: row.Cells[0].Value, cb: cb})
	}
	return rows, nil
}

// parseAllocations reads a ship/before/after table
func parseAllocations(table *godog.Table) ([][3]string, error) {
	var rows [][3]string
	for i, row := range bodyRows(table) {
		if len(row.Cells) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 cells, got %d", i+1, len(row.Cells))
		}
		rows = append(rows, [3]string{row.Cells[0].Value, row.Cells[1].Value, row.Cells[2].Value})
	}
	return rows, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// approxEqual compares to 1e-6 absolute or 1e-9 relative, whichever is looser
func approxEqual(a, b float64) bool {
	tolerance := math.Max(1e-6, math.Abs(b)*1e-9)
	return math.Abs(a-b) <= tolerance
}

package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	bankingCommands "github.com/andrescamacho/fueleu-go/internal/application/banking/commands"
	bankingQueries "github.com/andrescamacho/fueleu-go/internal/application/banking/queries"
)

func (fc *fleetContext) shipHasBanked(shipID string, amount float64, year int) error {
	return fc.seedEntry(shipID, year, amount)
}

func (fc *fleetContext) shipHasALegacyDebitOf(shipID string, amount float64, year int) error {
	return fc.seedEntry(shipID, year, -amount)
}

func (fc *fleetContext) shipBanksItsSurplus(shipID string, year int) error {
	fc.send(&bankingCommands.BankSurplusCommand{ShipID: shipID, Year: year})
	return nil
}

func (fc *fleetContext) shipBanksAmount(shipID string, amount float64, year int) error {
	fc.send(&bankingCommands.BankSurplusCommand{ShipID: shipID, Year: year, Amount: &amount})
	return nil
}

func (fc *fleetContext) shipAppliesFromTheBank(shipID string, amount float64, year int) error {
	fc.send(&bankingCommands.ApplyBankCommand{ShipID: shipID, Year: year, Amount: amount})
	return nil
}

func (fc *fleetContext) theBankedAmountShouldBe(expected float64) error {
	if fc.err != nil {
		return fmt.Errorf("bank failed: %v", fc.err)
	}
	result, ok := fc.response.(*bankingCommands.BankSurplusResponse)
	if !ok {
		return fmt.Errorf("expected *BankSurplusResponse, got %T", fc.response)
	}
	if !approxEqual(result.Banked, expected) {
		return fmt.Errorf("expected %v banked, got %v", expected, result.Banked)
	}
	return nil
}

func (fc *fleetContext) theCBShouldMoveFromTo(before, after float64) error {
	if fc.err != nil {
		return fmt.Errorf("apply failed: %v", fc.err)
	}
	result, ok := fc.response.(*bankingCommands.ApplyBankResponse)
	if !ok {
		return fmt.Errorf("expected *ApplyBankResponse, got %T", fc.response)
	}
	if !approxEqual(result.CBBefore, before) || !approxEqual(result.CBAfter, after) {
		return fmt.Errorf("expected CB %v -> %v, got %v -> %v", before, after, result.CBBefore, result.CBAfter)
	}
	return nil
}

func (fc *fleetContext) bankRecords(shipID string, year int) (*bankingQueries.GetBankRecordsResponse, error) {
	resp, err := fc.sendOrFail(&bankingQueries.GetBankRecordsQuery{ShipID: shipID, Year: year})
	if err != nil {
		return nil, err
	}
	return resp.(*bankingQueries.GetBankRecordsResponse), nil
}

func (fc *fleetContext) theAvailableBankBalanceShouldBe(shipID string, year int, expected float64) error {
	records, err := fc.bankRecords(shipID, year)
	if err != nil {
		return err
	}
	if !approxEqual(records.Available, expected) {
		return fmt.Errorf("expected %v available for %s, got %v", expected, shipID, records.Available)
	}
	return nil
}

func (fc *fleetContext) theBankShouldHoldOpenAndAppliedEntries(shipID string, year, open, applied int) error {
	records, err := fc.bankRecords(shipID, year)
	if err != nil {
		return err
	}
	var gotOpen, gotApplied int
	for _, e := range records.Entries {
		if e.Amount() < 0 {
			return fmt.Errorf("entry %s has negative amount %v", e.ID(), e.Amount())
		}
		if e.Applied() {
			gotApplied++
		} else {
			gotOpen++
		}
	}
	if gotOpen != open || gotApplied != applied {
		return fmt.Errorf("expected %d open and %d applied entries, got %d and %d", open, applied, gotOpen, gotApplied)
	}
	return nil
}

func (fc *fleetContext) registerBankingSteps(sc *godog.ScenarioContext) {
	sc.Step(`^ship "([^"]*)" has banked (\d+(?:\.\d+)?) in (\d+)$`, fc.shipHasBanked)
	sc.Step(`^ship "([^"]*)" has a legacy debit of (\d+(?:\.\d+)?) in (\d+)$`, fc.shipHasALegacyDebitOf)
	sc.Step(`^ship "([^"]*)" banks its surplus for (\d+)$`, fc.shipBanksItsSurplus)
	sc.Step(`^ship "([^"]*)" banks (-?\d+(?:\.\d+)?) for (\d+)$`, fc.shipBanksAmount)
	sc.Step(`^ship "([^"]*)" applies (-?\d+(?:\.\d+)?) from the bank for (\d+)$`, fc.shipAppliesFromTheBank)
	sc.Step(`^the banked amount should be (\d+(?:\.\d+)?)$`, fc.theBankedAmountShouldBe)
	sc.Step(`^the CB should move from (-?\d+(?:\.\d+)?) to (-?\d+(?:\.\d+)?)$`, fc.theCBShouldMoveFromTo)
	sc.Step(`^the available bank balance of ship "([^"]*)" in (\d+) should be (\d+(?:\.\d+)?)$`, fc.theAvailableBankBalanceShouldBe)
	sc.Step(`^the bank of ship "([^"]*)" in (\d+) should hold (\d+) open and (\d+) applied entries$`, fc.theBankShouldHoldOpenAndAppliedEntries)
}

package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	complianceCommands "github.com/andrescamacho/fueleu-go/internal/application/compliance/commands"
	complianceQueries "github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
)

func (fc *fleetContext) shipHasAComplianceBalanceOf(shipID string, cb float64, year int) error {
	return fc.seedSnapshot(shipID, year, cb)
}

func (fc *fleetContext) complianceBalancesFor(year int, table *godog.Table) error {
	rows, err := parseBalances(table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := fc.seedSnapshot(r.shipID, year, r.cb); err != nil {
			return err
		}
	}
	return nil
}

func (fc *fleetContext) shipReportsIntensityOverTonnes(shipID string, intensity, tons float64, year int) error {
	fc.send(&complianceCommands.ComputeCBCommand{
		ShipID:          shipID,
		ActualIntensity: intensity,
		FuelTons:        tons,
		Year:            year,
	})
	return nil
}

func (fc *fleetContext) computed() (*complianceCommands.ComputeCBResponse, error) {
	if fc.err != nil {
		return nil, fmt.Errorf("compute failed: %v", fc.err)
	}
	result, ok := fc.response.(*complianceCommands.ComputeCBResponse)
	if !ok {
		return nil, fmt.Errorf("expected *ComputeCBResponse, got %T", fc.response)
	}
	return result, nil
}

func (fc *fleetContext) theComplianceBalanceShouldBe(expected float64) error {
	result, err := fc.computed()
	if err != nil {
		return err
	}
	if !approxEqual(result.CB, expected) {
		return fmt.Errorf("expected CB %v, got %v", expected, result.CB)
	}
	return nil
}

func (fc *fleetContext) theShipShouldBeCompliance(state string) error {
	result, err := fc.computed()
	if err != nil {
		return err
	}
	if want := state == "compliant"; result.Compliant != want {
		return fmt.Errorf("expected %s, got compliant=%v with CB %v", state, result.Compliant, result.CB)
	}
	return nil
}

func (fc *fleetContext) adjustedCB(shipID string, year int) (*complianceQueries.GetAdjustedCBResponse, error) {
	resp, err := fc.sendOrFail(&complianceQueries.GetAdjustedCBQuery{ShipID: shipID, Year: year})
	if err != nil {
		return nil, err
	}
	return resp.(*complianceQueries.GetAdjustedCBResponse), nil
}

func (fc *fleetContext) theAdjustedCBOfShipShouldBe(shipID string, year int, expected float64) error {
	result, err := fc.adjustedCB(shipID, year)
	if err != nil {
		return err
	}
	if !approxEqual(result.AdjustedCB.AdjustedCB, expected) {
		return fmt.Errorf("expected adjusted CB %v for %s, got %v", expected, shipID, result.AdjustedCB.AdjustedCB)
	}
	return nil
}

func (fc *fleetContext) theAdjustedCBOfShipShouldBeMissing(shipID string, year int) error {
	result, err := fc.adjustedCB(shipID, year)
	if err != nil {
		return err
	}
	if result.Found {
		return fmt.Errorf("expected no compliance record for %s, got adjusted CB %v", shipID, result.AdjustedCB.AdjustedCB)
	}
	if result.AdjustedCB.AdjustedCB != 0 {
		return fmt.Errorf("expected zero adjusted CB, got %v", result.AdjustedCB.AdjustedCB)
	}
	return nil
}

func (fc *fleetContext) shipShouldBeInDeficitOf(shipID string, year int, expected float64) error {
	result, err := fc.adjustedCB(shipID, year)
	if err != nil {
		return err
	}
	if result.Compliant || !approxEqual(result.Deficit, expected) {
		return fmt.Errorf("expected %s to be in deficit of %v, got deficit %v (compliant=%v)",
			shipID, expected, result.Deficit, result.Compliant)
	}
	return nil
}

func (fc *fleetContext) registerComplianceSteps(sc *godog.ScenarioContext) {
	sc.Step(`^ship "([^"]*)" has a compliance balance of (-?\d+(?:\.\d+)?) in (\d+)$`, fc.shipHasAComplianceBalanceOf)
	sc.Step(`^the following compliance balances for (\d+):$`, fc.complianceBalancesFor)
	sc.Step(`^ship "([^"]*)" reports an intensity of (-?\d+(?:\.\d+)?) over (-?\d+(?:\.\d+)?) tonnes of fuel in (\d+)$`, fc.shipReportsIntensityOverTonnes)
	sc.Step(`^the compliance balance should be (-?\d+(?:\.\d+)?)$`, fc.theComplianceBalanceShouldBe)
	sc.Step(`^the ship should be (compliant|in deficit)$`, fc.theShipShouldBeCompliance)
	sc.Step(`^the adjusted CB of ship "([^"]*)" in (\d+) should be (-?\d+(?:\.\d+)?)$`, fc.theAdjustedCBOfShipShouldBe)
	sc.Step(`^ship "([^"]*)" should have no compliance record for (\d+)$`, fc.theAdjustedCBOfShipShouldBeMissing)
	sc.Step(`^ship "([^"]*)" should be in deficit for (\d+) by (\d+(?:\.\d+)?)$`, fc.shipShouldBeInDeficitOf)
}

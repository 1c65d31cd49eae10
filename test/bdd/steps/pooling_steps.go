package steps

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	poolingCommands "github.com/andrescamacho/fueleu-go/internal/application/pooling/commands"
	poolingQueries "github.com/andrescamacho/fueleu-go/internal/application/pooling/queries"
)

func (fc *fleetContext) aPoolIsFormedFromShips(strategy string, year int, ships string) error {
	var shipIDs []string
	for _, id := range strings.Split(ships, ",") {
		shipIDs = append(shipIDs, strings.TrimSpace(id))
	}
	fc.send(&poolingCommands.CreatePoolCommand{
		ShipIDs:  shipIDs,
		Year:     year,
		Strategy: strategy,
	})
	return nil
}

func (fc *fleetContext) created() (*poolingCommands.CreatePoolResponse, error) {
	if fc.err != nil {
		return nil, fmt.Errorf("pool formation failed: %v", fc.err)
	}
	result, ok := fc.response.(*poolingCommands.CreatePoolResponse)
	if !ok {
		return nil, fmt.Errorf("expected *CreatePoolResponse, got %T", fc.response)
	}
	return result, nil
}

func (fc *fleetContext) thePooledCBShouldBe(expected float64) error {
	result, err := fc.created()
	if err != nil {
		return err
	}
	if !approxEqual(result.PooledCB, expected) {
		return fmt.Errorf("expected pooled CB %v, got %v", expected, result.PooledCB)
	}
	return nil
}

func (fc *fleetContext) shipShouldEndThePoolWith(shipID string, expected float64) error {
	result, err := fc.created()
	if err != nil {
		return err
	}
	for _, s := range result.Ships {
		if s.ShipID == shipID {
			if !approxEqual(s.CBAfter, expected) {
				return fmt.Errorf("expected %s to end with %v, got %v", shipID, expected, s.CBAfter)
			}
			return nil
		}
	}
	return fmt.Errorf("ship %s is not a member of the pool", shipID)
}

func (fc *fleetContext) shipShouldBePooledIn(shipID string, year int) error {
	resp, err := fc.sendOrFail(&poolingQueries.GetPoolForShipQuery{ShipID: shipID, Year: year})
	if err != nil {
		return err
	}
	membership := resp.(*poolingQueries.GetPoolForShipResponse).Membership
	if membership == nil {
		return fmt.Errorf("expected %s to be pooled in %d", shipID, year)
	}
	result, err := fc.created()
	if err == nil && membership.PoolID.String() != result.PoolID {
		return fmt.Errorf("expected %s in pool %s, got %s", shipID, result.PoolID, membership.PoolID)
	}
	return nil
}

func (fc *fleetContext) shipShouldNotBePooledIn(shipID string, year int) error {
	resp, err := fc.sendOrFail(&poolingQueries.GetPoolForShipQuery{ShipID: shipID, Year: year})
	if err != nil {
		return err
	}
	if m := resp.(*poolingQueries.GetPoolForShipResponse).Membership; m != nil {
		return fmt.Errorf("expected %s not to be pooled, found pool %s", shipID, m.PoolID)
	}
	return nil
}

func (fc *fleetContext) registerPoolingSteps(sc *godog.ScenarioContext) {
	sc.Step(`^an? "([^"]*)" pool is formed for (\d+) from ships "([^"]*)"$`, fc.aPoolIsFormedFromShips)
	sc.Step(`^the pooled CB should be (-?\d+(?:\.\d+)?)$`, fc.thePooledCBShouldBe)
	sc.Step(`^ship "([^"]*)" should end the pool with (-?\d+(?:\.\d+)?)$`, fc.shipShouldEndThePoolWith)
	sc.Step(`^ship "([^"]*)" should be pooled in (\d+)$`, fc.shipShouldBePooledIn)
	sc.Step(`^ship "([^"]*)" should not be pooled in (\d+)$`, fc.shipShouldNotBePooledIn)
}

package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/fueleu-go/test/bdd/steps"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// TestFeaturesPersisted replays the application features over the GORM repositories
func TestFeaturesPersisted(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps.InitializeFleetScenario(sc, helpers.SharedTestDB)
		},
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features/application"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run persisted feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain scenarios first so their assertions take precedence over the
	// application steps sharing the same wording
	steps.InitializeAllocationScenario(sc)
	steps.InitializeFleetScenario(sc, nil)
}

func TestMain(m *testing.M) {
	// One migrated database for all persisted scenarios, emptied per scenario
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}

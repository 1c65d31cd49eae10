package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/application/setup"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/test/helpers"
)

// fleetContext drives the registered handlers over either in-memory or GORM repositories
type fleetContext struct {
	db       *gorm.DB
	repos    setup.Repositories
	mediator mediator.Mediator
	clock    *shared.MockClock
	deposits int

	response mediator.Response
	err      error
}

func (fc *fleetContext) reset() error {
	fc.clock = shared.NewMockClock(helpers.FixedTime)
	fc.deposits = 0
	fc.response = nil
	fc.err = nil

	if fc.db == nil {
		fc.repos = helpers.NewMockRepositories().Ports()
		m, err := helpers.NewTestMediator(fc.repos, nil, fc.clock)
		if err != nil {
			return fmt.Errorf("failed to wire mediator: %w", err)
		}
		fc.mediator = m
		return nil
	}

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	fc.repos = helpers.NewTestRepositories(fc.db).Ports()
	m := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(fc.repos, setup.DefaultPolicy(), persistence.NewGormTransactor(fc.db), fc.clock)
	if err := registry.RegisterAll(m); err != nil {
		return fmt.Errorf("failed to wire mediator: %w", err)
	}
	fc.mediator = m
	return nil
}

func (fc *fleetContext) seedSnapshot(shipID string, year int, cb float64) error {
	sy, err := shared.NewShipYear(shipID, year)
	if err != nil {
		return err
	}
	return fc.repos.Compliance.SaveSnapshot(context.Background(), compliance.NewSnapshot(sy, cb, helpers.FixedTime))
}

// seedEntry stores an open entry one minute after the previous one so FIFO
// order follows the scenario. A negative amount is a legacy debit.
func (fc *fleetContext) seedEntry(shipID string, year int, amount float64) error {
	sy, err := shared.NewShipYear(shipID, year)
	if err != nil {
		return err
	}
	createdAt := helpers.FixedTime.Add(time.Duration(fc.deposits) * time.Minute)
	fc.deposits++
	entry := banking.ReconstructEntry(uuid.New(), sy, amount, false, nil, nil, createdAt)
	return fc.repos.Banking.AddEntry(context.Background(), entry)
}

// send records the outcome of a request; failures are asserted by later steps
func (fc *fleetContext) send(request mediator.Request) {
	fc.response, fc.err = fc.mediator.Send(context.Background(), request)
}

// sendOrFail is for lookup requests that must succeed
func (fc *fleetContext) sendOrFail(request mediator.Request) (mediator.Response, error) {
	resp, err := fc.mediator.Send(context.Background(), request)
	if err != nil {
		return nil, fmt.Errorf("%T failed: %w", request, err)
	}
	return resp, nil
}

func (fc *fleetContext) theRequestShouldSucceed() error {
	if fc.err != nil {
		return fmt.Errorf("expected success, got: %v", fc.err)
	}
	return nil
}

func (fc *fleetContext) theRequestShouldFailWithError(kind, message string) error {
	if fc.err == nil {
		return fmt.Errorf("expected a %s error, request succeeded", kind)
	}

	var matches bool
	switch kind {
	case "validation":
		matches = shared.IsValidation(fc.err)
	case "domain":
		matches = shared.IsDomain(fc.err)
	case "not found":
		matches = shared.IsNotFound(fc.err)
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !matches {
		return fmt.Errorf("expected a %s error, got %T: %v", kind, fc.err, fc.err)
	}
	if message != "" && !strings.Contains(fc.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, fc.err.Error())
	}
	return nil
}

func (fc *fleetContext) theRequestShouldFailWithAnError(kind string) error {
	return fc.theRequestShouldFailWithError(kind, "")
}

func (fc *fleetContext) timePasses(minutes int) error {
	fc.clock.Advance(time.Duration(minutes) * time.Minute)
	return nil
}

// InitializeFleetScenario registers the compliance, banking and pooling steps.
// With a nil db the handlers run over in-memory repositories; otherwise over
// GORM repositories on db, which is emptied before every scenario.
func InitializeFleetScenario(sc *godog.ScenarioContext, db *gorm.DB) {
	fc := &fleetContext{db: db}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, fc.reset()
	})

	sc.Step(`^the request should succeed$`, fc.theRequestShouldSucceed)
	sc.Step(`^the request should fail with a (validation|domain|not found) error$`, fc.theRequestShouldFailWithAnError)
	sc.Step(`^the request should fail with a (validation|domain|not found) error containing "([^"]*)"$`, fc.theRequestShouldFailWithError)
	sc.Step(`^(\d+) minutes pass$`, fc.timePasses)

	fc.registerComplianceSteps(sc)
	fc.registerBankingSteps(sc)
	fc.registerPoolingSteps(sc)
}

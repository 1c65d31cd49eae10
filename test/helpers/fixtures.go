package helpers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/application/setup"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// MockRepositories bundles the in-memory repositories used by application tests
type MockRepositories struct {
	Compliance *MockComplianceRepository
	Banking    *MockBankingRepository
	Pooling    *MockPoolRepository
	Routes     *MockRouteRepository
}

// NewMockRepositories creates empty in-memory repositories
func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		Compliance: NewMockComplianceRepository(),
		Banking:    NewMockBankingRepository(),
		Pooling:    NewMockPoolRepository(),
		Routes:     NewMockRouteRepository(),
	}
}

// Ports exposes the mocks as the registry's repository set
func (r *MockRepositories) Ports() setup.Repositories {
	return setup.Repositories{
		Compliance: r.Compliance,
		Banking:    r.Banking,
		Pooling:    r.Pooling,
		Routes:     r.Routes,
	}
}

// FixedTime is the start time of every mock clock handed out by the helpers
var FixedTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// NewTestMediator wires every handler over the given repositories with the
// default policy, overridden by policy when non-nil
func NewTestMediator(repos setup.Repositories, policy *setup.Policy, clock shared.Clock) (mediator.Mediator, error) {
	p := setup.DefaultPolicy()
	if policy != nil {
		p = *policy
	}
	if clock == nil {
		clock = shared.NewMockClock(FixedTime)
	}

	m := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(repos, p, shared.NoopTransactor{}, clock)
	if err := registry.RegisterAll(m); err != nil {
		return nil, err
	}
	return m, nil
}

// SeedSnapshot stores a compliance snapshot for the ship-year
func (r *MockRepositories) SeedSnapshot(shipID string, year int, cb float64) {
	sy := shared.MustNewShipYear(shipID, year)
	_ = r.Compliance.SaveSnapshot(context.Background(), compliance.NewSnapshot(sy, cb, FixedTime))
}

// SeedDeposit stores an open bank deposit created offset after FixedTime
func (r *MockRepositories) SeedDeposit(shipID string, year int, amount float64, offset time.Duration) *banking.Entry {
	sy := shared.MustNewShipYear(shipID, year)
	entry := banking.ReconstructEntry(uuid.New(), sy, amount, false, nil, nil, FixedTime.Add(offset))
	r.Banking.AddRaw(entry)
	return entry
}

// SeedLegacyDebit stores a signed-negative application in the old ledger encoding
func (r *MockRepositories) SeedLegacyDebit(shipID string, year int, amount float64, offset time.Duration) *banking.Entry {
	return r.SeedDeposit(shipID, year, -amount, offset)
}

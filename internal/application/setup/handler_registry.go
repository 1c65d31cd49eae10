package setup

import (
	"reflect"

	bankingCommands "github.com/andrescamacho/fueleu-go/internal/application/banking/commands"
	bankingQueries "github.com/andrescamacho/fueleu-go/internal/application/banking/queries"
	complianceCommands "github.com/andrescamacho/fueleu-go/internal/application/compliance/commands"
	complianceQueries "github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	poolingCommands "github.com/andrescamacho/fueleu-go/internal/application/pooling/commands"
	poolingQueries "github.com/andrescamacho/fueleu-go/internal/application/pooling/queries"
	routeCommands "github.com/andrescamacho/fueleu-go/internal/application/routes/commands"
	routeQueries "github.com/andrescamacho/fueleu-go/internal/application/routes/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// Repositories groups the storage ports the handlers depend on
type Repositories struct {
	Compliance compliance.Repository
	Banking    banking.Repository
	Pooling    pooling.Repository
	Routes     route.Repository
}

// Policy holds the injected regulatory constants and pooling settings
type Policy struct {
	Regulation      compliance.Regulation
	Fuels           fuel.FactorTable
	PoolStrategy    pooling.Strategy
	PoolMinMembers  int
	DefaultBaseline float64
}

// DefaultPolicy returns the reference constants with aggregate pooling
func DefaultPolicy() Policy {
	return Policy{
		Regulation:      compliance.DefaultRegulation(),
		Fuels:           fuel.DefaultFactorTable(),
		PoolStrategy:    pooling.StrategyAggregate,
		PoolMinMembers:  pooling.DefaultMinMembers,
		DefaultBaseline: route.DefaultBaselineIntensity,
	}
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	repos      Repositories
	policy     Policy
	transactor shared.Transactor
	locks      *shared.ShipYearLocks
	clock      shared.Clock

	complianceCalc *compliance.Calculator
	fuelCalc       *fuel.MetricsCalculator
	reader         *complianceQueries.AdjustedCBReader
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	repos Repositories,
	policy Policy,
	transactor shared.Transactor,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if transactor == nil {
		transactor = shared.NoopTransactor{}
	}
	if policy.DefaultBaseline <= 0 {
		policy.DefaultBaseline = route.DefaultBaselineIntensity
	}

	return &HandlerRegistry{
		repos:          repos,
		policy:         policy,
		transactor:     transactor,
		locks:          shared.NewShipYearLocks(),
		clock:          clock,
		complianceCalc: compliance.NewCalculator(policy.Regulation),
		fuelCalc:       fuel.NewMetricsCalculator(policy.Fuels),
		reader:         complianceQueries.NewAdjustedCBReader(repos.Compliance, repos.Banking, repos.Pooling),
	}
}

// RegisterAll registers every command and query handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	registrations := []func(mediator.Mediator) error{
		r.RegisterComplianceHandlers,
		r.RegisterBankingHandlers,
		r.RegisterPoolingHandlers,
		r.RegisterRouteHandlers,
	}
	for _, register := range registrations {
		if err := register(m); err != nil {
			return err
		}
	}
	return nil
}

// RegisterComplianceHandlers registers CB computation and adjusted-CB resolution
func (r *HandlerRegistry) RegisterComplianceHandlers(m mediator.Mediator) error {
	return registerEach(m, map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&complianceCommands.ComputeCBCommand{}): complianceCommands.NewComputeCBHandler(
			r.complianceCalc, r.repos.Compliance, r.clock),
		reflect.TypeOf(&complianceQueries.GetAdjustedCBQuery{}): complianceQueries.NewGetAdjustedCBHandler(r.reader),
		reflect.TypeOf(&complianceQueries.ListSnapshotsQuery{}): complianceQueries.NewListSnapshotsHandler(r.repos.Compliance),
	})
}

// RegisterBankingHandlers registers the bank ledger commands and queries.
// Both mutating handlers share the registry's ship-year locks.
func (r *HandlerRegistry) RegisterBankingHandlers(m mediator.Mediator) error {
	return registerEach(m, map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&bankingCommands.BankSurplusCommand{}): bankingCommands.NewBankSurplusHandler(
			r.repos.Compliance, r.repos.Banking, r.transactor, r.locks, r.clock),
		reflect.TypeOf(&bankingCommands.ApplyBankCommand{}): bankingCommands.NewApplyBankHandler(
			r.repos.Compliance, r.repos.Banking, r.repos.Pooling, r.transactor, r.locks, r.clock),
		reflect.TypeOf(&bankingQueries.GetBankRecordsQuery{}): bankingQueries.NewGetBankRecordsHandler(
			r.repos.Compliance, r.repos.Banking),
	})
}

// RegisterPoolingHandlers registers pool formation and pool queries
func (r *HandlerRegistry) RegisterPoolingHandlers(m mediator.Mediator) error {
	return registerEach(m, map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&poolingCommands.CreatePoolCommand{}): poolingCommands.NewCreatePoolHandler(
			r.reader, r.repos.Pooling, r.transactor, r.locks, r.clock, r.policy.PoolStrategy, r.policy.PoolMinMembers),
		reflect.TypeOf(&poolingQueries.GetPoolMembersQuery{}): poolingQueries.NewGetPoolMembersHandler(r.repos.Pooling),
		reflect.TypeOf(&poolingQueries.GetPoolForShipQuery{}): poolingQueries.NewGetPoolForShipHandler(r.repos.Pooling),
	})
}

// RegisterRouteHandlers registers route metrics, baseline and comparison handlers
func (r *HandlerRegistry) RegisterRouteHandlers(m mediator.Mediator) error {
	return registerEach(m, map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&routeCommands.ComputeRouteMetricsCommand{}): routeCommands.NewComputeRouteMetricsHandler(
			r.repos.Routes, r.fuelCalc),
		reflect.TypeOf(&routeCommands.SetBaselineCommand{}): routeCommands.NewSetBaselineHandler(r.repos.Routes, r.fuelCalc),
		reflect.TypeOf(&routeQueries.ListRoutesQuery{}): routeQueries.NewListRoutesHandler(r.repos.Routes, r.fuelCalc),
		reflect.TypeOf(&routeQueries.CompareRoutesQuery{}): routeQueries.NewCompareRoutesHandler(
			r.repos.Routes, r.fuelCalc, r.policy.DefaultBaseline),
		reflect.TypeOf(&routeQueries.GetComparisonQuery{}): routeQueries.NewGetComparisonHandler(
			r.repos.Routes, r.policy.Regulation.TargetIntensity()),
	})
}

func registerEach(m mediator.Mediator, handlers map[reflect.Type]mediator.RequestHandler) error {
	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}

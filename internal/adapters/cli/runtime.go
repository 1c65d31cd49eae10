package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/adapters/metrics"
	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	appLogging "github.com/andrescamacho/fueleu-go/internal/application/logging"
	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/application/setup"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/config"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/database"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/logging"
)

// Runtime is the wired application a command runs against
type Runtime struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Mediator    mediator.Mediator
	Policy      setup.Policy
	DB          *gorm.DB
	Clock       shared.Clock
	HTTPMetrics *metrics.HTTPMetricsCollector

	closers []io.Closer
}

// Close releases the database connection and log file
func (r *Runtime) Close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RuntimeFactory builds a Runtime from loaded configuration
type RuntimeFactory func(ctx context.Context, cfg *config.Config) (*Runtime, error)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// PolicyFromConfig converts the regulation and pooling sections into handler policy
func PolicyFromConfig(cfg *config.Config) (setup.Policy, error) {
	regulation, err := cfg.Regulation.ToRegulation()
	if err != nil {
		return setup.Policy{}, fmt.Errorf("invalid regulation config: %w", err)
	}
	fuels, err := cfg.Regulation.ToFactorTable()
	if err != nil {
		return setup.Policy{}, err
	}
	strategy, err := cfg.Pooling.ToStrategy()
	if err != nil {
		return setup.Policy{}, err
	}

	policy := setup.DefaultPolicy()
	policy.Regulation = regulation
	policy.Fuels = fuels
	policy.PoolStrategy = strategy
	policy.PoolMinMembers = cfg.Pooling.MinMembers
	return policy, nil
}

// Bootstrap connects to the database and registers every handler with a new mediator
func Bootstrap(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	logger, logCloser, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	rt := &Runtime{Config: cfg, Logger: logger, Clock: shared.NewRealClock(), closers: []io.Closer{logCloser}}

	policy, err := PolicyFromConfig(cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Policy = policy

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	rt.DB = db
	rt.closers = append(rt.closers, closerFunc(func() error { return database.Close(db) }))

	m := mediator.NewMediator()
	m.RegisterMiddleware(appLogging.LoggingMiddleware(logger))

	if cfg.Metrics.Enabled {
		if err := initMetrics(m, rt); err != nil {
			_ = rt.Close()
			return nil, err
		}
	}

	repos := setup.Repositories{
		Compliance: persistence.NewGormComplianceRepository(db),
		Banking:    persistence.NewGormBankingRepository(db),
		Pooling:    persistence.NewGormPoolingRepository(db),
		Routes:     persistence.NewGormRouteRepository(db),
	}
	registry := setup.NewHandlerRegistry(repos, policy, persistence.NewGormTransactor(db), rt.Clock)
	if err := registry.RegisterAll(m); err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	rt.Mediator = m

	logger.Debug().
		Str("database", cfg.Database.Type).
		Str("pool_strategy", policy.PoolStrategy.String()).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("Runtime initialized")
	return rt, nil
}

func initMetrics(m mediator.Mediator, rt *Runtime) error {
	metrics.InitRegistry()

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}
	m.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))

	complianceCollector := metrics.NewComplianceMetricsCollector()
	if err := complianceCollector.Register(); err != nil {
		return fmt.Errorf("failed to register compliance metrics: %w", err)
	}
	metrics.SetGlobalComplianceCollector(complianceCollector)

	rt.HTTPMetrics = metrics.NewHTTPMetricsCollector()
	if err := rt.HTTPMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register http metrics: %w", err)
	}
	return nil
}

// loadConfig reads configuration from the --config flag location
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// withRuntime builds a runtime for the command, runs fn and closes the runtime
func withRuntime(cmd *cobra.Command, factory RuntimeFactory, fn func(ctx context.Context, rt *Runtime) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := factory(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(rt.Logger.WithContext(ctx), rt)
}

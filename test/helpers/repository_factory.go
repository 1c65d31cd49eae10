package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/application/setup"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB             *gorm.DB
	ComplianceRepo *persistence.GormComplianceRepository
	BankingRepo    *persistence.GormBankingRepository
	PoolingRepo    *persistence.GormPoolingRepository
	RouteRepo      *persistence.GormRouteRepository
	Transactor     *persistence.GormTransactor
}

// NewTestRepositories creates all GORM repositories over db
func NewTestRepositories(db *gorm.DB) *TestRepositories {
	return &TestRepositories{
		DB:             db,
		ComplianceRepo: persistence.NewGormComplianceRepository(db),
		BankingRepo:    persistence.NewGormBankingRepository(db),
		PoolingRepo:    persistence.NewGormPoolingRepository(db),
		RouteRepo:      persistence.NewGormRouteRepository(db),
		Transactor:     persistence.NewGormTransactor(db),
	}
}

// Ports exposes the repositories as the registry's repository set
func (r *TestRepositories) Ports() setup.Repositories {
	return setup.Repositories{
		Compliance: r.ComplianceRepo,
		Banking:    r.BankingRepo,
		Pooling:    r.PoolingRepo,
		Routes:     r.RouteRepo,
	}
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// SeedSummary counts the rows written by Seed
type SeedSummary struct {
	Routes    int
	Snapshots int
	Entries   int
}

type seedRoute struct {
	id, shipID, name, vessel, fuel string
	tons, distance                 float64
	year                           int
	baseline                       bool
}

var demoRoutes = []seedRoute{
	{"R001", "SHIP001", "Atlantic EU Run", "Container", "HFO", 125.5, 12000, 2024, true},
	{"R002", "SHIP002", "Asia-Pacific Lane", "BulkCarrier", "LNG", 120, 11500, 2024, false},
	{"R003", "SHIP003", "Gulf Oil Route", "Tanker", "MGO", 127.5, 12500, 2024, false},
	{"R004", "SHIP004", "Northern EU Run", "RoRo", "HFO", 122.5, 11800, 2025, true},
	{"R005", "SHIP005", "Middle East Trade Route", "Container", "LNG", 123.75, 11900, 2025, false},
}

var demoSnapshots = []struct {
	shipID string
	year   int
	cb     float64
}{
	{"SHIP001", 2024, 100},
	{"SHIP002", 2024, 95},
	{"SHIP003", 2024, -110},
	{"SHIP004", 2025, 102},
	{"SHIP005", 2025, -98},
}

var demoDeposits = []struct {
	shipID string
	year   int
	amount float64
}{
	{"SHIP001", 2024, 50},
	{"SHIP001", 2024, 25},
	{"SHIP002", 2024, 40},
	{"SHIP004", 2025, 55},
}

// Seed replaces all data with a small demo fleet. Baseline routes get their
// baseline intensity from the fuel factors; other routes are left without metrics.
func Seed(ctx context.Context, db *gorm.DB, calc *fuel.MetricsCalculator, now time.Time) (SeedSummary, error) {
	var summary SeedSummary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&PoolMemberModel{}, &PoolModel{}, &BankEntryModel{}, &ComplianceSnapshotModel{}, &RouteModel{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		txCtx := context.WithValue(ctx, txKey{}, tx)
		routes := NewGormRouteRepository(tx)
		snapshots := NewGormComplianceRepository(tx)
		bank := NewGormBankingRepository(tx)

		for _, s := range demoRoutes {
			rt, err := route.NewRoute(s.id, s.shipID, s.name, s.vessel, s.fuel, s.tons, s.distance, s.year)
			if err != nil {
				return err
			}
			if s.baseline {
				metrics, err := rt.ComputeMetrics(calc)
				if err != nil {
					return err
				}
				rt.SetBaseline(metrics.IntensityGPerMJ)
			}
			if err := routes.Save(txCtx, rt); err != nil {
				return err
			}
			summary.Routes++
		}

		for _, s := range demoSnapshots {
			sy, err := shared.NewShipYear(s.shipID, s.year)
			if err != nil {
				return err
			}
			if err := snapshots.SaveSnapshot(txCtx, compliance.NewSnapshot(sy, s.cb, now)); err != nil {
				return err
			}
			summary.Snapshots++
		}

		for i, d := range demoDeposits {
			sy, err := shared.NewShipYear(d.shipID, d.year)
			if err != nil {
				return err
			}
			entry := banking.ReconstructEntry(uuid.New(), sy, d.amount, false, nil, nil, now.Add(time.Duration(i)*time.Second))
			if err := bank.AddEntry(txCtx, entry); err != nil {
				return err
			}
			summary.Entries++
		}
		return nil
	})
	return summary, err
}

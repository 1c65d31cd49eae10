package persistence

import (
	"time"
)

// ComplianceSnapshotModel represents the ship_compliance table.
// One row per ship-year; recomputation overwrites it.
type ComplianceSnapshotModel struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	ShipID     string    `gorm:"column:ship_id;not null;uniqueIndex:idx_compliance_ship_year"`
	Year       int       `gorm:"column:year;not null;uniqueIndex:idx_compliance_ship_year"`
	CBGCO2eq   float64   `gorm:"column:cb_gco2eq;not null"`
	ComputedAt time.Time `gorm:"column:computed_at;not null"`
}

func (ComplianceSnapshotModel) TableName() string {
	return "ship_compliance"
}

// BankEntryModel represents the bank_entries table.
// Seq preserves insertion order for entries sharing a created_at.
type BankEntryModel struct {
	Seq       uint       `gorm:"column:seq;primaryKey;autoIncrement"`
	EntryID   string     `gorm:"column:entry_id;type:varchar(36);uniqueIndex;not null"`
	ShipID    string     `gorm:"column:ship_id;not null;index:idx_bank_ship_year"`
	Year      int        `gorm:"column:year;not null;index:idx_bank_ship_year"`
	Amount    float64    `gorm:"column:amount_gco2eq;not null"`
	Applied   bool       `gorm:"column:applied;not null;default:false"`
	AppliedAt *time.Time `gorm:"column:applied_at"`
	SourceID  *string    `gorm:"column:source_entry_id;type:varchar(36)"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
}

func (BankEntryModel) TableName() string {
	return "bank_entries"
}

// PoolModel represents the pools table
type PoolModel struct {
	ID        string            `gorm:"column:id;type:varchar(36);primaryKey"`
	Year      int               `gorm:"column:year;not null;index"`
	PooledCB  float64           `gorm:"column:pooled_cb;not null"`
	Strategy  string            `gorm:"column:strategy;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;not null"`
	Members   []PoolMemberModel `gorm:"foreignKey:PoolID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (PoolModel) TableName() string {
	return "pools"
}

// PoolMemberModel represents the pool_members table.
// The unique ship-year index enforces one pool per ship per year.
type PoolMemberModel struct {
	ID         int     `gorm:"column:id;primaryKey;autoIncrement"`
	PoolID     string  `gorm:"column:pool_id;type:varchar(36);not null;index"`
	ShipID     string  `gorm:"column:ship_id;not null;uniqueIndex:idx_pool_member_ship_year"`
	Year       int     `gorm:"column:year;not null;uniqueIndex:idx_pool_member_ship_year"`
	AdjustedCB float64 `gorm:"column:adjusted_cb;not null"`
	CBAfter    float64 `gorm:"column:cb_after;not null"`
	Position   int     `gorm:"column:position;not null;default:0"`
}

func (PoolMemberModel) TableName() string {
	return "pool_members"
}

// RouteModel represents the routes table. Metric columns stay NULL until computed.
type RouteModel struct {
	ID                string   `gorm:"column:route_id;primaryKey"`
	ShipID            string   `gorm:"column:ship_id;not null;index"`
	Name              string   `gorm:"column:name"`
	VesselType        string   `gorm:"column:vessel_type"`
	FuelType          string   `gorm:"column:fuel_type"`
	FuelTons          float64  `gorm:"column:fuel_consumption_t;not null;default:0"`
	DistanceNM        float64  `gorm:"column:distance_nm;not null;default:0"`
	Year              int      `gorm:"column:year;not null;index"`
	EnergyMJ          *float64 `gorm:"column:energy_mj"`
	EmissionsGCO2eq   *float64 `gorm:"column:emissions_gco2eq"`
	IntensityGPerMJ   *float64 `gorm:"column:ghg_intensity"`
	BaselineIntensity *float64 `gorm:"column:baseline_intensity"`
}

func (RouteModel) TableName() string {
	return "routes"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&ComplianceSnapshotModel{},
		&BankEntryModel{},
		&PoolModel{},
		&PoolMemberModel{},
		&RouteModel{},
	}
}

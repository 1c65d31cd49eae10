package httpapi

import (
	"time"

	bankingCommands "github.com/andrescamacho/fueleu-go/internal/application/banking/commands"
	"github.com/andrescamacho/fueleu-go/internal/domain/banking"
	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
)

type routeJSON struct {
	RouteID    string   `json:"routeId"`
	ShipID     string   `json:"shipId"`
	RouteName  string   `json:"routeName"`
	VesselType string   `json:"vesselType"`
	FuelType   string   `json:"fuelType"`
	FuelTons   float64  `json:"fuelTons"`
	DistanceNM float64  `json:"distanceNm"`
	Year       int      `json:"year"`
	Emissions  float64  `json:"emissions"`
	Energy     float64  `json:"energy"`
	Intensity  float64  `json:"intensity"`
	Baseline   *float64 `json:"baseline"`
}

func toRouteJSON(r *route.Route) routeJSON {
	out := routeJSON{
		RouteID:    r.ID(),
		ShipID:     r.ShipID(),
		RouteName:  r.Name(),
		VesselType: r.VesselType(),
		FuelType:   r.FuelType(),
		FuelTons:   r.FuelTons(),
		DistanceNM: r.DistanceNM(),
		Year:       r.Year(),
		Baseline:   r.BaselineIntensity(),
	}
	if m := r.Metrics(); m != nil {
		out.Emissions = m.EmissionsGCO2eq
		out.Energy = m.EnergyMJ
		out.Intensity = m.IntensityGPerMJ
	}
	return out
}

type comparisonJSON struct {
	RouteID           string   `json:"routeId"`
	RouteName         string   `json:"routeName"`
	VesselType        string   `json:"vesselType"`
	FuelType          string   `json:"fuelType"`
	FuelTons          float64  `json:"fuelTons"`
	Emissions         float64  `json:"emissions"`
	Energy            float64  `json:"energy"`
	ActualIntensity   float64  `json:"actualIntensity"`
	BaselineIntensity float64  `json:"baselineIntensity"`
	PercentChange     *float64 `json:"percentChange"`
	Status            string   `json:"status"`
}

type chartJSON struct {
	Labels   []string  `json:"labels"`
	Actual   []float64 `json:"actual"`
	Baseline []float64 `json:"baseline"`
}

type compareJSON struct {
	ShipID string           `json:"shipId"`
	Year   int              `json:"year"`
	Routes []comparisonJSON `json:"routes"`
	Chart  chartJSON        `json:"chart"`
}

func toCompareJSON(shipID string, year int, comparisons []route.Comparison, chart route.Chart) compareJSON {
	out := compareJSON{
		ShipID: shipID,
		Year:   year,
		Routes: make([]comparisonJSON, len(comparisons)),
		Chart:  chartJSON{Labels: chart.Labels, Actual: chart.Actual, Baseline: chart.Baseline},
	}
	for i, c := range comparisons {
		out.Routes[i] = comparisonJSON{
			RouteID:           c.RouteID,
			RouteName:         c.RouteName,
			VesselType:        c.VesselType,
			FuelType:          c.FuelType,
			FuelTons:          c.FuelTons,
			Emissions:         c.EmissionsGCO2eq,
			Energy:            c.EnergyMJ,
			ActualIntensity:   c.ActualIntensity,
			BaselineIntensity: c.BaselineIntensity,
			PercentChange:     c.PercentChange,
			Status:            string(c.Status),
		}
	}
	return out
}

type yearComparisonJSON struct {
	Year          int     `json:"year"`
	RouteID       string  `json:"routeId"`
	VesselType    string  `json:"vesselType"`
	FuelType      string  `json:"fuelType"`
	BaselineGHG   float64 `json:"baselineGhg"`
	ComparisonGHG float64 `json:"comparisonGhg"`
	PercentDiff   float64 `json:"percentDiff"`
	Compliant     bool    `json:"compliant"`
}

type computeCBRequest struct {
	ShipID          string  `json:"shipId"`
	ActualIntensity float64 `json:"actualIntensity"`
	FuelTons        float64 `json:"fuelConsumption"`
	Year            int     `json:"year"`
}

type complianceResultJSON struct {
	ShipID          string  `json:"shipId"`
	Year            int     `json:"year"`
	ActualIntensity float64 `json:"actualIntensity"`
	TargetIntensity float64 `json:"targetIntensity"`
	EnergyScopeMJ   float64 `json:"energyScopeMJ"`
	DeltaFromTarget float64 `json:"deltaFromTarget"`
	CB              float64 `json:"cb"`
	Compliant       bool    `json:"compliant"`
}

func toComplianceResultJSON(r compliance.Result) complianceResultJSON {
	return complianceResultJSON{
		ShipID:          r.ShipID,
		Year:            r.Year,
		ActualIntensity: r.ActualIntensity,
		TargetIntensity: r.TargetIntensity,
		EnergyScopeMJ:   r.EnergyScopeMJ,
		DeltaFromTarget: r.DeltaFromTarget,
		CB:              r.CB,
		Compliant:       r.Compliant,
	}
}

type adjustedCBJSON struct {
	ShipID        string   `json:"shipId"`
	Year          int      `json:"year"`
	Found         bool     `json:"found"`
	Message       string   `json:"message,omitempty"`
	OriginalCB    float64  `json:"originalCB"`
	BankedApplied float64  `json:"bankedApplied"`
	AdjustedCB    float64  `json:"adjustedCB"`
	InPool        bool     `json:"inPool"`
	PoolID        string   `json:"poolId,omitempty"`
	PoolCBAfter   *float64 `json:"poolCbAfter,omitempty"`
	Deficit       float64  `json:"deficit"`
	Compliant     bool     `json:"compliant"`
}

func toAdjustedCBJSON(a compliance.AdjustedCB) adjustedCBJSON {
	return adjustedCBJSON{
		ShipID:        a.ShipID,
		Year:          a.Year,
		Found:         a.Found,
		Message:       a.Message,
		OriginalCB:    a.OriginalCB,
		BankedApplied: a.BankedApplied,
		AdjustedCB:    a.AdjustedCB,
		InPool:        a.InPool,
		PoolID:        a.PoolID,
		PoolCBAfter:   a.PoolCBAfter,
		Deficit:       a.Deficit,
		Compliant:     a.Compliant,
	}
}

type snapshotJSON struct {
	ShipID     string    `json:"shipId"`
	Year       int       `json:"year"`
	CB         float64   `json:"cb"`
	ComputedAt time.Time `json:"computedAt"`
}

type bankRequest struct {
	ShipID string   `json:"shipId"`
	Year   int      `json:"year"`
	Amount *float64 `json:"amount,omitempty"`
}

type bankResponseJSON struct {
	ShipID    string  `json:"shipId"`
	Year      int     `json:"year"`
	EntryID   string  `json:"entryId"`
	CBBefore  float64 `json:"cbBefore"`
	Banked    float64 `json:"banked"`
	Bankable  float64 `json:"bankable"`
	Available float64 `json:"available"`
}

func toBankResponseJSON(r *bankingCommands.BankSurplusResponse) bankResponseJSON {
	return bankResponseJSON{
		ShipID:    r.ShipID,
		Year:      r.Year,
		EntryID:   r.EntryID,
		CBBefore:  r.CBBefore,
		Banked:    r.Banked,
		Bankable:  r.Bankable,
		Available: r.Available,
	}
}

type applyResponseJSON struct {
	ShipID    string  `json:"shipId"`
	Year      int     `json:"year"`
	Applied   float64 `json:"applied"`
	CBBefore  float64 `json:"cbBefore"`
	CBAfter   float64 `json:"cbAfter"`
	Available float64 `json:"available"`
}

type bankEntryJSON struct {
	ID        string     `json:"id"`
	Amount    float64    `json:"amount"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
	SourceID  *string    `json:"sourceId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type bankRecordsJSON struct {
	ShipID    string          `json:"shipId"`
	Year      int             `json:"year"`
	CBBefore  float64         `json:"cbBefore"`
	Available float64         `json:"available"`
	Applied   float64         `json:"applied"`
	Entries   []bankEntryJSON `json:"entries"`
}

func toBankEntryJSON(e *banking.Entry) bankEntryJSON {
	out := bankEntryJSON{
		ID:        e.ID().String(),
		Amount:    e.Amount(),
		Applied:   e.Applied(),
		AppliedAt: e.AppliedAt(),
		CreatedAt: e.CreatedAt(),
	}
	if src := e.SourceID(); src != nil {
		s := src.String()
		out.SourceID = &s
	}
	return out
}

type poolMemberRequest struct {
	ShipID   string  `json:"shipId"`
	CBBefore float64 `json:"cbBefore"`
}

type createPoolRequest struct {
	ShipIDs  []string            `json:"shipIds"`
	Year     int                 `json:"year"`
	Strategy string              `json:"strategy,omitempty"`
	Members  []poolMemberRequest `json:"members,omitempty"`
}

type poolShipJSON struct {
	ShipID     string  `json:"shipId"`
	AdjustedCB float64 `json:"adjustedCB"`
	CBAfter    float64 `json:"cbAfter"`
}

type poolJSON struct {
	PoolID   string         `json:"poolId"`
	Year     int            `json:"year"`
	PooledCB float64        `json:"pooledCB"`
	Strategy string         `json:"strategy"`
	Ships    []poolShipJSON `json:"ships"`
}

func toPoolMembersJSON(pool *pooling.Pool, members []pooling.Member) poolJSON {
	out := poolJSON{
		PoolID:   pool.ID().String(),
		Year:     pool.Year(),
		PooledCB: pool.PooledCB(),
		Strategy: pool.Strategy().String(),
		Ships:    make([]poolShipJSON, len(members)),
	}
	for i, m := range members {
		out.Ships[i] = poolShipJSON{ShipID: m.ShipID(), AdjustedCB: m.AdjustedCB(), CBAfter: m.CBAfter()}
	}
	return out
}

type membershipJSON struct {
	PoolID     string  `json:"poolId"`
	ShipID     string  `json:"shipId"`
	Year       int     `json:"year"`
	PooledCB   float64 `json:"pooledCB"`
	AdjustedCB float64 `json:"adjustedCB"`
	CBAfter    float64 `json:"cbAfter"`
	Strategy   string  `json:"strategy"`
}

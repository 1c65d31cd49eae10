package route

import (
	"sort"

	"github.com/andrescamacho/fueleu-go/pkg/utils"
)

// DefaultBaselineIntensity is used for routes without a recorded baseline
const DefaultBaselineIntensity = 89.3368

// Status is a route's intensity relative to its baseline
type Status string

const (
	StatusBetter  Status = "BETTER"
	StatusWorse   Status = "WORSE"
	StatusUnknown Status = "UNKNOWN"
)

// Comparison is one route measured against its baseline
type Comparison struct {
	RouteID           string
	RouteName         string
	VesselType        string
	FuelType          string
	FuelTons          float64
	EmissionsGCO2eq   float64
	EnergyMJ          float64
	ActualIntensity   float64
	BaselineIntensity float64
	PercentChange     *float64
	Status            Status
}

// Chart holds parallel series for plotting actual against baseline intensity
type Chart struct {
	Labels   []string
	Actual   []float64
	Baseline []float64
}

// Compare measures each route with metrics against its own baseline, falling back
// to defaultBaseline. Routes without metrics are skipped.
func Compare(routes []*Route, defaultBaseline float64) ([]Comparison, Chart) {
	comparisons := make([]Comparison, 0, len(routes))
	chart := Chart{Labels: []string{}, Actual: []float64{}, Baseline: []float64{}}

	for _, r := range routes {
		if r.metrics == nil {
			continue
		}

		actual := r.metrics.IntensityGPerMJ
		baseline := defaultBaseline
		if r.baselineIntensity != nil {
			baseline = *r.baselineIntensity
		}

		c := Comparison{
			RouteID:           r.id,
			RouteName:         r.DisplayName(),
			VesselType:        orUnknown(r.vesselType),
			FuelType:          orUnknown(r.fuelType),
			FuelTons:          r.fuelTons,
			EmissionsGCO2eq:   r.metrics.EmissionsGCO2eq,
			EnergyMJ:          r.metrics.EnergyMJ,
			ActualIntensity:   utils.Round4(actual),
			BaselineIntensity: utils.Round4(baseline),
			Status:            StatusUnknown,
		}
		if baseline > 0 {
			change := utils.Round2((actual - baseline) / baseline * 100)
			c.PercentChange = &change
			if actual <= baseline {
				c.Status = StatusBetter
			} else {
				c.Status = StatusWorse
			}
		}

		comparisons = append(comparisons, c)
		chart.Labels = append(chart.Labels, r.DisplayName())
		chart.Actual = append(chart.Actual, c.ActualIntensity)
		chart.Baseline = append(chart.Baseline, c.BaselineIntensity)
	}

	return comparisons, chart
}

// YearComparison compares a route with the baseline route of its year
type YearComparison struct {
	Year          int
	RouteID       string
	VesselType    string
	FuelType      string
	BaselineGHG   float64
	ComparisonGHG float64
	PercentDiff   float64
	Compliant     bool
}

// CompareByYear groups routes by year, takes the first route with a baseline as the
// year's reference and compares every other route of that year against it.
// Years are returned in ascending order; skipped lists years without a baseline.
func CompareByYear(routes []*Route, target float64) (results []YearComparison, skipped []int) {
	byYear := make(map[int][]*Route)
	var years []int
	for _, r := range routes {
		if _, ok := byYear[r.year]; !ok {
			years = append(years, r.year)
		}
		byYear[r.year] = append(byYear[r.year], r)
	}
	sort.Ints(years)

	results = []YearComparison{}
	for _, year := range years {
		list := byYear[year]

		var reference *Route
		for _, r := range list {
			if r.baselineIntensity != nil {
				reference = r
				break
			}
		}
		if reference == nil {
			skipped = append(skipped, year)
			continue
		}

		base := *reference.baselineIntensity
		for _, r := range list {
			if r.id == reference.id {
				continue
			}
			var current float64
			if r.metrics != nil {
				current = r.metrics.IntensityGPerMJ
			}
			var diff float64
			if base > 0 {
				diff = utils.Round2((current/base - 1) * 100)
			}
			results = append(results, YearComparison{
				Year:          year,
				RouteID:       r.id,
				VesselType:    r.vesselType,
				FuelType:      r.fuelType,
				BaselineGHG:   base,
				ComparisonGHG: current,
				PercentDiff:   diff,
				Compliant:     current <= target,
			})
		}
	}
	return results, skipped
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ComplianceMetricsCollector handles compliance, banking and pooling metrics
type ComplianceMetricsCollector struct {
	// Compliance balance metrics
	cbComputedTotal *prometheus.CounterVec
	cbValue         *prometheus.HistogramVec

	// Banking metrics
	bankedTotal  *prometheus.CounterVec
	appliedTotal *prometheus.CounterVec

	// Pooling metrics
	poolsCreatedTotal *prometheus.CounterVec
	poolMembers       *prometheus.HistogramVec
	pooledCB          *prometheus.GaugeVec
}

// NewComplianceMetricsCollector creates a new compliance metrics collector
func NewComplianceMetricsCollector() *ComplianceMetricsCollector {
	return &ComplianceMetricsCollector{
		cbComputedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cb_computed_total",
				Help:      "Total compliance balance computations by year and outcome",
			},
			[]string{"year", "compliant"},
		),

		// CB spans deficits of tens of millions to similar surpluses
		cbValue: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cb_gco2eq",
				Help:      "Distribution of computed compliance balances (gCO2eq)",
				Buckets:   []float64{-1e8, -1e7, -1e6, -1e5, 0, 1e5, 1e6, 1e7, 1e8},
			},
			[]string{"year"},
		),

		bankedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "banked_gco2eq_total",
				Help:      "Total surplus banked (gCO2eq)",
			},
			[]string{"year"},
		),

		appliedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bank_applied_gco2eq_total",
				Help:      "Total banked surplus applied against deficits (gCO2eq)",
			},
			[]string{"year"},
		),

		poolsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pools_created_total",
				Help:      "Total pools created by allocation strategy",
			},
			[]string{"year", "strategy"},
		),

		poolMembers: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pool_members",
				Help:      "Number of ships per created pool",
				Buckets:   []float64{2, 3, 5, 10, 20, 50},
			},
			[]string{"strategy"},
		),

		pooledCB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_pooled_cb_gco2eq",
				Help:      "Pooled compliance balance of the most recently created pool",
			},
			[]string{"year", "strategy"},
		),
	}
}

// Register registers all compliance metrics with the Prometheus registry
func (c *ComplianceMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.cbComputedTotal,
		c.cbValue,
		c.bankedTotal,
		c.appliedTotal,
		c.poolsCreatedTotal,
		c.poolMembers,
		c.pooledCB,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCBComputed records a compliance balance computation
func (c *ComplianceMetricsCollector) RecordCBComputed(year int, cb float64, compliant bool) {
	y := strconv.Itoa(year)
	c.cbComputedTotal.WithLabelValues(y, strconv.FormatBool(compliant)).Inc()
	c.cbValue.WithLabelValues(y).Observe(cb)
}

// RecordSurplusBanked records a deposit
func (c *ComplianceMetricsCollector) RecordSurplusBanked(year int, amount float64) {
	c.bankedTotal.WithLabelValues(strconv.Itoa(year)).Add(amount)
}

// RecordBankApplied records an application of banked surplus
func (c *ComplianceMetricsCollector) RecordBankApplied(year int, amount float64) {
	c.appliedTotal.WithLabelValues(strconv.Itoa(year)).Add(amount)
}

// RecordPoolCreated records a pool formation
func (c *ComplianceMetricsCollector) RecordPoolCreated(year int, strategy string, members int, pooledCB float64) {
	y := strconv.Itoa(year)
	c.poolsCreatedTotal.WithLabelValues(y, strategy).Inc()
	c.poolMembers.WithLabelValues(strategy).Observe(float64(members))
	c.pooledCB.WithLabelValues(y, strategy).Set(pooledCB)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector tracks mediator requests: duration and count by
// request type and outcome, plus the number currently executing
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	inFlight *prometheus.GaugeVec
}

// NewCommandMetricsCollector creates an unregistered collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	labels := []string{"command", "outcome"}
	return &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "command_duration_seconds",
			Help:      "Duration of commands and queries by type and outcome",
			// Ledger reads and writes are single-row; pool formation reads every member
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, labels),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_total",
			Help:      "Commands and queries handled by type and outcome",
		}, labels),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_in_flight",
			Help:      "Commands and queries currently executing by type",
		}, []string{"command"}),
	}
}

// Register adds the collector's metrics to Registry. It is a no-op while metrics are disabled.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range []prometheus.Collector{c.duration, c.total, c.inFlight} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Start marks a request as executing and returns the function that records its outcome
func (c *CommandMetricsCollector) Start(command string) func(outcome string) {
	start := time.Now()
	gauge := c.inFlight.WithLabelValues(command)
	gauge.Inc()
	return func(outcome string) {
		gauge.Dec()
		c.RecordCommandExecution(command, time.Since(start).Seconds(), outcome)
	}
}

// RecordCommandExecution records one finished request
func (c *CommandMetricsCollector) RecordCommandExecution(command string, seconds float64, outcome string) {
	c.duration.WithLabelValues(command, outcome).Observe(seconds)
	c.total.WithLabelValues(command, outcome).Inc()
}

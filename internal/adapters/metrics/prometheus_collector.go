package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "fueleu"
	// Subsystem for compliance engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalComplianceCollector is the singleton compliance metrics collector
	// Set by SetGlobalComplianceCollector() when metrics are enabled
	globalComplianceCollector ComplianceMetricsRecorder
)

// ComplianceMetricsRecorder defines the interface application handlers use to record domain events
type ComplianceMetricsRecorder interface {
	RecordCBComputed(year int, cb float64, compliant bool)
	RecordSurplusBanked(year int, amount float64)
	RecordBankApplied(year int, amount float64)
	RecordPoolCreated(year int, strategy string, members int, pooledCB float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalComplianceCollector sets the global compliance collector
func SetGlobalComplianceCollector(collector ComplianceMetricsRecorder) {
	globalComplianceCollector = collector
}

// RecordCBComputed records a compliance balance computation globally
func RecordCBComputed(year int, cb float64, compliant bool) {
	if globalComplianceCollector != nil {
		globalComplianceCollector.RecordCBComputed(year, cb, compliant)
	}
}

// RecordSurplusBanked records a bank deposit globally
func RecordSurplusBanked(year int, amount float64) {
	if globalComplianceCollector != nil {
		globalComplianceCollector.RecordSurplusBanked(year, amount)
	}
}

// RecordBankApplied records an application of banked surplus globally
func RecordBankApplied(year int, amount float64) {
	if globalComplianceCollector != nil {
		globalComplianceCollector.RecordBankApplied(year, amount)
	}
}

// RecordPoolCreated records a pool formation globally
func RecordPoolCreated(year int, strategy string, members int, pooledCB float64) {
	if globalComplianceCollector != nil {
		globalComplianceCollector.RecordPoolCreated(year, strategy, members, pooledCB)
	}
}

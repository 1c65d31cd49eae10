package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

type applyBankCommand struct{}

// gathered returns the value of the sample of a family whose labels match
func gathered(t *testing.T, family string, labels map[string]string) float64 {
	t.Helper()
	families, err := Registry.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != family {
			continue
		}
		for _, m := range f.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] == lp.GetValue() {
					matched++
				}
			}
			if matched != len(labels) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("metric %s %v not found", family, labels)
	return 0
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "applyBankCommand", extractCommandName(&applyBankCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestClassifyOutcome(t *testing.T) {
	assert.Equal(t, "success", classifyOutcome(nil))
	assert.Equal(t, "validation", classifyOutcome(shared.NewValidationError("year", "bad")))
	assert.Equal(t, "domain", classifyOutcome(shared.NewDomainError("insufficient banked amount")))
	assert.Equal(t, "not_found", classifyOutcome(shared.NewNotFoundError("route", "R1")))
	assert.Equal(t, "consistency", classifyOutcome(shared.NewConsistencyError("x", nil)))
	assert.Equal(t, "error", classifyOutcome(errors.New("db down")))
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	// Arrange
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := PrometheusMiddleware(collector)

	var inFlight float64
	failing := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		inFlight = gathered(t, "fueleu_engine_commands_in_flight", map[string]string{"command": "applyBankCommand"})
		return nil, shared.NewDomainError("insufficient banked amount")
	}

	// Act
	_, err := mw(context.Background(), &applyBankCommand{}, failing)

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1.0, gathered(t, "fueleu_engine_commands_total", map[string]string{"command": "applyBankCommand", "outcome": "domain"}))
	assert.Equal(t, 1.0, inFlight)
	assert.Equal(t, 0.0, gathered(t, "fueleu_engine_commands_in_flight", map[string]string{"command": "applyBankCommand"}))
}

func TestComplianceMetricsCollector_GlobalRecorders(t *testing.T) {
	InitRegistry()
	t.Cleanup(func() {
		Registry = nil
		SetGlobalComplianceCollector(nil)
	})
	collector := NewComplianceMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalComplianceCollector(collector)

	RecordCBComputed(2024, 38_280_880, true)
	RecordSurplusBanked(2024, 100)
	RecordSurplusBanked(2024, 50)
	RecordBankApplied(2024, 30)
	RecordPoolCreated(2024, "greedy", 3, 30)

	assert.Equal(t, 1.0, gathered(t, "fueleu_engine_cb_computed_total", map[string]string{"year": "2024", "compliant": "true"}))
	assert.Equal(t, 150.0, gathered(t, "fueleu_engine_banked_gco2eq_total", map[string]string{"year": "2024"}))
	assert.Equal(t, 30.0, gathered(t, "fueleu_engine_bank_applied_gco2eq_total", map[string]string{"year": "2024"}))
	assert.Equal(t, 1.0, gathered(t, "fueleu_engine_pools_created_total", map[string]string{"year": "2024", "strategy": "greedy"}))
	assert.Equal(t, 30.0, gathered(t, "fueleu_engine_last_pooled_cb_gco2eq", map[string]string{"year": "2024", "strategy": "greedy"}))
}

func TestGlobalRecorders_NoCollectorIsNoop(t *testing.T) {
	SetGlobalComplianceCollector(nil)

	assert.NotPanics(t, func() {
		RecordCBComputed(2024, -1, false)
		RecordPoolCreated(2024, "aggregate", 2, 150)
	})
	assert.False(t, IsEnabled())
}

func TestHTTPMetricsCollector_RecordsRequests(t *testing.T) {
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
	collector := NewHTTPMetricsCollector()
	require.NoError(t, collector.Register())

	collector.RecordRequest("POST", "/banking/apply", 422, 0.01)
	collector.RecordRequest("POST", "/banking/apply", 422, 0.02)
	collector.RecordRateLimited("/banking/apply")

	assert.Equal(t, 2.0, gathered(t, "fueleu_http_requests_total",
		map[string]string{"method": "POST", "route": "/banking/apply", "status_code": "422"}))
	assert.Equal(t, 1.0, gathered(t, "fueleu_http_rate_limited_total", map[string]string{"route": "/banking/apply"}))
}

package metrics

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// PrometheusMiddleware records duration and outcome of every command and query.
// Business rejections and infrastructure failures get distinct outcome labels.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		done := collector.Start(extractCommandName(request))
		response, err := next(ctx, request)
		done(classifyOutcome(err))

		return response, err
	}
}

// classifyOutcome maps an error onto a low-cardinality status label
func classifyOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case shared.IsValidation(err):
		return "validation"
	case shared.IsNotFound(err):
		return "not_found"
	case shared.IsDomain(err):
		return "domain"
	case shared.IsConsistency(err):
		return "consistency"
	default:
		return "error"
	}
}

// extractCommandName strips pointer and package prefixes from the request type:
// "*commands.ApplyBankCommand" becomes "ApplyBankCommand"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}

package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// LoggingMiddleware logs every command and query with its duration and outcome.
// The base logger is attached to the context so handlers can log through zerolog.Ctx.
func LoggingMiddleware(base zerolog.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		name := requestName(request)
		logger := base.With().Str("request", name).Logger()
		if existing := zerolog.Ctx(ctx); existing.GetLevel() != zerolog.Disabled {
			logger = existing.With().Str("request", name).Logger()
		}
		ctx = logger.WithContext(ctx)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			logger.Debug().Dur("duration", elapsed).Msg("request handled")
		case shared.IsValidation(err), shared.IsDomain(err), shared.IsNotFound(err):
			logger.Info().Dur("duration", elapsed).Str("rejection", err.Error()).Msg("request rejected")
		default:
			logger.Error().Dur("duration", elapsed).Err(err).Msg("request failed")
		}
		return response, err
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "unknown"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// Package middleware provides interceptors for generated API proxies.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/apiproxy"
)

// LoggingInterceptor creates an interceptor that logs proxy calls using slog.
// It logs the start and end of each call, including status and duration.
// Non-2xx responses are logged as failures even though the interceptor
// returns them unchanged; decoding happens after the chain.
func LoggingInterceptor(logger *slog.Logger) apiproxy.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, plan apiproxy.RequestPlan, next apiproxy.Invoker) (apiproxy.Outcome, error) {
		start := time.Now()

		logger.InfoContext(ctx, "request started",
			slog.String("method", plan.Method),
			slog.String("verb", plan.Verb.String()),
			slog.String("uri", plan.URI),
		)

		out, err := next(ctx, plan)
		duration := time.Since(start)

		switch {
		case err != nil:
			logger.ErrorContext(ctx, "request failed",
				slog.String("method", plan.Method),
				slog.String("uri", plan.URI),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		case !out.Success():
			logger.ErrorContext(ctx, "request failed",
				slog.String("method", plan.Method),
				slog.String("uri", plan.URI),
				slog.Int("status", out.Status),
				slog.Duration("duration", duration),
			)
		default:
			logger.InfoContext(ctx, "request completed",
				slog.String("method", plan.Method),
				slog.String("uri", plan.URI),
				slog.Int("status", out.Status),
				slog.Int("bytes", len(out.Body)),
				slog.Duration("duration", duration),
			)
		}

		return out, err
	}
}

package logging

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// Middleware makes a logger available to handlers and logs each request.
// A logger already in the context (the HTTP request logger) takes precedence
// over the fallback.
func Middleware(fallback *slog.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger, ok := ctx.Value(loggerKey).(*slog.Logger)
		if !ok || logger == nil {
			logger = fallback
			if logger == nil {
				logger = discard
			}
			ctx = WithLogger(ctx, logger)
		}

		name := requestName(request)
		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			logger.Debug("request handled", "request", name, "duration", elapsed)
		case shared.IsDomainError(err):
			logger.Info("request rejected", "request", name, "code", shared.CodeOf(err), "duration", elapsed)
		default:
			logger.Error("request failed", "request", name, "error", err, "duration", elapsed)
		}
		return response, err
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "unknown"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

type probeCommand struct{}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestMiddleware_InjectsFallbackLogger(t *testing.T) {
	logger, buf := bufferLogger()
	mw := logging.Middleware(logger)

	var seen *slog.Logger
	_, err := mw(context.Background(), &probeCommand{}, func(ctx context.Context, _ mediator.Request) (mediator.Response, error) {
		seen = logging.LoggerFromContext(ctx)
		return nil, nil
	})

	require.NoError(t, err)
	assert.Same(t, logger, seen)
	assert.Contains(t, buf.String(), "request=probeCommand")
}

func TestMiddleware_KeepsRequestLogger(t *testing.T) {
	fallback, fallbackBuf := bufferLogger()
	requestLogger, requestBuf := bufferLogger()
	ctx := logging.WithLogger(context.Background(), requestLogger)

	_, _ = logging.Middleware(fallback)(ctx, &probeCommand{}, func(ctx context.Context, _ mediator.Request) (mediator.Response, error) {
		return nil, shared.NewDomainError("POSITION_OCCUPIED", "taken")
	})

	assert.Empty(t, fallbackBuf.String())
	assert.Contains(t, requestBuf.String(), "request rejected")
	assert.Contains(t, requestBuf.String(), "code=POSITION_OCCUPIED")
}

func TestMiddleware_LogsInfrastructureFailures(t *testing.T) {
	logger, buf := bufferLogger()

	_, err := logging.Middleware(logger)(context.Background(), &probeCommand{}, func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, errors.New("connection reset")
	})

	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestLoggerFromContext_DiscardsWithoutLogger(t *testing.T) {
	assert.NotNil(t, logging.LoggerFromContext(context.Background()))
}

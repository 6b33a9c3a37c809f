package tracer

import (
	"context"
	"testing"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(config.OtelConfig{Enabled: false}, logger.NewNopLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerEnabled(t *testing.T) {
	shutdown := InitTracer(config.OtelConfig{Enabled: true, Endpoint: "127.0.0.1:1"}, logger.NewNopLogger())
	assert.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

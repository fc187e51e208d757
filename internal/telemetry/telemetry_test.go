package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/KilimcininKorOglu/treelab/internal/config"
)

func TestDisabledTracingIsNoop(t *testing.T) {
	tp, shutdown, err := NewTracerProvider(context.Background(), config.TracingConfig{})
	require.NoError(t, err)

	_, ok := tp.(noop.TracerProvider)
	assert.True(t, ok, "expected noop provider, got %T", tp)
	assert.NoError(t, shutdown(context.Background()))
}

func TestEnabledTracingUsesSDK(t *testing.T) {
	cfg := config.DefaultConfig().Tracing
	cfg.Enabled = true

	tp, shutdown, err := NewTracerProvider(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := tp.(*sdktrace.TracerProvider)
	assert.True(t, ok, "expected SDK provider, got %T", tp)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}

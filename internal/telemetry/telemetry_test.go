package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupRejectsBadEndpoint(t *testing.T) {
	_, _, err := Setup(context.Background(), Config{Endpoint: "not a url"})
	assert.Error(t, err)
}

func TestSetupWithEndpoint(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), Config{Endpoint: "http://127.0.0.1:4318", ServiceVersion: "test", SampleRatio: 1})
	require.NoError(t, err)
	_, ok := tp.(*sdktrace.TracerProvider)
	assert.True(t, ok)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

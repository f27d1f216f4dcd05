package tracer

import (
	"context"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestInitTracer_WithoutEndpoint(t *testing.T) {
	tp := InitTracer("agrilink-test", config.TracingConfig{}, logger.NewNop())
	require.NotNil(t, tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	carrier := propagation.MapCarrier{}
	ctx, parent := tp.Tracer("test").Start(context.Background(), "parent")
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	parent.End()
	assert.NotEmpty(t, carrier.Get("traceparent"))
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, sampleRatio(0))
	assert.Equal(t, 1.0, sampleRatio(2))
	assert.Equal(t, 0.25, sampleRatio(0.25))
}

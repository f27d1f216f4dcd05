package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const exporterSetupTimeout = 10 * time.Second

// InitTracer installs the global tracer provider and W3C propagators. Spans are exported over
// OTLP/gRPC when cfg.OTLPEndpoint is set; otherwise, or when the exporter cannot be built,
// spans are sampled but dropped. The returned provider is never nil.
func InitTracer(serviceName string, cfg config.TracingConfig, log *logger.Logger) *sdktrace.TracerProvider {
	log = log.Named("Tracer")
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(resource.NewSchemaless(semconv.ServiceName(serviceName))),
	}

	if cfg.OTLPEndpoint == "" {
		log.Info("Span export disabled, tracing.otlp_endpoint is not set")
	} else if exporter, err := newExporter(cfg.OTLPEndpoint); err != nil {
		log.Error("Span export disabled", zap.String("endpoint", cfg.OTLPEndpoint), zap.Error(err))
	} else {
		opts = append(opts, sdktrace.WithBatcher(exporter))
		log.Info("Exporting spans", zap.String("endpoint", cfg.OTLPEndpoint), zap.Float64("sample_ratio", sampleRatio(cfg.SampleRatio)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}

func newExporter(endpoint string) (*otlptracegrpc.Exporter, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("create OTLP gRPC client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), exporterSetupTimeout)
	defer cancel()
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}
	return exporter, nil
}

func sampleRatio(r float64) float64 {
	if r <= 0 || r > 1 {
		return 1
	}
	return r
}

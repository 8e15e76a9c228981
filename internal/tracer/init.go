package tracer

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const (
	serviceName     = "agri-advisory-backend"
	defaultEndpoint = "localhost:4318"
)

var noopShutdown = func(context.Context) error { return nil }

// InitTracer installs the global OTLP/HTTP trace provider and returns
// the shutdown hook. Tracing is off unless OTEL_ENABLED=true; with
// tracing off (or an exporter failure) the hook is a no-op.
func InitTracer() func(context.Context) error {
	if os.Getenv("OTEL_ENABLED") != "true" {
		log.Println("Tracing disabled (set OTEL_ENABLED=true to enable)")
		return noopShutdown
	}

	provider, err := newProvider(context.Background())
	if err != nil {
		log.Printf("Warning: tracing unavailable: %v", err)
		return noopShutdown
	}

	otel.SetTracerProvider(provider)
	return provider.Shutdown
}

func newProvider(ctx context.Context) (*sdktrace.TracerProvider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	// Plain HTTP: the collector (Jaeger accepts OTLP on 4318) runs
	// alongside the service.
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Tracing enabled, exporting to %s", endpoint)
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	), nil
}

package deps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/database-playground/account-eraser/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// SetupOTelSDK bootstraps the OpenTelemetry tracing pipeline.
//
// With the "none" exporter only the propagator is installed and the global
// tracer provider stays a no-op. The OTLP exporters read their endpoint from
// the standard OTEL_EXPORTER_OTLP_* variables.
func SetupOTelSDK(ctx context.Context, cfg config.OTelConfig) (shutdown func(context.Context) error, err error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.Exporter == config.ExporterNone || cfg.Exporter == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := newSpanExporter(ctx, cfg.Exporter)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
	))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create resource: %w", err), exporter.Shutdown(ctx))
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	return tracerProvider.Shutdown, nil
}

func newSpanExporter(ctx context.Context, kind string) (sdktrace.SpanExporter, error) {
	switch kind {
	case config.ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	case config.ExporterOTLPHTTP:
		return otlptracehttp.New(ctx)
	case config.ExporterOTLPGRPC:
		return otlptracegrpc.New(ctx)
	default:
		return nil, fmt.Errorf("unknown otel exporter %q", kind)
	}
}

// OTelSDK sets up tracing and flushes it when the application stops.
func OTelSDK(lifecycle fx.Lifecycle, cfg config.Config) error {
	shutdown, err := SetupOTelSDK(context.Background(), cfg.OTel)
	if err != nil {
		slog.Error("error setting up otel sdk", "error", err)
		return err
	}

	lifecycle.Append(fx.StopHook(shutdown))
	return nil
}

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/config"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "weather-lookup-api"

// Init installs the global tracer provider. With no ZIPKIN_URL configured the
// global no-op provider is left in place. The returned func flushes and
// stops the exporter.
func Init(cfg *config.Config, logger *zap.Logger) (func(context.Context) error, error) {
	if cfg.ZipkinURL == "" {
		logger.Info("tracing disabled: ZIPKIN_URL not set")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := zipkin.New(cfg.ZipkinURL)
	if err != nil {
		return nil, fmt.Errorf("creating zipkin exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			attribute.String("service.name", ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("building trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing enabled", zap.String("zipkin_url", cfg.ZipkinURL))
	return tp.Shutdown, nil
}

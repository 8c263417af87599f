// Package telemetry provides OpenTelemetry instrumentation for Honeycomb.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/officehub/internal/config"
)

const (
	serviceName    = "officehub"
	serviceVersion = "0.1.0"
)

// Setup installs a tracer provider exporting over OTLP/HTTP.
//
// Tracing is opt-in: when cfg.Enabled is false or no endpoint is configured,
// the global no-op provider stays in place. The exporter reads the standard
// OTEL_EXPORTER_OTLP_* variables, so cmd/officehub sets the Honeycomb
// headers before calling Setup.
//
// The returned shutdown flushes pending spans and must be called on exit.
func Setup(ctx context.Context, cfg config.Telemetry) (shutdown func(context.Context) error, err error) {
	noopShutdown := func(context.Context) error { return nil }

	if !cfg.Enabled || cfg.Endpoint == "" {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noopShutdown, fmt.Errorf("create exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return noopShutdown, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource describes this process. It is built from scratch rather than
// merged with resource.Default() to avoid schema URL conflicts.
func newResource(ctx context.Context, cfg config.Telemetry) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("honeycomb.dataset", cfg.HoneycombDataset),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
}

// sampler keeps every trace at ratio >= 1 and none at ratio <= 0. Child
// spans follow their parent's decision.
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("officehub/" + name)
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// Package trace wires OpenTelemetry tracing for papersearch. Spans are
// exported over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is set; otherwise
// a no-op tracer is used and nothing leaves the process.
package trace

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName is used when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "papersearch"

// Provider owns the tracer provider for the process lifetime.
type Provider struct {
	sdk    *sdktrace.TracerProvider // nil when disabled
	tracer oteltrace.Tracer
}

// Setup creates a Provider. Tracing is enabled only when
// OTEL_EXPORTER_OTLP_ENDPOINT is set.
func Setup(ctx context.Context, scope string) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(scope)}, nil
	}

	// A URL endpoint ("http://host:4318") is read from the environment by
	// the exporter, which appends /v1/traces. A bare host:port is passed
	// explicitly and defaults to plain HTTP.
	var opts []otlptracehttp.Option
	if !strings.Contains(endpoint, "://") {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
		if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "false" {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	return newProvider(exporter, scope), nil
}

// newProvider builds an enabled Provider around exporter.
func newProvider(exporter sdktrace.SpanExporter, scope string) *Provider {
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{sdk: tp, tracer: tp.Tracer(scope)}
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Tracer returns the tracer for the scope given to Setup.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil {
		return noop.NewTracerProvider().Tracer(DefaultServiceName)
	}
	return p.tracer
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

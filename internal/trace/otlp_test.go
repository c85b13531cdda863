package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	p, err := Setup(context.Background(), "papersearch/test")
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "noop tracer yields invalid span contexts")
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

// collector counts OTLP/HTTP trace exports.
func collector(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSetup_ExportsToURLEndpoint(t *testing.T) {
	srv, hits := collector(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", srv.URL)

	p, err := Setup(context.Background(), "papersearch/test")
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "search.request")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(1), hits.Load())
}

func TestSetup_ExportsToHostPortEndpoint(t *testing.T) {
	srv, hits := collector(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", strings.TrimPrefix(srv.URL, "http://"))

	p, err := Setup(context.Background(), "papersearch/test")
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "search.request")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(1), hits.Load())
}

func TestProvider_ExportsSpansWithServiceName(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "papersearch-test")
	exporter := tracetest.NewInMemoryExporter()
	p := newProvider(exporter, "papersearch/test")

	_, span := p.Tracer().Start(context.Background(), "search.request")
	span.End()
	require.NoError(t, p.sdk.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "search.request", spans[0].Name)

	var service string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "papersearch-test", service)
}

func TestProvider_NilIsSafe(t *testing.T) {
	var p *Provider
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

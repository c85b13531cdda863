package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Endpoint paths on the backend.
const (
	SearchPath = "/api/search"
	HealthPath = "/api/health"
)

// TracerName is the instrumentation scope used for client spans.
const TracerName = "papersearch/search"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Searcher runs one search against the backend.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Paper, error)
}

// RequestError is returned for any non-2xx response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// newRequestError builds the user-facing message from a failed response
// body: the body's "error" field when present, else a generic message.
func newRequestError(status int, body []byte) *RequestError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return &RequestError{Status: status, Message: payload.Error}
	}
	return &RequestError{Status: status, Message: fmt.Sprintf("Request failed: %d", status)}
}

// Client talks to the search backend over HTTP. It makes exactly one
// attempt per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     oteltrace.Tracer
	logger     *slog.Logger
}

// Ensure Client implements Searcher.
var _ Searcher = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t oteltrace.Tracer) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tracer:     otel.Tracer(TracerName),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Search POSTs q to /api/search and returns the papers in response order.
// A 2xx response without a results field yields an empty slice.
func (c *Client) Search(ctx context.Context, q Query) (papers []Paper, err error) {
	ctx, span := c.tracer.Start(ctx, "search.request",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.Int("papersearch.window_days", q.TimeWindowDays),
			attribute.StringSlice("papersearch.sources", q.Sources.Names()),
			attribute.Int("papersearch.text_length", len(q.Text)),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("papersearch.result_count", len(papers)))
		}
		span.End()
	}()

	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SearchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("search request failed", "error", err)
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("search response",
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
		"window_days", q.TimeWindowDays,
		"sources", q.Sources.Names())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newRequestError(resp.StatusCode, data)
	}

	var payload struct {
		Results []Paper `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if payload.Results == nil {
		payload.Results = []Paper{}
	}
	return payload.Results, nil
}

// Health calls /api/health and returns nil when the backend reports ok.
func (c *Client) Health(ctx context.Context) (err error) {
	ctx, span := c.tracer.Start(ctx, "search.health", oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, data)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Status != "ok" {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("backend not healthy: status %q", payload.Status),
		}
	}
	return nil
}

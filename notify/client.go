// Package notify delivers a single JSON notification to an HTTP endpoint.
// Every Send is exactly one POST: there is no retry and no backoff, and the
// caller decides what to do with a failure.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/tailored-agentic-units/sovereign/notify"
	maxErrorBody        = 512
)

// Payload is the body of an agent notification.
type Payload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Timeout, if any,
// still applies in addition to the configured one.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTracerProvider replaces the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) { c.tracer = tp.Tracer(instrumentationName) }
}

// WithPropagator replaces the global text map propagator used to inject
// trace context into request headers.
func WithPropagator(p propagation.TextMapPropagator) ClientOption {
	return func(c *Client) { c.propagator = p }
}

// Client posts JSON payloads. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	http       *http.Client
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	timeout    time.Duration
	maxBody    int64
	userAgent  string
}

// NewClient creates a Client from configuration. A zero Timeout or
// MaxResponseBytes takes the default, so every Send is bounded.
func NewClient(cfg *Config, opts ...ClientOption) *Client {
	c := &Client{
		http:       &http.Client{},
		tracer:     otel.Tracer(instrumentationName),
		propagator: otel.GetTextMapPropagator(),
		timeout:    cfg.Timeout.Std(),
		maxBody:    cfg.MaxResponseBytes,
		userAgent:  cfg.UserAgent,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxBody <= 0 {
		c.maxBody = DefaultMaxResponseBytes
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Timeout returns the overall bound applied to each Send.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// MaxResponseBytes returns the largest response body Send accepts.
func (c *Client) MaxResponseBytes() int64 {
	return c.maxBody
}

// Send POSTs payload, encoded as JSON, to endpoint and returns the response
// body as text. All failures are *TransportError.
func (c *Client) Send(ctx context.Context, endpoint string, payload any) (body string, err error) {
	ctx, span := c.tracer.Start(ctx, "notify.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", endpoint),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Kind: KindDecode, Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &TransportError{Kind: KindConnect, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Kind: classify(ctx, err, KindConnect), Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			Kind:       KindStatus,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(raw, maxErrorBody),
		}
	}

	if readErr != nil {
		return "", &TransportError{Kind: classify(ctx, readErr, KindDecode), Endpoint: endpoint, Err: readErr}
	}

	if int64(len(raw)) > c.maxBody {
		return "", &TransportError{
			Kind:     KindDecode,
			Endpoint: endpoint,
			Err:      fmt.Errorf("response body exceeds %d bytes", c.maxBody),
		}
	}

	if isJSON(resp.Header.Get("Content-Type")) && len(raw) > 0 && !json.Valid(raw) {
		return "", &TransportError{Kind: KindDecode, Endpoint: endpoint, Err: errors.New("malformed JSON response")}
	}

	return string(raw), nil
}

// classify reports KindTimeout for deadline and network timeouts, otherwise
// fallback.
func classify(ctx context.Context, err error, fallback Kind) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return fallback
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}

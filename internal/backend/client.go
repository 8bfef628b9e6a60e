package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"steam-cycle-viewer/internal/cycle"
	"steam-cycle-viewer/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// Client talks to the cycle backend over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every backend call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// New returns a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the backend root the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Calculate posts the inputs to the endpoint for kind and decodes the reply.
// The reply is returned as decoded; shape validation is up to the caller.
func (c *Client) Calculate(ctx context.Context, kind cycle.Kind, in cycle.Inputs) (cycle.Result, error) {
	if !kind.Valid() {
		return cycle.Result{}, fmt.Errorf("unknown diagram kind %q", kind)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return cycle.Result{}, fmt.Errorf("encode inputs: %w", err)
	}

	url := c.baseURL + kind.Path()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return cycle.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := observability.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(observability.RequestIDHeader, id)
	}

	observability.LoggerWithTrace(ctx).Debug("calling cycle backend",
		zap.String("url", url),
		zap.String("kind", string(kind)),
	)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return cycle.Result{}, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return cycle.Result{}, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var result cycle.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return cycle.Result{}, fmt.Errorf("decode response from %s: %w", url, err)
	}

	return result, nil
}

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studyguide/internal/logging"

	"github.com/google/uuid"
)

// AnalyzePath is the endpoint path relative to the backend base URL.
const AnalyzePath = "/api/analyze"

// maxResponseBytes bounds the decoded body. Deep-dive analyses are large.
const maxResponseBytes = 32 << 20

// Analyzer runs one analysis request. Client is the production
// implementation; tests substitute fakes.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// Client talks to the analysis backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport
// default, which is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  "studyguide/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() { c.httpClient.CloseIdleConnections() }

// Analyze issues exactly one POST to the analysis endpoint. It never retries.
func (c *Client) Analyze(ctx context.Context, req Request) (*Result, error) {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := logging.WithRequestID(logging.CategoryAPI, requestID).
		WithField("video1", ExtractVideoID(req.URL1)).
		WithField("video2", ExtractVideoID(req.URL2))
	timer := logging.StartTimer(logging.CategoryAPI, "analyze request")
	defer timer.Stop()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AnalyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	log.Info("POST %s", c.baseURL+AnalyzePath)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("transport failure: %v", err)
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		log.Warn("backend answered %d", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	result, err := DecodeResult(data)
	if err != nil {
		log.Error("undecodable body (%d bytes): %v", len(data), err)
		return nil, err
	}
	log.Info("analysis received: %d summary items, %d quiz questions", len(result.Summary), len(result.Quiz))
	return result, nil
}

type requestIDKey struct{}

// ContextWithRequestID attaches a correlation id that Analyze sends as
// X-Request-ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

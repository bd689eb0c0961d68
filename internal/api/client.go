package api

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.opentelemetry.io/otel/trace"

	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/telemetry"
)

// Default request budgets
const (
	DefaultChatTimeout   = 30 * time.Second
	DefaultHealthTimeout = 2 * time.Second
)

// Client sends messages to the chat backends and probes their liveness.
// It is safe for concurrent use.
type Client struct {
	httpClient    tls_client.HttpClient
	endpoints     map[models.BackendID]models.Endpoint
	chatTimeout   time.Duration
	healthTimeout time.Duration
	logger        *slog.Logger
	tracer        trace.Tracer
	instruments   *telemetry.Instruments
	mu            sync.RWMutex
	closed        bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithChatTimeout sets the budget for one message exchange
func WithChatTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.chatTimeout = d
		}
	}
}

// WithHealthTimeout sets the budget for one liveness probe
func WithHealthTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.healthTimeout = d
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for request spans
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithInstruments sets the metric instruments
func WithInstruments(in *telemetry.Instruments) ClientOption {
	return func(c *Client) {
		c.instruments = in
	}
}

// NewClient creates a Client for the given endpoints
func NewClient(endpoints []models.Endpoint, opts ...ClientOption) (*Client, error) {
	if len(endpoints) == 0 {
		endpoints = models.DefaultEndpoints()
	}

	client := &Client{
		endpoints:     make(map[models.BackendID]models.Endpoint, len(endpoints)),
		chatTimeout:   DefaultChatTimeout,
		healthTimeout: DefaultHealthTimeout,
		logger:        telemetry.Discard(),
		tracer:        telemetry.Tracer(),
	}
	for _, ep := range endpoints {
		client.endpoints[ep.ID] = ep
	}

	// Apply options
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		// Per-request deadlines come from contexts; the client timeout
		// only backstops requests that carry none
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.chatTimeout/time.Second) + 1),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close releases idle connections. Calls after Close fail fast.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

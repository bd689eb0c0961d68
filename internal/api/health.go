package api

import (
	"context"
	"io"

	http "github.com/bogdanfinn/fhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/diogo/funkychat/internal/models"
)

// Probe checks whether backend id answers its health URL with a 200.
// Any other outcome, including a timeout, is Offline. An unconfigured
// backend is Unknown.
func (c *Client) Probe(ctx context.Context, id models.BackendID) models.Status {
	ep, ok := c.endpoints[id]
	if !ok || c.IsClosed() {
		return models.StatusUnknown
	}

	ctx, span := c.tracer.Start(ctx, "health_check", trace.WithAttributes(
		attribute.String("backend", string(id)),
		attribute.String("url", ep.HealthURL),
	))
	defer span.End()

	status := c.doProbe(ctx, ep)

	span.SetAttributes(attribute.String("status", status.String()))
	c.logger.Debug("health probe", "backend", id, "url", ep.HealthURL, "status", status.String())
	c.instruments.RecordProbe(ctx, string(id), status.String())

	return status
}

func (c *Client) doProbe(ctx context.Context, ep models.Endpoint) models.Status {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.HealthURL, nil)
	if err != nil {
		return models.StatusOffline
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.StatusOffline
	}
	if resp.Body != nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}

	if resp.StatusCode == http.StatusOK {
		return models.StatusOnline
	}
	return models.StatusOffline
}

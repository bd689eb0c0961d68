package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apierrors "github.com/diogo/funkychat/internal/errors"
	"github.com/diogo/funkychat/internal/models"
)

// maxBodySize caps how much of a reply is read into memory
const maxBodySize = 4 << 20

var errClientClosed = errors.New("client is closed")

// Send posts text to the chat endpoint of backend id and returns the
// outcome. Failures never escape as Go errors: they are carried in
// Reply.Err and classified as status, connection or unexpected.
func (c *Client) Send(ctx context.Context, id models.BackendID, text string) models.Reply {
	reply := models.Reply{Backend: id}

	ep, ok := c.endpoints[id]
	if !ok {
		reply.Err = apierrors.NewUnexpectedError("send message",
			fmt.Errorf("%w: %s", apierrors.ErrUnknownBackend, id))
		return reply
	}

	if c.IsClosed() {
		reply.Err = apierrors.NewUnexpectedError("send message", errClientClosed)
		return reply
	}

	ctx, span := c.tracer.Start(ctx, "chat_api_call", trace.WithAttributes(
		attribute.String("backend", string(id)),
		attribute.String("url", ep.ChatURL),
		attribute.Int("message.length", len(text)),
	))
	defer span.End()

	start := time.Now()
	reply.Text, reply.Err = c.doSend(ctx, ep, text)
	elapsed := time.Since(start)

	kind := reply.Kind()
	span.SetAttributes(attribute.String("outcome", kind.String()))
	if reply.Err != nil {
		span.RecordError(reply.Err)
		span.SetStatus(codes.Error, reply.Err.Error())
		c.logger.Warn("chat request failed",
			"backend", id,
			"kind", kind.String(),
			"status", apierrors.GetHTTPStatus(reply.Err),
			"duration_ms", elapsed.Milliseconds(),
			"error", reply.Err,
		)
	} else {
		c.logger.Info("chat request completed",
			"backend", id,
			"duration_ms", elapsed.Milliseconds(),
			"reply_length", len(reply.Text),
		)
	}
	c.instruments.RecordChat(ctx, string(id), kind.String(), elapsed)

	return reply
}

// doSend performs the actual request
func (c *Client) doSend(ctx context.Context, ep models.Endpoint, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.chatTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{FieldMessage: text})
	if err != nil {
		return "", apierrors.NewUnexpectedError("marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.ChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", apierrors.NewUnexpectedError("create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(ep, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode != http.StatusOK {
		statusErr := apierrors.NewStatusError(resp.StatusCode, ep.ChatURL)
		if detail := gjson.GetBytes(body, PathDetail); detail.Exists() {
			return "", statusErr.WithBody(detail.String())
		}
		return "", statusErr.WithBody(string(body))
	}

	if readErr != nil {
		return "", classifyTransportError(ep, readErr)
	}

	return parseReply(body)
}

// parseReply extracts the reply text from a 200 body
func parseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("reply is not valid JSON", "")
	}

	result := gjson.GetBytes(body, PathResponse)
	if result.Type != gjson.String {
		return "", apierrors.NewParseError("reply has no text", PathResponse)
	}

	return result.Str, nil
}

// classifyTransportError maps a failed round trip onto the error taxonomy.
// Only failures to reach the backend count as connection errors.
func classifyTransportError(ep models.Endpoint, err error) error {
	if apierrors.IsDialFailure(err) {
		return apierrors.NewConnectionError(string(ep.ID), ep.Port(), ep.ChatURL, err)
	}
	return apierrors.NewUnexpectedError("send message", err)
}

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/session"
)

// handleWebSocket owns one session for the lifetime of the connection.
// Frames are handled one at a time, so a dispatch blocks only this
// connection.
func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response
		s.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	store := session.NewStore(s.defaultBackend)
	s.register(store)
	defer s.unregister(store)

	logger := s.logger.With("session", store.ID)
	logger.Info("session started")
	defer logger.Info("session ended", "messages", store.Len())

	conn.SetReadLimit(maxMessageSize)
	ctx := c.Request().Context()

	if err := s.pushState(ctx, conn, store); err != nil {
		logger.Debug("initial push failed", "error", err)
		return nil
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "error", err)
			}
			return nil
		}

		if err := s.handleMessage(ctx, conn, store, logger, data); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return nil
		}
	}
}

// handleMessage applies one browser frame to store. The returned error
// is a write failure; bad frames are answered with an error frame.
func (s *Server) handleMessage(ctx context.Context, conn *websocket.Conn, store *session.Store, logger *slog.Logger, data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return s.sendError(conn, store, "invalid JSON message")
	}

	switch msg.Type {
	case TypeSubmit:
		effect := store.Apply(session.Submitted{Text: msg.Text, At: s.runner.Now()})
		if effect == nil {
			return s.pushState(ctx, conn, store)
		}

		// Show the user message and the pending indicator before the call
		if err := s.pushState(ctx, conn, store); err != nil {
			return err
		}
		if ev := s.runner.Execute(ctx, effect); ev != nil {
			store.Apply(ev)
		}
		logger.Debug("reply delivered", "backend", store.ActiveBackend())

	case TypeSwitch:
		id, _ := models.BackendFromName(msg.Backend)
		if err := store.SetActiveBackend(id); err != nil {
			logger.Debug("switch rejected", "backend", msg.Backend, "error", err)
			return s.sendError(conn, store, fmt.Sprintf("unknown backend %q", msg.Backend))
		}

	case TypeClear:
		store.Apply(session.Cleared{})

	default:
		return s.sendError(conn, store, "unknown message type: "+msg.Type)
	}

	return s.pushState(ctx, conn, store)
}

// pushState refreshes backend statuses and sends the snapshot
func (s *Server) pushState(ctx context.Context, conn *websocket.Conn, store *session.Store) error {
	s.runner.Refresh(ctx, store)
	frame := NewStateMessage(store.ID, store.Snapshot(), s.ports, s.apiKey, time.Now())
	return s.writeJSON(conn, frame)
}

func (s *Server) sendError(conn *websocket.Conn, store *session.Store, message string) error {
	return s.writeJSON(conn, NewErrorMessage(store.ID, message, time.Now()))
}

func (s *Server) writeJSON(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// Package web provides the browser front-end: an echo server that serves a
// single page and keeps one chat session per WebSocket connection.
package web

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/diogo/funkychat/internal/chat"
	"github.com/diogo/funkychat/internal/config"
	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/session"
	"github.com/diogo/funkychat/internal/telemetry"
)

//go:embed static/index.html
var indexHTML []byte

const (
	maxMessageSize = 64 * 1024
	writeTimeout   = 10 * time.Second
)

// Options configures a Server
type Options struct {
	Runner         *chat.Runner
	Endpoints      []models.Endpoint
	APIKey         config.APIKey
	DefaultBackend models.BackendID
	Logger         *slog.Logger
}

// Server is the browser chat server.
type Server struct {
	echo           *echo.Echo
	runner         *chat.Runner
	apiKey         config.APIKey
	defaultBackend models.BackendID
	ports          map[models.BackendID]int
	logger         *slog.Logger
	upgrader       websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session.Store
}

// NewServer creates a server and registers its routes.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = telemetry.Discard()
	}
	if len(opts.Endpoints) == 0 {
		opts.Endpoints = models.DefaultEndpoints()
	}

	ports := make(map[models.BackendID]int, len(opts.Endpoints))
	for _, ep := range opts.Endpoints {
		ports[ep.ID] = ep.Port()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:           e,
		runner:         opts.Runner,
		apiKey:         opts.APIKey,
		defaultBackend: opts.DefaultBackend,
		ports:          ports,
		logger:         opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*session.Store),
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("http request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	// Register routes
	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.GET("/ws", s.handleWebSocket)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.logger.Info("web server starting", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) register(store *session.Store) {
	s.mu.Lock()
	s.sessions[store.ID] = store
	s.mu.Unlock()
}

func (s *Server) unregister(store *session.Store) {
	s.mu.Lock()
	delete(s.sessions, store.ID)
	s.mu.Unlock()
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

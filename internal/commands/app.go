package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/diogo/funkychat/internal/api"
	"github.com/diogo/funkychat/internal/chat"
	"github.com/diogo/funkychat/internal/config"
	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/telemetry"
)

// App holds the dependencies shared by every command. It is built once per
// invocation and closed when the command returns.
type App struct {
	Config    config.Config
	APIKey    config.APIKey
	Logger    *slog.Logger
	Endpoints []models.Endpoint
	Runner    *chat.Runner

	client      *api.Client
	logCloser   io.Closer
	shutdownTel func()
}

// newApp loads configuration and secrets, sets up logging and telemetry
// and builds the backend client
func newApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if verboseFlag {
		cfg.Verbose = true
	}

	app := &App{
		Config:    cfg,
		Endpoints: cfg.Endpoints(),
		Logger:    telemetry.Discard(),
	}

	tracer, meter := telemetry.Tracer(), telemetry.Meter()
	if logDir, err := config.GetLogDir(); err == nil {
		if logger, closer, err := telemetry.InitLogger(logDir, cfg.Verbose); err == nil {
			app.Logger = logger
			app.logCloser = closer
		} else {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}

		if t, m, shutdown, err := telemetry.InitTelemetry(ctx, logDir); err == nil {
			tracer, meter = t, m
			app.shutdownTel = shutdown
		} else {
			app.Logger.Warn("telemetry disabled", "error", err)
		}
	}

	app.APIKey = config.LoadAPIKey()
	if app.APIKey.Present() {
		app.Logger.Info("api key loaded", "key", app.APIKey.Masked(), "sources", app.APIKey.Sources)
	} else {
		app.Logger.Warn("api key missing", "env", config.APIKeyEnv)
	}

	client, err := api.NewClient(app.Endpoints,
		api.WithChatTimeout(cfg.ChatTimeoutDuration()),
		api.WithHealthTimeout(cfg.HealthTimeoutDuration()),
		api.WithLogger(app.Logger),
		api.WithTracer(tracer),
		api.WithInstruments(telemetry.NewInstruments(meter, app.Logger)),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	app.client = client
	app.Runner = chat.NewRunner(client, client, chat.WithLogger(app.Logger))

	return app, nil
}

// Backend resolves the --backend flag against the configured default
func (a *App) Backend() (models.BackendID, error) {
	return resolveBackend(backendFlag, a.Config.Backend())
}

func resolveBackend(flag string, fallback models.BackendID) (models.BackendID, error) {
	if flag == "" {
		return fallback, nil
	}
	id, ok := models.BackendFromName(flag)
	if !ok {
		return "", fmt.Errorf("unknown backend %q (use langchain or llamaindex)", flag)
	}
	return id, nil
}

// Close releases the client, flushes telemetry and closes the log file
func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.shutdownTel != nil {
		a.shutdownTel()
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

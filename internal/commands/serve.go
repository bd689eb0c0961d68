package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/funkychat/internal/web"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser chat UI",
	Long: `Serve the chat in the browser. Every browser tab gets its own
conversation, which is dropped when the tab is closed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, :8501)")
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	backend, err := app.Backend()
	if err != nil {
		return err
	}

	addr := app.Config.ServeAddr
	if addrFlag != "" {
		addr = addrFlag
	}

	srv := web.NewServer(web.Options{
		Runner:         app.Runner,
		Endpoints:      app.Endpoints,
		APIKey:         app.APIKey,
		DefaultBackend: backend,
		Logger:         app.Logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	fmt.Fprintf(os.Stderr, "🎉 Funky AI ChatBot is live at %s\n", displayURL(addr))
	fmt.Fprintln(os.Stderr, app.APIKey.Notice())

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}
	return nil
}

// displayURL turns a listen address into a clickable URL
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

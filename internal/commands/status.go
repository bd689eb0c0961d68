package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/funkychat/internal/chat"
	"github.com/diogo/funkychat/internal/models"
)

var statusJSONFlag bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether both backends are up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		return runStatus(cmd.Context(), app.Runner, app.Endpoints, statusJSONFlag, os.Stdout)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSONFlag, "json", false, "Print statuses as JSON")
}

type statusLine struct {
	Backend models.BackendID `json:"backend"`
	Port    int              `json:"port"`
	Status  string           `json:"status"`
}

func runStatus(ctx context.Context, runner *chat.Runner, endpoints []models.Endpoint, asJSON bool, out io.Writer) error {
	ports := make(map[models.BackendID]int, len(endpoints))
	for _, ep := range endpoints {
		ports[ep.ID] = ep.Port()
	}

	results := runner.ProbeAll(ctx)

	if asJSON {
		lines := make([]statusLine, len(results))
		for i, r := range results {
			lines[i] = statusLine{Backend: r.Backend, Port: ports[r.Backend], Status: r.Status.String()}
		}
		data, err := json.MarshalIndent(lines, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statuses: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, r := range results {
		style := dimStyle
		switch r.Status {
		case models.StatusOnline:
			style = onlineStyle
		case models.StatusOffline:
			style = offlineStyle
		}
		fmt.Fprintf(out, "%s API (Port %d): %s\n", r.Backend, ports[r.Backend], style.Render(r.Status.Label()))
	}
	return nil
}

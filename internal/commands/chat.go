package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/funkychat/internal/render"
	"github.com/diogo/funkychat/internal/session"
	"github.com/diogo/funkychat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session in the terminal.

Tab switches between LangChain and LlamaIndex (this starts a fresh
conversation), Ctrl+L clears the chat, Ctrl+Y copies the last reply,
Ctrl+S exports the transcript. Type /help for slash commands and press
Esc or Ctrl+C to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	backend, err := app.Backend()
	if err != nil {
		return err
	}

	tui.ApplyTheme(render.TUIThemeOrDefault(app.Config.TUITheme))

	store := session.NewStore(backend)
	app.Logger.Info("chat session started", "session", store.ID, "backend", backend)

	err = tui.RunChat(store, app.Runner, tui.Options{
		Context:         ctx,
		Endpoints:       app.Endpoints,
		APIKey:          app.APIKey,
		Render:          render.OptionsFromConfig(app.Config.Markdown, getTerminalWidth()),
		RefreshInterval: app.Config.StatusRefreshDuration(),
		ExportDir:       app.Config.ExportDir,
		Logger:          app.Logger,
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	app.Logger.Info("chat session ended", "session", store.ID, "messages", store.Len())
	return nil
}

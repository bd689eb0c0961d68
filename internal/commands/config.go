package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/funkychat/internal/config"
	"github.com/diogo/funkychat/internal/render"
)

var configForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults and environment overrides
are applied, together with the config file location and API key state.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(os.Stdout)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(os.Stdout, configForceFlag)
	},
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available markdown and TUI themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigThemes(os.Stdout)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForceFlag, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configThemesCmd)
}

func runConfigShow(out io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg, loadErr := config.LoadConfig()

	state := "not found, using defaults"
	if _, err := os.Stat(path); err == nil {
		state = "loaded"
	}
	if loadErr != nil {
		state = "invalid: " + loadErr.Error()
	}

	fmt.Fprintf(out, "Config file: %s (%s)\n", path, state)
	if logDir, err := config.GetLogDir(); err == nil {
		fmt.Fprintf(out, "Log directory: %s\n", logDir)
	}

	key := config.LoadAPIKey()
	if key.Present() {
		fmt.Fprintf(out, "API key: %s\n", key.Masked())
	} else {
		fmt.Fprintf(out, "API key: not set (%s)\n", config.APIKeyEnv)
	}

	for _, w := range themeWarnings(cfg) {
		fmt.Fprintln(out, offlineStyle.Render("Warning: "+w))
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, string(data))
	return nil
}

// themeWarnings reports theme settings that will not resolve at runtime
func themeWarnings(cfg config.Config) []string {
	var warnings []string

	style := cfg.Markdown.Style
	if style != "" && !slices.Contains(render.ThemeNames(), style) {
		if _, err := os.Stat(style); err != nil {
			warnings = append(warnings, fmt.Sprintf("markdown style %q is neither a theme (%s) nor a readable style file",
				style, strings.Join(render.ThemeNames(), ", ")))
		}
	}

	if cfg.TUITheme != "" && !slices.Contains(render.TUIThemeNames(), cfg.TUITheme) {
		warnings = append(warnings, fmt.Sprintf("tui_theme %q is unknown (%s), using %s",
			cfg.TUITheme, strings.Join(render.TUIThemeNames(), ", "), render.FunkyTheme.Name))
	}

	return warnings
}

func runConfigInit(out io.Writer, force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintln(out, onlineStyle.Render("✓ Wrote default config to "+path))
	return nil
}

func runConfigThemes(out io.Writer) error {
	fmt.Fprintln(out, "Markdown themes (markdown.style):")
	for _, t := range render.AvailableThemes() {
		fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
	}

	fmt.Fprintln(out, "\nTUI themes (tui_theme):")
	for _, t := range render.AvailableTUIThemes() {
		fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
	}
	return nil
}

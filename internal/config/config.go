// Package config handles configuration and secrets for funkychat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diogo/funkychat/internal/models"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "funky", "dark", "light", "dracula", ... or a style file
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// BackendConfig is the on-disk form of a backend endpoint
type BackendConfig struct {
	ChatURL string `json:"chat_url"`
	// HealthURL overrides the health check address derived from ChatURL.
	HealthURL   string `json:"health_url,omitempty"`
	DefaultPort int    `json:"default_port"`
}

// Config represents the user configuration
type Config struct {
	LangChain      BackendConfig `json:"langchain"`
	LlamaIndex     BackendConfig `json:"llamaindex"`
	DefaultBackend string        `json:"default_backend"`
	// ChatTimeout bounds one message exchange, in seconds.
	ChatTimeout int `json:"chat_timeout_seconds"`
	// HealthTimeout bounds one liveness probe, in seconds.
	HealthTimeout int `json:"health_timeout_seconds"`
	// StatusRefresh is how often the TUI re-probes backends while idle, in seconds.
	StatusRefresh int            `json:"status_refresh_seconds"`
	ServeAddr     string         `json:"serve_addr"`
	Verbose       bool           `json:"verbose"`
	TUITheme      string         `json:"tui_theme,omitempty"`
	ExportDir     string         `json:"export_dir,omitempty"`
	Markdown      MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "funky",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		LangChain: BackendConfig{
			ChatURL:     models.DefaultLangChainURL,
			DefaultPort: 8000,
		},
		LlamaIndex: BackendConfig{
			ChatURL:     models.DefaultLlamaIndexURL,
			DefaultPort: 8001,
		},
		DefaultBackend: string(models.BackendLangChain),
		ChatTimeout:    30,
		HealthTimeout:  2,
		StatusRefresh:  10,
		ServeAddr:      ":8501",
		Verbose:        false,
		TUITheme:       "funky",
		ExportDir:      filepath.Join(homeDir, ".funkychat", "exports"),
		Markdown:       DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".funkychat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory may hold the .env secret
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogDir returns the directory for log and telemetry files
func GetLogDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = DefaultConfig()
		applyEnv(&cfg)
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv lets environment variables take precedence over the config file
func applyEnv(cfg *Config) {
	if v := os.Getenv("FUNKYCHAT_LANGCHAIN_URL"); v != "" {
		cfg.LangChain.ChatURL = v
	}
	if v := os.Getenv("FUNKYCHAT_LLAMAINDEX_URL"); v != "" {
		cfg.LlamaIndex.ChatURL = v
	}
	if v := os.Getenv("FUNKYCHAT_ADDR"); v != "" {
		cfg.ServeAddr = v
	}
	if v := os.Getenv("GLAMOUR_STYLE"); v != "" {
		cfg.Markdown.Style = v
	}
}

// Endpoints converts the configured backends into endpoint definitions
func (c Config) Endpoints() []models.Endpoint {
	return []models.Endpoint{
		c.LangChain.endpoint(models.BackendLangChain, 8000),
		c.LlamaIndex.endpoint(models.BackendLlamaIndex, 8001),
	}
}

func (b BackendConfig) endpoint(id models.BackendID, fallbackPort int) models.Endpoint {
	chatURL := b.ChatURL
	if chatURL == "" {
		for _, ep := range models.DefaultEndpoints() {
			if ep.ID == id {
				chatURL = ep.ChatURL
			}
		}
	}

	port := b.DefaultPort
	if port == 0 {
		port = fallbackPort
	}

	ep := models.NewEndpoint(id, chatURL, port)
	if b.HealthURL != "" {
		ep.HealthURL = b.HealthURL
	}
	return ep
}

// Backend returns the configured default backend, falling back to LangChain
func (c Config) Backend() models.BackendID {
	if id, ok := models.BackendFromName(c.DefaultBackend); ok {
		return id
	}
	return models.BackendLangChain
}

// ChatTimeoutDuration returns the chat timeout, never below one second
func (c Config) ChatTimeoutDuration() time.Duration {
	return seconds(c.ChatTimeout, 30)
}

// HealthTimeoutDuration returns the probe timeout, never below one second
func (c Config) HealthTimeoutDuration() time.Duration {
	return seconds(c.HealthTimeout, 2)
}

// StatusRefreshDuration returns the idle re-probe interval; zero disables it
func (c Config) StatusRefreshDuration() time.Duration {
	if c.StatusRefresh <= 0 {
		return 0
	}
	return time.Duration(c.StatusRefresh) * time.Second
}

func seconds(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Second
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment variable read for the model provider key
const APIKeyEnv = "OPENAI_API_KEY"

// Notices shown by every front-end after the key lookup
const (
	APIKeyMissingNotice = "⚠️ No API key found. Please set OPENAI_API_KEY in the environment or a .env file."
	APIKeyLoadedNotice  = "🗝️ API key loaded successfully."
)

// APIKey reports the outcome of loading the provider key
type APIKey struct {
	Value string
	// Sources lists the .env files that were found and loaded.
	Sources []string
}

// Present reports whether a non-blank key was found
func (k APIKey) Present() bool {
	return strings.TrimSpace(k.Value) != ""
}

// Notice returns the banner text for the lookup outcome
func (k APIKey) Notice() string {
	if k.Present() {
		return APIKeyLoadedNotice
	}
	return APIKeyMissingNotice
}

// Masked returns the key with all but the last four characters hidden
func (k APIKey) Masked() string {
	v := strings.TrimSpace(k.Value)
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", 8) + v[len(v)-4:]
}

// EnvFiles returns the .env candidates in load order: the working
// directory first, then the config directory
func EnvFiles() []string {
	files := []string{".env"}
	if dir, err := GetConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	return files
}

// LoadAPIKey loads .env files into the process environment and reads the
// provider key. godotenv never overrides variables that are already set,
// so the real environment wins over .env and the first file wins over
// later ones. A missing key is not an error.
func LoadAPIKey() APIKey {
	return loadAPIKeyFrom(EnvFiles()...)
}

func loadAPIKeyFrom(files ...string) APIKey {
	var key APIKey
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err == nil {
			key.Sources = append(key.Sources, f)
		}
	}
	key.Value = os.Getenv(APIKeyEnv)
	return key
}

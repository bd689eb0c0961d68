package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAPIKey_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-test-abcd1234\n"), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	t.Setenv(APIKeyEnv, "")
	os.Unsetenv(APIKeyEnv)

	key := loadAPIKeyFrom(envFile, filepath.Join(dir, "missing.env"))
	if !key.Present() {
		t.Fatal("expected key to be present")
	}
	if key.Value != "sk-test-abcd1234" {
		t.Errorf("Value = %s", key.Value)
	}
	if len(key.Sources) != 1 || key.Sources[0] != envFile {
		t.Errorf("Sources = %v", key.Sources)
	}
	if key.Masked() != "********1234" {
		t.Errorf("Masked() = %s", key.Masked())
	}
}

func TestLoadAPIKey_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("OPENAI_API_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	t.Setenv(APIKeyEnv, "from-env")

	key := loadAPIKeyFrom(envFile)
	if key.Value != "from-env" {
		t.Errorf("Value = %s, want from-env", key.Value)
	}
}

func TestLoadAPIKey_Missing(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	os.Unsetenv(APIKeyEnv)

	key := loadAPIKeyFrom(filepath.Join(t.TempDir(), "nope.env"))
	if key.Present() {
		t.Error("expected key to be absent")
	}
	if key.Masked() != "" {
		t.Errorf("Masked() = %q, want empty", key.Masked())
	}
	if len(key.Sources) != 0 {
		t.Errorf("Sources = %v", key.Sources)
	}
}

func TestEnvFiles(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	files := EnvFiles()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if files[0] != ".env" {
		t.Errorf("files[0] = %s", files[0])
	}
	if files[1] != filepath.Join("/home/tester", ".funkychat", ".env") {
		t.Errorf("files[1] = %s", files[1])
	}
}

func TestAPIKey_Notice(t *testing.T) {
	if (APIKey{}).Notice() != APIKeyMissingNotice {
		t.Error("expected missing notice for empty key")
	}
	if (APIKey{Value: "sk-test1234"}).Notice() != APIKeyLoadedNotice {
		t.Error("expected loaded notice for present key")
	}
	if got := (APIKey{Value: "sk-test1234"}).Masked(); got != "********1234" {
		t.Errorf("Masked() = %q", got)
	}
}

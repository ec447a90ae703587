package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerAddress != ":3000" {
		t.Errorf("ServerAddress = %q, want :3000", cfg.ServerAddress)
	}
	if cfg.AIProvider != ProviderOpenAI {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, ProviderOpenAI)
	}
	if cfg.AIModel != "gemini-2.5-flash" {
		t.Errorf("AIModel = %q, want gemini-2.5-flash", cfg.AIModel)
	}
	if cfg.WriteTimeout != 5*time.Minute {
		t.Errorf("WriteTimeout = %v, want 5m", cfg.WriteTimeout)
	}
	if cfg.PaneMinPercent != 20 || cfg.PaneMaxPercent != 80 {
		t.Errorf("pane bounds = [%v, %v], want [20, 80]", cfg.PaneMinPercent, cfg.PaneMaxPercent)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", " Anthropic ")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("SERVER_WRITE_TIMEOUT", "90s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.AIProvider != ProviderAnthropic {
		t.Errorf("AIProvider = %q, want anthropic", cfg.AIProvider)
	}
	if cfg.AIAPIKey != "secret" {
		t.Errorf("AIAPIKey = %q, want secret", cfg.AIAPIKey)
	}
	if cfg.WriteTimeout != 90*time.Second {
		t.Errorf("WriteTimeout = %v, want 90s", cfg.WriteTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "AI_MODEL: claude-sonnet-4-5\nPANE_MIN_PERCENT: 25\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.AIModel != "claude-sonnet-4-5" {
		t.Errorf("AIModel = %q", cfg.AIModel)
	}
	if cfg.PaneMinPercent != 25 {
		t.Errorf("PaneMinPercent = %v, want 25", cfg.PaneMinPercent)
	}
}

func TestValidateRelay(t *testing.T) {
	cfg := Config{AIProvider: ProviderOpenAI, AIModel: "m"}
	if err := cfg.ValidateRelay(); err == nil {
		t.Error("missing API key should fail validation")
	}
	cfg.AIAPIKey = "k"
	if err := cfg.ValidateRelay(); err != nil {
		t.Errorf("ValidateRelay() error = %v", err)
	}
	cfg.AIProvider = "palm"
	if err := cfg.ValidateRelay(); err == nil {
		t.Error("unknown provider should fail validation")
	}
}

func TestValidatePreview(t *testing.T) {
	cfg := Config{RelayURL: "http://localhost:3000", PaneMinPercent: 20, PaneMaxPercent: 80}
	if err := cfg.ValidatePreview(); err != nil {
		t.Errorf("ValidatePreview() error = %v", err)
	}
	cfg.PaneMinPercent = 90
	if err := cfg.ValidatePreview(); err == nil {
		t.Error("min >= max should fail validation")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	found, err := LoadEnvFile(filepath.Join(dir, "missing.env"))
	if err != nil || found {
		t.Errorf("missing file: found=%v err=%v, want false nil", found, err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("WEBGEN_ENVFILE_TEST=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("WEBGEN_ENVFILE_TEST") })

	found, err = LoadEnvFile(path)
	if err != nil || !found {
		t.Fatalf("existing file: found=%v err=%v, want true nil", found, err)
	}
	if got := os.Getenv("WEBGEN_ENVFILE_TEST"); got != "from-file" {
		t.Errorf("WEBGEN_ENVFILE_TEST = %q, want from-file", got)
	}

	// A path that exists but cannot be read as a file is reported.
	if _, err := LoadEnvFile(dir); err == nil {
		t.Error("reading a directory should return an error")
	}
}

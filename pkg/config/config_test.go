package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Dovetale.BaseURL != "https://api.dovetale.com/v2/" {
		t.Errorf("Expected default base URL, got %s", config.Dovetale.BaseURL)
	}
	if config.Dovetale.AuthURL != "https://api.dovetale.com/oauth/token" {
		t.Errorf("Expected default auth URL, got %s", config.Dovetale.AuthURL)
	}
	if config.Dovetale.Scope != "enterprise_api" {
		t.Errorf("Expected default scope enterprise_api, got %s", config.Dovetale.Scope)
	}
	if config.Dovetale.Timeout != 0 {
		t.Errorf("Expected no default timeout, got %v", config.Dovetale.Timeout)
	}
	if config.Dovetale.GetParamsInBody {
		t.Error("Expected GET parameters in the query string by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOVETALE_CLIENT_ID", "env-id")
	t.Setenv("DOVETALE_CLIENT_SECRET", "env-secret")
	t.Setenv("DOVETALE_BASE_URL", "http://localhost:9000/v2/")
	t.Setenv("DOVETALE_TIMEOUT", "15s")
	t.Setenv("DOVETALE_GET_PARAMS_IN_BODY", "true")
	t.Setenv("DOVETALE_OUTPUT_DIR", "/tmp/snapshots")
	t.Setenv("DOVETALE_LOG_LEVEL", "debug")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Dovetale.ClientID != "env-id" {
		t.Errorf("Expected client ID env-id, got %s", config.Dovetale.ClientID)
	}
	if config.Dovetale.ClientSecret != "env-secret" {
		t.Errorf("Expected client secret env-secret, got %s", config.Dovetale.ClientSecret)
	}
	if config.Dovetale.BaseURL != "http://localhost:9000/v2/" {
		t.Errorf("Expected overridden base URL, got %s", config.Dovetale.BaseURL)
	}
	if config.Dovetale.Timeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", config.Dovetale.Timeout)
	}
	if !config.Dovetale.GetParamsInBody {
		t.Error("Expected GET parameters in body")
	}
	if config.Output.Directory != "/tmp/snapshots" {
		t.Errorf("Expected output directory /tmp/snapshots, got %s", config.Output.Directory)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("DOVETALE_TIMEOUT", "soon")
		if err := DefaultConfig().LoadFromEnv(); err == nil {
			t.Error("Expected error for invalid timeout")
		}
	})

	t.Run("params in body", func(t *testing.T) {
		t.Setenv("DOVETALE_GET_PARAMS_IN_BODY", "maybe")
		if err := DefaultConfig().LoadFromEnv(); err == nil {
			t.Error("Expected error for invalid boolean")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:      "relative base URL",
			mutate:    func(c *Config) { c.Dovetale.BaseURL = "/v2/" },
			wantError: "base URL",
		},
		{
			name:      "missing auth URL",
			mutate:    func(c *Config) { c.Dovetale.AuthURL = "" },
			wantError: "auth URL is required",
		},
		{
			name:      "missing scope",
			mutate:    func(c *Config) { c.Dovetale.Scope = "" },
			wantError: "scope is required",
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.Dovetale.Timeout = -time.Second },
			wantError: "timeout cannot be negative",
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "loud" },
			wantError: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantError)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"client-id":      "flag-id",
		"client-secret":  "flag-secret",
		"timeout":        5 * time.Second,
		"params-in-body": true,
		"save":           "/flag/output",
		"log-level":      "error",
	}

	config.MergeCommandLineFlags(flags)

	if config.Dovetale.ClientID != "flag-id" {
		t.Errorf("Expected client ID flag-id, got %s", config.Dovetale.ClientID)
	}
	if config.Dovetale.ClientSecret != "flag-secret" {
		t.Errorf("Expected client secret flag-secret, got %s", config.Dovetale.ClientSecret)
	}
	if !config.HasCredentials() {
		t.Error("Expected credentials to be present")
	}
	if config.Dovetale.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", config.Dovetale.Timeout)
	}
	if !config.Dovetale.GetParamsInBody {
		t.Error("Expected params-in-body to be merged")
	}
	if config.Output.Directory != "/flag/output" {
		t.Errorf("Expected output directory /flag/output, got %s", config.Output.Directory)
	}
	if config.Logging.Level != "error" {
		t.Errorf("Expected log level error, got %s", config.Logging.Level)
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	config := DefaultConfig()
	config.Dovetale.ClientID = "saved-id"
	config.Dovetale.ClientSecret = "saved-secret"
	config.Dovetale.Timeout = 45 * time.Second

	if err := config.Save(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat saved config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected config permissions 0600, got %v", info.Mode().Perm())
	}

	loaded := DefaultConfig()
	if err := loaded.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Dovetale.ClientID != "saved-id" {
		t.Errorf("Expected loaded client ID saved-id, got %s", loaded.Dovetale.ClientID)
	}
	if loaded.Dovetale.Timeout != 45*time.Second {
		t.Errorf("Expected loaded timeout 45s, got %v", loaded.Dovetale.Timeout)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dovetale: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := DefaultConfig().LoadFromFile(path); err == nil {
		t.Error("Expected parse error for invalid YAML")
	}
}

func TestLoadPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `dovetale:
  client_id: file-id
  client_secret: file-secret
logging:
  level: info
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", tmpDir)
	t.Setenv("DOVETALE_CLIENT_SECRET", "env-secret")

	config, err := Load(configPath, map[string]interface{}{"log-level": "debug"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Dovetale.ClientID != "file-id" {
		t.Errorf("Expected file client ID, got %s", config.Dovetale.ClientID)
	}
	if config.Dovetale.ClientSecret != "env-secret" {
		t.Errorf("Expected env to override file secret, got %s", config.Dovetale.ClientSecret)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected flag to override file log level, got %s", config.Logging.Level)
	}
}

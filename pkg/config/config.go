package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "https://api.dovetale.com/v2/"
	DefaultAuthURL = "https://api.dovetale.com/oauth/token"
	DefaultScope   = "enterprise_api"
)

// Config holds all configuration options for the Dovetale client and CLI
type Config struct {
	// API endpoint and credential settings
	Dovetale DovetaleConfig `yaml:"dovetale" json:"dovetale"`

	// Snapshot output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DovetaleConfig holds API connection configuration
type DovetaleConfig struct {
	ClientID     string        `yaml:"client_id" json:"client_id"`
	ClientSecret string        `yaml:"client_secret" json:"client_secret"`
	BaseURL      string        `yaml:"base_url" json:"base_url"`
	AuthURL      string        `yaml:"auth_url" json:"auth_url"`
	Scope        string        `yaml:"scope" json:"scope"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	// GetParamsInBody sends GET parameters as a form body instead of the query string
	GetParamsInBody bool `yaml:"get_params_in_body" json:"get_params_in_body"`
}

// OutputConfig holds snapshot output configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	Pretty    bool   `yaml:"pretty" json:"pretty"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Dovetale: DovetaleConfig{
			BaseURL: DefaultBaseURL,
			AuthURL: DefaultAuthURL,
			Scope:   DefaultScope,
			Timeout: 0, // 0 means the http.Client default
		},
		Output: OutputConfig{
			Directory: "",
			Pretty:    true,
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("DOVETALE_CLIENT_ID"); v != "" {
		c.Dovetale.ClientID = v
	}
	if v := os.Getenv("DOVETALE_CLIENT_SECRET"); v != "" {
		c.Dovetale.ClientSecret = v
	}
	if v := os.Getenv("DOVETALE_BASE_URL"); v != "" {
		c.Dovetale.BaseURL = v
	}
	if v := os.Getenv("DOVETALE_AUTH_URL"); v != "" {
		c.Dovetale.AuthURL = v
	}
	if v := os.Getenv("DOVETALE_SCOPE"); v != "" {
		c.Dovetale.Scope = v
	}
	if v := os.Getenv("DOVETALE_USER_AGENT"); v != "" {
		c.Dovetale.UserAgent = v
	}

	if v := os.Getenv("DOVETALE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DOVETALE_TIMEOUT %q: %w", v, err)
		}
		c.Dovetale.Timeout = d
	}

	if v := os.Getenv("DOVETALE_GET_PARAMS_IN_BODY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DOVETALE_GET_PARAMS_IN_BODY %q: %w", v, err)
		}
		c.Dovetale.GetParamsInBody = b
	}

	if v := os.Getenv("DOVETALE_OUTPUT_DIR"); v != "" {
		c.Output.Directory = v
	}
	if v := os.Getenv("DOVETALE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".dovetale.yaml",
		".dovetale.yml",
		filepath.Join(home, ".config", "dovetale", "config.yaml"),
		filepath.Join(home, ".config", "dovetale", "config.yml"),
		filepath.Join(home, ".dovetale.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. Credentials are not
// checked here since they may come from the credential store instead.
func (c *Config) Validate() error {
	var errs []error

	for name, raw := range map[string]string{
		"base URL": c.Dovetale.BaseURL,
		"auth URL": c.Dovetale.AuthURL,
	} {
		if raw == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an absolute URL", name, raw))
		}
	}

	if c.Dovetale.Scope == "" {
		errs = append(errs, errors.New("scope is required"))
	}
	if c.Dovetale.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// HasCredentials reports whether both client ID and secret are set
func (c *Config) HasCredentials() bool {
	return c.Dovetale.ClientID != "" && c.Dovetale.ClientSecret != ""
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["client-id"].(string); ok && v != "" {
		c.Dovetale.ClientID = v
	}
	if v, ok := flags["client-secret"].(string); ok && v != "" {
		c.Dovetale.ClientSecret = v
	}
	if v, ok := flags["base-url"].(string); ok && v != "" {
		c.Dovetale.BaseURL = v
	}
	if v, ok := flags["auth-url"].(string); ok && v != "" {
		c.Dovetale.AuthURL = v
	}
	if v, ok := flags["timeout"].(time.Duration); ok && v > 0 {
		c.Dovetale.Timeout = v
	}
	if v, ok := flags["params-in-body"].(bool); ok {
		c.Dovetale.GetParamsInBody = v
	}
	if v, ok := flags["save"].(string); ok && v != "" {
		c.Output.Directory = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".dovetale.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate when a field cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config holds all dawang configuration.
type Config struct {
	// Remote advisory service
	Service ServiceConfig `yaml:"service"`

	// Mascot mood behavior
	Emotion EmotionConfig `yaml:"emotion"`

	// Chat session behavior
	Chat ChatConfig `yaml:"chat"`

	// Program catalog
	Catalog CatalogConfig `yaml:"catalog"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig locates the remote answering/catalog service.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// EmotionConfig configures the mascot mood timer.
type EmotionConfig struct {
	RevertAfter string `yaml:"revert_after"`

	// CancelSuperseded stops an older revert timer when a newer mood is set.
	// Off by default: every revert fires at its own deadline.
	CancelSuperseded bool `yaml:"cancel_superseded"`
}

// ChatConfig configures the chat session.
type ChatConfig struct {
	PlaceholderInterval string `yaml:"placeholder_interval"`
}

// Catalog sources.
const (
	CatalogSourceCatalog   = "catalog"   // GET /api/programs/catalog
	CatalogSourceAvailable = "available" // GET /api/programs/available
)

// CatalogConfig selects which remote list feeds the program picker.
type CatalogConfig struct {
	Source string `yaml:"source"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme string `yaml:"theme"` // "light", "dark" or "auto"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "60s",
		},
		Emotion: EmotionConfig{
			RevertAfter: "5s",
		},
		Chat: ChatConfig{
			PlaceholderInterval: "3s",
		},
		Catalog: CatalogConfig{
			Source: CatalogSourceCatalog,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  ".dawang/logs/dawang.log",
		},
	}
}

// DefaultPath returns the config file used when --config is not given.
func DefaultPath() string {
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ".dawang", "config.yaml")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dawang", "config.yaml")
	}
	return filepath.Join(home, ".dawang", "config.yaml")
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. A .env file in the working directory
// is loaded first so its variables participate in the overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DAWANG_API_URL"); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv("DAWANG_TIMEOUT"); v != "" {
		c.Service.Timeout = v
	}
	if v := os.Getenv("DAWANG_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("DAWANG_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// Validate checks the fields that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: service.base_url %q must be an absolute URL", ErrInvalid, c.Service.BaseURL)
	}
	switch c.Catalog.Source {
	case "", CatalogSourceCatalog, CatalogSourceAvailable:
	default:
		return fmt.Errorf("%w: catalog.source %q (want %q or %q)", ErrInvalid, c.Catalog.Source, CatalogSourceCatalog, CatalogSourceAvailable)
	}
	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("%w: ui.theme %q", ErrInvalid, c.UI.Theme)
	}
	return nil
}

// GetServiceTimeout returns the request timeout as a duration.
func (c *Config) GetServiceTimeout() time.Duration {
	return parseDuration(c.Service.Timeout, 60*time.Second)
}

// GetRevertAfter returns how long a non-neutral mood lasts.
func (c *Config) GetRevertAfter() time.Duration {
	return parseDuration(c.Emotion.RevertAfter, 5*time.Second)
}

// GetPlaceholderInterval returns the example-question rotation period.
func (c *Config) GetPlaceholderInterval() time.Duration {
	return parseDuration(c.Chat.PlaceholderInterval, 3*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

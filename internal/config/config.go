// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rmarques/curriculo-agent/internal/personalize"
)

// DefaultModels is the ranked fallback chain used when the configuration
// does not name one. Order is preference order; later entries are only
// tried after a quota failure on an earlier one.
var DefaultModels = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-1.5-flash",
}

// Config represents the agent configuration loadable from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment.
type Config struct {
	// Behavior
	APIKey  string   `json:"api_key,omitempty"`   // Gemini API key (GEMINI_API_KEY env wins)
	Models  []string `json:"models,omitempty"`    // Ranked model fallback chain
	Verbose bool     `json:"verbose,omitempty"`   // Print detailed pipeline artifacts
	Timeout int      `json:"timeout_s,omitempty"` // Per-request model timeout in seconds

	// Candidate
	UserID   string `json:"user_id,omitempty"`  // User UUID for skill bank lookups
	Name     string `json:"name,omitempty"`     // Candidate name
	Headline string `json:"headline,omitempty"` // Candidate headline, e.g. "Backend Engineer"

	// Paths
	Template string `json:"template,omitempty"` // Path to base résumé JSON

	// Infrastructure
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port

	// Quota (per client key)
	RequestsPerMinute int `json:"requests_per_minute,omitempty"`
	TokensPerMinute   int `json:"tokens_per_minute,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are enforced later, after merging with flags and environment.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout_s' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	if c.RequestsPerMinute < 0 || c.TokensPerMinute < 0 {
		return fmt.Errorf("config error: quota limits must be non-negative")
	}
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.Models) == 0 {
		result.Models = defaults.Models
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Headline == "" {
		result.Headline = defaults.Headline
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.RequestsPerMinute == 0 {
		result.RequestsPerMinute = defaults.RequestsPerMinute
	}
	if result.TokensPerMinute == 0 {
		result.TokensPerMinute = defaults.TokensPerMinute
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// ModelChain returns the configured ranked model list or the default chain.
func (c *Config) ModelChain() []string {
	if len(c.Models) > 0 {
		return c.Models
	}
	return DefaultModels
}

// RequestTimeout returns the per-request model timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return 90 * time.Second
}

// Profile returns the candidate profile described by the configuration.
func (c *Config) Profile() personalize.Profile {
	return personalize.Profile{Name: c.Name, Headline: c.Headline}
}

package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all vibekstra configuration.
type Config struct {
	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Batch solving
	Batch BatchConfig `yaml:"batch"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "anthropic",
			MaxTokens: 1000,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},

		Batch: BatchConfig{
			Concurrency: 4,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

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

// applyEnvOverrides applies environment variable overrides. Credentials are
// not stored in Config; see ProviderConfig.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("VIBEKSTRA_PROVIDER")); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("VIBEKSTRA_MODEL")); v != "" {
		c.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("VIBEKSTRA_BASE_URL")); v != "" {
		c.LLM.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("VIBEKSTRA_LOG_LEVEL")); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration. It does not check credentials; a
// missing key surfaces when the provider is built.
func (c *Config) Validate() error {
	if !IsValidProvider(c.LLM.Provider) {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders())
	}
	if c.LLM.Timeout != "" {
		if _, err := parseTimeout(c.LLM.Timeout); err != nil {
			return fmt.Errorf("invalid LLM timeout %q: %w", c.LLM.Timeout, err)
		}
	}
	if c.LLM.MaxTokens < 0 || c.LLM.MaxTokens > math.MaxInt32 {
		return fmt.Errorf("invalid max_tokens: %d", c.LLM.MaxTokens)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	return nil
}

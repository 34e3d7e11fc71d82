package config

import (
	"fmt"
	"time"

	"vibekstra/internal/provider"
)

// LLMConfig selects the remote solver.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // anthropic, gemini, openai
	Model     string `yaml:"model"`    // provider default when empty
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"` // Go duration, empty = no client timeout
	MaxTokens int    `yaml:"max_tokens"`
}

// ValidProviders lists all supported LLM providers.
func ValidProviders() []string {
	return provider.ValidNames()
}

// IsValidProvider reports whether name is a supported provider.
func IsValidProvider(name string) bool {
	_, ok := provider.Lookup(provider.Name(name))
	return ok
}

// GetLLMTimeout returns the LLM timeout as a duration. Zero means the
// transport default.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := parseTimeout(c.LLM.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ProviderConfig resolves the provider settings, reading the credential from
// the environment for the selected provider only.
func (c *Config) ProviderConfig() provider.Config {
	name := provider.Name(c.LLM.Provider)
	key, _ := provider.APIKeyFromEnv(name)
	return provider.Config{
		Provider:  name,
		APIKey:    key,
		Model:     c.LLM.Model,
		BaseURL:   c.LLM.BaseURL,
		MaxTokens: c.LLM.MaxTokens,
		Timeout:   c.GetLLMTimeout(),
	}
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return d, nil
}

// Package provider implements the structured-text-generation backends the
// solver dispatches to. Each backend sends exactly one request per call and
// returns the raw answer text; decoding it is the caller's job.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"vibekstra/internal/graph"
)

// Name identifies a provider.
type Name string

const (
	Anthropic Name = "anthropic"
	Gemini    Name = "gemini"
	OpenAI    Name = "openai"
)

// Provider generates text constrained to a response shape.
type Provider interface {
	Name() Name
	Model() string
	// GenerateStructured sends content to the remote model and returns the
	// answer text, which should be a JSON object matching shape.
	GenerateStructured(ctx context.Context, content string, shape graph.Shape) (string, error)
	Close() error
}

// Info describes a provider's defaults and credential sources.
type Info struct {
	Name         Name
	DefaultModel string
	EnvVars      []string
}

// Providers lists every supported provider. The first entry is the default.
var Providers = []Info{
	{Name: Anthropic, DefaultModel: "claude-3-sonnet-20240229", EnvVars: []string{"CLAUDE_API_KEY", "ANTHROPIC_API_KEY"}},
	{Name: Gemini, DefaultModel: "gemini-2.5-flash", EnvVars: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}},
	{Name: OpenAI, DefaultModel: "gpt-4o-mini", EnvVars: []string{"OPENAI_API_KEY"}},
}

// Lookup returns the Info for a provider name.
func Lookup(name Name) (Info, bool) {
	for _, p := range Providers {
		if p.Name == name {
			return p, true
		}
	}
	return Info{}, false
}

// ValidNames returns the supported provider names.
func ValidNames() []string {
	out := make([]string, len(Providers))
	for i, p := range Providers {
		out[i] = string(p.Name)
	}
	return out
}

// APIKeyFromEnv returns the first non-empty credential for the provider and
// the variable it came from.
func APIKeyFromEnv(name Name) (key, envVar string) {
	info, ok := Lookup(name)
	if !ok {
		return "", ""
	}
	for _, v := range info.EnvVars {
		if k := strings.TrimSpace(os.Getenv(v)); k != "" {
			return k, v
		}
	}
	return "", ""
}

// Config selects and configures one provider. Zero values fall back to the
// provider defaults; a zero Timeout leaves the transport default in place.
type Config struct {
	Provider  Name
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration

	// HTTPClient overrides the transport. Tests point it at httptest servers.
	HTTPClient *http.Client
}

// New builds the configured provider. It fails with a ConfigurationError,
// before any network call, when the provider is unknown or its credential is
// empty.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Provider == "" {
		cfg.Provider = Providers[0].Name
	}
	info, ok := Lookup(cfg.Provider)
	if !ok {
		return nil, &ConfigurationError{
			Provider: cfg.Provider,
			Reason:   fmt.Sprintf("unknown provider (valid: %s)", strings.Join(ValidNames(), ", ")),
		}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, missingKey(info.Name)
	}
	if cfg.Model == "" {
		cfg.Model = info.DefaultModel
	}

	logger = logger.With(zap.String("provider", string(info.Name)), zap.String("model", cfg.Model))

	var (
		p   Provider
		err error
	)
	switch info.Name {
	case Anthropic:
		p, err = NewAnthropicClient(AnthropicConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			MaxTokens:  cfg.MaxTokens,
			Timeout:    cfg.Timeout,
			HTTPClient: cfg.HTTPClient,
		}, logger)
	case Gemini:
		p, err = NewGeminiClient(ctx, GeminiConfig{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			MaxOutputTokens: cfg.MaxTokens,
			Timeout:         cfg.Timeout,
			HTTPClient:      cfg.HTTPClient,
		}, logger)
	case OpenAI:
		p, err = NewOpenAIClient(OpenAIConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			MaxTokens:  cfg.MaxTokens,
			Timeout:    cfg.Timeout,
			HTTPClient: cfg.HTTPClient,
		}, logger)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newHTTPClient(override *http.Client, timeout time.Duration) *http.Client {
	if override != nil {
		return override
	}
	return &http.Client{Timeout: timeout}
}

func missingKey(name Name) error {
	info, _ := Lookup(name)
	return &ConfigurationError{Provider: name, EnvVars: info.EnvVars, Reason: "API key not configured"}
}

type ctxKeyRequestID struct{}

// WithRequestID tags ctx with a solve request id used in log fields.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// RequestIDFrom returns the request id stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

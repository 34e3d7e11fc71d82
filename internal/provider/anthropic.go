package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vibekstra/internal/graph"
	"vibekstra/internal/usage"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 1000
)

// AnthropicConfig holds configuration for the Anthropic client.
type AnthropicConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// DefaultAnthropicConfig returns the defaults for the Messages API.
func DefaultAnthropicConfig(apiKey string) AnthropicConfig {
	info, _ := Lookup(Anthropic)
	return AnthropicConfig{
		APIKey:    apiKey,
		BaseURL:   anthropicBaseURL,
		Model:     info.DefaultModel,
		MaxTokens: defaultMaxTokens,
	}
}

// AnthropicClient talks to the Anthropic Messages API.
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAnthropicClient creates an Anthropic client. Empty fields take the
// DefaultAnthropicConfig values.
func NewAnthropicClient(cfg AnthropicConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, missingKey(Anthropic)
	}
	def := DefaultAnthropicConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: newHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     logger,
	}, nil
}

func (c *AnthropicClient) Name() Name    { return Anthropic }
func (c *AnthropicClient) Model() string { return c.model }
func (c *AnthropicClient) Close() error  { return nil }

// GenerateStructured sends one Messages API request carrying content and the
// schema of shape, and returns the text of the first content block.
func (c *AnthropicClient) GenerateStructured(ctx context.Context, content string, shape graph.Shape) (string, error) {
	prompt, err := BuildPrompt(content, shape)
	if err != nil {
		return "", err
	}

	reqBody := AnthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []AnthropicMessage{{Role: "user", Content: prompt}},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	c.logger.Debug("sending request",
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.Int("payload_bytes", len(jsonData)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received response",
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Provider: Anthropic, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var anthropicResp AnthropicResponse
	if err := json.Unmarshal(body, &anthropicResp); err != nil {
		return "", &ParseError{Provider: Anthropic, Raw: string(body), Err: err}
	}
	if anthropicResp.Error != nil {
		return "", &TransportError{Provider: Anthropic, StatusCode: resp.StatusCode, Body: anthropicResp.Error.Message}
	}
	if len(anthropicResp.Content) == 0 {
		return "", &ConstructionError{Provider: Anthropic, Raw: string(body), Err: fmt.Errorf("no content blocks in response")}
	}
	usage.Record(ctx, string(Anthropic), c.model, anthropicResp.Usage.InputTokens, anthropicResp.Usage.OutputTokens)
	return anthropicResp.Content[0].Text, nil
}

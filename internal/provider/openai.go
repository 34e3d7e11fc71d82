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

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenAIClient talks to the chat completions API using strict JSON schema
// output.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates an OpenAI client.
func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, missingKey(OpenAI)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIBaseURL
	}
	if cfg.Model == "" {
		info, _ := Lookup(OpenAI)
		cfg.Model = info.DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: newHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     logger,
	}, nil
}

func (c *OpenAIClient) Name() Name    { return OpenAI }
func (c *OpenAIClient) Model() string { return c.model }
func (c *OpenAIClient) Close() error  { return nil }

// GenerateStructured sends content as one chat message whose response_format
// pins the answer to shape, and returns the first choice's message content.
func (c *OpenAIClient) GenerateStructured(ctx context.Context, content string, shape graph.Shape) (string, error) {
	reqBody := OpenAIRequest{
		Model:     c.model,
		Messages:  []OpenAIMessage{{Role: "user", Content: content}},
		MaxTokens: c.maxTokens,
		ResponseFormat: &OpenAIResponseFormat{
			Type: "json_schema",
			JSONSchema: &OpenAIJSONSchema{
				Name:   shape.Title,
				Strict: true,
				Schema: shape.StrictJSONSchema(),
			},
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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
		return "", &TransportError{Provider: OpenAI, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var openaiResp OpenAIResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		return "", &ParseError{Provider: OpenAI, Raw: string(body), Err: err}
	}
	if openaiResp.Error != nil {
		return "", &TransportError{Provider: OpenAI, StatusCode: resp.StatusCode, Body: openaiResp.Error.Message}
	}
	if len(openaiResp.Choices) == 0 {
		return "", &ConstructionError{Provider: OpenAI, Raw: string(body), Err: fmt.Errorf("no choices in response")}
	}
	usage.Record(ctx, string(OpenAI), c.model, openaiResp.Usage.PromptTokens, openaiResp.Usage.CompletionTokens)
	msg := openaiResp.Choices[0].Message
	if msg.Refusal != "" {
		return "", &ConstructionError{Provider: OpenAI, Raw: string(body), Err: fmt.Errorf("model refused: %s", msg.Refusal)}
	}
	return msg.Content, nil
}

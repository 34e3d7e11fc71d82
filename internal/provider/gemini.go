package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"vibekstra/internal/graph"
	"vibekstra/internal/usage"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	MaxOutputTokens int
	Timeout         time.Duration
	HTTPClient      *http.Client
}

// GeminiClient is a thin wrapper around the genai client that hands the
// response shape to the API as a native schema.
type GeminiClient struct {
	cli       *genai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewGeminiClient creates a Gemini API client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, missingKey(Gemini)
	}
	if cfg.Model == "" {
		info, _ := Lookup(Gemini)
		cfg.Model = info.DefaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  newHTTPClient(cfg.HTTPClient, cfg.Timeout),
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{
		cli:       cli,
		model:     cfg.Model,
		maxTokens: cfg.MaxOutputTokens,
		logger:    logger,
	}, nil
}

func (g *GeminiClient) Name() Name    { return Gemini }
func (g *GeminiClient) Model() string { return g.model }
func (g *GeminiClient) Close() error  { return nil }

// GenerateStructured sends content as the only user message, constrained to
// application/json matching shape, and returns the concatenated text parts of
// the first candidate.
func (g *GeminiClient) GenerateStructured(ctx context.Context, content string, shape graph.Shape) (string, error) {
	start := time.Now()
	g.logger.Debug("sending request",
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.Int("payload_bytes", len(content)))

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(content, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   GeminiSchema(shape),
			MaxOutputTokens:  clampInt32(g.maxTokens),
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &TransportError{Provider: Gemini, StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("request failed: %w", err)
	}

	g.logger.Debug("received response",
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.Duration("duration", time.Since(start)))

	if m := resp.UsageMetadata; m != nil {
		usage.Record(ctx, string(Gemini), g.model, int(m.PromptTokenCount), int(m.CandidatesTokenCount))
	}

	text := resp.Text()
	if text == "" {
		raw, _ := json.Marshal(resp)
		return "", &ConstructionError{Provider: Gemini, Raw: string(raw), Err: fmt.Errorf("no text candidates in response")}
	}
	return text, nil
}

func clampInt32(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// GeminiSchema converts a Shape into the genai schema dialect.
func GeminiSchema(shape graph.Shape) *genai.Schema {
	props := make(map[string]*genai.Schema, len(shape.Fields))
	for _, f := range shape.Fields {
		s := &genai.Schema{Type: geminiType(f.Type), Description: f.Description}
		if f.Type == graph.TypeArray && f.Items != "" {
			s.Items = &genai.Schema{Type: geminiType(f.Items)}
		}
		props[f.Name] = s
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Description:      shape.Description,
		Properties:       props,
		PropertyOrdering: shape.FieldNames(),
		Required:         shape.RequiredNames(),
	}
}

func geminiType(t graph.FieldType) genai.Type {
	switch t {
	case graph.TypeArray:
		return genai.TypeArray
	case graph.TypeInteger:
		return genai.TypeInteger
	default:
		return genai.TypeUnspecified
	}
}

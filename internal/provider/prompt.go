package provider

import (
	"encoding/json"
	"fmt"

	"vibekstra/internal/graph"
)

// BuildPrompt embeds content and the indented JSON Schema of shape into the
// single user message. Only Anthropic needs it; the others constrain the
// answer through the API and send content as is.
func BuildPrompt(content string, shape graph.Shape) (string, error) {
	schema, err := json.MarshalIndent(shape.JSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}
	return fmt.Sprintf("\n%s\n\nPlease respond with a JSON object that matches this exact schema:\n%s\n\nReturn only the JSON object, no other text.\n",
		content, schema), nil
}

// UserMessage returns the user message the named provider sends for content.
func UserMessage(name Name, content string, shape graph.Shape) (string, error) {
	if name == Anthropic {
		return BuildPrompt(content, shape)
	}
	return content, nil
}

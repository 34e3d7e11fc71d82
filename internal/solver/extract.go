package solver

import (
	"encoding/json"
	"fmt"

	"vibekstra/internal/graph"
	"vibekstra/internal/provider"
)

// Extract decodes a provider answer into a SolveResponse. Text that is not
// JSON yields a ParseError; JSON without an integer distances array yields a
// ConstructionError. Unknown fields are ignored and nothing is repaired.
func Extract(raw string) (graph.SolveResponse, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return graph.SolveResponse{}, &provider.ParseError{Raw: raw, Err: err}
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return graph.SolveResponse{}, &provider.ConstructionError{Raw: raw, Err: fmt.Errorf("expected a JSON object, got %T", doc)}
	}
	if v, ok := obj["distances"]; !ok || v == nil {
		return graph.SolveResponse{}, &provider.ConstructionError{Raw: raw, Err: fmt.Errorf("field required: distances")}
	}

	var resp graph.SolveResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return graph.SolveResponse{}, &provider.ConstructionError{Raw: raw, Err: err}
	}
	return resp, nil
}

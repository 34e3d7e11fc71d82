package graph

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleEdges() [][]int {
	return [][]int{
		{1, 2, 2},
		{2, 3, 2},
		{2, 4, 1},
		{1, 3, 5},
		{3, 4, 3},
		{1, 4, 4},
	}
}

func TestNewSolveRequest_WrapsTriples(t *testing.T) {
	req, err := NewSolveRequest(4, 1, exampleEdges())
	require.NoError(t, err)

	assert.Equal(t, Instruction, req.Prompt)
	assert.Equal(t, 4, req.N)
	assert.Equal(t, 1, req.Source)

	want := []Edge{
		{U: 1, V: 2, W: 2},
		{U: 2, V: 3, W: 2},
		{U: 2, V: 4, W: 1},
		{U: 1, V: 3, W: 5},
		{U: 3, V: 4, W: 3},
		{U: 1, V: 4, W: 4},
	}
	if diff := cmp.Diff(want, req.Edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSolveRequest_KeepsDuplicatesAndOrder(t *testing.T) {
	req, err := NewSolveRequest(2, 1, [][]int{{1, 2, 7}, {1, 2, 3}, {1, 2, 7}})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 7}, {1, 2, 3}, {1, 2, 7}}, Triples(req.Edges))
}

func TestNewSolveRequest_NoBoundsChecks(t *testing.T) {
	// Out-of-range values are passed through untouched.
	req, err := NewSolveRequest(2, 9, [][]int{{5, 0, -3}})
	require.NoError(t, err)
	assert.Equal(t, 9, req.Source)
	assert.Equal(t, Edge{U: 5, V: 0, W: -3}, req.Edges[0])
}

func TestNewSolveRequest_EmptyEdges(t *testing.T) {
	req, err := NewSolveRequest(1, 1, nil)
	require.NoError(t, err)
	assert.NotNil(t, req.Edges)
	assert.Empty(t, req.Edges)

	payload, err := req.MarshalIndent()
	require.NoError(t, err)
	assert.Contains(t, payload, `"edges": []`)
}

func TestNewSolveRequest_RejectsWrongArity(t *testing.T) {
	tests := []struct {
		name  string
		edges [][]int
		index int
	}{
		{"too short", [][]int{{1, 2}}, 0},
		{"too long", [][]int{{1, 2, 3}, {1, 2, 3, 4}}, 1},
		{"empty", [][]int{{1, 2, 3}, {2, 3, 4}, {}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSolveRequest(4, 1, tt.edges)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.index, vErr.Index)
		})
	}
}

func TestSolveRequest_MarshalIndent(t *testing.T) {
	req, err := NewSolveRequest(2, 1, [][]int{{1, 2, 3}})
	require.NoError(t, err)

	payload, err := req.MarshalIndent()
	require.NoError(t, err)

	// Field order follows the struct: prompt, n, source, edges.
	iPrompt := strings.Index(payload, `"prompt"`)
	iN := strings.Index(payload, `"n"`)
	iSource := strings.Index(payload, `"source"`)
	iEdges := strings.Index(payload, `"edges"`)
	assert.True(t, iPrompt < iN && iN < iSource && iSource < iEdges, "unexpected field order:\n%s", payload)
	assert.Contains(t, payload, "\n  \"n\": 2,")

	var back SolveRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &back))
	assert.Equal(t, req, back)
}

func TestResponseShape_JSONSchema(t *testing.T) {
	schema := ResponseShape.JSONSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"distances"}, schema["required"])

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	distances, ok := props["distances"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "array", distances["type"])
	assert.Equal(t, map[string]interface{}{"type": "integer"}, distances["items"])

	_, strict := schema["additionalProperties"]
	assert.False(t, strict)
	assert.Equal(t, false, ResponseShape.StrictJSONSchema()["additionalProperties"])
}

func TestResponseShape_FieldNames(t *testing.T) {
	assert.Equal(t, []string{"distances"}, ResponseShape.FieldNames())
	assert.Equal(t, []string{}, Shape{Fields: []Field{{Name: "x"}}}.RequiredNames())
}

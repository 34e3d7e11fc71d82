package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibekstra/internal/provider"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      []int
		parse     bool
		construct bool
	}{
		{name: "plain", raw: `{"distances": [0, 2, 4, 3]}`, want: []int{0, 2, 4, 3}},
		{name: "surrounding whitespace", raw: "\n  {\"distances\": [0]}\n", want: []int{0}},
		{name: "extra fields ignored", raw: `{"distances": [0, 5], "explanation": "easy"}`, want: []int{0, 5}},
		{name: "empty list", raw: `{"distances": []}`, want: []int{}},
		{name: "prose", raw: "The distances are 0, 2, 4, 3.", parse: true},
		{name: "fenced", raw: "```json\n{\"distances\": [0]}\n```", parse: true},
		{name: "truncated", raw: `{"distances": [0, 2`, parse: true},
		{name: "missing field", raw: `{"dist": [0]}`, construct: true},
		{name: "null field", raw: `{"distances": null}`, construct: true},
		{name: "not an object", raw: `[0, 2, 4, 3]`, construct: true},
		{name: "non-integer", raw: `{"distances": [0, 2.5]}`, construct: true},
		{name: "strings", raw: `{"distances": ["0"]}`, construct: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Extract(tt.raw)
			switch {
			case tt.parse:
				var pErr *provider.ParseError
				require.ErrorAs(t, err, &pErr)
				assert.Equal(t, tt.raw, pErr.Raw)
				assert.Contains(t, err.Error(), "Response: "+tt.raw)
			case tt.construct:
				var cErr *provider.ConstructionError
				require.ErrorAs(t, err, &cErr)
				assert.Equal(t, tt.raw, cErr.Raw)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, resp.Distances)
			}
		})
	}
}

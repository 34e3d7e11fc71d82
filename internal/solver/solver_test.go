package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"vibekstra/internal/graph"
	"vibekstra/internal/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// fakeProvider returns a canned answer and records what it was sent.
type fakeProvider struct {
	answer  string
	err     error
	content string
	shape   graph.Shape
	reqID   string
	calls   int
}

func (f *fakeProvider) Name() provider.Name { return "fake" }
func (f *fakeProvider) Model() string       { return "fake-1" }
func (f *fakeProvider) Close() error        { return nil }

func (f *fakeProvider) GenerateStructured(ctx context.Context, content string, shape graph.Shape) (string, error) {
	f.calls++
	f.content = content
	f.shape = shape
	f.reqID = provider.RequestIDFrom(ctx)
	return f.answer, f.err
}

func exampleEdges() [][]int {
	return [][]int{{1, 2, 2}, {2, 3, 2}, {2, 4, 1}, {1, 3, 5}, {3, 4, 3}, {1, 4, 4}}
}

func TestSolve_Example(t *testing.T) {
	fake := &fakeProvider{answer: `{"distances": [0, 2, 4, 3]}`}
	s := New(fake, zap.NewNop())

	got, err := s.Solve(context.Background(), 4, 1, exampleEdges())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 3}, got)
	assert.Equal(t, 1, fake.calls)
	assert.NotEmpty(t, fake.reqID)
	assert.Equal(t, graph.ResponseShape.Title, fake.shape.Title)

	var sent graph.SolveRequest
	require.NoError(t, json.Unmarshal([]byte(fake.content), &sent))
	assert.Equal(t, graph.Instruction, sent.Prompt)
	assert.Equal(t, 4, sent.N)
	assert.Equal(t, 1, sent.Source)
	assert.Equal(t, exampleEdges(), graph.Triples(sent.Edges))
}

func TestSolve_PassesAnswerThroughUnchecked(t *testing.T) {
	// Wrong length and unexpected values are returned as-is.
	fake := &fakeProvider{answer: `{"distances": [0, -1, 99, 7, 7]}`}
	got, err := New(fake, nil).Solve(context.Background(), 2, 1, [][]int{{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, -1, 99, 7, 7}, got)
}

func TestSolve_InvalidEdgeMakesNoCall(t *testing.T) {
	fake := &fakeProvider{answer: `{"distances": []}`}
	_, err := New(fake, nil).Solve(context.Background(), 2, 1, [][]int{{1, 2}})

	var vErr *graph.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, fake.calls)
}

func TestSolve_ProviderError(t *testing.T) {
	want := &provider.TransportError{Provider: "fake", StatusCode: 503, Body: "overloaded"}
	fake := &fakeProvider{err: want}

	_, err := New(fake, nil).Solve(context.Background(), 1, 1, nil)
	assert.True(t, errors.Is(err, want))
}

func TestSolve_TagsDecodeErrorsWithProvider(t *testing.T) {
	fake := &fakeProvider{answer: "I think the answer is 4"}
	_, err := New(fake, nil).Solve(context.Background(), 1, 1, nil)

	var pErr *provider.ParseError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.Name("fake"), pErr.Provider)
	assert.True(t, strings.HasPrefix(err.Error(), "fake: failed to parse JSON response"))
}

func TestVibekstra_MissingKey(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	_, err := Vibekstra(context.Background(), provider.Config{Provider: provider.Anthropic, BaseURL: server.URL}, 4, 1, exampleEdges())
	var cfgErr *provider.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestVibekstra_Acceptance(t *testing.T) {
	tests := []struct {
		name     provider.Name
		response string
	}{
		{provider.Anthropic, `{"content": [{"type": "text", "text": "{\"distances\": [0, 2, 4, 3]}"}]}`},
		{provider.OpenAI, `{"choices": [{"message": {"role": "assistant", "content": "{\"distances\": [0, 2, 4, 3]}"}}]}`},
		{provider.Gemini, `{"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"distances\": [0, 2, 4, 3]}"}]}}]}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			got, err := Vibekstra(context.Background(), provider.Config{
				Provider:   tt.name,
				APIKey:     "test-key",
				BaseURL:    server.URL,
				HTTPClient: server.Client(),
			}, 4, 1, exampleEdges())
			require.NoError(t, err)
			assert.Equal(t, []int{0, 2, 4, 3}, got)
		})
	}
}

// Package graph holds the request and response types exchanged with the remote
// solver, and the normalizer that turns raw edge triples into a SolveRequest.
package graph

import (
	"encoding/json"
	"fmt"
)

// Instruction is the fixed prompt attached to every SolveRequest.
const Instruction = "You are an algorithm expert. Please solve the following single-source shortest path problem for a graph with non-negative weights (similar to Dijkstra's algorithm)." +
	"Calculate the shortest distance from the specified source vertex to every other vertex." +
	"The vertices are numbered starting from 1. If a vertex is unreachable, set the distance to -1 (though this problem guarantees all vertices are reachable)." +
	"Return a list where the i-1th element represents the shortest distance from the source vertex to vertex i."

// Unreachable is the distance the remote solver is told to report for a vertex
// that cannot be reached from the source.
const Unreachable = -1

// Edge is a directed edge from U to V with weight W.
type Edge struct {
	U int `json:"u" yaml:"u"`
	V int `json:"v" yaml:"v"`
	W int `json:"w" yaml:"w"`
}

// SolveRequest is the payload serialized into the provider prompt.
// Field order matters: it is the order the remote model reads.
type SolveRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Source int    `json:"source"`
	Edges  []Edge `json:"edges"`
}

// SolveResponse is the shape the remote solver must answer with.
type SolveResponse struct {
	Distances []int `json:"distances"`
}

// ValidationError reports a malformed edge triple.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edge at index %d: %s", e.Index, e.Reason)
}

// NewSolveRequest wraps the raw triples into Edges and attaches Instruction.
//
// Only the arity of each triple is checked. Vertex bounds, the source range
// and weight signs are the caller's responsibility and go to the remote
// service as given.
func NewSolveRequest(n, source int, edges [][]int) (SolveRequest, error) {
	out := make([]Edge, 0, len(edges))
	for i, triple := range edges {
		if len(triple) != 3 {
			return SolveRequest{}, &ValidationError{
				Index:  i,
				Reason: fmt.Sprintf("expected [u, v, w], got %d values", len(triple)),
			}
		}
		out = append(out, Edge{U: triple[0], V: triple[1], W: triple[2]})
	}
	return SolveRequest{
		Prompt: Instruction,
		N:      n,
		Source: source,
		Edges:  out,
	}, nil
}

// MarshalIndent renders the request as 2-space indented JSON, the text sent to
// providers as message content.
func (r SolveRequest) MarshalIndent() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal solve request: %w", err)
	}
	return string(b), nil
}

// Triples converts edges back to [u, v, w] form.
func Triples(edges []Edge) [][]int {
	out := make([][]int, len(edges))
	for i, e := range edges {
		out[i] = []int{e.U, e.V, e.W}
	}
	return out
}

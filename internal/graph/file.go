package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is a graph as written in a graph file. JSON documents parse as YAML,
// so both formats are accepted.
//
//	n: 4
//	source: 1
//	edges:
//	  - [1, 2, 2]
//	  - [2, 3, 2]
type Case struct {
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	N      int     `yaml:"n" json:"n"`
	Source int     `yaml:"source" json:"source"`
	Edges  [][]int `yaml:"edges" json:"edges"`
}

// Request normalizes the case into a SolveRequest.
func (c Case) Request() (SolveRequest, error) {
	return NewSolveRequest(c.N, c.Source, c.Edges)
}

// Batch is a list of named cases.
type Batch struct {
	Cases []Case `yaml:"cases" json:"cases"`
}

// ParseCase decodes a single graph document. Non-integer fields fail here.
func ParseCase(data []byte) (Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Case{}, fmt.Errorf("failed to parse graph: %w", err)
	}
	if c.N < 1 {
		return Case{}, fmt.Errorf("failed to parse graph: n must be at least 1, got %d", c.N)
	}
	return c, nil
}

// LoadCase reads and decodes a graph file.
func LoadCase(path string) (Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Case{}, fmt.Errorf("failed to read graph file: %w", err)
	}
	return ParseCase(data)
}

// ParseBatch decodes a batch document. Unnamed cases are named by position.
func ParseBatch(data []byte) (Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Batch{}, fmt.Errorf("failed to parse batch: %w", err)
	}
	if len(b.Cases) == 0 {
		return Batch{}, fmt.Errorf("failed to parse batch: no cases")
	}
	for i := range b.Cases {
		if b.Cases[i].Name == "" {
			b.Cases[i].Name = fmt.Sprintf("case-%d", i+1)
		}
	}
	return b, nil
}

// LoadBatch reads and decodes a batch file.
func LoadBatch(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseBatch(data)
}

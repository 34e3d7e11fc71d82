package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibekstra/internal/graph"
)

var (
	solveFile   string
	solveN      int
	solveSource int
	solveEdges  []string
	solveOutput string
)

// solveCmd solves one graph
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Ask the configured model for shortest distances from a source vertex",
	Long: `Builds a solve request from a graph file or flags and sends it to the
configured provider in a single request.

Graph files are YAML or JSON:

  n: 4
  source: 1
  edges:
    - [1, 2, 2]
    - [2, 3, 2]

Example:
  vibekstra solve -n 4 -s 1 --edge 1,2,2 --edge 2,3,2 --edge 2,4,1 \
    --edge 1,3,5 --edge 3,4,3 --edge 1,4,4`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Graph file (YAML or JSON)")
	solveCmd.Flags().IntVarP(&solveN, "vertices", "n", 0, "Number of vertices")
	solveCmd.Flags().IntVarP(&solveSource, "source", "s", 1, "Source vertex (1-based)")
	solveCmd.Flags().StringArrayVarP(&solveEdges, "edge", "e", nil, "Directed edge as u,v,w (repeatable)")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "table", "Output format: table, json")
}

func runSolve(cmd *cobra.Command, args []string) error {
	c, err := graphFromFlags()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := newSolver(ctx)
	if err != nil {
		return err
	}
	defer s.Provider().Close()

	logger.Info("Solving",
		zap.Int("n", c.N),
		zap.Int("source", c.Source),
		zap.Int("edges", len(c.Edges)))

	ctx, tracker := withUsage(ctx)
	distances, err := s.Solve(ctx, c.N, c.Source, c.Edges)
	if err != nil {
		logger.Error("Solve failed", zap.Error(err))
		return err
	}
	logUsage(tracker)

	return printDistances(cmd.OutOrStdout(), c.Source, distances)
}

// graphFromFlags reads --file, or builds a case from -n/-s/--edge.
func graphFromFlags() (graph.Case, error) {
	if solveFile != "" {
		if solveN != 0 || len(solveEdges) > 0 {
			return graph.Case{}, fmt.Errorf("--file cannot be combined with -n or --edge")
		}
		return graph.LoadCase(solveFile)
	}
	if solveN < 1 {
		return graph.Case{}, fmt.Errorf("either --file or -n is required")
	}
	edges := make([][]int, 0, len(solveEdges))
	for _, e := range solveEdges {
		triple, err := parseEdge(e)
		if err != nil {
			return graph.Case{}, err
		}
		edges = append(edges, triple)
	}
	return graph.Case{N: solveN, Source: solveSource, Edges: edges}, nil
}

// parseEdge parses "u,v,w".
func parseEdge(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid edge %q: expected u,v,w", s)
	}
	out := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid edge %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func printDistances(w io.Writer, source int, distances []int) error {
	switch solveOutput {
	case "json":
		data, err := json.MarshalIndent(graph.SolveResponse{Distances: distances}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal distances: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table", "":
		t := newTable(fmt.Sprintf("Distances from vertex %d", source), "Vertex", "Distance")
		for i, d := range distances {
			t.AddRow(strconv.Itoa(i+1), formatDistance(d))
		}
		_, err := fmt.Fprint(w, t.View())
		return err
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json)", solveOutput)
	}
}

func formatDistance(d int) string {
	if d == graph.Unreachable {
		return mutedStyle.Render("unreachable")
	}
	return strconv.Itoa(d)
}

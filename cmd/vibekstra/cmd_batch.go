package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vibekstra/internal/graph"
	"vibekstra/internal/logging"
)

var batchOutput string

// batchCmd solves many graphs concurrently
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Solve every graph in a batch file concurrently",
	Long: `Reads a YAML or JSON batch file and sends one request per case, at most
batch.concurrency at a time. A failing case is reported and does not stop
the others.

  cases:
    - name: example
      n: 4
      source: 1
      edges: [[1, 2, 2], [2, 3, 2], [2, 4, 1]]`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "table", "Output format: table, json")
}

// caseResult is the outcome of one batch case.
type caseResult struct {
	Name      string        `json:"name"`
	Distances []int         `json:"distances,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"-"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := graph.LoadBatch(args[0])
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

	log := logging.For(logger, logging.CategoryBatch)
	log.Info("Starting batch", zap.Int("cases", len(b.Cases)), zap.Int("concurrency", cfg.Batch.Concurrency))

	ctx, tracker := withUsage(ctx)
	results := make([]caseResult, len(b.Cases))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Batch.Concurrency)

	for i, c := range b.Cases {
		eg.Go(func() error {
			start := time.Now()
			res := caseResult{Name: c.Name}
			distances, err := s.Solve(egCtx, c.N, c.Source, c.Edges)
			if err != nil {
				log.Warn("Case failed", zap.String("case", c.Name), zap.Error(err))
				res.Error = err.Error()
			} else {
				res.Distances = distances
			}
			res.Duration = time.Since(start)
			results[i] = res
			return nil
		})
	}
	_ = eg.Wait()
	logUsage(tracker)

	if err := printBatch(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(results))
	}
	return nil
}

func printBatch(w io.Writer, results []caseResult) error {
	switch batchOutput {
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table", "":
		t := newTable("Batch results", "Case", "Status", "Distances", "Time")
		for _, r := range results {
			status := successStyle.Render("ok")
			detail := joinInts(r.Distances)
			if r.Error != "" {
				status = errorStyle.Render("failed")
				detail, _, _ = strings.Cut(r.Error, "\n")
			}
			t.AddRow(r.Name, status, detail, r.Duration.Round(time.Millisecond).String())
		}
		_, err := fmt.Fprint(w, t.View())
		return err
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json)", batchOutput)
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
